// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across tagscript. Codes separate malformed input from exceeded
//              limits, I/O failures and configuration problems.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Narrowed to tag document codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIOError      Code = "IO_ERROR"

	// Tag documents
	CodeTagSyntax   Code = "TAG_SYNTAX"
	CodeTagCapacity Code = "TAG_CAPACITY"
	CodeOutOfMemory Code = "OUT_OF_MEMORY"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeIOError,
		CodeTagSyntax, CodeTagCapacity, CodeOutOfMemory,
		CodeConfigError, CodeInvalidConfig,
		CodeValidationFailed:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTagSyntax, CodeTagCapacity, CodeOutOfMemory:
		return "tag"
	case CodeNotFound, CodeIOError:
		return "source"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status a command line tool should use
// when it terminates because of an error with this code.
func (c Code) ExitCode() int {
	switch c {
	case CodeTagSyntax, CodeTagCapacity, CodeOutOfMemory:
		return 1
	case CodeConfigError, CodeInvalidConfig, CodeValidationFailed, CodeInvalidInput:
		return 2
	case CodeNotFound, CodeIOError:
		return 3
	default:
		return 70
	}
}
