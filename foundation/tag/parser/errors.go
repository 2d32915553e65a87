// File: errors.go
// Title: Parse Errors
// Description: Defines the error kinds, the failure reasons and the Error
//              type returned by the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
)

// Kind classifies a parse failure
type Kind int

const (
	// KindLexical marks malformed input, including a premature end of input
	KindLexical Kind = iota

	// KindCapacity marks an exceeded bound
	KindCapacity

	// KindAllocation marks an exhausted storage budget
	KindAllocation

	// KindInternal marks a failure of the event consumer
	KindInternal
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindCapacity:
		return "capacity"
	case KindAllocation:
		return "allocation"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Code maps the kind to an error code
func (k Kind) Code() mdwerror.Code {
	switch k {
	case KindLexical:
		return mdwerror.CodeTagSyntax
	case KindCapacity:
		return mdwerror.CodeTagCapacity
	case KindAllocation:
		return mdwerror.CodeOutOfMemory
	default:
		return mdwerror.CodeInternal
	}
}

// Reason is the cause of a parse failure. The package variables are the
// complete set; compare with errors.Is.
type Reason struct {
	message string
	key     string
	kind    Kind
}

var (
	ErrInvalidCharacter     = &Reason{"invalid character", "tag.error.invalid_character", KindLexical}
	ErrUnexpectedEOF        = &Reason{"unexpected end of file", "tag.error.unexpected_eof", KindLexical}
	ErrTagNameTooLong       = &Reason{"tag name too long", "tag.error.tag_name_too_long", KindCapacity}
	ErrPropertyNameTooLong  = &Reason{"property name too long", "tag.error.property_name_too_long", KindCapacity}
	ErrTooManyProperties    = &Reason{"too many properties", "tag.error.too_many_properties", KindCapacity}
	ErrPropertyValueTooLong = &Reason{"property value too long", "tag.error.property_value_too_long", KindCapacity}
	ErrTooManyTags          = &Reason{"too many tags", "tag.error.too_many_tags", KindCapacity}
	ErrOutOfMemory          = &Reason{"out of memory", "tag.error.out_of_memory", KindAllocation}
	ErrInternal             = &Reason{"internal error", "tag.error.internal", KindInternal}
)

// Error implements the error interface
func (r *Reason) Error() string {
	return r.message
}

// MessageKey returns the catalog key of the localized message
func (r *Reason) MessageKey() string {
	return r.key
}

// Kind returns the failure kind
func (r *Reason) Kind() Kind {
	return r.kind
}

// Code returns the error code of the failure kind
func (r *Reason) Code() mdwerror.Code {
	return r.kind.Code()
}

// HasLine reports whether errors with this reason carry a source line.
// Allocation failures are not tied to a position in the input.
func (r *Reason) HasLine() bool {
	return r.kind != KindAllocation
}

// Error is a failed parse. Line is 0 when the reason has no line.
type Error struct {
	Kind   Kind
	Line   int
	Reason *Reason

	// Cause is the consumer error behind an internal failure, if any
	Cause error
}

func newError(reason *Reason, line int) *Error {
	e := &Error{Kind: reason.kind, Reason: reason}
	if reason.HasLine() {
		e.Line = line
	}
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Reason.Error()
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap returns the reason and, for consumer failures, the cause
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Reason, e.Cause}
	}
	return []error{e.Reason}
}

// Code returns the error code of the failure kind
func (e *Error) Code() mdwerror.Code {
	return e.Kind.Code()
}

// MessageKey returns the catalog key of the localized message
func (e *Error) MessageKey() string {
	return e.Reason.MessageKey()
}

// consumerError converts an error returned by an EventFunc. Reasons and
// parse errors keep their kind; anything else becomes an internal error.
func consumerError(err error, line int) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		out := *perr
		if out.Line == 0 && out.Reason.HasLine() {
			out.Line = line
		}
		return &out
	}

	var reason *Reason
	if errors.As(err, &reason) {
		return newError(reason, line)
	}

	e := newError(ErrInternal, line)
	e.Cause = err
	return e
}
