// Package error provides structured error handling for tagscript.
//
// Package: error
// Title: Coded Errors
// Description: This package implements errors that carry a code, a severity,
//              free-form details and an optional localization key. Tag
//              parsing, file sources and configuration all report failures
//              through it so the command line tool can choose exit codes and
//              the logger can choose levels.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Trimmed to the codes used by tag documents
//
// Usage:
//
//	import mdwerror "github.com/msto63/tagscript/foundation/core/error"
//
//	err := mdwerror.New("tag file not found").
//		WithCode(mdwerror.CodeNotFound).
//		WithDetail("file", name)
//
//	if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
//		// ...
//	}
package error
