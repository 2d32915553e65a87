// Package log provides structured logging for tagscript.
//
// Package: log
// Title: Structured Logging
// Description: This package implements a small structured logging system with
//              contextual fields, JSON, text and console formats, log levels
//              and integration with coded errors from the error package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Trimmed for the tag toolkit
//
// Usage:
//
//	import mdwlog "github.com/msto63/tagscript/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithName("store")
//
//	logger.Info("document loaded", mdwlog.Fields{"file": name, "tags": n})
//
//	timer := logger.StartTimer("parse")
//	// ... parse the document
//	timer.Stop()
//
//	// Coded errors choose their level from their severity
//	logger.LogError(err)
package log
