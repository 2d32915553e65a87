// Package parser implements the lexer for tag documents.
//
// Package: parser
// Title: Tag Document Parser
// Description: A single-pass state machine over the bytes of a document. It
//              validates the bracket syntax, decodes escapes in property
//              values and reports every complete tag to a callback together
//              with the line of its closing bracket.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Grammar:
//
//	document := ( ws | tag )*
//	tag      := "[" ws* name ( ws+ prop )* ws* "]"
//	name     := any byte except whitespace and "]"
//	prop     := key "=" `"` value `"`
//	key      := [A-Za-z0-9_-]+
//	value    := ( `\"` | `\n` | `\\` | any byte except `"` )*
//
// Whitespace is space, tab, carriage return and newline. A backslash before
// any other byte is kept as is. Property names may repeat within a tag.
//
// Every failure is fatal and returned as *Error. Its Reason is one of the
// Err* variables and can be tested with errors.Is:
//
//	err := parser.Parse(text, func(ev parser.Event) error {
//		fmt.Println(ev.Line, ev.Name, len(ev.Properties))
//		return nil
//	})
//	if errors.Is(err, parser.ErrUnexpectedEOF) {
//		// unterminated tag
//	}
package parser
