// Package tag defines the records produced by parsing a tag document.
//
// Package: tag
// Title: Tag Records
// Description: A tag document is a sequence of bracketed directives such as
//              [say name="Alice" text="Hi"]. Each directive becomes a Tag with
//              a name, its 1-based source line and an ordered list of
//              Property values. Tags are immutable once built; every accessor
//              returns copies so callers cannot change the store behind them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Duplicate property names are kept in document order. Get returns the first
// match and Values returns all of them:
//
//	t := tag.New("bg", 4, []tag.Property{{Name: "file", Value: "a.png"}, {Name: "file", Value: "b.png"}})
//	first, _ := t.Get("file") // "a.png"
//	all := t.Values("file")   // ["a.png", "b.png"]
package tag
