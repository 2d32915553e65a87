// Package store keeps one parsed tag document in memory and walks it with a
// cursor.
//
// Package: store
// Title: Tag Store
// Description: Load parses a whole document and materializes every tag into
//              store-owned memory. The cursor starts at the first tag;
//              Current, Line and Advance walk forward. Loads are all or
//              nothing: any failure leaves the store empty and is logged as
//              one localized diagnostic line.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage:
//
//	st := store.New(store.Options{Logger: logger, Translator: i18n.Default()})
//	if err := st.LoadFile(ctx, "intro.tag"); err != nil {
//		return err
//	}
//	for t, ok := st.Current(); ok; t, ok = st.Current() {
//		fmt.Println(t.Name(), st.Line())
//		st.Advance()
//	}
package store
