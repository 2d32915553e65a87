// File: doc.go
// Title: Internationalization (i18n) Package Documentation
// Description: Package i18n provides the message catalog used for user-visible
//              diagnostics and command output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Embedded catalog for tag diagnostics

/*
Package i18n provides the message catalog for tagscript.

Built-in locale files live in locales/ and are embedded into the binary.
English is written in TOML and German in YAML; both formats are accepted for
every locale. A LocalesDir given in Options is read after the built-in files
and its values replace built-in ones key by key, so a deployment can reword a
single diagnostic without copying the whole catalog.

Keys are dotted paths into nested tables:

	[tag.error]
	invalid_character = "Invalid character."

	m.T("tag.error.invalid_character")

Values are text/template strings rendered with the data map passed to T:

	m.T("tag.diagnostic", map[string]interface{}{
		"File": "intro.tag", "Line": 3, "Message": msg,
	})

Arrays hold plural forms selected by Plural:

	[cli]
	tags = ["{{.Count}} tag", "{{.Count}} tags"]

Lookups fall back from the active locale to the default locale, and T
returns the key itself when neither has it.
*/
package i18n
