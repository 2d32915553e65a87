// File: locale.go
// Title: Locale Detection and Utilities
// Description: Implements locale normalization and detection from the
//              environment (LC_ALL, LC_MESSAGES, LANG) for command line use.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with Accept-Language parsing
// - 2026-10-19 v0.2.0: Detection from POSIX locale variables instead of HTTP headers

package i18n

import (
	"os"
	"strings"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
)

// localeEnvVars are consulted in POSIX precedence order
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// DetectLocale returns the best available locale for the given candidates,
// falling back to the POSIX locale variables and finally the default locale.
// Candidates may use POSIX form such as "de_DE.UTF-8".
func (m *Manager) DetectLocale(candidates ...string) string {
	for _, name := range localeEnvVars {
		candidates = append(candidates, os.Getenv(name))
	}

	available := m.GetAvailableLocales()
	for _, candidate := range candidates {
		if match := bestLocaleMatch(candidate, available); match != "" {
			return match
		}
	}
	return m.defaultLocale
}

// bestLocaleMatch finds the best matching locale for one candidate
func bestLocaleMatch(candidate string, available []string) string {
	locale := NormalizeLocale(stripPOSIXSuffix(candidate))
	if locale == "" {
		return ""
	}

	for _, a := range available {
		if strings.EqualFold(a, locale) {
			return a
		}
	}

	language, _ := SplitLocale(locale)
	for _, a := range available {
		if strings.EqualFold(a, language) {
			return a
		}
	}
	for _, a := range available {
		if strings.HasPrefix(strings.ToLower(a), language+"-") {
			return a
		}
	}
	return ""
}

// stripPOSIXSuffix removes encoding and modifier parts ("de_DE.UTF-8@euro" -> "de_DE")
func stripPOSIXSuffix(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return locale
}

// NormalizeLocale normalizes a locale string to standard format ("de_de" -> "de-DE")
func NormalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return ""
	}

	locale = strings.ReplaceAll(locale, "_", "-")
	parts := strings.Split(locale, "-")

	language := parts[0]
	if len(language) != 2 && len(language) != 3 {
		return ""
	}

	if len(parts) > 1 && len(parts[1]) == 2 {
		return language + "-" + strings.ToUpper(parts[1])
	}
	return language
}

// ValidateLocale validates if a locale string is in valid format
func ValidateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return mdwerror.New("locale cannot be empty").WithCode(mdwerror.CodeValidationFailed).WithOperation("i18n.ValidateLocale")
	}

	if NormalizeLocale(locale) == "" {
		return mdwerror.New("invalid locale format").WithCode(mdwerror.CodeValidationFailed).WithOperation("i18n.ValidateLocale").WithDetail("locale", locale).WithDetail("expected_format", "e.g., 'en', 'en-US'")
	}

	return nil
}

// SplitLocale splits a locale into language and country parts
func SplitLocale(locale string) (language, country string) {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return "", ""
	}

	parts := strings.Split(normalized, "-")
	language = parts[0]
	if len(parts) > 1 {
		country = parts[1]
	}
	return language, country
}
