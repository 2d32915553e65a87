// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the message catalog Manager: loading TOML and YAML
//              locale files from the embedded defaults and an optional override
//              directory, template interpolation and pluralization.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue in pluralization,
//                       improved cache key uniqueness for plural forms
// - 2026-10-19 v0.2.0: Locales load from fs.FS with embedded defaults, override
//                       directory merges over them, T falls back to the key

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
)

//go:embed locales/*.toml locales/*.yaml
var embeddedLocales embed.FS

// Format represents the language file format
type Format int

const (
	// FormatTOML represents TOML format
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// formatFromExt maps a file extension to a Format
func formatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return 0, false
	}
}

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale string // Default locale (default: "en")
	Locale        string // Active locale (default: DefaultLocale)
	LocalesDir    string // Optional directory whose files override the built-in catalog
	FS            fs.FS  // Source of the built-in catalog (default: embedded locales)
}

// Manager manages translations for the application
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	localesDir    string
	base          fs.FS
	translations  map[string]map[string]interface{} // locale -> nested translations
	templates     map[string]*template.Template     // locale/key -> compiled template
}

// TranslationData represents the structure of a translation file
type TranslationData map[string]interface{}

// New creates a new i18n manager with the specified options
func New(options Options) (*Manager, error) {
	if strings.TrimSpace(options.DefaultLocale) == "" {
		options.DefaultLocale = "en"
	}
	if options.FS == nil {
		sub, err := fs.Sub(embeddedLocales, "locales")
		if err != nil {
			return nil, mdwerror.Wrap(err, "embedded locales unavailable").WithCode(mdwerror.CodeInternal).WithOperation("i18n.New")
		}
		options.FS = sub
	}

	m := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		localesDir:    options.LocalesDir,
		base:          options.FS,
	}

	if err := m.loadAll(); err != nil {
		return nil, err
	}

	if options.Locale != "" && options.Locale != options.DefaultLocale {
		if err := m.SetLocale(options.Locale); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Default returns a manager over the built-in catalog only, in English
func Default() *Manager {
	m, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return m
}

// loadAll (re)builds the translation table from the base FS and the override directory
func (m *Manager) loadAll() error {
	translations := make(map[string]map[string]interface{})

	if err := loadLocalesFrom(m.base, translations); err != nil {
		return mdwerror.Wrap(err, "failed to load built-in locales").WithCode(mdwerror.CodeConfigError).WithOperation("i18n.loadAll")
	}

	if m.localesDir != "" {
		info, err := os.Stat(m.localesDir)
		if err != nil || !info.IsDir() {
			return mdwerror.New("locales directory not found").WithCode(mdwerror.CodeNotFound).WithOperation("i18n.loadAll").WithDetail("directory", m.localesDir)
		}
		if err := loadLocalesFrom(os.DirFS(m.localesDir), translations); err != nil {
			return mdwerror.Wrap(err, "failed to load locale overrides").WithCode(mdwerror.CodeConfigError).WithOperation("i18n.loadAll").WithDetail("directory", m.localesDir)
		}
	}

	if _, exists := translations[m.defaultLocale]; !exists {
		return mdwerror.New("default locale not found").WithCode(mdwerror.CodeNotFound).WithOperation("i18n.loadAll").WithDetail("locale", m.defaultLocale)
	}

	m.mu.Lock()
	m.translations = translations
	m.templates = make(map[string]*template.Template)
	m.mu.Unlock()
	return nil
}

// loadLocalesFrom reads every locale file at the root of fsys and merges it
// into translations. Files for the same locale merge in directory order.
func loadLocalesFrom(fsys fs.FS, translations map[string]map[string]interface{}) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := path.Ext(name)
		format, ok := formatFromExt(ext)
		if !ok {
			continue
		}
		locale := strings.TrimSuffix(name, ext)
		if locale == "" {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}

		data, err := parseLocale(content, format)
		if err != nil {
			return fmt.Errorf("failed to parse %s file %s: %w", format, name, err)
		}

		if existing, ok := translations[locale]; ok {
			mergeTranslations(existing, data)
		} else {
			translations[locale] = data
		}
	}
	return nil
}

func parseLocale(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// mergeTranslations copies src into dst; nested tables merge, leaves replace
func mergeTranslations(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, srcIsMap := asMap(v)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			mergeTranslations(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case TranslationData:
		return m, true
	default:
		return nil, false
	}
}

// Reload re-reads the built-in catalog and the override directory
func (m *Manager) Reload() error {
	return m.loadAll()
}

// T translates a key with optional template data. Unknown keys return the key.
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, err := m.TryT(key, data...)
	if err != nil && translation == "" {
		return key
	}
	return translation
}

// TryT translates a key and returns an error if translation fails
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	m.mu.RLock()
	locale := m.currentLocale
	translation := m.getTranslation(key, locale)
	m.mu.RUnlock()

	if translation == "" {
		return "", mdwerror.New("translation not found").WithCode(mdwerror.CodeNotFound).WithOperation("i18n.TryT").WithDetail("key", key)
	}

	if len(data) > 0 && data[0] != nil {
		rendered, err := m.renderTemplate(locale+"/"+key, translation, data[0])
		if err != nil {
			return translation, mdwerror.Wrap(err, "template rendering failed").WithCode(mdwerror.CodeInvalidInput).WithOperation("i18n.renderTemplate").WithDetail("key", key)
		}
		return rendered, nil
	}

	return translation, nil
}

// TWithFallback translates a key with fallback to a default message
func (m *Manager) TWithFallback(key string, fallbackMsg string, data ...map[string]interface{}) string {
	if translation, err := m.TryT(key, data...); err == nil {
		return translation
	}

	if len(data) > 0 && data[0] != nil {
		if rendered, err := m.renderTemplate("fallback/"+key, fallbackMsg, data[0]); err == nil {
			return rendered
		}
	}

	return fallbackMsg
}

// Plural returns the appropriate plural form based on count. The count is
// available to the template as .Count unless data sets it.
func (m *Manager) Plural(key string, count int, data map[string]interface{}) string {
	m.mu.RLock()
	locale := m.currentLocale
	rawValue := m.getRawTranslation(key, locale)
	m.mu.RUnlock()

	if rawValue == nil {
		return fmt.Sprintf("[%s]", key)
	}

	forms := parsePluralForms(rawValue)
	if len(forms) == 0 {
		return fmt.Sprintf("[%s]", key)
	}

	formIndex := pluralFormIndex(count, locale)
	if formIndex >= len(forms) {
		formIndex = len(forms) - 1
	}
	selectedForm := forms[formIndex]

	args := map[string]interface{}{"Count": count}
	for k, v := range data {
		args[k] = v
	}

	rendered, err := m.renderTemplate(fmt.Sprintf("%s/%s#%d", locale, key, formIndex), selectedForm, args)
	if err != nil {
		return selectedForm
	}
	return rendered
}

// getTranslation retrieves a translation for a locale with fallback to the default locale
func (m *Manager) getTranslation(key, locale string) string {
	value := m.getRawTranslation(key, locale)
	if value == nil {
		return ""
	}
	if arr, isSlice := value.([]interface{}); isSlice {
		if len(arr) > 0 {
			return fmt.Sprintf("%v", arr[0])
		}
		return ""
	}
	if _, isMap := asMap(value); isMap {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func (m *Manager) getRawTranslation(key, locale string) interface{} {
	if translations, exists := m.translations[locale]; exists {
		if value := getNestedRawValue(translations, key); value != nil {
			return value
		}
	}
	if locale != m.defaultLocale {
		if translations, exists := m.translations[m.defaultLocale]; exists {
			return getNestedRawValue(translations, key)
		}
	}
	return nil
}

// getNestedRawValue retrieves a nested value using dot notation
func getNestedRawValue(data map[string]interface{}, key string) interface{} {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		value, ok := current[k]
		if !ok {
			return nil
		}
		if i == len(keys)-1 {
			return value
		}
		next, isMap := asMap(value)
		if !isMap {
			return nil
		}
		current = next
	}
	return nil
}

// renderTemplate renders a translation template with data
func (m *Manager) renderTemplate(cacheKey, text string, data map[string]interface{}) (string, error) {
	m.mu.RLock()
	tmpl, exists := m.templates[cacheKey]
	m.mu.RUnlock()

	if !exists {
		var err error
		tmpl, err = template.New(cacheKey).Parse(text)
		if err != nil {
			return text, fmt.Errorf("template compilation failed: %w", err)
		}
		m.mu.Lock()
		m.templates[cacheKey] = tmpl
		m.mu.Unlock()
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return text, fmt.Errorf("template execution failed: %w", err)
	}
	return result.String(), nil
}

// parsePluralForms parses plural forms from a raw translation value
func parsePluralForms(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		forms := make([]string, len(v))
		for i, f := range v {
			forms[i] = fmt.Sprintf("%v", f)
		}
		return forms
	case string:
		return []string{v}
	default:
		return []string{fmt.Sprintf("%v", value)}
	}
}

// pluralFormIndex returns the plural form index for a count and locale
func pluralFormIndex(count int, locale string) int {
	switch {
	case strings.HasPrefix(locale, "fr"):
		if count <= 1 {
			return 0
		}
		return 1
	default:
		if count == 1 {
			return 0
		}
		return 1
	}
}

// SetLocale changes the current locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.translations[locale]; !exists {
		return mdwerror.New("locale not available").WithCode(mdwerror.CodeNotFound).WithOperation("i18n.SetLocale").WithDetail("locale", locale)
	}

	m.currentLocale = locale
	return nil
}

// GetCurrentLocale returns the current active locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.currentLocale
}

// GetDefaultLocale returns the default locale
func (m *Manager) GetDefaultLocale() string {
	return m.defaultLocale
}

// GetAvailableLocales returns a sorted list of all available locales
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasTranslation checks if a translation key exists in the current or default locale
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.getTranslation(key, m.currentLocale) != ""
}

// GetTranslationKeys returns all translation keys of the current locale
func (m *Manager) GetTranslationKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	translations := m.translations[m.currentLocale]
	if translations == nil {
		return nil
	}
	keys := collectKeys(translations, "")
	sort.Strings(keys)
	return keys
}

// collectKeys recursively collects all leaf keys from nested translation data
func collectKeys(data map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := asMap(value); ok {
			keys = append(keys, collectKeys(nested, fullKey)...)
			continue
		}
		keys = append(keys, fullKey)
	}
	return keys
}
