// ============================================================================
// tagscript - Tag Document Toolkit
// ============================================================================
//
// Package:     config
// Description: Typed configuration loaded from TOML or YAML files
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	"github.com/msto63/tagscript/foundation/core/i18n"
	mdwlog "github.com/msto63/tagscript/foundation/core/log"
	"github.com/msto63/tagscript/foundation/tag/parser"
	"github.com/msto63/tagscript/foundation/tag/store"
)

// EnvConfigPath names the environment variable that points at a config file
const EnvConfigPath = "TAGSCRIPT_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Limits  LimitsConfig  `toml:"limits" yaml:"limits"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel   string `toml:"log_level" yaml:"log_level"`
	LogFormat  string `toml:"log_format" yaml:"log_format"`
	Locale     string `toml:"locale" yaml:"locale"`
	LocalesDir string `toml:"locales_dir" yaml:"locales_dir"`
}

// LimitsConfig holds the parser and store bounds
type LimitsConfig struct {
	TagName       int   `toml:"tag_name" yaml:"tag_name"`
	PropertyName  int   `toml:"property_name" yaml:"property_name"`
	PropertyValue int   `toml:"property_value" yaml:"property_value"`
	Properties    int   `toml:"properties" yaml:"properties"`
	Tags          int   `toml:"tags" yaml:"tags"`
	DocumentBytes int64 `toml:"document_bytes" yaml:"document_bytes"`
}

// WatchConfig holds settings for the file watcher
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML (.toml) or YAML (.yaml, .yml) file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeNotFound).WithOperation("config.Load").WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeIOError).WithOperation("config.Load").WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		_, err = toml.Decode(string(content), &cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).WithOperation("config.Load").WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by TAGSCRIPT_CONFIG or the first file
// found in the default locations. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	home, _ := os.UserHomeDir()
	defaultPaths := []string{
		"./tagscript.toml",
		"./tagscript.yaml",
		"./configs/tagscript.toml",
		filepath.Join(home, ".config", "tagscript", "config.toml"),
		filepath.Join(home, ".config", "tagscript", "config.yaml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	limits := parser.DefaultLimits()
	if c.Limits.TagName == 0 {
		c.Limits.TagName = limits.TagName
	}
	if c.Limits.PropertyName == 0 {
		c.Limits.PropertyName = limits.PropertyName
	}
	if c.Limits.PropertyValue == 0 {
		c.Limits.PropertyValue = limits.PropertyValue
	}
	if c.Limits.Properties == 0 {
		c.Limits.Properties = limits.Properties
	}
	if c.Limits.Tags == 0 {
		c.Limits.Tags = store.DefaultMaxTags
	}
	if c.Limits.DocumentBytes == 0 {
		c.Limits.DocumentBytes = store.DefaultMaxBytes
	}

	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.LocalesDir = os.ExpandEnv(c.General.LocalesDir)
}

// Validate checks every field and reports the first invalid one
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, reason string) error {
		return mdwerror.New(fmt.Sprintf("invalid %s: %s", field, reason)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "expected trace, debug, info, warn or error")
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "json", "console":
	default:
		return invalid("general.log_format", c.General.LogFormat, "expected text, json or console")
	}
	if c.General.Locale != "" && i18n.ValidateLocale(c.General.Locale) != nil {
		return invalid("general.locale", c.General.Locale, "expected a locale such as en or de-DE")
	}

	if err := c.ParserLimits().Validate(); err != nil {
		return invalid("limits", c.Limits, err.Error())
	}
	if c.Limits.Tags < 1 {
		return invalid("limits.tags", c.Limits.Tags, "must be at least 1")
	}
	if c.Limits.DocumentBytes < 1 {
		return invalid("limits.document_bytes", c.Limits.DocumentBytes, "must be at least 1")
	}

	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	return nil
}

// ParserLimits returns the parser bounds
func (c *Config) ParserLimits() parser.Limits {
	return parser.Limits{
		TagName:       c.Limits.TagName,
		PropertyName:  c.Limits.PropertyName,
		PropertyValue: c.Limits.PropertyValue,
		Properties:    c.Limits.Properties,
	}
}

// StoreOptions returns store options with the configured bounds. Source,
// logger and translator are left for the caller to set.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		MaxTags:  c.Limits.Tags,
		MaxBytes: c.Limits.DocumentBytes,
		Limits:   c.ParserLimits(),
	}
}
