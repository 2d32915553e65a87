// File: limits.go
// Title: Parser Limits
// Description: Defines the per-tag bounds enforced while parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import "fmt"

// Default bounds
const (
	DefaultTagNameMax       = 128
	DefaultPropertyNameMax  = 128
	DefaultPropertyValueMax = 4096
	DefaultPropertiesMax    = 128
)

// Limits bounds the size of a single tag. All values are inclusive maxima
// in bytes, except Properties which counts properties per tag.
type Limits struct {
	TagName       int
	PropertyName  int
	PropertyValue int
	Properties    int
}

// DefaultLimits returns the default bounds
func DefaultLimits() Limits {
	return Limits{
		TagName:       DefaultTagNameMax,
		PropertyName:  DefaultPropertyNameMax,
		PropertyValue: DefaultPropertyValueMax,
		Properties:    DefaultPropertiesMax,
	}
}

// Validate reports the first bound that is not positive
func (l Limits) Validate() error {
	switch {
	case l.TagName < 1:
		return fmt.Errorf("tag name limit must be positive, got %d", l.TagName)
	case l.PropertyName < 1:
		return fmt.Errorf("property name limit must be positive, got %d", l.PropertyName)
	case l.PropertyValue < 1:
		return fmt.Errorf("property value limit must be positive, got %d", l.PropertyValue)
	case l.Properties < 1:
		return fmt.Errorf("property count limit must be positive, got %d", l.Properties)
	}
	return nil
}

// orDefault replaces unset bounds with their defaults
func (l Limits) orDefault() Limits {
	d := DefaultLimits()
	if l.TagName <= 0 {
		l.TagName = d.TagName
	}
	if l.PropertyName <= 0 {
		l.PropertyName = d.PropertyName
	}
	if l.PropertyValue <= 0 {
		l.PropertyValue = d.PropertyValue
	}
	if l.Properties <= 0 {
		l.Properties = d.Properties
	}
	return l
}
