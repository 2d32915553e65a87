// File: tag.go
// Title: Tag and Property Records
// Description: Defines the immutable Tag record and its Property pairs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package tag

// Property is one name/value pair of a tag
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Tag is one parsed bracketed directive
type Tag struct {
	name  string
	line  int
	props []Property
}

// New creates a tag. The property slice is copied.
func New(name string, line int, props []Property) Tag {
	t := Tag{name: name, line: line}
	if len(props) > 0 {
		t.props = make([]Property, len(props))
		copy(t.props, props)
	}
	return t
}

// Name returns the tag name
func (t Tag) Name() string {
	return t.name
}

// Line returns the 1-based source line of the closing bracket
func (t Tag) Line() int {
	return t.line
}

// Len returns the number of properties
func (t Tag) Len() int {
	return len(t.props)
}

// Property returns the i-th property in document order
func (t Tag) Property(i int) (Property, bool) {
	if i < 0 || i >= len(t.props) {
		return Property{}, false
	}
	return t.props[i], true
}

// Properties returns a copy of all properties in document order
func (t Tag) Properties() []Property {
	if len(t.props) == 0 {
		return []Property{}
	}
	out := make([]Property, len(t.props))
	copy(out, t.props)
	return out
}

// Get returns the value of the first property with the given name
func (t Tag) Get(name string) (string, bool) {
	for _, p := range t.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns the values of every property with the given name
func (t Tag) Values(name string) []string {
	var values []string
	for _, p := range t.props {
		if p.Name == name {
			values = append(values, p.Value)
		}
	}
	return values
}

// Has reports whether a property with the given name exists
func (t Tag) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Equal reports whether two tags have the same name, line and properties
func (t Tag) Equal(other Tag) bool {
	if t.name != other.name || t.line != other.line || len(t.props) != len(other.props) {
		return false
	}
	for i := range t.props {
		if t.props[i] != other.props[i] {
			return false
		}
	}
	return true
}

// View is the exported form of a tag used for JSON and YAML output
type View struct {
	Name       string     `json:"name" yaml:"name"`
	Line       int        `json:"line" yaml:"line"`
	Properties []Property `json:"properties" yaml:"properties"`
}

// View returns the exported form of the tag
func (t Tag) View() View {
	return View{Name: t.name, Line: t.line, Properties: t.Properties()}
}

// MarshalJSON implements json.Marshaler
func (t Tag) MarshalJSON() ([]byte, error) {
	return marshalJSON(t.View())
}

// MarshalYAML implements yaml.Marshaler
func (t Tag) MarshalYAML() (interface{}, error) {
	return t.View(), nil
}
