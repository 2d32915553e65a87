// File: document.go
// Title: Document Snapshot
// Description: Defines Document, an immutable snapshot of one loaded file.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package tag

import "encoding/json"

// Document is the ordered tag list of one loaded file
type Document struct {
	name string
	tags []Tag
}

// NewDocument creates a document. The tag slice is copied.
func NewDocument(name string, tags []Tag) Document {
	d := Document{name: name}
	if len(tags) > 0 {
		d.tags = make([]Tag, len(tags))
		copy(d.tags, tags)
	}
	return d
}

// Name returns the file identity the document was loaded from
func (d Document) Name() string {
	return d.name
}

// Len returns the number of tags
func (d Document) Len() int {
	return len(d.tags)
}

// Tag returns the i-th tag
func (d Document) Tag(i int) (Tag, bool) {
	if i < 0 || i >= len(d.tags) {
		return Tag{}, false
	}
	return d.tags[i], true
}

// Tags returns a copy of all tags in document order
func (d Document) Tags() []Tag {
	out := make([]Tag, len(d.tags))
	copy(out, d.tags)
	return out
}

// DocumentView is the exported form of a document used for JSON and YAML output
type DocumentView struct {
	File string `json:"file" yaml:"file"`
	Tags []View `json:"tags" yaml:"tags"`
}

// View returns the exported form of the document
func (d Document) View() DocumentView {
	v := DocumentView{File: d.name, Tags: make([]View, len(d.tags))}
	for i, t := range d.tags {
		v.Tags[i] = t.View()
	}
	return v
}

// MarshalJSON implements json.Marshaler
func (d Document) MarshalJSON() ([]byte, error) {
	return marshalJSON(d.View())
}

// MarshalYAML implements yaml.Marshaler
func (d Document) MarshalYAML() (interface{}, error) {
	return d.View(), nil
}

func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
