// File: parser_test.go
// Title: Tag Document Parser Tests
// Description: Tests for the state machine: grammar, escapes, line counting,
//              bounds, error kinds and consumer failures.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	mdwlog "github.com/msto63/tagscript/foundation/core/log"
	"github.com/msto63/tagscript/foundation/tag"
)

type prop = tag.Property

func mk(name string, line int, props ...prop) tag.Tag {
	return tag.New(name, line, props)
}

func TestParseAll(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []tag.Tag
	}{
		{
			name: "empty document",
			doc:  "",
			want: []tag.Tag{},
		},
		{
			name: "whitespace only",
			doc:  " \t\r\n\n",
			want: []tag.Tag{},
		},
		{
			name: "tag without properties",
			doc:  "[foo]",
			want: []tag.Tag{mk("foo", 1)},
		},
		{
			name: "escapes in value",
			doc:  "[say name=\"Alice\" text=\"Hi\\n\\\"there\\\"\"]",
			want: []tag.Tag{mk("say", 1, prop{Name: "name", Value: "Alice"}, prop{Name: "text", Value: "Hi\n\"there\""})},
		},
		{
			name: "two lines",
			doc:  "[a]\n[b x=\"1\"]",
			want: []tag.Tag{mk("a", 1), mk("b", 2, prop{Name: "x", Value: "1"})},
		},
		{
			name: "escaped backslash",
			doc:  `[a p="C:\\dir\\"]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "p", Value: `C:\dir\`})},
		},
		{
			name: "unknown escape keeps backslash",
			doc:  `[a p="C:\path\t"]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "p", Value: `C:\path\t`})},
		},
		{
			name: "unknown escape before escaped quote",
			doc:  `[a p="\q\""]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "p", Value: `\q"`})},
		},
		{
			name: "value without escapes is verbatim",
			doc:  "[a p=\"[x] = y; 'z'\tend\"]",
			want: []tag.Tag{mk("a", 1, prop{Name: "p", Value: "[x] = y; 'z'\tend"})},
		},
		{
			name: "empty value",
			doc:  `[a p=""]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "p", Value: ""})},
		},
		{
			name: "duplicate property names are kept in order",
			doc:  `[bg file="a.png" file="b.png"]`,
			want: []tag.Tag{mk("bg", 1, prop{Name: "file", Value: "a.png"}, prop{Name: "file", Value: "b.png"})},
		},
		{
			name: "no space needed between properties",
			doc:  `[a x="1"y="2"]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "x", Value: "1"}, prop{Name: "y", Value: "2"})},
		},
		{
			name: "bytes before opening quote are skipped",
			doc:  `[a x= junk "1"]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "x", Value: "1"})},
		},
		{
			name: "whitespace around name and before bracket",
			doc:  "[ \t a \t x=\"1\" \r\n ]",
			want: []tag.Tag{mk("a", 2, prop{Name: "x", Value: "1"})},
		},
		{
			name: "tag name accepts any byte",
			doc:  "[a.b/c=d\"é]",
			want: []tag.Tag{mk("a.b/c=d\"é", 1)},
		},
		{
			name: "property name characters",
			doc:  `[a Ab-9_z="v"]`,
			want: []tag.Tag{mk("a", 1, prop{Name: "Ab-9_z", Value: "v"})},
		},
		{
			name: "crlf line endings",
			doc:  "[a]\r\n[b]\r\n\r\n[c]\r\n",
			want: []tag.Tag{mk("a", 1), mk("b", 2), mk("c", 4)},
		},
		{
			name: "adjacent tags",
			doc:  "[a][b]",
			want: []tag.Tag{mk("a", 1), mk("b", 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAll(tt.doc)
			if err != nil {
				t.Fatalf("ParseAll() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineCounting(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		lines []int
	}{
		{"newlines between tags", "\n\n[a]\n\n[b]", []int{3, 5}},
		{"line of closing bracket", "[a\nx=\"1\"\ny=\"2\"\n]", []int{4}},
		{"newline closing the name is counted", "[a\n]\n[b]", []int{2, 3}},
		{"leading newline in name is not counted", "[\na]\n[b]", []int{1, 2}},
		{"newline before opening quote is counted", "[a x=\n\"1\"]\n[b]", []int{2, 3}},
		{"newline inside value is not counted", "[a x=\"1\n2\"]\n[b]", []int{1, 2}},
		{"escaped newline is not a line break", "[a x=\"1\\n2\"]\n[b]", []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []int
			err := Parse(tt.doc, func(ev Event) error {
				lines = append(lines, ev.Line)
				return nil
			})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.lines, lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		reason *Reason
		kind   Kind
		line   int
	}{
		{"text outside tag", "hello", ErrInvalidCharacter, KindLexical, 1},
		{"text after newlines", "[a]\n\n  x", ErrInvalidCharacter, KindLexical, 3},
		{"stray closing bracket", "]", ErrInvalidCharacter, KindLexical, 1},
		{"empty tag", "[]", ErrInvalidCharacter, KindLexical, 1},
		{"empty tag with whitespace", "[ \n ]", ErrInvalidCharacter, KindLexical, 1},
		{"property without value", "[a b]", ErrInvalidCharacter, KindLexical, 1},
		{"property without name", "[a =\"1\"]", ErrInvalidCharacter, KindLexical, 1},
		{"bad byte in property name", "[a\nx=\"1\" y!=\"2\"]", ErrInvalidCharacter, KindLexical, 2},
		{"bad byte after property is fatal", "[a x=\"1\" !]", ErrInvalidCharacter, KindLexical, 1},
		{"space inside property name", "[a ab c=\"1\"]", ErrInvalidCharacter, KindLexical, 1},
		{"unterminated tag name", "[foo", ErrUnexpectedEOF, KindLexical, 1},
		{"unterminated after name newline", "[foo\n", ErrUnexpectedEOF, KindLexical, 2},
		{"unterminated value", "\n\n[foo x=\"1", ErrUnexpectedEOF, KindLexical, 3},
		{"unterminated before quote", "[foo x=", ErrUnexpectedEOF, KindLexical, 1},
		{"trailing backslash", "[foo x=\"1\\", ErrUnexpectedEOF, KindLexical, 1},
		{"missing closing bracket", "[foo x=\"1\"", ErrUnexpectedEOF, KindLexical, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse(tt.doc, func(Event) error { return nil })
			assertParseError(t, err, tt.reason, tt.kind, tt.line)
		})
	}
}

func assertParseError(t *testing.T, err error, reason *Reason, kind Kind, line int) {
	t.Helper()

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v (%T), want *Error", err, err)
	}
	if !errors.Is(err, reason) {
		t.Errorf("reason = %v, want %v", perr.Reason, reason)
	}
	if perr.Kind != kind {
		t.Errorf("kind = %v, want %v", perr.Kind, kind)
	}
	if perr.Line != line {
		t.Errorf("line = %d, want %d", perr.Line, line)
	}
}

func TestBoundsAreInclusive(t *testing.T) {
	limits := DefaultLimits()

	name := strings.Repeat("n", limits.TagName)
	key := strings.Repeat("k", limits.PropertyName)
	value := strings.Repeat("v", limits.PropertyValue)
	escapes := strings.Repeat(`\n`, limits.PropertyValue)

	var props strings.Builder
	for i := 0; i < limits.Properties; i++ {
		props.WriteString(` p="1"`)
	}

	tests := []struct {
		name   string
		ok     string
		over   string
		reason *Reason
	}{
		{"tag name", "[" + name + "]", "[" + name + "n]", ErrTagNameTooLong},
		{"property name", "[a " + key + `="1"]`, "[a " + key + `k="1"]`, ErrPropertyNameTooLong},
		{"property value", `[a k="` + value + `"]`, `[a k="` + value + `v"]`, ErrPropertyValueTooLong},
		{"escaped value", `[a k="` + escapes + `"]`, `[a k="` + escapes + `\n"]`, ErrPropertyValueTooLong},
		{"property count", "[a" + props.String() + "]", "[a" + props.String() + ` q="1"]`, ErrTooManyProperties},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAll(tt.ok); err != nil {
				t.Fatalf("at the bound: ParseAll() error = %v", err)
			}
			_, err := ParseAll(tt.over)
			assertParseError(t, err, tt.reason, KindCapacity, 1)
		})
	}
}

func TestCustomLimits(t *testing.T) {
	p := New(Options{Limits: Limits{TagName: 3, Properties: 2}})

	if got := p.Limits(); got.PropertyValue != DefaultPropertyValueMax || got.TagName != 3 {
		t.Errorf("Limits() = %+v, want unset bounds defaulted", got)
	}

	if _, err := p.ParseAll(`[abc x="1" y="2"]`); err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	_, err := p.ParseAll("[abcd]")
	assertParseError(t, err, ErrTagNameTooLong, KindCapacity, 1)

	_, err = p.ParseAll("[abc\nx=\"1\" y=\"2\" z=\"3\"]")
	assertParseError(t, err, ErrTooManyProperties, KindCapacity, 2)
}

func TestLimitsValidate(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Errorf("DefaultLimits().Validate() error = %v", err)
	}

	tests := []Limits{
		{TagName: 0, PropertyName: 1, PropertyValue: 1, Properties: 1},
		{TagName: 1, PropertyName: -1, PropertyValue: 1, Properties: 1},
		{TagName: 1, PropertyName: 1, PropertyValue: 0, Properties: 1},
		{TagName: 1, PropertyName: 1, PropertyValue: 1, Properties: 0},
	}
	for _, l := range tests {
		if err := l.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", l)
		}
	}
}

func TestConsumerErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		consumer error
		reason   *Reason
		kind     Kind
		line     int
	}{
		{"capacity reason gets the line", ErrTooManyTags, ErrTooManyTags, KindCapacity, 2},
		{"allocation has no line", ErrOutOfMemory, ErrOutOfMemory, KindAllocation, 0},
		{"parse error keeps its line", &Error{Kind: KindCapacity, Line: 9, Reason: ErrTooManyTags}, ErrTooManyTags, KindCapacity, 9},
		{"foreign error is internal", boom, ErrInternal, KindInternal, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Parse("[a]\n[b]\n[c]", func(ev Event) error {
				calls++
				if ev.Name == "b" {
					return tt.consumer
				}
				return nil
			})

			assertParseError(t, err, tt.reason, tt.kind, tt.line)
			if calls != 2 {
				t.Errorf("consumer called %d times, want 2", calls)
			}
		})
	}
}

func TestInternalErrorKeepsCause(t *testing.T) {
	boom := errors.New("boom")
	err := Parse("[a]", func(Event) error { return boom })

	if !errors.Is(err, boom) {
		t.Error("errors.Is(err, boom) = false")
	}
	if got := err.Error(); got != "line 1: internal error: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		reason *Reason
		code   mdwerror.Code
		key    string
	}{
		{ErrInvalidCharacter, mdwerror.CodeTagSyntax, "tag.error.invalid_character"},
		{ErrUnexpectedEOF, mdwerror.CodeTagSyntax, "tag.error.unexpected_eof"},
		{ErrTagNameTooLong, mdwerror.CodeTagCapacity, "tag.error.tag_name_too_long"},
		{ErrPropertyNameTooLong, mdwerror.CodeTagCapacity, "tag.error.property_name_too_long"},
		{ErrTooManyProperties, mdwerror.CodeTagCapacity, "tag.error.too_many_properties"},
		{ErrPropertyValueTooLong, mdwerror.CodeTagCapacity, "tag.error.property_value_too_long"},
		{ErrTooManyTags, mdwerror.CodeTagCapacity, "tag.error.too_many_tags"},
		{ErrOutOfMemory, mdwerror.CodeOutOfMemory, "tag.error.out_of_memory"},
		{ErrInternal, mdwerror.CodeInternal, "tag.error.internal"},
	}

	for _, tt := range tests {
		t.Run(tt.reason.Error(), func(t *testing.T) {
			err := error(newError(tt.reason, 5))
			if got := mdwerror.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v", got, tt.code)
			}
			if got := tt.reason.MessageKey(); got != tt.key {
				t.Errorf("MessageKey() = %q, want %q", got, tt.key)
			}
			if tt.reason.HasLine() != (tt.reason != ErrOutOfMemory) {
				t.Errorf("HasLine() = %v", tt.reason.HasLine())
			}
		})
	}

	if got := newError(ErrOutOfMemory, 7).Error(); got != "out of memory" {
		t.Errorf("allocation Error() = %q, want no line", got)
	}
	if got := newError(ErrTagNameTooLong, 7).Error(); got != "line 7: tag name too long" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseAllReturnsNilOnError(t *testing.T) {
	tags, err := ParseAll("[a][b")
	if err == nil {
		t.Fatal("ParseAll() error = nil")
	}
	if tags != nil {
		t.Errorf("ParseAll() tags = %v, want nil", tags)
	}
}

func TestTraceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelTrace, Format: mdwlog.FormatText, Output: &buf})

	p := New(Options{Logger: logger})
	if _, err := p.ParseAll(`[say text="hi"]`); err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"{parser}", "tag parsed", "tag=say", "line=1", "properties=1"} {
		if !strings.Contains(got, want) {
			t.Errorf("log %q missing %q", got, want)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"[foo]",
		"[say name=\"Alice\" text=\"Hi\\n\\\"there\\\"\"]",
		"[a]\n[b x=\"1\"]",
		"[a x=\"\\q\"",
		"[]",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, doc string) {
		lastLine := 0
		err := Parse(doc, func(ev Event) error {
			if ev.Name == "" {
				t.Fatal("empty tag name delivered")
			}
			if ev.Line < lastLine {
				t.Fatalf("line went backwards: %d after %d", ev.Line, lastLine)
			}
			lastLine = ev.Line
			return nil
		})
		if err == nil {
			return
		}
		var perr *Error
		if !errors.As(err, &perr) {
			t.Fatalf("error %v is %T, want *Error", err, err)
		}
		if perr.Line < 1 || perr.Line > strings.Count(doc, "\n")+1 {
			t.Fatalf("line %d out of range", perr.Line)
		}
	})
}
