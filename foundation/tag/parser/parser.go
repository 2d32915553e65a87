// File: parser.go
// Title: Tag Document Parser
// Description: Single-pass byte state machine that turns tag document text
//              into one event per bracketed directive.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	mdwlog "github.com/msto63/tagscript/foundation/core/log"
	"github.com/msto63/tagscript/foundation/tag"
)

// Event is one parsed tag. Properties is reused between events and is only
// valid until the EventFunc returns.
type Event struct {
	Name       string
	Properties []tag.Property
	Line       int
}

// EventFunc consumes parsed tags. A non-nil error aborts the parse.
type EventFunc func(Event) error

// Options configures a Parser
type Options struct {
	// Limits bounds each tag; zero fields take their defaults
	Limits Limits

	// Logger receives one trace entry per tag (default: discard)
	Logger *mdwlog.Logger
}

// Parser parses tag documents. It holds no per-document state and is safe
// for concurrent use.
type Parser struct {
	limits Limits
	logger *mdwlog.Logger
}

// New creates a parser
func New(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Parser{
		limits: opts.Limits.orDefault(),
		logger: logger.WithName("parser"),
	}
}

// Limits returns the bounds in effect
func (p *Parser) Limits() Limits {
	return p.limits
}

var defaultParser = New(Options{})

// Parse parses doc with the default limits
func Parse(doc string, fn EventFunc) error {
	return defaultParser.Parse(doc, fn)
}

// ParseAll parses doc with the default limits and returns all tags
func ParseAll(doc string) ([]tag.Tag, error) {
	return defaultParser.ParseAll(doc)
}

// Parse runs the state machine over doc and calls fn for every tag in
// document order. The first failure stops parsing and is returned as *Error.
func (p *Parser) Parse(doc string, fn EventFunc) error {
	m := newMachine(p, fn)
	for i := 0; i < len(doc); i++ {
		if err := m.step(doc[i]); err != nil {
			return err
		}
	}
	return m.finish()
}

// ParseAll parses doc and returns all tags in document order
func (p *Parser) ParseAll(doc string) ([]tag.Tag, error) {
	tags := []tag.Tag{}
	err := p.Parse(doc, func(ev Event) error {
		tags = append(tags, tag.New(ev.Name, ev.Line, ev.Properties))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

type state int

const (
	stateInit state = iota
	stateTagName
	statePropName
	statePropValueQuote
	statePropValueBody
)

// machine holds the per-document parse state
type machine struct {
	p  *Parser
	fn EventFunc

	state  state
	line   int
	escape bool

	name  []byte
	key   []byte
	value []byte
	props []tag.Property
}

func newMachine(p *Parser, fn EventFunc) *machine {
	return &machine{
		p:     p,
		fn:    fn,
		state: stateInit,
		line:  1,
		name:  make([]byte, 0, 32),
		key:   make([]byte, 0, 32),
		value: make([]byte, 0, 64),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

func (m *machine) fail(reason *Reason) error {
	return newError(reason, m.line)
}

func (m *machine) step(c byte) error {
	switch m.state {
	case stateInit:
		return m.stepInit(c)
	case stateTagName:
		return m.stepTagName(c)
	case statePropName:
		return m.stepPropName(c)
	case statePropValueQuote:
		return m.stepPropValueQuote(c)
	default:
		return m.stepPropValueBody(c)
	}
}

func (m *machine) stepInit(c byte) error {
	switch {
	case c == '[':
		m.state = stateTagName
		m.name = m.name[:0]
		m.props = m.props[:0]
	case c == '\n':
		m.line++
	case isSpace(c):
	default:
		return m.fail(ErrInvalidCharacter)
	}
	return nil
}

func (m *machine) stepTagName(c byte) error {
	if isSpace(c) {
		if len(m.name) == 0 {
			return nil
		}
		if c == '\n' {
			m.line++
		}
		m.state = statePropName
		m.key = m.key[:0]
		return nil
	}

	if c == ']' {
		if len(m.name) == 0 {
			return m.fail(ErrInvalidCharacter)
		}
		return m.emit()
	}

	if len(m.name) >= m.p.limits.TagName {
		return m.fail(ErrTagNameTooLong)
	}
	m.name = append(m.name, c)
	return nil
}

func (m *machine) stepPropName(c byte) error {
	if len(m.key) == 0 {
		switch {
		case c == ']':
			return m.emit()
		case c == '\n':
			m.line++
			return nil
		case isSpace(c):
			return nil
		}
	}

	if c == '=' && len(m.key) > 0 {
		m.state = statePropValueQuote
		return nil
	}

	if !isNameChar(c) {
		return m.fail(ErrInvalidCharacter)
	}
	if len(m.key) == 0 && len(m.props) >= m.p.limits.Properties {
		return m.fail(ErrTooManyProperties)
	}
	if len(m.key) >= m.p.limits.PropertyName {
		return m.fail(ErrPropertyNameTooLong)
	}
	m.key = append(m.key, c)
	return nil
}

func (m *machine) stepPropValueQuote(c byte) error {
	switch c {
	case '\n':
		m.line++
	case '"':
		m.state = statePropValueBody
		m.value = m.value[:0]
		m.escape = false
	}
	return nil
}

func (m *machine) stepPropValueBody(c byte) error {
	if m.escape {
		m.escape = false
		switch c {
		case '"':
			return m.appendValue('"')
		case 'n':
			return m.appendValue('\n')
		case '\\':
			return m.appendValue('\\')
		}
		// Unknown escape: keep the backslash and read c normally.
		if err := m.appendValue('\\'); err != nil {
			return err
		}
	}

	switch c {
	case '\\':
		m.escape = true
		return nil
	case '"':
		m.props = append(m.props, tag.Property{Name: string(m.key), Value: string(m.value)})
		m.key = m.key[:0]
		m.state = statePropName
		return nil
	}
	return m.appendValue(c)
}

func (m *machine) appendValue(c byte) error {
	if len(m.value) >= m.p.limits.PropertyValue {
		return m.fail(ErrPropertyValueTooLong)
	}
	m.value = append(m.value, c)
	return nil
}

// emit delivers the current tag and returns to the initial state
func (m *machine) emit() error {
	ev := Event{Name: string(m.name), Properties: m.props, Line: m.line}

	if m.p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		m.p.logger.Trace("tag parsed", mdwlog.Fields{
			"tag":        ev.Name,
			"line":       ev.Line,
			"properties": len(ev.Properties),
		})
	}

	if err := m.fn(ev); err != nil {
		return consumerError(err, m.line)
	}
	m.state = stateInit
	return nil
}

func (m *machine) finish() error {
	if m.state != stateInit {
		return m.fail(ErrUnexpectedEOF)
	}
	return nil
}
