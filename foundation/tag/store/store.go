// File: store.go
// Title: Tag Store
// Description: Holds the tags of one loaded document and a cursor over
//              them. Loading replaces the previous document; a failed load
//              leaves the store empty.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
	mdwlog "github.com/msto63/tagscript/foundation/core/log"
	"github.com/msto63/tagscript/foundation/tag"
	"github.com/msto63/tagscript/foundation/tag/parser"
	"github.com/msto63/tagscript/foundation/tag/source"
)

const (
	// DefaultMaxTags is the tag capacity of a store
	DefaultMaxTags = 65536

	// DefaultMaxBytes is the budget for names and values held by a store
	DefaultMaxBytes int64 = 64 << 20
)

// Translator looks up localized messages. *i18n.Manager implements it.
type Translator interface {
	T(key string, data ...map[string]interface{}) string
}

// Options configures a Store. Zero values take defaults.
type Options struct {
	MaxTags  int
	MaxBytes int64
	Limits   parser.Limits

	// Source is used by LoadFile (default: the working directory)
	Source source.Source

	Logger     *mdwlog.Logger
	Translator Translator
}

// Store is the in-memory tag document with its cursor. It is safe for
// concurrent use; loads are serialized.
type Store struct {
	mu sync.RWMutex

	parser     *parser.Parser
	maxTags    int
	maxBytes   int64
	src        source.Source
	logger     *mdwlog.Logger
	translator Translator

	identity string
	tags     []tag.Tag
	cursor   int
	used     int64
	loadID   string
}

// New creates an empty store
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}
	maxTags := opts.MaxTags
	if maxTags <= 0 {
		maxTags = DefaultMaxTags
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	src := opts.Source
	if src == nil {
		src = source.NewDir("")
	}

	return &Store{
		parser:     parser.New(parser.Options{Limits: opts.Limits, Logger: logger}),
		maxTags:    maxTags,
		maxBytes:   maxBytes,
		src:        src,
		logger:     logger.WithName("store"),
		translator: opts.Translator,
	}
}

// Reset releases all tags and clears the file identity
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.identity = ""
	s.tags = nil
	s.cursor = 0
	s.used = 0
	s.loadID = ""
}

// Load replaces the content of the store with the tags parsed from text.
// identity names the document in diagnostics. On failure the returned error
// is a *parser.Error and the store is left empty.
func (s *Store) Load(identity, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.identity = identity

	loadID := uuid.NewString()
	logger := s.logger.WithCorrelationID(loadID)
	timer := logger.StartTimer("load").WithField("file", identity)

	err := s.parser.Parse(text, s.ingest)
	if err != nil {
		s.reset()
		fields := diagnosticFields(identity, err)
		fields["elapsed"] = timer.Elapsed().String()
		logger.Error(s.diagnostic(identity, err), fields)
		return err
	}

	s.loadID = loadID
	timer.Stop()
	logger.Info("document loaded", mdwlog.Fields{
		"file":  identity,
		"tags":  len(s.tags),
		"bytes": s.used,
	})
	return nil
}

// ingest materializes one parsed tag into store-owned memory
func (s *Store) ingest(ev parser.Event) error {
	if len(s.tags) >= s.maxTags {
		return parser.ErrTooManyTags
	}

	size := int64(len(ev.Name))
	for _, p := range ev.Properties {
		size += int64(len(p.Name) + len(p.Value))
	}
	if s.used+size > s.maxBytes {
		return parser.ErrOutOfMemory
	}

	s.tags = append(s.tags, tag.New(ev.Name, ev.Line, ev.Properties))
	s.used += size
	return nil
}

// LoadFile reads name through the configured source and loads it. Read
// failures are returned as coded errors and leave the store unchanged.
func (s *Store) LoadFile(ctx context.Context, name string) error {
	data, err := s.src.ReadFile(ctx, name)
	if err != nil {
		s.logger.WarnWithErr(s.diagnostic(name, err), err, mdwlog.Fields{
			"file":       name,
			"error_code": mdwerror.GetCode(err).String(),
		})
		return err
	}
	return s.Load(name, string(data))
}

// FileIdentity returns the identity of the loaded document, or "" when the
// store is empty after a reset or a failed load
func (s *Store) FileIdentity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Line returns the source line of the current tag, or -1 past the end
func (s *Store) Line() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cursor >= len(s.tags) {
		return -1
	}
	return s.tags[s.cursor].Line()
}

// Current returns the tag at the cursor. ok is false past the end.
func (s *Store) Current() (t tag.Tag, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cursor >= len(s.tags) {
		return tag.Tag{}, false
	}
	return s.tags[s.cursor], true
}

// Advance moves the cursor to the next tag. At the end it stays there.
func (s *Store) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.tags) {
		s.cursor++
	}
}

// Rewind moves the cursor back to the first tag
func (s *Store) Rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
}

// Len returns the number of tags
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tags)
}

// Index returns the cursor position, Len() when past the end
func (s *Store) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Bytes returns how much of the byte budget the loaded tags use
func (s *Store) Bytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

// LoadID returns the ID of the last successful load, "" if there is none
func (s *Store) LoadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadID
}

// Document returns a snapshot of the loaded document
func (s *Store) Document() tag.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tag.NewDocument(s.identity, s.tags)
}

// Diagnostic formats err as the user-visible message for file, localized
// through the store's translator
func (s *Store) Diagnostic(file string, err error) string {
	return s.diagnostic(file, err)
}

func (s *Store) diagnostic(file string, err error) string {
	return Diagnostic(s.translator, file, err)
}

// Diagnostic formats err as "file:line: message", or "file: message" when
// the error has no line. tr may be nil, in which case English is used.
func Diagnostic(tr Translator, file string, err error) string {
	if err == nil {
		return ""
	}

	line := 0
	msg := err.Error()

	var perr *parser.Error
	var merr *mdwerror.Error
	switch {
	case errors.As(err, &perr):
		line = perr.Line
		msg = translate(tr, perr.MessageKey(), perr.Reason.Error(), nil)
	case errors.As(err, &merr) && merr.MessageKey() != "":
		msg = translate(tr, merr.MessageKey(), merr.Message(), merr.MessageArgs())
	}

	data := map[string]interface{}{"File": file, "Line": line, "Message": msg}
	if line > 0 {
		return translate(tr, "tag.diagnostic", fmt.Sprintf("%s:%d: %s", file, line, msg), data)
	}
	return translate(tr, "tag.diagnostic_noline", fmt.Sprintf("%s: %s", file, msg), data)
}

// translate returns the catalog text for key, or fallback when there is no
// translator or the key is missing
func translate(tr Translator, key, fallback string, data map[string]interface{}) string {
	if tr == nil {
		return fallback
	}
	var out string
	if data != nil {
		out = tr.T(key, data)
	} else {
		out = tr.T(key)
	}
	if out == "" || out == key {
		return fallback
	}
	return out
}

func diagnosticFields(file string, err error) mdwlog.Fields {
	fields := mdwlog.Fields{
		"file":       file,
		"error_code": mdwerror.GetCode(err).String(),
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		fields["kind"] = perr.Kind.String()
		if perr.Line > 0 {
			fields["line"] = perr.Line
		}
	}
	return fields
}
