// File: source_test.go
// Title: Tag Document Source Tests
// Description: Tests for Dir, FS and the mapping of read failures to codes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
)

func TestDirReadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.tag"), []byte(`[a]`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewDir(dir)
	data, err := src.ReadFile(context.Background(), "a.tag")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "[a]" {
		t.Errorf("ReadFile() = %q, want %q", data, "[a]")
	}

	// absolute names ignore the root
	abs := filepath.Join(dir, "a.tag")
	if _, err := NewDir("/nonexistent").ReadFile(context.Background(), abs); err != nil {
		t.Errorf("ReadFile(abs) error = %v", err)
	}
}

func TestDirExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TAGSCRIPT_TEST_ROOT", dir)

	src := NewDir("$TAGSCRIPT_TEST_ROOT")
	if src.Root() != dir {
		t.Errorf("Root() = %q, want %q", src.Root(), dir)
	}
	if got, want := src.Path("x.tag"), filepath.Join(dir, "x.tag"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestDirPathWithoutRoot(t *testing.T) {
	if got := NewDir("").Path("sub/../x.tag"); got != "x.tag" {
		t.Errorf("Path() = %q, want %q", got, "x.tag")
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		src      Source
		file     string
		code     mdwerror.Code
		key      string
		notFound bool
	}{
		{"dir missing", NewDir(dir), "missing.tag", mdwerror.CodeNotFound, "source.not_found", true},
		{"dir is directory", NewDir(dir), "sub", mdwerror.CodeIOError, "source.read_failed", false},
		{"fs missing", NewFS(fstest.MapFS{}), "missing.tag", mdwerror.CodeNotFound, "source.not_found", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.src.ReadFile(context.Background(), tt.file)
			if err == nil {
				t.Fatal("ReadFile() expected error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("code = %v, want %v", mdwerror.GetCode(err), tt.code)
			}
			if errors.Is(err, fs.ErrNotExist) != tt.notFound {
				t.Errorf("errors.Is(err, fs.ErrNotExist) = %v, want %v", !tt.notFound, tt.notFound)
			}

			var merr *mdwerror.Error
			if !errors.As(err, &merr) {
				t.Fatalf("error type = %T, want *mdwerror.Error", err)
			}
			if merr.MessageKey() != tt.key {
				t.Errorf("MessageKey() = %q, want %q", merr.MessageKey(), tt.key)
			}
			if merr.Details()["file"] != tt.file {
				t.Errorf("Details()[file] = %v, want %q", merr.Details()["file"], tt.file)
			}
		})
	}
}

func TestFSReadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/intro.tag": &fstest.MapFile{Data: []byte(`[intro title="hi"]`)},
	}
	src := NewFS(fsys)

	for _, name := range []string{"docs/intro.tag", "/docs/intro.tag", "docs/./intro.tag"} {
		data, err := src.ReadFile(context.Background(), name)
		if err != nil {
			t.Errorf("ReadFile(%q) error = %v", name, err)
			continue
		}
		if string(data) != `[intro title="hi"]` {
			t.Errorf("ReadFile(%q) = %q", name, data)
		}
	}
}

func TestReadFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := map[string]Source{
		"dir": NewDir(t.TempDir()),
		"fs":  NewFS(fstest.MapFS{"a.tag": &fstest.MapFile{}}),
	}
	for name, src := range sources {
		_, err := src.ReadFile(ctx, "a.tag")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", name, err)
		}
		if !mdwerror.HasCode(err, mdwerror.CodeIOError) {
			t.Errorf("%s: code = %v, want %v", name, mdwerror.GetCode(err), mdwerror.CodeIOError)
		}
	}
}

func TestFunc(t *testing.T) {
	var called string
	src := Func(func(ctx context.Context, name string) ([]byte, error) {
		called = name
		return []byte("[x]"), nil
	})
	data, err := src.ReadFile(context.Background(), "x.tag")
	if err != nil || string(data) != "[x]" || called != "x.tag" {
		t.Errorf("Func.ReadFile() = %q, %v (called %q)", data, err, called)
	}
}
