// File: source.go
// Title: Tag File Sources
// Description: Defines the Source interface through which the store reads
//              tag documents, with implementations over an OS directory and
//              over any fs.FS.
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
	"path"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/tagscript/foundation/core/error"
)

// Source returns the full content of a named tag document
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Func adapts a function to the Source interface
type Func func(ctx context.Context, name string) ([]byte, error)

// ReadFile calls f
func (f Func) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// Dir reads files from the operating system. Relative names are resolved
// against the root directory.
type Dir struct {
	root string
}

// NewDir creates a source rooted at root. Environment variables in root are
// expanded; an empty root means the working directory.
func NewDir(root string) Dir {
	return Dir{root: os.ExpandEnv(root)}
}

// Root returns the expanded root directory
func (d Dir) Root() string {
	return d.root
}

// Path returns the OS path a name resolves to
func (d Dir) Path(name string) string {
	if filepath.IsAbs(name) || d.root == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(d.root, name)
}

// ReadFile reads the named file
func (d Dir) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, readError(err, name, "source.Dir.ReadFile")
	}
	data, err := os.ReadFile(d.Path(name))
	if err != nil {
		return nil, readError(err, name, "source.Dir.ReadFile")
	}
	return data, nil
}

// FS reads files from an fs.FS such as embed.FS or fstest.MapFS
type FS struct {
	fsys fs.FS
}

// NewFS creates a source over fsys
func NewFS(fsys fs.FS) FS {
	return FS{fsys: fsys}
}

// ReadFile reads the named file. Names use forward slashes; a leading slash
// is ignored.
func (f FS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, readError(err, name, "source.FS.ReadFile")
	}
	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
	data, err := fs.ReadFile(f.fsys, clean)
	if err != nil {
		return nil, readError(err, name, "source.FS.ReadFile")
	}
	return data, nil
}

// readError classifies a read failure as not found or I/O error
func readError(err error, name, op string) error {
	args := map[string]interface{}{"Name": name}
	if errors.Is(err, fs.ErrNotExist) {
		return mdwerror.Wrap(err, "tag file not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation(op).
			WithDetail("file", name).
			WithMessage("source.not_found", args)
	}
	return mdwerror.Wrap(err, "cannot read tag file").
		WithCode(mdwerror.CodeIOError).
		WithOperation(op).
		WithDetail("file", name).
		WithMessage("source.read_failed", args)
}
