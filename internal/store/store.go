// Package store persists the Portfolio Document.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samin124/portfolio/internal/portfolio"
)

var ErrSectionNotFound = errors.New("section not found")

//go:generate mockgen -source=./store.go -package=storemocks -destination=storemocks/store.mock.go Store
type Store interface {
	// Load returns the whole document. A store that has never been written
	// returns portfolio.Sample().
	Load(ctx context.Context) (portfolio.Document, error)
	// Section returns one section or ErrSectionNotFound.
	Section(ctx context.Context, s portfolio.Section) (json.RawMessage, error)
	// ReplaceSection overwrites one section and leaves the others untouched.
	ReplaceSection(ctx context.Context, s portfolio.Section, raw json.RawMessage) error
	// Replace overwrites the whole document.
	Replace(ctx context.Context, doc portfolio.Document) error
}

// Error is a failed read or write of the backing file.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FileStore keeps the document in a single JSON file. Every operation holds
// one mutex for its whole read-modify-write span, so writes to different
// sections never lose each other's changes and writes to the same section are
// last-write-wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (portfolio.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) Section(ctx context.Context, s portfolio.Section) (json.RawMessage, error) {
	doc, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := doc[s]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, s)
	}
	return raw, nil
}

func (f *FileStore) ReplaceSection(ctx context.Context, s portfolio.Section, raw json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[s] = raw
	return f.write(doc)
}

func (f *FileStore) Replace(ctx context.Context, doc portfolio.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(doc)
}

// Exists reports whether the backing file has been created.
func (f *FileStore) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, &Error{Op: "stat", Path: f.path, Err: err}
	}
}

func (f *FileStore) read() (portfolio.Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return portfolio.Sample(), nil
	}
	if err != nil {
		return nil, &Error{Op: "load", Path: f.path, Err: err}
	}
	doc, err := portfolio.Decode(data)
	if err != nil {
		return nil, &Error{Op: "load", Path: f.path, Err: err}
	}
	return doc, nil
}

// write replaces the file through a temp file in the same directory, so a
// failure at any point leaves the previous content in place.
func (f *FileStore) write(doc portfolio.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &Error{Op: "save", Path: f.path, Err: err}
	}
	return nil
}
