// Package editor is the admin side of the portfolio: a working copy of the
// document that is edited locally, buffered in a draft file and published one
// section at a time.
//
// The server is the source of truth. The draft file is only an offline buffer;
// nothing in it reaches the server until Publish is called, and a fetch from
// the server replaces it. There is no conflict detection: the last publish of
// a section wins.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/portfolio"
	"github.com/samin124/portfolio/internal/store"
)

// ExportFileName is the suggested name for Export output.
const ExportFileName = "my-portfolio-data.json"

var ErrNoDraft = errors.New("no draft saved")

type Source string

const (
	SourceServer Source = "server"
	SourceDraft  Source = "draft"
)

// API is the part of the content API the editor needs.
type API interface {
	Document(ctx context.Context) (portfolio.Document, error)
	PutSection(ctx context.Context, s portfolio.Section, raw json.RawMessage) error
}

type Editor struct {
	api   API
	draft *store.FileStore
	doc   portfolio.Document
	log   *logger.Logger
}

func New(api API, draftPath string, log *logger.Logger) *Editor {
	return &Editor{
		api:   api,
		draft: store.NewFileStore(draftPath),
		doc:   portfolio.Skeleton(),
		log:   log.With("component", "editor"),
	}
}

func (e *Editor) DraftPath() string { return e.draft.Path() }

// Open loads the working copy from the server, falling back to the draft when
// the server cannot be reached.
func (e *Editor) Open(ctx context.Context) (Source, error) {
	doc, err := e.api.Document(ctx)
	if err == nil {
		e.doc = doc
		return SourceServer, nil
	}
	e.log.Warn("server unavailable, trying draft", "error", err)
	if derr := e.loadDraft(ctx); derr != nil {
		return "", fmt.Errorf("fetch document: %w; draft: %w", err, derr)
	}
	return SourceDraft, nil
}

// Resume continues from the draft when one exists and otherwise behaves like
// Open.
func (e *Editor) Resume(ctx context.Context) (Source, error) {
	err := e.loadDraft(ctx)
	if err == nil {
		return SourceDraft, nil
	}
	if !errors.Is(err, ErrNoDraft) {
		return "", err
	}
	return e.Open(ctx)
}

func (e *Editor) loadDraft(ctx context.Context) error {
	ok, err := e.draft.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoDraft
	}
	doc, err := e.draft.Load(ctx)
	if err != nil {
		return err
	}
	e.doc = doc
	return nil
}

// Document returns a copy of the working copy.
func (e *Editor) Document() portfolio.Document {
	return e.doc.Clone()
}

func (e *Editor) Section(s portfolio.Section) (json.RawMessage, bool) {
	raw, ok := e.doc[s]
	return raw, ok
}

// Set replaces a whole section of the working copy.
func (e *Editor) Set(s portfolio.Section, raw json.RawMessage) error {
	if err := portfolio.ValidateSection(s, raw); err != nil {
		return err
	}
	e.doc[s] = append(json.RawMessage(nil), raw...)
	return nil
}

// UpsertEntry merges entry into a list section by id (name for skills).
func (e *Editor) UpsertEntry(s portfolio.Section, entry json.RawMessage) error {
	if !s.IsList() {
		return fmt.Errorf("%w: %s", portfolio.ErrNotAList, s)
	}
	merged, err := portfolio.UpsertEntry(e.doc[s], entry)
	if err != nil {
		return err
	}
	return e.Set(s, merged)
}

// RemoveEntry deletes the entries keyed id and reports whether one existed.
func (e *Editor) RemoveEntry(s portfolio.Section, id string) (bool, error) {
	if !s.IsList() {
		return false, fmt.Errorf("%w: %s", portfolio.ErrNotAList, s)
	}
	out, removed, err := portfolio.RemoveEntry(e.doc[s], id)
	if err != nil || !removed {
		return removed, err
	}
	e.doc[s] = out
	return true, nil
}

// SaveDraft writes the whole working copy to the draft file.
func (e *Editor) SaveDraft(ctx context.Context) error {
	return e.draft.Replace(ctx, e.doc)
}

// Publish sends one section to the server. The working copy and draft are
// left as they are whatever the outcome, so a failed publish can be retried.
func (e *Editor) Publish(ctx context.Context, s portfolio.Section) error {
	raw, ok := e.doc[s]
	if !ok {
		return fmt.Errorf("section %s is not in the working copy", s)
	}
	if err := e.api.PutSection(ctx, s, raw); err != nil {
		return fmt.Errorf("publish %s: %w", s, err)
	}
	e.log.Info("section published", "section", s)
	return nil
}

// Export writes the whole working copy as indented JSON.
func (e *Editor) Export(w io.Writer) error {
	data, err := e.doc.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Reset empties the working copy and the draft. The server is not touched.
func (e *Editor) Reset(ctx context.Context) error {
	e.doc = portfolio.Skeleton()
	return e.SaveDraft(ctx)
}
