// Package docstore owns the single JSON document that backs the Doc Assist
// server. The document holds one array per entity collection and is persisted
// in full after every mutation. Collections are kept as raw JSON; the domain
// packages decode and encode their own entity schemas.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Document is the persisted shape of the data file:
// {"patients": [...], "appointments": [...], "notes": [...]}.
type Document struct {
	Patients     json.RawMessage `json:"patients"`
	Appointments json.RawMessage `json:"appointments"`
	Notes        json.RawMessage `json:"notes"`
}

func defaultDocument() *Document {
	return &Document{
		Patients:     json.RawMessage("[]"),
		Appointments: json.RawMessage("[]"),
		Notes:        json.RawMessage("[]"),
	}
}

// Store serializes all access to the document behind a single mutex, so every
// read-modify-write cycle observes and produces a consistent document.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
	doc    *Document
}

// Open returns a store backed by the file at path. The file is not touched
// until the first access; a missing or unreadable file is replaced by an
// empty document at that point.
func Open(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// View runs fn with read access to the current document. fn must not retain
// or mutate the document.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.getOrInit())
}

// Update runs fn with exclusive access to the document and, if fn succeeds,
// persists the full document. When fn fails the in-memory document may have
// been partially modified; callers are expected to either mutate only after
// all checks pass or return before touching the document.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.getOrInit()); err != nil {
		return err
	}
	return s.flush()
}

func (s *Store) getOrInit() *Document {
	if s.doc == nil {
		s.load()
	}
	return s.doc
}

// load reads the backing file. Load failures never propagate: an absent,
// corrupt, or partial file resets the store to an empty document which is
// immediately persisted.
func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error().Err(err).Str("path", s.path).Msg("data file unreadable, resetting to empty document")
		}
		s.reset()
		return
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("data file corrupt, resetting to empty document")
		s.reset()
		return
	}

	// Backfill collections a hand-edited or older file may lack.
	repaired := false
	if len(doc.Patients) == 0 {
		doc.Patients = json.RawMessage("[]")
		repaired = true
	}
	if len(doc.Appointments) == 0 {
		doc.Appointments = json.RawMessage("[]")
		repaired = true
	}
	if len(doc.Notes) == 0 {
		doc.Notes = json.RawMessage("[]")
		repaired = true
	}

	s.doc = &doc
	if repaired {
		if err := s.flush(); err != nil {
			s.logger.Error().Err(err).Str("path", s.path).Msg("persisting repaired document failed")
		}
	}
}

func (s *Store) reset() {
	s.doc = defaultDocument()
	if err := s.flush(); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("persisting empty document failed")
	}
}

// flush writes the document to a temp file in the target directory and
// renames it over the previous file, so a crash mid-write leaves the prior
// document intact.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// FilterByPatient returns the collection with every element whose patientId
// matches dropped. Elements are kept as raw JSON so unknown fields survive.
func FilterByPatient(collection json.RawMessage, patientID string) (json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(collection, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	kept := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		var ref struct {
			PatientID string `json:"patientId"`
		}
		if err := json.Unmarshal(item, &ref); err != nil {
			return nil, fmt.Errorf("decode collection element: %w", err)
		}
		if ref.PatientID != patientID {
			kept = append(kept, item)
		}
	}
	out, err := json.Marshal(kept)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return out, nil
}
