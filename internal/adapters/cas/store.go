// Package cas keeps the content digest of every encoded definition between
// runs.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DigestStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.DigestRecord
}

// NewStore creates a new DigestStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.DigestRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func key(session string, def domain.DefinitionID) string {
	return session + "/" + def.String()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read digest store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal digest store"), "path", s.path)
	}

	return nil
}

// save writes the cache to disk. The caller must hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal digest store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for digest store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write digest store"), "path", s.path)
	}

	return nil
}

// Get retrieves the record for def in session.
func (s *Store) Get(session string, def domain.DefinitionID) (*domain.DigestRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[key(session, def)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the records and writes the file once.
func (s *Store) Put(records []domain.DigestRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.cache[key(rec.Session, rec.Def)] = rec
	}
	return s.save()
}
