package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
)

// FileStore keeps one JSON file per run in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore opens (and creates) a store in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the reports.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Save(_ context.Context, r *Report) error {
	if r.ID == "" || strings.ContainsAny(r.ID, `/\.`) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", r.ID)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(r.ID), data, 0o644); err != nil {
		return fmt.Errorf("write run file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Report, error) {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return nil, notFound(id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.path(id), id)
}

func (s *FileStore) read(path, id string) (*Report, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("read run file: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse run %s: %w", id, err)
	}
	return &r, nil
}

func (s *FileStore) ListByClaim(_ context.Context, claim string, limit int) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var out []*Report
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		r, err := s.read(filepath.Join(s.dir, name), strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue // foreign or partial file
		}
		if claim == "" || r.Claim == claim {
			out = append(out, r)
		}
	}
	return newestFirst(out, limit), nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
