package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// FileStore persists hits as JSON files named "<tag>_<hash>.json" inside a
// single directory. The hash component makes storage content-addressed;
// writing the same spectrum twice simply rewrites the same file.
type FileStore struct {
	dir string

	// mu serializes writes. Hit persistence is rare relative to candidates
	// tested, so a single mutex is plenty even for the parallel block.
	mu sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir, creating the directory if
// necessary.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory hits are written to.
func (s *FileStore) Dir() string { return s.dir }

// Persist writes the spectrum under "<tag>_<hash>.json" and returns the
// filename. Identical spectra yield identical filenames, so rediscoveries
// overwrite rather than duplicate.
func (s *FileStore) Persist(spectrum model.Spectrum, tag string) (string, error) {
	hash, err := ContentHash(spectrum)
	if err != nil {
		return "", err
	}
	body, err := encodeResult(spectrum, tag)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.json", tag, hash)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.dir, name), body, 0600); err != nil {
		return "", fmt.Errorf("failed to write result file %s: %w", name, err)
	}
	return name, nil
}
