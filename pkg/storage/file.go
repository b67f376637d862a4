package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

const budgetFile = "budget.json"

// FileStore keeps one JSON document per entity kind in a directory.
//
// Files are replaced atomically, a crash during a write leaves the previous
// version in place.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore writing to dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

func fileName(kind Kind) string {
	return string(kind) + "s.json"
}

func (s *FileStore) Save(kind Kind, records []models.Record) error {
	if err := kind.validate(); err != nil {
		return err
	}

	if records == nil {
		records = []models.Record{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(fileName(kind), records)
}

func (s *FileStore) Load(kind Kind) ([]models.Record, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.Record
	found, err := s.read(fileName(kind), &records)
	if err != nil {
		return nil, err
	}

	if !found || records == nil {
		return []models.Record{}, nil
	}

	return records, nil
}

func (s *FileStore) SaveBudget(record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(budgetFile, record)
}

func (s *FileStore) LoadBudget() (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record models.Record
	found, err := s.read(budgetFile, &record)
	if err != nil {
		return nil, err
	}

	// A document containing null is treated like a missing one
	if !found || record == nil {
		return nil, ErrNoBudget
	}

	return record, nil
}

func (s *FileStore) DeleteBudget() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, budgetFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}

// Ping verifies that the storage directory is still accessible.
func (s *FileStore) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("storage directory is not accessible: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", s.dir)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// read decodes the named file into v. It reports false if the file does not
// exist.
func (s *FileStore) read(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	// Numbers are kept as json.Number so that amounts never pass through
	// float64
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", models.ErrInvalidRecord, name, err)
	}

	return true, nil
}

// write replaces the named file with the JSON encoding of v.
func (s *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", name, err)
	}

	// Removing fails after the rename, which is fine
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	log.Debug().Str("file", name).Msg("saved")
	return nil
}
