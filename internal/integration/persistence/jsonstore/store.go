// Package jsonstore keeps every entity kind in its own JSON file inside a data
// directory: an array of records per kind, and a single settings object.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	domainerror "github.com/financy/backend/internal/domain/error"
)

// File names inside the data directory.
const (
	AccountsFile  = "Accounts.json"
	PurchasesFile = "Purchases.json"
	UsersFile     = "Users.json"
	SettingsFile  = "Settings.json"
)

const indent = "    "

// Store owns the data directory. All file access goes through its mutex so a
// read-modify-write never interleaves with another.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domainerror.NewStorageWriteError(dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Healthy reports whether the data directory is still a directory.
func (s *Store) Healthy() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

// read returns the raw file content, or nil when the file does not exist.
func (s *Store) read(file string) ([]byte, error) {
	data, err := os.ReadFile(s.path(file))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerror.NewStorageReadError(file, err)
	}
	return data, nil
}

// readArray returns the records of an array file. A missing or blank file
// holds no records; anything that is not a JSON array is unreadable.
func (s *Store) readArray(file string) ([]json.RawMessage, error) {
	data, err := s.read(file)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, domainerror.NewStorageReadError(file, err)
	}
	return records, nil
}

func (s *Store) writeArray(file string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	return s.writeValue(file, records)
}

func (s *Store) writeValue(file string, value any) error {
	data, err := json.MarshalIndent(value, "", indent)
	if err != nil {
		return domainerror.NewStorageWriteError(file, err)
	}
	data = append(data, '\n')

	if err := writeAtomic(s.path(file), data); err != nil {
		return domainerror.NewStorageWriteError(file, err)
	}
	return nil
}

// writeAtomic replaces path by renaming a fully written temp file over it.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
