package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Keys used by the tracker.
const (
	KeyEvents = "hackathons"
	KeyTheme  = "theme"
)

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// Storage persists JSON values under named keys, one file per key.
// Keys are independent; there is no cross-key transaction.
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome expands a leading "~/" to the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

func (s *Storage) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.dataDir, key+".json"), nil
}

// Get decodes the value stored under key into v. It reports false, with v
// untouched, when nothing is stored under key.
func (s *Storage) Get(key string, v any) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}

	return true, nil
}

// Set replaces the value stored under key. The file is written to a
// temporary name and renamed so readers never observe a partial write.
func (s *Storage) Set(key string, v any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dataDir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Remove deletes the value stored under key. Removing a missing key is not an error.
func (s *Storage) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
