// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runcount remembers how many lessons the last upload published.
// The value lives in a per-user JSON file so later runs of updateConfig can
// default to it.
package runcount

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Key is the field name inside the state file.
const Key = "uploadedLessonCount"

// Store reads and writes the count for one application identity.
type Store struct {
	path string
}

// New returns a Store under the user config directory at
// configstore/<app>.json.
func New(app string) (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating user config directory: %w", err)
	}
	return NewAt(filepath.Join(dir, "configstore", app+".json")), nil
}

// NewAt returns a Store backed by the file at path.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Save records n, keeping any other keys already in the file.
func (s *Store) Save(n int) error {
	v, err := s.load()
	if err != nil {
		return err
	}
	v.Set(Key, n)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Read returns the saved count. ok is false when nothing was saved yet.
func (s *Store) Read() (n int, ok bool, err error) {
	v, err := s.load()
	if err != nil {
		return 0, false, err
	}
	if !v.IsSet(Key) {
		return 0, false, nil
	}
	return v.GetInt(Key), true, nil
}

func (s *Store) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return v, nil
}
