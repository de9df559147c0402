// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/poiesic/charkeep/storage"
	"github.com/spf13/afero"
)

// Store keeps each key in its own file inside a data directory.
type Store struct {
	fs     afero.Fs
	dir    string
	closed atomic.Bool
}

var _ storage.Store = (*Store)(nil)
var _ storage.Locator = (*Store)(nil)

// NewStore creates a store over fsys rooted at dir.
// The directory is created lazily on first access.
func NewStore(fsys afero.Fs, dir string) *Store {
	return &Store{fs: fsys, dir: dir}
}

// Open creates a store in dir on the host filesystem, creating the
// directory if it does not exist.
func Open(dir string) (*Store, error) {
	s := NewStore(afero.NewOsFs(), dir)
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Location returns the file path used for key.
func (s *Store) Location(key string) string {
	return filepath.Join(s.dir, key)
}

// Exists reports whether a file has been written for key.
func (s *Store) Exists(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, s.Location(key))
}

// Read returns the contents of the file for key.
// Returns storage.ErrNotFound if the file does not exist.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx, key); err != nil {
		return nil, err
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	path := s.Location(key)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Write atomically replaces the file for key using the temp-file, fsync,
// rename pattern so a crash never leaves a half-written file behind.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.Location(key)); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Close marks the store closed. Files are not held open between calls.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Store) check(ctx context.Context, key string) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	if err := validateKey(key); err != nil {
		return err
	}
	return ctx.Err()
}

// ensureDir creates the data directory if it does not exist.
func (s *Store) ensureDir() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", s.dir, err)
	}
	return nil
}

// validateKey rejects keys that would escape the data directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}
	return nil
}
