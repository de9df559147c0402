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


package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/charkeep/fetch"
	"github.com/poiesic/charkeep/storage/file"
)

// Storage modes.
const (
	// ModeDesktop keeps the ledger in a file under DataDir and mirrors it
	// into the local key-value backend.
	ModeDesktop = "desktop"

	// ModeWeb keeps the ledger only in the local key-value backend.
	ModeWeb = "web"
)

// Local key-value backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CHARKEEP_"

// Config holds the runtime configuration.
type Config struct {
	// Mode selects the storage layout, ModeDesktop or ModeWeb.
	// Default: "desktop"
	Mode string `mapstructure:"mode" env:"MODE"`

	// DataDir is where character data is kept.
	// Empty resolves to the platform data directory.
	DataDir string `mapstructure:"data_dir" env:"DATA_DIR"`

	// ContentDir is the root of the local custom content tree
	// (index.json plus one directory per category).
	// Default: "data"
	ContentDir string `mapstructure:"content_dir" env:"CONTENT_DIR"`

	// RemoteURL is the base URL of the remote content API.
	RemoteURL string `mapstructure:"remote_url" env:"REMOTE_URL"`

	// LocalBackend selects the key-value store, BackendBadger or BackendSQLite.
	// Default: "badger"
	LocalBackend string `mapstructure:"local_backend" env:"LOCAL_BACKEND"`

	// PoolSize is the number of workers scanning categories concurrently.
	// Default: 4
	PoolSize int `mapstructure:"pool_size" env:"POOL_SIZE"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMode sets the storage mode.
func WithMode(mode string) ConfigOption {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) ConfigOption {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithContentDir sets the local content directory.
func WithContentDir(dir string) ConfigOption {
	return func(c *Config) {
		c.ContentDir = dir
	}
}

// WithRemoteURL sets the remote content API base URL.
func WithRemoteURL(url string) ConfigOption {
	return func(c *Config) {
		c.RemoteURL = url
	}
}

// WithLocalBackend sets the key-value backend.
func WithLocalBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.LocalBackend = backend
	}
}

// WithPoolSize sets the category scan worker count.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeDesktop,
		ContentDir:   "data",
		RemoteURL:    fetch.DefaultRemoteURL,
		LocalBackend: BackendBadger,
		PoolSize:     4,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithMode(ModeWeb),
//	    WithLocalBackend(BackendSQLite),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form: enum values are
// lowercased, the remote URL loses its trailing slash and an empty DataDir
// resolves to the platform data directory.
func (c *Config) Normalize() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.LocalBackend = strings.ToLower(strings.TrimSpace(c.LocalBackend))
	c.RemoteURL = strings.TrimSuffix(strings.TrimSpace(c.RemoteURL), "/")

	dir, err := file.ResolveDir(c.DataDir)
	if err != nil {
		return fmt.Errorf("config: resolve data dir: %w", err)
	}
	c.DataDir = dir
	return nil
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	if err := c.Normalize(); err != nil {
		return err
	}

	switch c.Mode {
	case ModeDesktop, ModeWeb:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.LocalBackend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown local backend %q", c.LocalBackend)
	}
	if c.ContentDir == "" {
		return errors.New("config: ContentDir is required")
	}
	if c.RemoteURL == "" {
		return errors.New("config: RemoteURL is required")
	}
	if c.PoolSize < 1 {
		return errors.New("config: PoolSize must be at least 1")
	}
	return nil
}
