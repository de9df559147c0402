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


package charkeep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/charkeep/config"
	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/discovery"
	"github.com/poiesic/charkeep/fetch"
	"github.com/poiesic/charkeep/ledger"
	"github.com/poiesic/charkeep/resolver"
	"github.com/poiesic/charkeep/storage"
	"github.com/poiesic/charkeep/storage/badger"
	"github.com/poiesic/charkeep/storage/file"
	"github.com/poiesic/charkeep/storage/sqlite"
	"github.com/spf13/afero"
)

const (
	badgerDirName  = "badger"
	sqliteFileName = "charkeep.db"
)

// Keeper wires content lookup and character storage from a Config.
type Keeper struct {
	cfg      *config.Config
	local    storage.Store
	files    *file.Store
	loader   *discovery.Loader
	resolver *resolver.Resolver
	ledger   *ledger.Ledger
	logger   *slog.Logger
}

// KeeperOption configures a Keeper.
type KeeperOption func(*keeperOptions)

type keeperOptions struct {
	logger   *slog.Logger
	remote   fetch.Fetcher
	content  fetch.Fetcher
	inMemory bool
}

// WithLogger sets the logger shared by every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) KeeperOption {
	return func(o *keeperOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRemote replaces the remote content fetcher built from Config.RemoteURL.
func WithRemote(f fetch.Fetcher) KeeperOption {
	return func(o *keeperOptions) {
		o.remote = f
	}
}

// WithContent replaces the local content fetcher built from Config.ContentDir.
func WithContent(f fetch.Fetcher) KeeperOption {
	return func(o *keeperOptions) {
		o.content = f
	}
}

// WithInMemory keeps all character storage in memory. Nothing touches
// Config.DataDir.
func WithInMemory() KeeperOption {
	return func(o *keeperOptions) {
		o.inMemory = true
	}
}

// Open validates cfg and builds a Keeper. A nil cfg uses config.DefaultConfig.
func Open(cfg *config.Config, opts ...KeeperOption) (*Keeper, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &keeperOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.remote == nil {
		options.remote = fetch.NewRemote(cfg.RemoteURL)
	}
	if options.content == nil {
		options.content = fetch.NewLocalDir(cfg.ContentDir)
	}

	k := &Keeper{cfg: cfg, logger: options.logger}

	local, err := openLocal(cfg, options.inMemory)
	if err != nil {
		return nil, err
	}
	k.local = local

	ledgerOpts := []ledger.Option{ledger.WithLogger(options.logger), ledger.WithPlatform(cfg.Mode)}
	primary := local
	if cfg.Mode == config.ModeDesktop {
		if options.inMemory {
			k.files = file.NewStore(afero.NewMemMapFs(), cfg.DataDir)
		} else if k.files, err = file.Open(cfg.DataDir); err != nil {
			k.Close()
			return nil, err
		}
		primary = k.files
		ledgerOpts = append(ledgerOpts, ledger.WithSecondary(local))
	} else {
		// Web mode keeps a single list under the browser-style key.
		ledgerOpts = append(ledgerOpts, ledger.WithPrimaryKey(ledger.DefaultSecondaryKey))
	}

	if k.ledger, err = ledger.New(primary, ledgerOpts...); err != nil {
		k.Close()
		return nil, err
	}

	k.loader, err = discovery.NewLoader(options.content,
		discovery.WithPoolSize(cfg.PoolSize),
		discovery.WithLogger(options.logger))
	if err != nil {
		k.Close()
		return nil, err
	}

	k.resolver, err = resolver.NewResolver(options.remote, options.content,
		resolver.WithLoader(k.loader),
		resolver.WithLogger(options.logger))
	if err != nil {
		k.Close()
		return nil, err
	}

	return k, nil
}

func openLocal(cfg *config.Config, inMemory bool) (storage.Store, error) {
	switch cfg.LocalBackend {
	case config.BackendSQLite:
		path := sqlite.MemoryPath
		if !inMemory {
			path = filepath.Join(cfg.DataDir, sqliteFileName)
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		store, err := badger.OpenStore(filepath.Join(cfg.DataDir, badgerDirName), inMemory)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return store, nil
	}
}

// Close releases the worker pool and closes every store.
func (k *Keeper) Close() error {
	if k.loader != nil {
		k.loader.Release()
	}

	var errs []error
	if k.files != nil {
		if err := k.files.Close(); err != nil {
			k.logger.Error("error closing file store", "err", err)
			errs = append(errs, err)
		}
	}
	if k.local != nil {
		if err := k.local.Close(); err != nil {
			k.logger.Error("error closing local store", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Config returns the validated configuration.
func (k *Keeper) Config() *config.Config {
	return k.cfg
}

// Loader returns the custom content index loader.
func (k *Keeper) Loader() *discovery.Loader {
	return k.loader
}

// Resolver returns the content resolver.
func (k *Keeper) Resolver() *resolver.Resolver {
	return k.resolver
}

// Ledger returns the character ledger.
func (k *Keeper) Ledger() *ledger.Ledger {
	return k.ledger
}

// BuildIndex scans every category of the local content tree.
func (k *Keeper) BuildIndex(ctx context.Context) core.Index {
	return k.loader.BuildAll(ctx)
}

// Lookup resolves name in category, querying the remote endpoint named
// after the category.
func (k *Keeper) Lookup(ctx context.Context, name string, category core.Category) (*resolver.Lookup, bool) {
	return k.resolver.Resolve(ctx, name, category, string(category))
}
