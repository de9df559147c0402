package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/charkeep/storage"
)

// Store wraps a BadgerDB instance as a storage.Store.
type Store struct {
	db     *badger.DB
	dir    string
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)
var _ storage.Locator = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

// Badger is chatty at info level; its housekeeping goes to debug.
func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a BadgerDB database at the specified directory.
// Creates the directory if it doesn't exist.
func OpenStore(dir string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(dir)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		opts = badger.DefaultOptions(dir)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		dir:    dir,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsClosed returns true if the database is closed.
func (s *Store) IsClosed() bool {
	return s.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (s *Store) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if s.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// Read returns the value stored under key.
// Returns storage.ErrNotFound if the key has never been written.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeValueKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, key)
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}, false)

	return value, err
}

// Write stores data under key, replacing any previous value.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeValueKey(key), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err == nil {
		s.logger.Debug("wrote value", "key", key, "bytes", len(data))
	}
	return err
}

// Location describes where key is stored.
func (s *Store) Location(key string) string {
	if s.dir == "" {
		return "badger:memory/" + key
	}
	return "badger:" + s.dir + "/" + key
}
