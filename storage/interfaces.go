package storage

import (
	"context"
)

// Store is a durable byte store addressed by key.
// The ledger keeps its whole character list under a single key.
// Implementations must be safe for concurrent use.
type Store interface {
	// Read returns the bytes stored under key.
	// Returns ErrNotFound if nothing has been written under key yet.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the bytes stored under key.
	Write(ctx context.Context, key string, data []byte) error

	// Close releases the store's resources.
	Close() error
}

// Locator is implemented by stores that can describe where a key lives,
// such as a file path or database location. Used for diagnostics only.
type Locator interface {
	Location(key string) string
}
