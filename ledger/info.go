package ledger

import (
	"context"
	"errors"

	"github.com/poiesic/charkeep/storage"
)

// StorageInfo describes where the ledger lives, for debugging.
type StorageInfo struct {
	Platform  string `json:"platform"`
	Timestamp string `json:"timestamp"`
	Location  string `json:"location,omitempty"`
	Exists    bool   `json:"exists"`
	Error     string `json:"error,omitempty"`
}

// Info reports the platform, the primary location and whether a list has
// been saved there.
func (l *Ledger) Info(ctx context.Context) StorageInfo {
	info := StorageInfo{
		Platform:  l.platform,
		Timestamp: l.now().UTC().Format(exportDateLayout),
	}
	if loc, ok := l.primary.(storage.Locator); ok {
		info.Location = loc.Location(l.primaryKey)
	}

	_, err := l.primary.Read(ctx, l.primaryKey)
	switch {
	case err == nil:
		info.Exists = true
	case errors.Is(err, storage.ErrNotFound):
	default:
		info.Error = err.Error()
	}
	return info
}
