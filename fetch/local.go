package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/poiesic/charkeep/core"
	"github.com/spf13/afero"
)

// Local serves content files from a directory tree.
// Paths are resolved relative to the root of the filesystem it wraps.
type Local struct {
	fs afero.Fs
}

var _ Fetcher = (*Local)(nil)

// NewLocal creates a fetcher over fsys.
// Use afero.NewBasePathFs to confine it to a content directory.
func NewLocal(fsys afero.Fs) *Local {
	return &Local{fs: fsys}
}

// NewLocalDir creates a fetcher rooted at dir on the host filesystem.
func NewLocalDir(dir string) *Local {
	return NewLocal(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// Fetch reads the file at p.
func (l *Local) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	data, err := afero.ReadFile(l.fs, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, clean)
		}
		return nil, fmt.Errorf("%w: %s: %w", core.ErrUnreachable, clean, err)
	}
	return data, nil
}
