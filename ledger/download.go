package ledger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Downloader offers exported bytes to the user as a file.
type Downloader interface {
	Offer(ctx context.Context, filename string, data []byte) error
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(ctx context.Context, filename string, data []byte) error

// Offer calls f.
func (f DownloaderFunc) Offer(ctx context.Context, filename string, data []byte) error {
	return f(ctx, filename, data)
}

// FileDownloader delivers exports by writing them into a directory.
type FileDownloader struct {
	fs  afero.Fs
	dir string
}

// NewFileDownloader creates a FileDownloader writing into dir on fsys.
func NewFileDownloader(fsys afero.Fs, dir string) *FileDownloader {
	if dir == "" {
		dir = "."
	}
	return &FileDownloader{fs: fsys, dir: dir}
}

// Path returns where filename will be written.
func (d *FileDownloader) Path(filename string) string {
	return filepath.Join(d.dir, filepath.Base(filename))
}

// Offer writes data to Path(filename), creating the directory if needed.
func (d *FileDownloader) Offer(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.fs.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := afero.WriteFile(d.fs, d.Path(filename), data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
