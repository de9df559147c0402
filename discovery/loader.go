package discovery

import (
	"context"
	"log/slog"
	"path"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/fetch"
)

// Loader builds the custom content index by combining the static index with
// speculative filename probing.
type Loader struct {
	content fetch.Fetcher
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size used by BuildAll.
// Default is one worker per category.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if l.pool != nil {
			l.pool.Release()
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader reading content through the given fetcher.
func NewLoader(content fetch.Fetcher, opts ...Option) (*Loader, error) {
	if content == nil {
		return nil, ErrFetcherRequired
	}

	pool, err := ants.NewPool(len(core.Categories))
	if err != nil {
		return nil, err
	}

	l := &Loader{
		content: content,
		pool:    pool,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// BuildIndex returns the entries for a single category: first those declared
// in the static index whose files load, then auto-detected files.
// It never fails; every fetch or parse error counts as absence.
func (l *Loader) BuildIndex(ctx context.Context, category core.Category) []core.IndexEntry {
	var entries []core.IndexEntry
	known := make(map[string]struct{})

	for _, declared := range l.loadStaticIndex(ctx, category) {
		doc, err := fetch.Document(ctx, l.content, path.Join(string(category), declared.Filename))
		if err != nil {
			l.logger.Warn("file listed in index but couldn't be loaded",
				"category", category, "filename", declared.Filename, "err", err)
			continue
		}

		name := doc.Name()
		if name == "" {
			name = declared.Name
		}
		description := declared.Description
		if description == "" {
			description = "Custom " + category.Singular()
		}
		entries = append(entries, core.IndexEntry{
			Name:        name,
			Filename:    declared.Filename,
			Description: description,
			Source:      core.SourceIndex,
		})
		known[declared.Filename] = struct{}{}
	}

	for _, candidate := range Candidates(category) {
		if _, ok := known[candidate]; ok {
			continue
		}
		doc, err := fetch.Document(ctx, l.content, path.Join(string(category), candidate))
		if err != nil {
			continue
		}
		name := doc.Name()
		if name == "" {
			continue
		}
		l.logger.Debug("auto-detected custom content", "category", category, "filename", candidate, "name", name)
		entries = append(entries, core.IndexEntry{
			Name:        name,
			Filename:    candidate,
			Description: "Auto-detected custom " + category.Singular(),
			Source:      core.SourceAutoDetected,
		})
	}

	return entries
}

// BuildAll scans every category concurrently and returns the combined index.
// Each category always has an entry in the result, possibly empty.
func (l *Loader) BuildAll(ctx context.Context) core.Index {
	l.logger.Info("auto-detecting custom data files")

	results := make([][]core.IndexEntry, len(core.Categories))
	var wg sync.WaitGroup
	for i, category := range core.Categories {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = l.BuildIndex(ctx, category)
		}
		if err := l.pool.Submit(task); err != nil {
			l.logger.Warn("worker pool unavailable, scanning inline", "category", category, "err", err)
			task()
		}
	}
	wg.Wait()

	idx := make(core.Index, len(core.Categories))
	attrs := make([]any, 0, 2*len(core.Categories)+2)
	for i, category := range core.Categories {
		entries := results[i]
		if entries == nil {
			entries = []core.IndexEntry{}
		}
		idx[category] = entries
		attrs = append(attrs, string(category), len(entries))
	}
	attrs = append(attrs, "total", idx.Total())
	l.logger.Info("found custom data files", attrs...)

	return idx
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
