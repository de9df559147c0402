package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/discovery"
	"github.com/poiesic/charkeep/fetch"
	"github.com/poiesic/charkeep/naming"
)

// Source identifies where a lookup result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Lookup is a resolved content record.
type Lookup struct {
	Source Source        `json:"source"`
	Data   core.Document `json:"data"`
}

// Resolver turns a display name into a content record, preferring the remote
// API and falling back to local custom content.
type Resolver struct {
	remote  fetch.Fetcher
	content fetch.Fetcher
	loader  *discovery.Loader
	logger  *slog.Logger

	ownsLoader bool
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithLoader sets the index loader used by FindInIndex.
// Default is a loader over the resolver's content fetcher.
func WithLoader(loader *discovery.Loader) Option {
	return func(r *Resolver) error {
		if loader == nil {
			return ErrLoaderRequired
		}
		r.loader = loader
		return nil
	}
}

// NewResolver creates a resolver. remote serves API lookups and content
// serves local custom content files.
func NewResolver(remote, content fetch.Fetcher, opts ...Option) (*Resolver, error) {
	if remote == nil {
		return nil, ErrRemoteRequired
	}
	if content == nil {
		return nil, ErrContentRequired
	}

	r := &Resolver{
		remote:  remote,
		content: content,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.loader == nil {
		loader, err := discovery.NewLoader(content, discovery.WithLogger(r.logger))
		if err != nil {
			return nil, err
		}
		r.loader = loader
		r.ownsLoader = true
	}

	return r, nil
}

// Resolve looks name up under endpoint on the remote API first. Any remote
// failure falls through to probing local files for category, returning the
// first file whose declared name matches name under the compact policy.
// The boolean is false when neither source has a match.
func (r *Resolver) Resolve(ctx context.Context, name string, category core.Category, endpoint string) (*Lookup, bool) {
	slug := naming.Slug(name)
	if slug == "" {
		r.logger.Debug("name has no usable characters", "name", name)
		return nil, false
	}

	doc, err := fetch.Document(ctx, r.remote, strings.TrimSuffix(endpoint, "/")+"/"+slug)
	if err == nil {
		return &Lookup{Source: SourceRemote, Data: doc}, true
	}
	r.logger.Debug("remote lookup failed, trying custom data", "name", name, "endpoint", endpoint, "err", err)

	for _, candidate := range discovery.NameCandidates(name) {
		doc, err := fetch.Document(ctx, r.content, path.Join(string(category), candidate))
		if err != nil {
			continue
		}
		if !naming.CompactEqual(doc.Name(), name) {
			r.logger.Debug("probed file name does not match", "filename", candidate, "declared", doc.Name(), "name", name)
			continue
		}
		return &Lookup{Source: SourceLocal, Data: doc}, true
	}

	return nil, false
}

// FindInIndex builds the index for category and loads the first entry whose
// name matches name under the slug policy.
func (r *Resolver) FindInIndex(ctx context.Context, name string, category core.Category) (core.Document, bool) {
	for _, entry := range r.loader.BuildIndex(ctx, category) {
		if !naming.SlugEqual(entry.Name, name) {
			continue
		}
		doc, err := r.Load(ctx, category, entry.Filename)
		if err != nil {
			r.logger.Error("failed to load indexed file", "filename", entry.Filename, "err", err)
			return nil, false
		}
		return doc, true
	}
	return nil, false
}

// Load reads a single custom content file of the given category.
func (r *Resolver) Load(ctx context.Context, category core.Category, filename string) (core.Document, error) {
	if err := core.ValidateCategory(category); err != nil {
		return nil, err
	}
	doc, err := fetch.Document(ctx, r.content, path.Join(string(category), filename))
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", category.Singular(), filename, err)
	}
	return doc, nil
}

// Release releases the index loader if the resolver created it.
func (r *Resolver) Release() {
	if r.ownsLoader {
		r.loader.Release()
	}
}
