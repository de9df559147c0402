package fetch

import "context"

// Fetcher retrieves the raw bytes stored at a slash-separated path.
//
// Implementations return errors wrapping core.ErrNotFound when the path does
// not exist and core.ErrUnreachable for any transport failure.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// Fetch calls f(ctx, path).
func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}
