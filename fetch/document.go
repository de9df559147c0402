package fetch

import (
	"context"
	"fmt"

	"github.com/poiesic/charkeep/core"
	"github.com/tidwall/gjson"
)

// Document fetches path and parses it as a JSON document.
// Invalid JSON yields an error wrapping core.ErrParse.
func Document(ctx context.Context, f Fetcher, path string) (core.Document, error) {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", core.ErrParse, path)
	}
	doc, err := core.CompactDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrParse, path, err)
	}
	return doc, nil
}
