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


package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/charkeep/core"
	"github.com/tidwall/gjson"
)

// FormatVersion is the version tag written into exported documents.
const FormatVersion = "1.0"

const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Portable is the exported document shape.
type Portable struct {
	ExportDate string          `json:"exportDate"`
	Version    string          `json:"version"`
	Characters []core.Document `json:"characters"`
}

// Export wraps records in a Portable document stamped with the current time.
func (l *Ledger) Export(records []core.Document) ([]byte, error) {
	if records == nil {
		records = []core.Document{}
	}
	doc := Portable{
		ExportDate: l.now().UTC().Format(exportDateLayout),
		Version:    FormatVersion,
		Characters: records,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportFilename returns the default backup filename for the given day.
func ExportFilename(t time.Time) string {
	return "dnd-characters-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

// ExportTo exports records and offers them through d under filename, or the
// default backup filename when empty. Delivery is fire-and-forget: failures
// from d are logged, not returned. Returns the filename used.
func (l *Ledger) ExportTo(ctx context.Context, d Downloader, records []core.Document, filename string) (string, error) {
	if d == nil {
		return "", ErrDownloaderRequired
	}
	data, err := l.Export(records)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = ExportFilename(l.now())
	}

	if err := d.Offer(ctx, filename, data); err != nil {
		l.logger.Error("error offering export", "filename", filename, "error", err)
		return filename, nil
	}
	l.logger.Info("exported characters", "count", len(records), "filename", filename)
	return filename, nil
}

// Import reads a list of records from an exported document or a bare JSON
// array. Returns core.ErrParse for invalid JSON and core.ErrFormat when the
// document does not resolve to an array.
func Import(data []byte) ([]core.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, core.ErrParse
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		if wrapped := list.Get("characters"); truthy(wrapped) {
			list = wrapped
		}
	}
	if !list.IsArray() {
		return nil, core.ErrFormat
	}

	var records []core.Document
	if err := json.Unmarshal([]byte(list.Raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrParse, err)
	}
	if records == nil {
		records = []core.Document{}
	}
	return records, nil
}

// ImportFrom reads an exported document from r.
func (l *Ledger) ImportFrom(ctx context.Context, r io.Reader) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	records, err := Import(data)
	if err != nil {
		l.logger.Error("error importing characters", "error", err)
		return nil, err
	}
	l.logger.Info("imported characters", "count", len(records))
	return records, nil
}

// truthy mirrors loose truthiness of a JSON value: absent, null, false, 0
// and "" are false, everything else is true.
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}
