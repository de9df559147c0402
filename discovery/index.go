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


package discovery

import (
	"context"
	"encoding/json"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/fetch"
)

// IndexFile is the path of the static index under the content root.
const IndexFile = "index.json"

// declaredEntry is one item listed in the static index.
type declaredEntry struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
}

// loadStaticIndex returns the entries declared for category. Any failure,
// whether a missing index, malformed JSON or a malformed list, yields nil.
func (l *Loader) loadStaticIndex(ctx context.Context, category core.Category) []declaredEntry {
	doc, err := fetch.Document(ctx, l.content, IndexFile)
	if err != nil {
		l.logger.Debug("no static index found, using auto-detection only", "category", category, "err", err)
		return nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(doc, &sections); err != nil {
		l.logger.Warn("static index is not an object", "err", err)
		return nil
	}

	raw, ok := sections[string(category)]
	if !ok {
		return nil
	}
	var entries []declaredEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("static index section is malformed", "category", category, "err", err)
		return nil
	}
	return entries
}
