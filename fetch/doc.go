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


// Package fetch provides the document fetcher used for static indexes,
// custom content files and remote API lookups.
//
// Two implementations are included:
//
//   - Local reads from an afero filesystem, normally a content directory
//     laid out as index.json plus one sub-directory per category.
//   - Remote issues HTTP GETs with fasthttp against a base URL.
//
// Both report failures with the core error taxonomy so callers can treat a
// missing file, a dead network and a 404 the same way when probing.
package fetch
