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


// Package resolver resolves a display name to a content record.
//
// Resolve tries the remote API first and returns its answer immediately.
// On any remote failure, whether unreachable, non-2xx or unparseable, it
// probes the local content tree with filenames derived from the name and
// accepts the first file whose declared name matches. A remote error is
// therefore indistinguishable from "not found remotely".
//
// FindInIndex and Load cover lookups against the discovered index and
// direct file loads.
package resolver
