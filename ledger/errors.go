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

import "errors"

var (
	// ErrStoreRequired is returned when a primary store is not provided.
	ErrStoreRequired = errors.New("primary store required")

	// ErrSaveFailed is returned when neither the primary nor the secondary
	// store accepted a write.
	ErrSaveFailed = errors.New("failed to save characters")

	// ErrDownloaderRequired is returned when ExportTo is called without a downloader.
	ErrDownloaderRequired = errors.New("downloader required")
)
