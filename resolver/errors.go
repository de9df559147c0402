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


package resolver

import "errors"

var (
	// ErrRemoteRequired is returned when a remote fetcher is not provided.
	ErrRemoteRequired = errors.New("remote fetcher required")

	// ErrContentRequired is returned when a local content fetcher is not provided.
	ErrContentRequired = errors.New("content fetcher required")

	// ErrLoaderRequired is returned when WithLoader is given a nil loader.
	ErrLoaderRequired = errors.New("index loader required")
)
