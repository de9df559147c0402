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


package core

import "errors"

// Lookup and import errors
var (
	// ErrNotFound indicates a fetch target or storage key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnreachable indicates a transport failure while fetching.
	ErrUnreachable = errors.New("unreachable")

	// ErrParse indicates a fetched or imported payload is not valid JSON.
	ErrParse = errors.New("malformed JSON")

	// ErrFormat indicates an import document does not resolve to a list.
	ErrFormat = errors.New("invalid file format: expected array of characters")
)

// Domain validation errors
var (
	// ErrUnknownCategory indicates a category outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrMissingName indicates a character record has no usable name.
	ErrMissingName = errors.New("character name cannot be empty")
)
