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

import (
	"fmt"
	"strings"
)

// ParseCategory converts a user-supplied category name into a Category.
// Matching ignores case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := ValidateCategory(c); err != nil {
		return "", err
	}
	return c, nil
}

// ValidateCategory checks that c is one of the four known categories.
func ValidateCategory(c Category) error {
	if _, ok := singulars[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return nil
}

// ValidateCharacter checks that a character record can take part in upserts.
//
// Validation rules:
//   - the document must be a JSON object
//   - the "name" field must be a non-empty string
//
// NOT validated (opaque to the ledger):
//   - any other field
func ValidateCharacter(doc Document) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: record is empty", ErrMissingName)
	}
	if doc.Name() == "" {
		return ErrMissingName
	}
	return nil
}
