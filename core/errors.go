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

// Domain validation errors
var (
	// ErrValidation is the parent of every error raised while validating
	// descriptions, sequences and entries.
	ErrValidation = errors.New("validation failed")

	// ErrUnanchoredPattern indicates a pattern token whose source does not
	// begin with a start-of-text anchor.
	ErrUnanchoredPattern = errors.New("pattern must be anchored at start of text")

	// ErrInvalidPattern indicates a pattern token that failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidToken indicates a token that is neither a literal nor a pattern.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedDescription indicates a description string that could not be parsed.
	ErrMalformedDescription = errors.New("malformed description")

	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrEmptyName indicates the entry Name field is empty.
	ErrEmptyName = errors.New("entry name cannot be empty")

	// ErrEmptyDescription indicates the entry has no description tokens.
	ErrEmptyDescription = errors.New("entry description cannot be empty")
)
