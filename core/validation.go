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

import "fmt"

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Description must contain at least one token
//   - Every pattern must compile and be start-anchored
//
// NOT validated (populated by storage):
//   - ID (derived from Name when zero)
//   - Seq and timestamps
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyName)
	}

	if len(entry.Description) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyDescription)
	}

	seq, err := entry.Sequence()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if _, err := ExpandSequence(seq); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	return nil
}

// ExpandSequence splits every literal into single-character tokens and keeps
// every pattern whole. The whole sequence is validated before anything is
// returned, so callers either get a complete atomic sequence or an error.
func ExpandSequence(seq Sequence) (Sequence, error) {
	atoms := make(Sequence, 0, len(seq))
	for i, tok := range seq {
		switch t := tok.(type) {
		case Literal:
			for _, r := range string(t) {
				atoms = append(atoms, Literal(string(r)))
			}
		case *Pattern:
			if !t.valid() {
				return nil, fmt.Errorf("%w: token %d is an uninitialized pattern", ErrInvalidToken, i)
			}
			if !IsAnchored(t.source) {
				return nil, fmt.Errorf("%w: %w: token %d %q", ErrValidation, ErrUnanchoredPattern, i, t.source)
			}
			atoms = append(atoms, t)
		default:
			return nil, fmt.Errorf("%w: token %d has type %T", ErrInvalidToken, i, tok)
		}
	}
	return atoms, nil
}
