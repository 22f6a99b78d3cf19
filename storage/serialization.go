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


package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/mus-format/mus-go"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalEntry serializes an Entry to bytes.
// Timestamps are stored as Unix microseconds.
func MarshalEntry(entry *core.Entry) []byte {
	buf := make([]byte, core.EntryMUS.Size(*entry))
	core.EntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
// Timestamps come back in UTC and empty collections come back nil.
func UnmarshalEntry(data []byte) (*core.Entry, error) {
	entry, _, err := core.EntryMUS.Unmarshal(data)
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return nil, fmt.Errorf("%w: entry: %w", ErrSerializationFailed, ErrTruncatedData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: entry: %w", ErrSerializationFailed, err)
	}
	if len(entry.Description) == 0 {
		entry.Description = nil
	}
	if len(entry.Metadata) == 0 {
		entry.Metadata = nil
	}
	entry.InsertedAt = utc(entry.InsertedAt)
	entry.UpdatedAt = utc(entry.UpdatedAt)
	return &entry, nil
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
