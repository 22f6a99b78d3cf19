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
	"testing"
	"time"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("parakeet")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		entry *core.Entry
	}{
		{
			name: "literal only",
			entry: &core.Entry{
				Id:          core.IDFromContent("bird"),
				Seq:         1,
				Name:        "bird",
				Description: []core.TokenSpec{{Kind: core.TokenKindLiteral, Text: "bird"}},
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
		{
			name: "patterns and metadata",
			entry: &core.Entry{
				Id:   core.IDFromContent("parakeet"),
				Seq:  300,
				Name: "parakeet",
				Description: []core.TokenSpec{
					{Kind: core.TokenKindLiteral, Text: "parake"},
					{Kind: core.TokenKindPattern, Text: "^e+"},
					{Kind: core.TokenKindLiteral, Text: "t"},
				},
				Metadata:   map[string]string{"family": "psittacidae", "color": "green"},
				InsertedAt: now.Add(-time.Hour),
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode name and zero timestamps",
			entry: &core.Entry{
				Id:          core.IDFromContent("søster"),
				Name:        "søster",
				Description: []core.TokenSpec{{Kind: core.TokenKindLiteral, Text: "søs"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalEntry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, decoded)
		})
	}
}

func TestMarshalEntry_EmptyCollectionsDecodeNil(t *testing.T) {
	entry := &core.Entry{
		Name:        "doge",
		Description: []core.TokenSpec{},
		Metadata:    map[string]string{},
	}
	decoded, err := UnmarshalEntry(MarshalEntry(entry))
	require.NoError(t, err)
	assert.Nil(t, decoded.Description)
	assert.Nil(t, decoded.Metadata)
	assert.True(t, decoded.InsertedAt.IsZero())
}

func TestMarshalEntry_MatchesGeneratedSerializer(t *testing.T) {
	entry := core.Entry{
		Id:          core.IDFromContent("doge"),
		Seq:         3,
		Name:        "doge",
		Description: []core.TokenSpec{{Kind: core.TokenKindLiteral, Text: "do"}, {Kind: core.TokenKindPattern, Text: "^g+"}},
	}
	data := MarshalEntry(&entry)
	assert.Len(t, data, core.EntryMUS.Size(entry))

	n, err := core.EntryMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
}

func TestUnmarshalEntry_Truncated(t *testing.T) {
	entry := &core.Entry{
		Id:          core.IDFromContent("bingus"),
		Seq:         7,
		Name:        "bingus",
		Description: []core.TokenSpec{{Kind: core.TokenKindLiteral, Text: "b"}, {Kind: core.TokenKindPattern, Text: "^i+"}},
	}
	data := MarshalEntry(entry)

	for _, cut := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalEntry(data[:cut])
		assert.ErrorIs(t, err, ErrSerializationFailed, "cut at %d", cut)
	}

	_, err := UnmarshalEntry(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrTruncatedData)
}
