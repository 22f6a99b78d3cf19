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


// Package storage provides the storage abstraction layer for pptree.
//
// The pattern tree itself is an in-memory structure. This package persists
// the entries it is built from, so a tree can be rebuilt deterministically
// from the same entries in the same order.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces so that callers do not couple to
// BadgerDB specifics:
//
//	repo, err := badger.NewEntryRepository(backend)  // returns storage.EntryRepository
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Architecture
//
//   - Repository: transactions and lifecycle shared by all repositories
//   - EntryRepository: named entries and their token descriptions
//
// Entries are serialized with the mus-go serializers generated into package
// core (see MarshalEntry). Every entry carries a storage-assigned sequence
// number; AllEntries returns entries ordered by it, which is the order they
// are inserted into a tree.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
