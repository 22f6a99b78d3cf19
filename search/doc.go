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


// Package search answers queries against a sealed pattern tree.
//
// The Searcher type resolves the entry IDs stored in a trie.Tree to the
// entries held by a storage.EntryRepository:
//   - Search ranks entries by skip cost, the number of description tokens
//     skipped before the match begins
//   - Has is the tree's fast first-match check, which can miss matches
//   - Contains is the exhaustive existence check
//   - SearchBatch runs many queries concurrently on a worker pool
//
// A sealed tree is immutable, so any number of searches may run at once.
package search
