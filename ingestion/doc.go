// Package ingestion loads entries into storage and builds pattern trees from them.
//
// The Pipeline type manages both halves of the workflow:
//   - Ingest validates entries up front and stores them; a batch with any
//     invalid entry stores nothing
//   - Build iterates stored entries in insertion order, compiles their
//     descriptions concurrently on a worker pool, inserts them into a
//     trie.Builder and seals it
//
// Insertion into the builder is sequential so the resulting tree is the
// same for the same stored entries, regardless of pool size.
package ingestion
