// Package trie implements a suffix-indexed trie over descriptions made of
// literal characters and start-anchored patterns.
//
// Every tail of an entry's atomic token sequence is inserted as its own
// root-to-leaf path, and each terminal node remembers, per value, the
// smallest number of tokens skipped before that tail began. A query then
// matches any left-aligned portion of any description, including a prefix
// that stops partway through a literal, and results are ranked by that
// skip cost.
//
// Building happens in two phases:
//
//	b := trie.NewBuilder[string]()
//	b.Insert(core.MustCompileString("parake{^e+}t"), "parakeet")
//	b.Insert(core.MustCompileString("parrot"), "parrot")
//	tree, err := b.Seal() // compresses and seals; b accepts no more inserts
//
//	tree.Search("keeeee") // [parakeet]
//
// A Builder is not safe for concurrent use. A sealed Tree is immutable and
// may be queried from many goroutines.
package trie
