package trie

import "errors"

var (
	// ErrSealed is returned when inserting into a sealed builder or sealing it twice.
	ErrSealed = errors.New("tree is sealed")
)
