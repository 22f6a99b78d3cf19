package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when an entry repository is not provided.
	ErrRepositoryRequired = errors.New("entry repository required")

	// ErrInvalidMaxAttempts is returned when retry is configured with fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("max attempts must be at least 1")

	// ErrBuildFailed is returned when a stored entry cannot be inserted into the tree.
	ErrBuildFailed = errors.New("tree build failed")
)
