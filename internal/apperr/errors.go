// Package apperr holds the sentinel errors shared by the service, HTTP and
// MCP layers. Wrap them with %w and test with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound means the requested note is not in the index.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery means a completion request named neither typed text
	// nor a file, or named both a heading and a block index.
	ErrInvalidQuery = errors.New("invalid query")
)
