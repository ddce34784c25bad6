package storage

import "errors"

// ErrMissingReference marks a write that points at a team or participant
// row that does not exist.
var ErrMissingReference = errors.New("missing reference")
