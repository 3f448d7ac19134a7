package domain

import "errors"

// ErrNotFound indicates a record or key lookup missed.
var ErrNotFound = errors.New("not found")
