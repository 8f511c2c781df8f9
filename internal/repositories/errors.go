package repositories

import "errors"

// ErrNotFound is returned when a targeted record does not exist. Delete
// methods return it on zero rows affected so cascade callers can decide
// whether a missing child is a failure or an already-converged step.
var ErrNotFound = errors.New("record not found")
