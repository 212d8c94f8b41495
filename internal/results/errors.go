package results

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Read when a topic has no result history.
var ErrNotFound = errors.New("no results")

// PersistenceError wraps a failed read or write of a results file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
