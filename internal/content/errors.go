package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped when a category, lesson or topic does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyAnswerSet is returned for an answer spec with no answers
	// left after splitting and trimming.
	ErrEmptyAnswerSet = errors.New("empty answer set")
)

// Error reports content that is missing or malformed. Loading the affected
// lesson fails; other lessons remain usable.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("content %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
