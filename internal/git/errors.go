package git

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCloned is returned by operations that need a working directory
	// when it does not exist.
	ErrNotCloned = errors.New("repository is not cloned")

	// ErrUnexpectedOutput matches every *UnexpectedOutputError.
	ErrUnexpectedOutput = errors.New("unexpected git output")

	// ErrInvalidRevision is returned for empty revisions and for revisions
	// that git would parse as an option.
	ErrInvalidRevision = errors.New("invalid revision")
)

// UnexpectedOutputError reports command output whose shape the parser does
// not recognize.
type UnexpectedOutputError struct {
	Op      string
	Command string
	Output  string
	Reason  string
}

func (e *UnexpectedOutputError) Error() string {
	return fmt.Sprintf("%s: %s: %s (output: %q)", e.Op, e.Reason, e.Command, e.Output)
}

func (e *UnexpectedOutputError) Unwrap() error {
	return ErrUnexpectedOutput
}
