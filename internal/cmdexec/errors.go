package cmdexec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/githistory-go/internal/codec"
)

var (
	// ErrCommandFailed matches every *CommandError.
	ErrCommandFailed = errors.New("command failed")
	// ErrTimeout matches every *TimeoutError.
	ErrTimeout = errors.New("command timed out")
)

// CommandError reports a command that exited non-zero, or could not start
// (ExitCode -1, Err set).
type CommandError struct {
	Command  Command
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Err      error

	decoder *codec.Decoder
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Command)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, ", exit status: %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.decoder.Decode(e.Stdout)); out != "" {
		fmt.Fprintf(&b, ", stdout: %s", out)
	}
	if out := strings.TrimSpace(e.decoder.Decode(e.Stderr)); out != "" {
		fmt.Fprintf(&b, ", stderr: %s", out)
	}
	return b.String()
}

func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommandFailed}
	}
	return []error{ErrCommandFailed, e.Err}
}

// StderrText returns the decoded standard error stream.
func (e *CommandError) StderrText() string {
	return e.decoder.Decode(e.Stderr)
}

// TimeoutError reports a command killed after exceeding its deadline.
// Stdout and Stderr hold whatever was captured before the kill and are
// not guaranteed to be complete.
type TimeoutError struct {
	Command Command
	Timeout time.Duration
	Stdout  []byte
	Stderr  []byte
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Command, e.Timeout)
}

func (e *TimeoutError) Unwrap() []error {
	return []error{ErrTimeout, context.DeadlineExceeded}
}
