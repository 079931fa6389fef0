// Package cmdexec runs external commands with a forced C locale, an
// optional deadline that kills the whole process group, and typed errors.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/masmgr/githistory-go/internal/codec"
)

// DefaultTimeout applies when no timeout option is given.
const DefaultTimeout = 300 * time.Second

// waitDelay bounds how long Run waits for output pipes after the process
// exits or is killed.
const waitDelay = 2 * time.Second

// Outcome classifies a finished command for observers.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeTimeout Outcome = "timeout"
)

// Observer receives one callback per Run.
type Observer interface {
	ObserveCommand(label string, outcome Outcome, elapsed time.Duration)
}

// Executor launches one child process per Run call. It holds no per-call
// state and may be shared between goroutines.
type Executor struct {
	timeout  time.Duration
	decoder  *codec.Decoder
	logger   zerolog.Logger
	observer Observer
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout sets the deadline for calls that do not opt out. Zero or a
// negative value disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithDecoder sets the decoder used to render captured output in errors.
func WithDecoder(d *codec.Decoder) Option {
	return func(e *Executor) { e.decoder = d }
}

// WithLogger sets the logger for per-command debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithObserver registers an Observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(e *Executor) { e.observer = o }
}

// New creates an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		timeout: DefaultTimeout,
		decoder: codec.UTF8,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the configured deadline, 0 when disabled.
func (e *Executor) Timeout() time.Duration {
	if e.timeout < 0 {
		return 0
	}
	return e.timeout
}

// Run executes command and waits for it. A zero exit returns the Result;
// a non-zero exit returns *CommandError; an expired deadline kills the
// process group and returns *TimeoutError with the partial output.
// Run never retries.
func (e *Executor) Run(ctx context.Context, command Command, opts Options) (*Result, error) {
	name, args, err := command.argv()
	if err != nil {
		return nil, err
	}

	label := opts.Label
	if label == "" {
		label = command.Name()
	}

	runCtx := ctx
	timeout := e.Timeout()
	if opts.NoTimeout {
		timeout = 0
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = BuildEnv(os.Environ(), opts.Env)
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug().
		Str("cmd", command.String()).
		Str("dir", opts.Dir).
		Dur("timeout", timeout).
		Msg("running command")

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil && errors.Is(runErr, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		runErr = nil
	}

	res := &Result{
		Command:  command,
		ExitCode: exitCode(cmd),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: elapsed,
	}

	switch {
	case runErr == nil:
		e.observe(label, OutcomeSuccess, elapsed)
		e.logger.Debug().Str("cmd", label).Dur("elapsed", elapsed).Msg("command finished")
		return res, nil

	case ctx.Err() != nil:
		e.observe(label, OutcomeFailure, elapsed)
		return nil, fmt.Errorf("%s: %w", command, ctx.Err())

	case timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		e.observe(label, OutcomeTimeout, elapsed)
		e.logger.Warn().Str("cmd", command.String()).Dur("timeout", timeout).Msg("command timed out, process group killed")
		return nil, &TimeoutError{
			Command: command,
			Timeout: timeout,
			Stdout:  res.Stdout,
			Stderr:  res.Stderr,
		}
	}

	e.observe(label, OutcomeFailure, elapsed)

	cmdErr := &CommandError{
		Command:  command,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		decoder:  e.decoder,
	}
	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		cmdErr.ExitCode = -1
		cmdErr.Err = runErr
	}
	return nil, cmdErr
}

func (e *Executor) observe(label string, outcome Outcome, elapsed time.Duration) {
	if e.observer != nil {
		e.observer.ObserveCommand(label, outcome, elapsed)
	}
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
