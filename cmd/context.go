package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/config"
	"github.com/masmgr/githistory-go/internal/cmdexec"
	"github.com/masmgr/githistory-go/internal/codec"
	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/logging"
	"github.com/masmgr/githistory-go/internal/metrics"
	"github.com/masmgr/githistory-go/internal/pathfilter"
)

// newHistoryClient builds the client for one repository. Tests replace it
// to serve canned history.
var newHistoryClient = func(repo git.Repository, runner git.Runner, opts ...git.ClientOption) git.HistoryClient {
	return git.NewClient(repo, runner, opts...)
}

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all repository commands.
type CommandContext struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Decoder   *codec.Decoder
	Executor  *cmdexec.Executor
	Metrics   *metrics.Recorder
	ReposRoot string

	metricsFile string
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, configures logging and builds the command executor.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := logging.Configure(cfg.Log.Level, cfg.Log.Dev)

	decoder, err := codec.NewDecoder(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("invalid encoding: %w", err)
	}

	reposRoot, err := cfg.ReposPath()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare repositories directory: %w", err)
	}

	recorder := metrics.NewRecorder(nil)
	executor := cmdexec.New(
		cmdexec.WithTimeout(cfg.CmdTimeout.Duration()),
		cmdexec.WithDecoder(decoder),
		cmdexec.WithLogger(logger),
		cmdexec.WithObserver(recorder),
	)

	logger.Debug().
		Str("repos", reposRoot).
		Str("encoding", cfg.Encoding).
		Dur("timeout", executor.Timeout()).
		Msg("command context ready")

	return &CommandContext{
		Config:      cfg,
		Logger:      logger,
		Decoder:     decoder,
		Executor:    executor,
		Metrics:     recorder,
		ReposRoot:   reposRoot,
		metricsFile: c.String("metrics-file"),
	}, nil
}

// Client returns a history client for the repository at rawURL.
func (cc *CommandContext) Client(rawURL string) (git.HistoryClient, error) {
	repo, err := git.NewRepository(rawURL, cc.ReposRoot)
	if err != nil {
		return nil, err
	}
	return newHistoryClient(repo, cc.Executor, git.WithDecoder(cc.Decoder), git.WithLogger(cc.Logger)), nil
}

// Filter builds the path filter from the configured globs.
func (cc *CommandContext) Filter() (*pathfilter.Filter, error) {
	return pathfilter.New(cc.Config.Filters.Include, cc.Config.Filters.Exclude)
}

// Close flushes the metrics textfile when one was requested.
func (cc *CommandContext) Close() error {
	if cc.metricsFile == "" {
		return nil
	}
	if err := cc.Metrics.WriteTextfile(cc.metricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// executeWithContext wraps an action with CommandContext setup and teardown.
func executeWithContext(action func(c *cli.Context, cc *CommandContext) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cc, err := NewCommandContext(c)
		if err != nil {
			return err
		}
		return errors.Join(action(c, cc), cc.Close())
	}
}

// requireArgs checks the positional argument count.
func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%s: expected arguments %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}
