package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/config"
)

const defaultJobs = 4

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "githistory",
		Usage:   "Extract commit history, file listings and line stats from Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			CloneCmd(),
			CommitsCmd(),
			ParentsCmd(),
			FilesCmd(),
			ChangedCmd(),
			StatCmd(),
			ShowCmd(),
			ConfigCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.json, .yaml or .yml)",
			},
			&cli.StringFlag{
				Name:  "repos-dir",
				Usage: "Directory repositories are cloned into (overrides reposDir)",
			},
			&cli.StringFlag{
				Name:  "timeout",
				Usage: "Command timeout in seconds, or \"none\" (overrides cmdTimeout)",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Fallback encoding for git output (overrides encoding)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Human readable log output",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write command metrics in Prometheus text format to this file on exit",
			},
		},
	}
}

// outputFlags are shared by every command that writes a report.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ndjson)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Maximum number of rows per listing (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
	}
}

func jobsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "Number of repositories processed in parallel",
		Value:   defaultJobs,
	}
}

// loadConfig loads configuration from file or defaults and applies the
// global and command flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dir := c.String("repos-dir"); dir != "" {
		cfg.ReposDir = dir
	}
	if enc := c.String("encoding"); enc != "" {
		cfg.Encoding = enc
	}
	if s := c.String("timeout"); s != "" {
		timeout, err := config.ParseTimeout(s)
		if err != nil {
			return nil, err
		}
		cfg.CmdTimeout = timeout
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if c.Bool("dev") {
		cfg.Log.Dev = true
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// Run executes the CLI application. Interrupts cancel the running commands.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
