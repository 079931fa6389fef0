package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/masmgr/githistory-go/internal/pathfilter"
)

// StatCmd returns the stat command.
func StatCmd() *cli.Command {
	flags := append(outputFlags(), rangeFlags()...)
	flags = append(flags, filterFlags()...)

	return &cli.Command{
		Name:        "stat",
		Usage:       "Show added and deleted line counts per file between two revisions",
		ArgsUsage:   "URL [PATH...]",
		Description: "Without paths, every changed file that passes the include/exclude filters is reported.",
		Flags:       flags,
		Action:      executeWithContext(statAction),
	}
}

func statAction(c *cli.Context, cc *CommandContext) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	from, to := c.String("from"), c.String("to")

	client, err := cc.Client(c.Args().Get(0))
	if err != nil {
		return err
	}

	paths := c.Args().Tail()
	if len(paths) == 0 {
		filter, err := cc.Filter()
		if err != nil {
			return err
		}
		changed, err := client.ChangedFiles(c.Context, from, to)
		if err != nil {
			return err
		}
		paths = pathfilter.Apply(filter, changed, func(p string) string { return p })
	}

	items := make([]output.StatItem, 0, len(paths))
	for _, path := range paths {
		stat, err := client.FileStat(c.Context, from, to, path)
		if err != nil && !errors.Is(err, git.ErrUnexpectedOutput) {
			return err
		}
		items = append(items, output.StatItem{Path: path, FileStat: stat, Err: err})
	}

	return writeStatReport(c, &output.StatReport{
		Repo:        client.Repository().Name,
		From:        rangeBase(from),
		To:          to,
		GeneratedAt: now(),
		Items:       items,
	})
}
