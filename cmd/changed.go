package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/masmgr/githistory-go/internal/pathfilter"
)

// rangeFlags select the two revisions compared by changed and stat.
func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "Base revision (empty compares against the empty tree)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Target revision",
			Value: "HEAD",
		},
	}
}

// ChangedCmd returns the changed command.
func ChangedCmd() *cli.Command {
	flags := append(outputFlags(), rangeFlags()...)
	flags = append(flags, filterFlags()...)

	return &cli.Command{
		Name:      "changed",
		Aliases:   []string{"diff"},
		Usage:     "List files that differ between two revisions",
		ArgsUsage: "URL",
		Flags:     flags,
		Action:    executeWithContext(changedAction),
	}
}

func changedAction(c *cli.Context, cc *CommandContext) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	from, to := c.String("from"), c.String("to")
	if from == "" && to == "" {
		return fmt.Errorf("changed: --from or --to is required")
	}
	filter, err := cc.Filter()
	if err != nil {
		return err
	}

	client, err := cc.Client(c.Args().Get(0))
	if err != nil {
		return err
	}
	changes, err := client.Changes(c.Context, from, to)
	if err != nil {
		return err
	}

	return writeChangeReport(c, &output.ChangeReport{
		Repo:        client.Repository().Name,
		From:        rangeBase(from),
		To:          to,
		GeneratedAt: now(),
		Items:       pathfilter.Apply(filter, changes, func(ch git.Change) string { return ch.Path }),
	})
}

// rangeBase names an empty base revision so reports stay distinguishable
// from single-tree listings.
func rangeBase(from string) string {
	if from == "" {
		return git.EmptyTreeID
	}
	return from
}
