package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/output"
)

// CloneCmd returns the clone command.
func CloneCmd() *cli.Command {
	flags := append(outputFlags(),
		jobsFlag(),
		&cli.IntFlag{
			Name:  "depth",
			Usage: "Create a shallow clone with this many commits",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch to check out instead of the remote HEAD",
		},
	)

	return &cli.Command{
		Name:      "clone",
		Usage:     "Clone repositories into the repositories directory",
		ArgsUsage: "URL...",
		Flags:     flags,
		Action:    executeWithContext(cloneAction),
	}
}

func cloneAction(c *cli.Context, cc *CommandContext) error {
	urls := repositoryURLs(c)
	if len(urls) == 0 {
		return fmt.Errorf("clone: at least one repository URL is required")
	}

	extra := cloneArgs(c.Int("depth"), c.String("branch"))
	items := make([]output.CloneItem, len(urls))
	if err := forEachRepository(c.Context, c.Int("jobs"), len(urls), func(ctx context.Context, i int) {
		items[i] = cloneOne(ctx, cc, urls[i], extra)
	}); err != nil {
		return err
	}

	report := &output.CloneReport{
		GeneratedAt: now(),
		Items:       items,
	}
	if err := writeCloneReport(c, report); err != nil {
		return err
	}

	failed := lo.CountBy(items, func(item output.CloneItem) bool {
		return item.Status == output.CloneStatusFailed
	})
	if failed > 0 {
		return fmt.Errorf("%d of %d repositories failed to clone", failed, len(items))
	}
	return nil
}

func cloneOne(ctx context.Context, cc *CommandContext, rawURL string, extra []string) output.CloneItem {
	item := output.CloneItem{URL: rawURL, Status: output.CloneStatusFailed}

	client, err := cc.Client(rawURL)
	if err != nil {
		cc.Logger.Error().Err(err).Str("url", rawURL).Msg("invalid repository URL")
		return item
	}
	repo := client.Repository()
	item.Repo = repo.Name
	item.Dir = repo.Dir

	switch {
	case client.IsCloned(ctx):
		item.Status = output.CloneStatusPresent
	case client.Clone(ctx, extra...):
		item.Status = output.CloneStatusCloned
	}
	return item
}

func cloneArgs(depth int, branch string) []string {
	var args []string
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	return args
}
