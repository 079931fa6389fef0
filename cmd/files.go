package cmd

import (
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/masmgr/githistory-go/internal/pathfilter"
)

// FilesCmd returns the files command.
func FilesCmd() *cli.Command {
	return &cli.Command{
		Name:      "files",
		Aliases:   []string{"ls"},
		Usage:     "List every file in the tree of a commit",
		ArgsUsage: "URL HASH",
		Flags:     append(outputFlags(), filterFlags()...),
		Action:    executeWithContext(filesAction),
	}
}

func filesAction(c *cli.Context, cc *CommandContext) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	filter, err := cc.Filter()
	if err != nil {
		return err
	}

	client, err := cc.Client(c.Args().Get(0))
	if err != nil {
		return err
	}
	hash := c.Args().Get(1)
	files, err := client.AllFiles(c.Context, hash)
	if err != nil {
		return err
	}

	files = pathfilter.Apply(filter, files, func(p string) string { return p })
	items := lo.Map(files, func(p string, _ int) git.Change {
		return git.Change{Path: p, Kind: git.ChangeKindAdded}
	})

	return writeChangeReport(c, &output.ChangeReport{
		Repo:        client.Repository().Name,
		To:          hash,
		GeneratedAt: now(),
		Items:       items,
	})
}
