package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/output"
)

// ParentsCmd returns the parents command.
func ParentsCmd() *cli.Command {
	return &cli.Command{
		Name:      "parents",
		Usage:     "List the parent hashes of a commit",
		ArgsUsage: "URL HASH",
		Flags:     outputFlags(),
		Action:    executeWithContext(parentsAction),
	}
}

func parentsAction(c *cli.Context, cc *CommandContext) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}

	client, err := cc.Client(c.Args().Get(0))
	if err != nil {
		return err
	}
	hash := c.Args().Get(1)
	parents, err := client.ParentHashes(c.Context, hash)
	if err != nil {
		return err
	}

	return writeParentReport(c, &output.ParentReport{
		Repo:    client.Repository().Name,
		Hash:    hash,
		Parents: parents,
	})
}
