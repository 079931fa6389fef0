package cmd

import (
	"os"

	"github.com/urfave/cli/v2"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"cat"},
		Usage:     "Print a file as it was at a commit",
		ArgsUsage: "URL HASH PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "decode",
				Usage: "Decode the content with the configured encoding instead of copying raw bytes",
			},
		},
		Action: executeWithContext(showAction),
	}
}

func showAction(c *cli.Context, cc *CommandContext) error {
	if err := requireArgs(c, 3); err != nil {
		return err
	}

	client, err := cc.Client(c.Args().Get(0))
	if err != nil {
		return err
	}
	hash, path := c.Args().Get(1), c.Args().Get(2)

	var content []byte
	if c.Bool("decode") {
		text, err := client.FileContent(c.Context, hash, path)
		if err != nil {
			return err
		}
		content = []byte(text)
	} else {
		content, err = client.FileContentBytes(c.Context, hash, path)
		if err != nil {
			return err
		}
	}
	if len(content) == 0 {
		cc.Logger.Warn().Str("hash", hash).Str("path", path).Msg("no content; the path may not exist at this commit")
	}

	if p := c.String("output"); p != "" {
		return os.WriteFile(p, content, 0o644)
	}
	_, err = c.App.Writer.Write(content)
	return err
}
