package cmd

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/git"
	"github.com/masmgr/githistory-go/internal/output"
	"github.com/masmgr/githistory-go/internal/subject"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(outputFlags(),
		jobsFlag(),
		&cli.BoolFlag{
			Name:  "first-parent",
			Usage: "Follow only the first parent of merges (main branch history)",
		},
		&cli.StringSliceFlag{
			Name:  "grep",
			Usage: "Keep commits whose subject matches this regular expression, case-insensitively (can be specified multiple times)",
		},
	)

	return &cli.Command{
		Name:      "commits",
		Aliases:   []string{"log"},
		Usage:     "List commits of cloned repositories, oldest first",
		ArgsUsage: "URL...",
		Flags:     flags,
		Action:    executeWithContext(commitsAction),
	}
}

func commitsAction(c *cli.Context, cc *CommandContext) error {
	urls := repositoryURLs(c)
	if len(urls) == 0 {
		return fmt.Errorf("commits: at least one repository URL is required")
	}

	matcher, err := subject.NewMatcher(c.StringSlice("grep"))
	if err != nil {
		return err
	}

	firstParent := c.Bool("first-parent")
	repos := make([]output.RepositoryCommits, len(urls))
	err = forEachRepository(c.Context, c.Int("jobs"), len(urls), func(ctx context.Context, i int) {
		repos[i] = listCommits(ctx, cc, urls[i], firstParent)
		repos[i].Commits = matcher.Filter(repos[i].Commits)
	})
	if err != nil {
		return err
	}

	report := &output.CommitReport{
		GeneratedAt:  now(),
		FirstParent:  firstParent,
		Repositories: repos,
	}
	if err := writeCommitReport(c, report); err != nil {
		return err
	}

	if lo.EveryBy(repos, func(r output.RepositoryCommits) bool { return r.Err != nil }) {
		return fmt.Errorf("no repository could be read")
	}
	return nil
}

func listCommits(ctx context.Context, cc *CommandContext, rawURL string, firstParent bool) output.RepositoryCommits {
	result := output.RepositoryCommits{Repo: rawURL}

	client, err := cc.Client(rawURL)
	if err != nil {
		result.Err = err
		return result
	}
	result.Repo = client.Repository().Name

	var commits []git.Commit
	if firstParent {
		commits, err = client.MainBranchCommits(ctx)
	} else {
		commits, err = client.AllCommits(ctx)
	}
	if err != nil {
		cc.Logger.Warn().Err(err).Str("repo", result.Repo).Msg("failed to list commits")
		result.Err = err
		return result
	}
	result.Commits = commits
	return result
}
