package cmd

import (
	"context"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// repositoryURLs returns the positional URLs with duplicates removed,
// keeping first-seen order.
func repositoryURLs(c *cli.Context) []string {
	return lo.Uniq(lo.Compact(c.Args().Slice()))
}

// forEachRepository calls fn for every index in [0, n) with at most jobs
// calls in flight. fn records its own outcome; one repository failing never
// stops the others. The returned error is the group's, nil while fn cannot
// fail.
func forEachRepository(ctx context.Context, jobs, n int, fn func(ctx context.Context, i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i := range n {
		g.Go(func() error {
			fn(gctx, i)
			return nil
		})
	}
	return g.Wait()
}
