package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter writes reports as Markdown tables.
type MarkdownWriter struct{}

// WriteCommits outputs commit listings as Markdown.
func (w *MarkdownWriter) WriteCommits(report *CommitReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		title := "Commits"
		if report.FirstParent {
			title = "Main Branch Commits"
		}
		fmt.Fprintf(out, "# %s\n\n", title)

		for _, repo := range report.Repositories {
			fmt.Fprintf(out, "## %s\n\n", escapeMarkdown(repo.Repo))
			if repo.Err != nil {
				fmt.Fprintf(out, "**Error:** %s\n\n", escapeMarkdown(repo.Err.Error()))
				continue
			}
			fmt.Fprintf(out, "**Total Commits:** %d\n\n", len(repo.Commits))
			fmt.Fprintln(out, "| # | Hash | Date | Subject |")
			fmt.Fprintln(out, "|---|------|------|---------|")
			for i, c := range limitTop(repo.Commits, options.Top) {
				fmt.Fprintf(out, "| %d | `%s` | %s | %s |\n", i+1, shortHash(c.Hash), c.Date, escapeMarkdown(c.Subject))
			}
			fmt.Fprintln(out)
		}
		return nil
	})
}

// WriteChanges outputs a file listing as Markdown.
func (w *MarkdownWriter) WriteChanges(report *ChangeReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		if report.From == "" {
			fmt.Fprintf(out, "# Files at `%s`\n\n", report.To)
		} else {
			fmt.Fprintf(out, "# Changed Files `%s`\n\n", rangeLabel(report.From, report.To))
		}
		fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.Repo))
		fmt.Fprintf(out, "**Total Files:** %d\n\n", len(report.Items))

		fmt.Fprintln(out, "| Kind | Path |")
		fmt.Fprintln(out, "|------|------|")
		for _, ch := range limitTop(report.Items, options.Top) {
			fmt.Fprintf(out, "| %s | %s |\n", ch.Kind, escapeMarkdown(ch.Path))
		}
		return nil
	})
}

// WriteStats outputs line stats as Markdown.
func (w *MarkdownWriter) WriteStats(report *StatReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		fmt.Fprintf(out, "# File Stats `%s`\n\n", rangeLabel(report.From, report.To))
		fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.Repo))

		fmt.Fprintln(out, "| Path | Added | Deleted |")
		fmt.Fprintln(out, "|------|-------|---------|")
		for _, item := range limitTop(report.Items, options.Top) {
			if item.Err != nil {
				fmt.Fprintf(out, "| %s | - | - |\n", escapeMarkdown(item.Path))
				continue
			}
			fmt.Fprintf(out, "| %s | %d | %d |\n", escapeMarkdown(item.Path), item.Added, item.Deleted)
		}
		return nil
	})
}

// WriteClones outputs clone outcomes as Markdown.
func (w *MarkdownWriter) WriteClones(report *CloneReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		fmt.Fprintln(out, "# Clone Results")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Status | Repository | Directory |")
		fmt.Fprintln(out, "|--------|------------|-----------|")
		for _, item := range report.Items {
			fmt.Fprintf(out, "| %s %s | %s | `%s` |\n", statusEmoji(item.Status), item.Status, escapeMarkdown(item.Repo), item.Dir)
		}
		return nil
	})
}

// WriteParents outputs a parent listing as Markdown.
func (w *MarkdownWriter) WriteParents(report *ParentReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		fmt.Fprintf(out, "# Parents of `%s`\n\n", report.Hash)
		for _, p := range report.Parents {
			fmt.Fprintf(out, "- `%s`\n", p)
		}
		return nil
	})
}

func statusEmoji(status CloneStatus) string {
	switch status {
	case CloneStatusCloned:
		return "🟢"
	case CloneStatusFailed:
		return "🔴"
	default:
		return "⚪"
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
