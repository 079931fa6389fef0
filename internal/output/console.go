package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleWriter writes reports as aligned tables for a terminal.
type ConsoleWriter struct{}

var (
	headerColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed)
)

// WriteCommits outputs commit listings to the console.
func (w *ConsoleWriter) WriteCommits(report *CommitReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		title := "Commits"
		if report.FirstParent {
			title = "Main Branch Commits"
		}

		for i, repo := range report.Repositories {
			if i > 0 {
				fmt.Fprintln(out)
			}
			headerColor.Fprintf(out, "%s: %s\n", title, repo.Repo)
			if repo.Err != nil {
				errorColor.Fprintf(out, "Error: %v\n", repo.Err)
				continue
			}
			fmt.Fprintf(out, "Total commits: %d\n\n", len(repo.Commits))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tHash\tDate\tSubject")
			for j, c := range limitTop(repo.Commits, options.Top) {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", j+1, shortHash(c.Hash), c.Date, truncateMessage(c.Subject, 60))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteChanges outputs a file listing to the console.
func (w *ConsoleWriter) WriteChanges(report *ChangeReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		if report.From == "" {
			headerColor.Fprintf(out, "Files at %s\n", report.To)
		} else {
			headerColor.Fprintf(out, "Changed files %s\n", rangeLabel(report.From, report.To))
		}
		fmt.Fprintf(out, "Repository: %s\n", report.Repo)
		fmt.Fprintf(out, "Total files: %d\n\n", len(report.Items))

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Kind\tPath")
		for _, ch := range limitTop(report.Items, options.Top) {
			fmt.Fprintf(tw, "%s\t%s\n", kindColor(ch.Kind.String()), ch.Path)
		}
		return tw.Flush()
	})
}

// WriteStats outputs line stats to the console.
func (w *ConsoleWriter) WriteStats(report *StatReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		headerColor.Fprintf(out, "File Stats %s\n", rangeLabel(report.From, report.To))
		fmt.Fprintf(out, "Repository: %s\n\n", report.Repo)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Path\tAdded\tDeleted\tChurn")
		for _, item := range limitTop(report.Items, options.Top) {
			if item.Err != nil {
				fmt.Fprintf(tw, "%s\t-\t-\t%s\n", item.Path, errorColor.Sprint("no stat"))
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", item.Path, item.Added, item.Deleted, item.Churn())
		}
		return tw.Flush()
	})
}

// WriteClones outputs clone outcomes to the console.
func (w *ConsoleWriter) WriteClones(report *CloneReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		headerColor.Fprintln(out, "Clone Results")

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Status\tRepository\tDirectory")
		for _, item := range report.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", statusColor(item.Status), item.Repo, item.Dir)
		}
		return tw.Flush()
	})
}

// WriteParents outputs one parent hash per line.
func (w *ConsoleWriter) WriteParents(report *ParentReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		for _, p := range report.Parents {
			fmt.Fprintln(out, p)
		}
		return nil
	})
}

// Helper functions

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}

func kindColor(kind string) string {
	switch kind {
	case "added":
		return color.GreenString(kind)
	case "deleted":
		return color.RedString(kind)
	default:
		return color.YellowString(kind)
	}
}

func statusColor(status CloneStatus) string {
	switch status {
	case CloneStatusCloned:
		return color.GreenString(string(status))
	case CloneStatusFailed:
		return color.RedString(string(status))
	default:
		return string(status)
	}
}
