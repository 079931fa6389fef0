package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/githistory-go/internal/output"
)

// now is replaced in tests.
var now = time.Now

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) (output.OutputOptions, error) {
	format, err := output.ParseFormat(c.String("format"))
	if err != nil {
		return output.OutputOptions{}, err
	}
	return output.OutputOptions{
		Format:     format,
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Out:        c.App.Writer,
	}, nil
}

// writeReport resolves the writer for the format flag and hands it to write.
func writeReport(c *cli.Context, write func(output.ReportWriter, output.OutputOptions) error) error {
	opts, err := OutputOptions(c)
	if err != nil {
		return err
	}
	return write(output.NewReportWriter(opts.Format), opts)
}

func writeCommitReport(c *cli.Context, report *output.CommitReport) error {
	return writeReport(c, func(w output.ReportWriter, opts output.OutputOptions) error {
		return w.WriteCommits(report, opts)
	})
}

func writeChangeReport(c *cli.Context, report *output.ChangeReport) error {
	return writeReport(c, func(w output.ReportWriter, opts output.OutputOptions) error {
		return w.WriteChanges(report, opts)
	})
}

func writeStatReport(c *cli.Context, report *output.StatReport) error {
	return writeReport(c, func(w output.ReportWriter, opts output.OutputOptions) error {
		return w.WriteStats(report, opts)
	})
}

func writeCloneReport(c *cli.Context, report *output.CloneReport) error {
	return writeReport(c, func(w output.ReportWriter, opts output.OutputOptions) error {
		return w.WriteClones(report, opts)
	})
}

func writeParentReport(c *cli.Context, report *output.ParentReport) error {
	return writeReport(c, func(w output.ReportWriter, opts output.OutputOptions) error {
		return w.WriteParents(report, opts)
	})
}
