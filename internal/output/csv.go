package output

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVWriter writes reports as CSV with a header row.
type CSVWriter struct{}

// WriteCommits outputs commit listings as CSV, one row per commit.
func (w *CSVWriter) WriteCommits(report *CommitReport, options OutputOptions) error {
	return writeCSV(options, []string{"Repo", "Hash", "Date", "Subject", "Error"}, func(emit func([]string) error) error {
		for _, repo := range report.Repositories {
			if repo.Err != nil {
				if err := emit([]string{repo.Repo, "", "", "", repo.Err.Error()}); err != nil {
					return err
				}
				continue
			}
			for _, c := range limitTop(repo.Commits, options.Top) {
				if err := emit([]string{repo.Repo, c.Hash, c.Date, c.Subject, ""}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteChanges outputs a file listing as CSV.
func (w *CSVWriter) WriteChanges(report *ChangeReport, options OutputOptions) error {
	return writeCSV(options, []string{"Repo", "From", "To", "Kind", "Path"}, func(emit func([]string) error) error {
		for _, ch := range limitTop(report.Items, options.Top) {
			if err := emit([]string{report.Repo, report.From, report.To, ch.Kind.String(), ch.Path}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStats outputs line stats as CSV.
func (w *CSVWriter) WriteStats(report *StatReport, options OutputOptions) error {
	return writeCSV(options, []string{"Repo", "From", "To", "Path", "Added", "Deleted", "Error"}, func(emit func([]string) error) error {
		for _, item := range limitTop(report.Items, options.Top) {
			row := []string{
				report.Repo,
				report.From,
				report.To,
				item.Path,
				strconv.Itoa(item.Added),
				strconv.Itoa(item.Deleted),
				errString(item.Err),
			}
			if err := emit(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteClones outputs clone outcomes as CSV.
func (w *CSVWriter) WriteClones(report *CloneReport, options OutputOptions) error {
	return writeCSV(options, []string{"URL", "Repo", "Dir", "Status"}, func(emit func([]string) error) error {
		for _, item := range report.Items {
			if err := emit([]string{item.URL, item.Repo, item.Dir, string(item.Status)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteParents outputs a parent listing as CSV, one row per parent.
func (w *CSVWriter) WriteParents(report *ParentReport, options OutputOptions) error {
	return writeCSV(options, []string{"Repo", "Hash", "Parent"}, func(emit func([]string) error) error {
		for _, p := range report.Parents {
			if err := emit([]string{report.Repo, report.Hash, p}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(options OutputOptions, headers []string, rows func(emit func([]string) error) error) error {
	return withOutput(options, func(out io.Writer) error {
		writer := csv.NewWriter(out)
		if err := writer.Write(headers); err != nil {
			return err
		}
		if err := rows(writer.Write); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	})
}
