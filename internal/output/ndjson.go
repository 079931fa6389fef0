package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// NDJSONWriter writes one JSON object per line for data pipelines. Every
// record carries a "type" field.
type NDJSONWriter struct{}

// NDJSONCommit is one commit record.
type NDJSONCommit struct {
	Type    string `json:"type"`
	Repo    string `json:"repo"`
	Seq     int    `json:"seq"`
	Hash    string `json:"hash"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// NDJSONError reports a repository whose listing failed.
type NDJSONError struct {
	Type  string `json:"type"`
	Repo  string `json:"repo"`
	Error string `json:"error"`
}

// NDJSONChange is one file record.
type NDJSONChange struct {
	Type string `json:"type"`
	Repo string `json:"repo"`
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// NDJSONStat is one line-stat record.
type NDJSONStat struct {
	Type    string `json:"type"`
	Repo    string `json:"repo"`
	From    string `json:"from"`
	To      string `json:"to"`
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// WriteCommits outputs one record per commit, oldest first.
func (w *NDJSONWriter) WriteCommits(report *CommitReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		for _, repo := range report.Repositories {
			if repo.Err != nil {
				if err := writeNDJSONLine(out, NDJSONError{Type: "error", Repo: repo.Repo, Error: repo.Err.Error()}); err != nil {
					return err
				}
				continue
			}
			for i, c := range limitTop(repo.Commits, options.Top) {
				rec := NDJSONCommit{Type: "commit", Repo: repo.Repo, Seq: i, Hash: c.Hash, Date: c.Date, Subject: c.Subject}
				if err := writeNDJSONLine(out, rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteChanges outputs one record per file.
func (w *NDJSONWriter) WriteChanges(report *ChangeReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		for _, ch := range limitTop(report.Items, options.Top) {
			rec := NDJSONChange{Type: "change", Repo: report.Repo, From: report.From, To: report.To, Kind: ch.Kind.String(), Path: ch.Path}
			if err := writeNDJSONLine(out, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStats outputs one record per path.
func (w *NDJSONWriter) WriteStats(report *StatReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		for _, item := range limitTop(report.Items, options.Top) {
			rec := NDJSONStat{
				Type:    "stat",
				Repo:    report.Repo,
				From:    report.From,
				To:      report.To,
				Path:    item.Path,
				Added:   item.Added,
				Deleted: item.Deleted,
				Error:   errString(item.Err),
			}
			if err := writeNDJSONLine(out, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteClones outputs one record per remote.
func (w *NDJSONWriter) WriteClones(report *CloneReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		for _, item := range report.Items {
			if err := writeNDJSONLine(out, toJSONCloneItem(item)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteParents outputs the parent listing as a single record.
func (w *NDJSONWriter) WriteParents(report *ParentReport, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		return writeNDJSONLine(out, JSONParentReport{Repo: report.Repo, Hash: report.Hash, Parents: nonNil(report.Parents)})
	})
}

func writeNDJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode NDJSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
