package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/masmgr/githistory-go/internal/git"
)

// JSONWriter writes reports as indented JSON documents.
type JSONWriter struct{}

// JSONCommitReport is the JSON output structure for commit listings.
type JSONCommitReport struct {
	GeneratedAt  string           `json:"generatedAt"`
	FirstParent  bool             `json:"firstParent"`
	Repositories []JSONRepoCommit `json:"repositories"`
}

// JSONRepoCommit holds the commits of one repository.
type JSONRepoCommit struct {
	Repo         string       `json:"repo"`
	Error        string       `json:"error,omitempty"`
	TotalCommits int          `json:"totalCommits"`
	Commits      []git.Commit `json:"commits"`
}

// JSONChangeReport is the JSON output structure for file listings.
type JSONChangeReport struct {
	Repo        string       `json:"repo"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to"`
	GeneratedAt string       `json:"generatedAt"`
	TotalFiles  int          `json:"totalFiles"`
	Items       []git.Change `json:"items"`
}

// JSONStatReport is the JSON output structure for line stats.
type JSONStatReport struct {
	Repo        string         `json:"repo"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	GeneratedAt string         `json:"generatedAt"`
	Items       []JSONStatItem `json:"items"`
}

// JSONStatItem is the line stat of one path.
type JSONStatItem struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// JSONCloneItem is the clone outcome of one remote.
type JSONCloneItem struct {
	URL    string `json:"url"`
	Repo   string `json:"repo"`
	Dir    string `json:"dir"`
	Status string `json:"status"`
}

// JSONParentReport is the JSON output structure for parent listings.
type JSONParentReport struct {
	Repo    string   `json:"repo"`
	Hash    string   `json:"hash"`
	Parents []string `json:"parents"`
}

// WriteCommits outputs commit listings as JSON.
func (w *JSONWriter) WriteCommits(report *CommitReport, options OutputOptions) error {
	return writeJSON(toJSONCommitReport(report, options.Top), options)
}

// WriteChanges outputs a file listing as JSON.
func (w *JSONWriter) WriteChanges(report *ChangeReport, options OutputOptions) error {
	return writeJSON(JSONChangeReport{
		Repo:        report.Repo,
		From:        report.From,
		To:          report.To,
		GeneratedAt: report.GeneratedAt.Format(reportDateTimeLayout),
		TotalFiles:  len(report.Items),
		Items:       nonNil(limitTop(report.Items, options.Top)),
	}, options)
}

// WriteStats outputs line stats as JSON.
func (w *JSONWriter) WriteStats(report *StatReport, options OutputOptions) error {
	return writeJSON(JSONStatReport{
		Repo:        report.Repo,
		From:        report.From,
		To:          report.To,
		GeneratedAt: report.GeneratedAt.Format(reportDateTimeLayout),
		Items:       lo.Map(limitTop(report.Items, options.Top), func(item StatItem, _ int) JSONStatItem { return toJSONStatItem(item) }),
	}, options)
}

// WriteClones outputs clone outcomes as JSON.
func (w *JSONWriter) WriteClones(report *CloneReport, options OutputOptions) error {
	return writeJSON(lo.Map(report.Items, func(item CloneItem, _ int) JSONCloneItem { return toJSONCloneItem(item) }), options)
}

// WriteParents outputs a parent listing as JSON.
func (w *JSONWriter) WriteParents(report *ParentReport, options OutputOptions) error {
	return writeJSON(JSONParentReport{
		Repo:    report.Repo,
		Hash:    report.Hash,
		Parents: nonNil(report.Parents),
	}, options)
}

func toJSONCommitReport(report *CommitReport, top int) JSONCommitReport {
	repos := make([]JSONRepoCommit, len(report.Repositories))
	for i, r := range report.Repositories {
		repos[i] = JSONRepoCommit{
			Repo:         r.Repo,
			Error:        errString(r.Err),
			TotalCommits: len(r.Commits),
			Commits:      nonNil(limitTop(r.Commits, top)),
		}
	}
	return JSONCommitReport{
		GeneratedAt:  report.GeneratedAt.Format(reportDateTimeLayout),
		FirstParent:  report.FirstParent,
		Repositories: repos,
	}
}

func toJSONStatItem(item StatItem) JSONStatItem {
	return JSONStatItem{
		Path:    item.Path,
		Added:   item.Added,
		Deleted: item.Deleted,
		Error:   errString(item.Err),
	}
}

func toJSONCloneItem(item CloneItem) JSONCloneItem {
	return JSONCloneItem{
		URL:    item.URL,
		Repo:   item.Repo,
		Dir:    item.Dir,
		Status: string(item.Status),
	}
}

// nonNil keeps empty listings as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(data any, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) error {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	})
}
