package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/masmgr/githistory-go/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*CSVWriter)(nil)
	_ ReportWriter = (*MarkdownWriter)(nil)
	_ ReportWriter = (*NDJSONWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatNDJSON   OutputFormat = "ndjson"
)

// Formats lists every supported format.
var Formats = []OutputFormat{FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatNDJSON}

// ParseFormat validates a format name. Empty means console.
func ParseFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatConsole, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	Out        io.Writer // destination when OutputPath is empty; defaults to stdout
}

// RepositoryCommits is the commit listing of one repository. Err is set
// when the listing failed; other repositories are still reported.
type RepositoryCommits struct {
	Repo    string
	Commits []git.Commit
	Err     error
}

// CommitReport holds commit listings of one or more repositories.
type CommitReport struct {
	GeneratedAt  time.Time
	FirstParent  bool
	Repositories []RepositoryCommits
}

// ChangeReport lists the files of one tree (From empty) or the files that
// differ between two revisions.
type ChangeReport struct {
	Repo        string
	From        string
	To          string
	GeneratedAt time.Time
	Items       []git.Change
}

// StatItem is the line stat of one path. Err is set when git reported
// nothing usable for the path.
type StatItem struct {
	Path string
	git.FileStat
	Err error
}

// StatReport holds per-path line stats between two revisions.
type StatReport struct {
	Repo        string
	From        string
	To          string
	GeneratedAt time.Time
	Items       []StatItem
}

// CloneStatus is the outcome of cloning one repository.
type CloneStatus string

const (
	CloneStatusCloned  CloneStatus = "cloned"
	CloneStatusPresent CloneStatus = "present"
	CloneStatusFailed  CloneStatus = "failed"
)

// CloneItem is the clone outcome of one remote.
type CloneItem struct {
	URL    string
	Repo   string
	Dir    string
	Status CloneStatus
}

// CloneReport holds the outcome of a clone run.
type CloneReport struct {
	GeneratedAt time.Time
	Items       []CloneItem
}

// ParentReport lists the parents of one commit.
type ParentReport struct {
	Repo    string
	Hash    string
	Parents []string
}

// CommitReportWriter writes commit listings.
type CommitReportWriter interface {
	WriteCommits(report *CommitReport, options OutputOptions) error
}

// ChangeReportWriter writes file listings.
type ChangeReportWriter interface {
	WriteChanges(report *ChangeReport, options OutputOptions) error
}

// StatReportWriter writes line stats.
type StatReportWriter interface {
	WriteStats(report *StatReport, options OutputOptions) error
}

// CloneReportWriter writes clone outcomes.
type CloneReportWriter interface {
	WriteClones(report *CloneReport, options OutputOptions) error
}

// ParentReportWriter writes parent listings.
type ParentReportWriter interface {
	WriteParents(report *ParentReport, options OutputOptions) error
}

// ReportWriter writes every report type in one format.
type ReportWriter interface {
	CommitReportWriter
	ChangeReportWriter
	StatReportWriter
	CloneReportWriter
	ParentReportWriter
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatCSV:
		return &CSVWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatNDJSON:
		return &NDJSONWriter{}
	default:
		return &ConsoleWriter{}
	}
}
