package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/githistory-go/internal/git"
)

const (
	hashA = "1111111111111111111111111111111111111111"
	hashB = "2222222222222222222222222222222222222222"
)

func init() {
	color.NoColor = true
}

func sampleCommitReport() *CommitReport {
	return &CommitReport{
		GeneratedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Repositories: []RepositoryCommits{
			{
				Repo: "org/app",
				Commits: []git.Commit{
					{Hash: hashA, Date: "Mon Jan 1 13:00:00 2024 +0000", Subject: "init"},
					{Hash: hashB, Date: "Tue Jan 2 13:00:00 2024 +0000", Subject: "fix a, b"},
				},
			},
			{Repo: "org/broken", Err: errors.New("repository is not cloned")},
		},
	}
}

func sampleChangeReport() *ChangeReport {
	return &ChangeReport{
		Repo: "org/app",
		From: hashA,
		To:   hashB,
		Items: []git.Change{
			{Path: "src/main.go", Kind: git.ChangeKindModified},
			{Path: "docs/a|b.md", Kind: git.ChangeKindAdded},
		},
	}
}

func sampleStatReport() *StatReport {
	return &StatReport{
		Repo: "org/app",
		From: hashA,
		To:   hashB,
		Items: []StatItem{
			{Path: "f.txt", FileStat: git.FileStat{Added: 1, Deleted: 1}},
			{Path: "same.txt", Err: errors.New("no numstat line")},
		},
	}
}

func TestConsoleWriter_Commits(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ConsoleWriter{}).WriteCommits(sampleCommitReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteCommits failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Commits: org/app", "Total commits: 2", "11111111", "fix a, b", "Commits: org/broken", "Error: repository is not cloned"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected console output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestConsoleWriter_TopLimitsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ConsoleWriter{}).WriteCommits(sampleCommitReport(), OutputOptions{Out: &buf, Top: 1}); err != nil {
		t.Fatalf("WriteCommits failed: %v", err)
	}
	if strings.Contains(buf.String(), "22222222") {
		t.Errorf("expected second commit to be cut by Top")
	}
}

func TestConsoleWriter_ChangesAndParents(t *testing.T) {
	var buf bytes.Buffer
	w := &ConsoleWriter{}
	if err := w.WriteChanges(sampleChangeReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteChanges failed: %v", err)
	}
	if !strings.Contains(buf.String(), "modified  src/main.go") {
		t.Errorf("unexpected changes output:\n%s", buf.String())
	}

	buf.Reset()
	if err := w.WriteParents(&ParentReport{Hash: hashB, Parents: []string{hashA}}, OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteParents failed: %v", err)
	}
	if buf.String() != hashA+"\n" {
		t.Errorf("WriteParents = %q, expected one hash per line", buf.String())
	}
}

func TestJSONWriter_Commits(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).WriteCommits(sampleCommitReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteCommits failed: %v", err)
	}

	var got JSONCommitReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(got.Repositories))
	}
	if got.Repositories[0].TotalCommits != 2 || got.Repositories[0].Commits[1].Subject != "fix a, b" {
		t.Errorf("unexpected first repository: %+v", got.Repositories[0])
	}
	if got.Repositories[1].Error == "" || got.Repositories[1].Commits == nil {
		t.Errorf("expected error and empty commit list for broken repository: %+v", got.Repositories[1])
	}
}

func TestJSONWriter_ChangesUseKindNames(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).WriteChanges(sampleChangeReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteChanges failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "modified"`) {
		t.Errorf("expected change kinds rendered by name, got:\n%s", buf.String())
	}
}

func TestJSONWriter_EmptyParents(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).WriteParents(&ParentReport{Hash: hashA}, OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteParents failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"parents": []`) {
		t.Errorf("expected empty parents array, got:\n%s", buf.String())
	}
}

func TestCSVWriter_Stats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	if err := (&CSVWriter{}).WriteStats(sampleStatReport(), OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("WriteStats failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if strings.Join(records[1], ",") != "org/app,"+hashA+","+hashB+",f.txt,1,1," {
		t.Errorf("unexpected row: %q", records[1])
	}
	if records[2][6] != "no numstat line" {
		t.Errorf("expected error column, got %q", records[2])
	}
}

func TestCSVWriter_CommitsQuoteSubjects(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVWriter{}).WriteCommits(sampleCommitReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteCommits failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 4 || records[2][3] != "fix a, b" {
		t.Errorf("unexpected records: %q", records)
	}
}

func TestMarkdownWriter_EscapesPaths(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).WriteChanges(sampleChangeReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteChanges failed: %v", err)
	}
	if !strings.Contains(buf.String(), `| added | docs/a\|b.md |`) {
		t.Errorf("expected escaped pipe in path, got:\n%s", buf.String())
	}
}

func TestNDJSONWriter_Commits(t *testing.T) {
	var buf bytes.Buffer
	if err := (&NDJSONWriter{}).WriteCommits(sampleCommitReport(), OutputOptions{Out: &buf}); err != nil {
		t.Fatalf("WriteCommits failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	var first NDJSONCommit
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid NDJSON line: %v", err)
	}
	if first.Type != "commit" || first.Seq != 0 || first.Hash != hashA {
		t.Errorf("unexpected first record: %+v", first)
	}

	var last NDJSONError
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("invalid NDJSON line: %v", err)
	}
	if last.Type != "error" || last.Repo != "org/broken" {
		t.Errorf("unexpected error record: %+v", last)
	}
}

func TestWriters_Clones(t *testing.T) {
	report := &CloneReport{Items: []CloneItem{
		{URL: "https://example.com/org/app.git", Repo: "org/app", Dir: "/repos/org/app", Status: CloneStatusCloned},
		{URL: "https://example.com/org/gone.git", Repo: "org/gone", Dir: "/repos/org/gone", Status: CloneStatusFailed},
	}}

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewReportWriter(format).WriteClones(report, OutputOptions{Out: &buf}); err != nil {
				t.Fatalf("WriteClones failed: %v", err)
			}
			if !strings.Contains(buf.String(), "org/gone") || !strings.Contains(buf.String(), "failed") {
				t.Errorf("expected both remotes in output, got:\n%s", buf.String())
			}
		})
	}
}
