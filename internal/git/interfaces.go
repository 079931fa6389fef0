package git

import "context"

// HistoryClient defines the repository operations the CLI consumes.
// This abstraction allows for easier testing.
type HistoryClient interface {
	Repository() Repository
	IsCloned(ctx context.Context) bool
	Clone(ctx context.Context, extraArgs ...string) bool
	AllCommits(ctx context.Context) ([]Commit, error)
	MainBranchCommits(ctx context.Context) ([]Commit, error)
	ParentHashes(ctx context.Context, hash string) ([]string, error)
	FileContent(ctx context.Context, hash, path string) (string, error)
	FileContentBytes(ctx context.Context, hash, path string) ([]byte, error)
	AllFiles(ctx context.Context, hash string) ([]string, error)
	ChangedFiles(ctx context.Context, from, to string) ([]string, error)
	Changes(ctx context.Context, from, to string) ([]Change, error)
	FileStat(ctx context.Context, from, to, path string) (FileStat, error)
}

// Compile-time interface conformance check.
var _ HistoryClient = (*Client)(nil)
