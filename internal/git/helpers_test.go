package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/githistory-go/internal/cmdexec"
)

// countingRunner counts the processes a client asks for.
type countingRunner struct {
	inner Runner
	calls atomic.Int32
	last  cmdexec.Command
}

func (r *countingRunner) Run(ctx context.Context, command cmdexec.Command, opts cmdexec.Options) (*cmdexec.Result, error) {
	r.calls.Add(1)
	r.last = command
	if r.inner == nil {
		return &cmdexec.Result{Command: command}, nil
	}
	return r.inner.Run(ctx, command, opts)
}

// requireGit skips tests that need the git binary when it is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// fixture is a repository created with go-git under a temporary
// repositories root.
type fixture struct {
	t    *testing.T
	repo Repository
	git  *gogit.Repository
	when time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, err := NewRepository("https://example.com/org/fixture.git", t.TempDir())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	r, err := gogit.PlainInit(repo.Dir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	return &fixture{
		t:    t,
		repo: repo,
		git:  r,
		when: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) client(runner Runner) *Client {
	return NewClient(f.repo, runner)
}

// commit writes files (path -> content) and commits them. extraParents are
// added after HEAD, producing a merge commit.
func (f *fixture) commit(message string, files map[string]string, extraParents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()

	w, err := f.git.Worktree()
	if err != nil {
		f.t.Fatalf("Failed to get worktree: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(f.repo.Dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			f.t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			f.t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add(name); err != nil {
			f.t.Fatalf("Failed to add file: %v", err)
		}
	}

	f.when = f.when.Add(time.Hour)
	sig := &object.Signature{Name: "Test Author", Email: "test@example.com", When: f.when}
	opts := &gogit.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true}
	if len(extraParents) > 0 {
		head, err := f.git.Head()
		if err != nil {
			f.t.Fatalf("Failed to resolve HEAD: %v", err)
		}
		opts.Parents = append([]plumbing.Hash{head.Hash()}, extraParents...)
	}

	hash, err := w.Commit(message, opts)
	if err != nil {
		f.t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

// branchCommit commits on a new branch starting at from, then returns to
// the original branch.
func (f *fixture) branchCommit(branch string, from plumbing.Hash, message string, files map[string]string) plumbing.Hash {
	f.t.Helper()

	w, err := f.git.Worktree()
	if err != nil {
		f.t.Fatalf("Failed to get worktree: %v", err)
	}
	head, err := f.git.Head()
	if err != nil {
		f.t.Fatalf("Failed to resolve HEAD: %v", err)
	}

	if err := w.Checkout(&gogit.CheckoutOptions{
		Hash:   from,
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}); err != nil {
		f.t.Fatalf("Failed to create branch: %v", err)
	}
	hash := f.commit(message, files)

	if err := w.Checkout(&gogit.CheckoutOptions{Branch: head.Name(), Force: true}); err != nil {
		f.t.Fatalf("Failed to switch back: %v", err)
	}
	return hash
}

func hashes(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Hash
	}
	return out
}
