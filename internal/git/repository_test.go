package git

import (
	"path/filepath"
	"testing"
)

func TestRepositoryName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{name: "https with suffix", url: "https://github.com/org/repo.git", expected: "org/repo"},
		{name: "https without suffix", url: "https://github.com/org/repo", expected: "org/repo"},
		{name: "trailing slash", url: "https://github.com/org/repo/", expected: "org/repo"},
		{name: "ssh url", url: "ssh://git@example.com:2222/org/repo.git", expected: "org/repo"},
		{name: "scp-like", url: "git@github.com:org/repo.git", expected: "org/repo"},
		{name: "file url", url: "file:///srv/git/tool.git", expected: "srv/git/tool"},
		{name: "single segment", url: "https://example.com/repo.git", expected: "repo"},
		{name: "no path", url: "https://github.com/", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "dot dot", url: "https://example.com/org/../repo.git", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepositoryName(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got name %q", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("RepositoryName(%q) failed: %v", tt.url, err)
			}
			if got != tt.expected {
				t.Errorf("RepositoryName(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestNewRepository(t *testing.T) {
	root := t.TempDir()

	repo, err := NewRepository("https://github.com/org/repo.git", root)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}

	if repo.Name != "org/repo" {
		t.Errorf("Name = %q, expected org/repo", repo.Name)
	}
	if repo.Root != root {
		t.Errorf("Root = %q, expected %q", repo.Root, root)
	}
	if expected := filepath.Join(root, "org", "repo"); repo.Dir != expected {
		t.Errorf("Dir = %q, expected %q", repo.Dir, expected)
	}
}

func TestNewRepositoryRelativeRoot(t *testing.T) {
	t.Chdir(t.TempDir())

	repo, err := NewRepository("https://github.com/org/repo", "repos")
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	if !filepath.IsAbs(repo.Dir) {
		t.Errorf("expected absolute Dir, got %q", repo.Dir)
	}
}
