package git

import (
	"context"
	"fmt"
)

// MockClient is a test double for Client.
// It serves predefined history without a git binary or working directory.
type MockClient struct {
	Repo    Repository
	Cloned  bool
	Commits []Commit
	Main    []Commit
	Parents map[string][]string

	// Files and Parents are keyed by hash, Contents by "hash:path", Diffs
	// and Stats by "from..to".
	Files    map[string][]string
	Contents map[string]string
	Diffs    map[string][]Change
	Stats    map[string]map[string]FileStat
	Error    error

	CloneCalls int
}

// NewMockClient creates a MockClient for repo that reports it as cloned.
func NewMockClient(repo Repository) *MockClient {
	return &MockClient{
		Repo:     repo,
		Cloned:   true,
		Parents:  map[string][]string{},
		Files:    map[string][]string{},
		Contents: map[string]string{},
		Diffs:    map[string][]Change{},
		Stats:    map[string]map[string]FileStat{},
	}
}

func (m *MockClient) Repository() Repository { return m.Repo }

func (m *MockClient) IsCloned(_ context.Context) bool { return m.Cloned }

// Clone marks the repository cloned unless Error is set.
func (m *MockClient) Clone(_ context.Context, _ ...string) bool {
	m.CloneCalls++
	if m.Cloned || m.Error != nil {
		return false
	}
	m.Cloned = true
	return true
}

func (m *MockClient) check() error {
	if m.Error != nil {
		return m.Error
	}
	if !m.Cloned {
		return fmt.Errorf("%s: %w", m.Repo.Name, ErrNotCloned)
	}
	return nil
}

func (m *MockClient) AllCommits(_ context.Context) ([]Commit, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	return m.Commits, nil
}

// MainBranchCommits returns Main, or Commits when Main is unset.
func (m *MockClient) MainBranchCommits(_ context.Context) ([]Commit, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if m.Main == nil {
		return m.Commits, nil
	}
	return m.Main, nil
}

func (m *MockClient) ParentHashes(_ context.Context, hash string) ([]string, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if p, ok := m.Parents[hash]; ok {
		return p, nil
	}
	return []string{}, nil
}

func (m *MockClient) FileContent(_ context.Context, hash, path string) (string, error) {
	if err := m.check(); err != nil {
		return "", err
	}
	return m.Contents[hash+":"+path], nil
}

func (m *MockClient) FileContentBytes(ctx context.Context, hash, path string) ([]byte, error) {
	s, err := m.FileContent(ctx, hash, path)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (m *MockClient) AllFiles(_ context.Context, hash string) ([]string, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if f, ok := m.Files[hash]; ok {
		return f, nil
	}
	return []string{}, nil
}

func (m *MockClient) ChangedFiles(ctx context.Context, from, to string) ([]string, error) {
	changes, err := m.Changes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(changes))
	for i, ch := range changes {
		paths[i] = ch.Path
	}
	return paths, nil
}

func (m *MockClient) Changes(ctx context.Context, from, to string) ([]Change, error) {
	if from == "" || to == "" {
		files, err := m.AllFiles(ctx, from+to)
		if err != nil {
			return nil, err
		}
		changes := make([]Change, len(files))
		for i, f := range files {
			changes[i] = Change{Path: f, Kind: ChangeKindAdded}
		}
		return changes, nil
	}
	if err := m.check(); err != nil {
		return nil, err
	}
	return m.Diffs[from+".."+to], nil
}

func (m *MockClient) FileStat(_ context.Context, from, to, path string) (FileStat, error) {
	if err := m.check(); err != nil {
		return FileStat{}, err
	}
	if from == "" {
		from = EmptyTreeID
	}
	stat, ok := m.Stats[from+".."+to][path]
	if !ok {
		return FileStat{}, &UnexpectedOutputError{Op: "FileStat", Reason: "no numstat line"}
	}
	return stat, nil
}

// Compile-time interface conformance check.
var _ HistoryClient = (*MockClient)(nil)
