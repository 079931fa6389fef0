package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/masmgr/githistory-go/config"
	"github.com/masmgr/githistory-go/internal/git"
)

const (
	hashA = "1111111111111111111111111111111111111111"
	hashB = "2222222222222222222222222222222222222222"
)

// testEnv is an isolated configuration with its own repositories root.
type testEnv struct {
	t          *testing.T
	configPath string
	reposDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReposDir = filepath.Join(dir, "repos")
	cfg.OutDir = filepath.Join(dir, "out")
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.Log.Level = "disabled"

	path := filepath.Join(dir, "githistory.yaml")
	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return &testEnv{t: t, configPath: path, reposDir: cfg.ReposDir}
}

// run executes the CLI with the environment's config and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"githistory", "--config", e.configPath}, args...)
	err := app.RunContext(context.Background(), argv)
	return stdout.String(), err
}

// mockClients serves MockClients by repository name instead of running git.
// Unknown repositories get a client that is not cloned.
type mockClients struct {
	mu      sync.Mutex
	clients map[string]*git.MockClient
}

func useMockClients(t *testing.T, mocks ...*git.MockClient) *mockClients {
	t.Helper()

	m := &mockClients{clients: map[string]*git.MockClient{}}
	for _, mock := range mocks {
		m.clients[mock.Repo.Name] = mock
	}

	orig := newHistoryClient
	newHistoryClient = func(repo git.Repository, _ git.Runner, _ ...git.ClientOption) git.HistoryClient {
		m.mu.Lock()
		defer m.mu.Unlock()
		mock, ok := m.clients[repo.Name]
		if !ok {
			mock = git.NewMockClient(repo)
			mock.Cloned = false
			m.clients[repo.Name] = mock
		}
		mock.Repo = repo
		return mock
	}
	t.Cleanup(func() { newHistoryClient = orig })
	return m
}

// mockRepo returns a cloned MockClient for the repository behind rawURL.
func mockRepo(t *testing.T, rawURL string) *git.MockClient {
	t.Helper()
	name, err := git.RepositoryName(rawURL)
	if err != nil {
		t.Fatalf("RepositoryName(%q) failed: %v", rawURL, err)
	}
	return git.NewMockClient(git.Repository{URL: rawURL, Name: name})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
