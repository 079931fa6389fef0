package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"

	"github.com/masmgr/githistory-go/internal/cmdexec"
	"github.com/masmgr/githistory-go/internal/codec"
)

// EmptyTreeID is the id of the tree with no entries
// (4b825dc642cb6eb9a060e54bf8d69288fbee4904). FileStat diffs against it
// when no base revision is given.
var EmptyTreeID = plumbing.ComputeHash(plumbing.TreeObject, []byte{}).String()

// Runner runs one command. *cmdexec.Executor implements it.
type Runner interface {
	Run(ctx context.Context, command cmdexec.Command, opts cmdexec.Options) (*cmdexec.Result, error)
}

// Client runs git against one repository's working directory. Each method
// issues at most one git process.
type Client struct {
	repo    Repository
	runner  Runner
	decoder *codec.Decoder
	logger  zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDecoder sets the decoder applied to git output.
func WithDecoder(d *codec.Decoder) ClientOption {
	return func(c *Client) { c.decoder = d }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for repo that runs commands through runner.
func NewClient(repo Repository, runner Runner, opts ...ClientOption) *Client {
	c := &Client{
		repo:    repo,
		runner:  runner,
		decoder: codec.UTF8,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("repo", repo.Name).Logger()
	return c
}

// Repository returns the repository the client operates on.
func (c *Client) Repository() Repository {
	return c.repo
}

type gitCall struct {
	dir       string
	noTimeout bool
	env       map[string]string
	args      []string
}

func (c *Client) command(args ...string) cmdexec.Command {
	return cmdexec.Argv("git", append([]string{"--no-pager", "-c", "core.quotePath=false"}, args...)...)
}

func (c *Client) exec(ctx context.Context, call gitCall) (cmdexec.Command, *cmdexec.Result, error) {
	env := map[string]string{"GIT_TERMINAL_PROMPT": "0"}
	for k, v := range call.env {
		env[k] = v
	}

	command := c.command(call.args...)
	res, err := c.runner.Run(ctx, command, cmdexec.Options{
		Dir:       call.dir,
		Env:       env,
		NoTimeout: call.noTimeout,
		Label:     "git " + call.args[0],
	})
	return command, res, err
}

// run is exec with stdout decoded.
func (c *Client) run(ctx context.Context, call gitCall) (cmdexec.Command, string, error) {
	command, res, err := c.exec(ctx, call)
	if err != nil {
		return command, "", err
	}
	return command, c.decoder.Decode(res.Stdout), nil
}

// query runs a read-only git command in the working directory.
func (c *Client) query(ctx context.Context, args ...string) (cmdexec.Command, string, error) {
	if err := c.requireCloned(); err != nil {
		return cmdexec.Command{}, "", err
	}
	return c.run(ctx, gitCall{dir: c.repo.Dir, args: args})
}

// requireCloned checks the working directory without starting a process.
func (c *Client) requireCloned() error {
	info, err := os.Stat(c.repo.Dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", c.repo.Name, ErrNotCloned)
	}
	return nil
}

func checkRevision(rev string) error {
	if rev == "" {
		return fmt.Errorf("%w: empty", ErrInvalidRevision)
	}
	if strings.HasPrefix(rev, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidRevision, rev)
	}
	return nil
}

// IsCloned reports whether the working directory exists and is the top
// level of a git work tree. A missing directory is detected without running
// git. Failures of any kind report false.
func (c *Client) IsCloned(ctx context.Context) bool {
	if err := c.requireCloned(); err != nil {
		return false
	}

	_, out, err := c.run(ctx, gitCall{
		dir:  c.repo.Dir,
		args: []string{"rev-parse", "--is-inside-work-tree", "--show-toplevel"},
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("rev-parse failed, treating as not cloned")
		return false
	}

	lines := parseLines(out)
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "true" {
		return false
	}
	return samePath(strings.TrimSpace(lines[1]), c.repo.Dir)
}

func samePath(a, b string) bool {
	return canonicalPath(a) == canonicalPath(b)
}

func canonicalPath(p string) string {
	p = filepath.Clean(filepath.FromSlash(p))
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return p
}

// Clone clones the remote into the working directory without a deadline.
// It returns false when the repository is already cloned or git fails; the
// failure is logged, not returned.
func (c *Client) Clone(ctx context.Context, extraArgs ...string) bool {
	if c.IsCloned(ctx) {
		c.logger.Debug().Str("dir", c.repo.Dir).Msg("already cloned")
		return false
	}

	if err := os.MkdirAll(c.repo.Root, 0o755); err != nil {
		c.logger.Warn().Err(err).Str("root", c.repo.Root).Msg("cannot create repositories root")
		return false
	}

	args := append([]string{"clone"}, extraArgs...)
	args = append(args, "--", c.repo.URL, filepath.FromSlash(c.repo.Name))

	_, _, err := c.run(ctx, gitCall{dir: c.repo.Root, noTimeout: true, args: args})
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.repo.URL).Msg("clone failed")
		return false
	}
	c.logger.Info().Str("dir", c.repo.Dir).Msg("cloned")
	return true
}

// AllCommits returns every commit reachable from HEAD, oldest first.
func (c *Client) AllCommits(ctx context.Context) ([]Commit, error) {
	return c.commits(ctx, "AllCommits")
}

// MainBranchCommits returns the first-parent chain from HEAD, oldest first.
func (c *Client) MainBranchCommits(ctx context.Context) ([]Commit, error) {
	return c.commits(ctx, "MainBranchCommits", "--first-parent")
}

func (c *Client) commits(ctx context.Context, op string, extra ...string) ([]Commit, error) {
	args := append([]string{"log", "--reverse", "--date=default", "--format=" + logFormat}, extra...)
	command, out, err := c.query(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}

	lines := parseLines(out)
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		commit, ok := parseCommitLine(line)
		if !ok {
			return nil, &UnexpectedOutputError{
				Op:      op,
				Command: command.String(),
				Output:  line,
				Reason:  "expected \"<hash>, <date>, <subject>\"",
			}
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// ParentHashes returns the parents of hash: none for a root commit, two or
// more for a merge.
func (c *Client) ParentHashes(ctx context.Context, hash string) ([]string, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	command, out, err := c.query(ctx, "show", "--no-patch", "--format=%P", hash)
	if err != nil {
		return nil, fmt.Errorf("parents of %s: %w", hash, err)
	}

	parents, ok := parseParents(out)
	if !ok {
		return nil, &UnexpectedOutputError{
			Op:      "ParentHashes",
			Command: command.String(),
			Output:  out,
			Reason:  "expected whitespace-separated hashes",
		}
	}
	return parents, nil
}

// FileContent returns path as of hash, decoded to text. A path that does
// not exist at hash yields "" and no error.
func (c *Client) FileContent(ctx context.Context, hash, path string) (string, error) {
	data, err := c.FileContentBytes(ctx, hash, path)
	if err != nil {
		return "", err
	}
	return c.decoder.Decode(data), nil
}

// FileContentBytes is FileContent without decoding.
func (c *Client) FileContentBytes(ctx context.Context, hash, path string) ([]byte, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	if err := c.requireCloned(); err != nil {
		return nil, err
	}

	_, res, err := c.exec(ctx, gitCall{dir: c.repo.Dir, args: []string{"show", hash + ":" + path}})
	if err != nil {
		var cmdErr *cmdexec.CommandError
		if errors.As(err, &cmdErr) {
			c.logger.Debug().
				Str("hash", hash).
				Str("path", path).
				Int("exit", cmdErr.ExitCode).
				Msg("file not readable at revision")
			return []byte{}, nil
		}
		return nil, fmt.Errorf("show %s:%s: %w", hash, path, err)
	}
	return res.Stdout, nil
}

// AllFiles lists every file in the tree of hash.
func (c *Client) AllFiles(ctx context.Context, hash string) ([]string, error) {
	if err := checkRevision(hash); err != nil {
		return nil, err
	}
	_, out, err := c.query(ctx, "ls-tree", "-z", "--name-only", "-r", hash)
	if err != nil {
		return nil, fmt.Errorf("list files at %s: %w", hash, err)
	}
	return parseNULFields(out), nil
}

// ChangedFiles lists files that differ between from and to, excluding
// renames. When one side is empty it lists every file of the other.
func (c *Client) ChangedFiles(ctx context.Context, from, to string) ([]string, error) {
	changes, err := c.Changes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(changes))
	for i, ch := range changes {
		paths[i] = ch.Path
	}
	return paths, nil
}

// Changes is ChangedFiles with the kind of each change. Listings of a single
// tree report every file as added.
func (c *Client) Changes(ctx context.Context, from, to string) ([]Change, error) {
	switch {
	case from == "" && to == "":
		return nil, fmt.Errorf("changed files: %w: both revisions empty", ErrInvalidRevision)
	case from == "":
		return c.treeAsChanges(ctx, to)
	case to == "":
		return c.treeAsChanges(ctx, from)
	}
	if err := checkRevision(from); err != nil {
		return nil, err
	}
	if err := checkRevision(to); err != nil {
		return nil, err
	}

	command, out, err := c.query(ctx, "diff-tree", "-z", "--no-commit-id", "--name-status", "--histogram", "-M100%", "-r", from, to)
	if err != nil {
		return nil, fmt.Errorf("changed files %s..%s: %w", from, to, err)
	}
	changes, ok := parseNameStatus(parseNULFields(out))
	if !ok {
		return nil, &UnexpectedOutputError{
			Op:      "Changes",
			Command: command.String(),
			Output:  out,
			Reason:  "expected NUL-separated status and path records",
		}
	}
	return changes, nil
}

func (c *Client) treeAsChanges(ctx context.Context, hash string) ([]Change, error) {
	files, err := c.AllFiles(ctx, hash)
	if err != nil {
		return nil, err
	}
	changes := make([]Change, len(files))
	for i, f := range files {
		changes[i] = Change{Path: f, Kind: ChangeKindAdded}
	}
	return changes, nil
}

// FileStat returns added and deleted line counts of path between from and
// to. An empty from diffs against the empty tree. The path is matched
// literally, never as a glob.
func (c *Client) FileStat(ctx context.Context, from, to, path string) (FileStat, error) {
	if path == "" {
		return FileStat{}, errors.New("file stat: empty path")
	}
	if from == "" {
		from = EmptyTreeID
	}
	if err := checkRevision(from); err != nil {
		return FileStat{}, err
	}
	if err := checkRevision(to); err != nil {
		return FileStat{}, err
	}
	if err := c.requireCloned(); err != nil {
		return FileStat{}, err
	}

	command, out, err := c.run(ctx, gitCall{
		dir:  c.repo.Dir,
		env:  map[string]string{"GIT_LITERAL_PATHSPECS": "1"},
		args: []string{"diff", "--numstat", "--histogram", from, to, "--", path},
	})
	if err != nil {
		return FileStat{}, fmt.Errorf("file stat %s: %w", path, err)
	}

	lines := parseLines(out)
	if len(lines) == 0 {
		return FileStat{}, c.unexpectedStat(command, from, to, path, out, "no numstat line")
	}
	stat, ok := parseNumstatLine(lines[0])
	if !ok {
		return FileStat{}, c.unexpectedStat(command, from, to, path, out, "malformed numstat line")
	}
	return stat, nil
}

func (c *Client) unexpectedStat(command cmdexec.Command, from, to, path, out, reason string) error {
	c.logger.Error().
		Str("from", from).
		Str("to", to).
		Str("cmd", command.String()).
		Str("path", path).
		Str("escaped", codec.EscapePath(path)).
		Msg(reason)
	return &UnexpectedOutputError{
		Op:      "FileStat",
		Command: command.String(),
		Output:  out,
		Reason:  reason,
	}
}
