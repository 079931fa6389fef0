package git

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Repository maps a remote URL to its working directory under the
// repositories root. Name is fixed at construction.
type Repository struct {
	URL  string
	Name string
	Root string
	Dir  string
}

// NewRepository derives the repository name from url and places its working
// directory at <reposRoot>/<name>.
func NewRepository(rawURL, reposRoot string) (Repository, error) {
	name, err := RepositoryName(rawURL)
	if err != nil {
		return Repository{}, err
	}
	root, err := filepath.Abs(reposRoot)
	if err != nil {
		return Repository{}, fmt.Errorf("resolve repositories root: %w", err)
	}
	return Repository{
		URL:  rawURL,
		Name: name,
		Root: root,
		Dir:  filepath.Join(root, filepath.FromSlash(name)),
	}, nil
}

// RepositoryName returns the URL path without its leading slash and a
// trailing ".git". Both "https://host/org/repo(.git)" and the scp-like
// "git@host:org/repo(.git)" yield "org/repo".
func RepositoryName(rawURL string) (string, error) {
	p := urlPath(strings.TrimSpace(rawURL))

	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	p = strings.TrimSuffix(p, ".git")

	if p == "" {
		return "", fmt.Errorf("repository url %q has no path", rawURL)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("repository url %q has an invalid path %q", rawURL, p)
		}
	}
	return path.Clean(p), nil
}

func urlPath(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return u.Path
	}
	// scp-like syntax: [user@]host:path, where host has no slash.
	if host, rest, ok := strings.Cut(raw, ":"); ok && !strings.Contains(host, "/") && host != "" {
		return rest
	}
	return raw
}
