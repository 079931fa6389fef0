// Package pathfilter selects repository paths with doublestar include and
// exclude globs.
package pathfilter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds include and exclude patterns. Exclusions win; an empty
// include list accepts everything not excluded.
type Filter struct {
	include []string
	exclude []string
}

// New validates the patterns and returns a Filter.
func New(include, exclude []string) (*Filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &Filter{include: include, exclude: exclude}, nil
}

// Empty reports whether the filter accepts every path.
func (f *Filter) Empty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

// Match reports whether path passes the filter.
func (f *Filter) Match(path string) bool {
	if f.Empty() {
		return true
	}

	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, pattern := range f.include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// Apply returns the elements of items whose path passes the filter.
func Apply[T any](f *Filter, items []T, path func(T) string) []T {
	if f.Empty() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(path(item)) {
			out = append(out, item)
		}
	}
	return out
}
