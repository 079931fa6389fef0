// Package subject selects commits by matching their subject lines.
package subject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/masmgr/githistory-go/internal/git"
)

// Matcher matches commit subjects against case-insensitive regular
// expressions. A Matcher without patterns matches everything.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns. Blank patterns are skipped.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid subject pattern: %w", err)
		}
		compiled = append(compiled, re)
	}
	return &Matcher{patterns: compiled}, nil
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0
}

// Match reports whether subject matches any pattern.
func (m *Matcher) Match(subject string) bool {
	if m.Empty() {
		return true
	}
	return lo.SomeBy(m.patterns, func(re *regexp.Regexp) bool {
		return re.MatchString(subject)
	})
}

// Filter keeps the commits whose subject matches, preserving order.
func (m *Matcher) Filter(commits []git.Commit) []git.Commit {
	if m.Empty() {
		return commits
	}
	return lo.Filter(commits, func(c git.Commit, _ int) bool {
		return m.Match(c.Subject)
	})
}
