package git

import (
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/samber/lo"
)

// commitFieldSep separates the fields of logFormat. Only the first two
// occurrences split; the subject keeps any further commas.
const commitFieldSep = ","

// logFormat is used with --date=default, whose %cd form has no commas
// whatever log.date says.
const logFormat = "%H, %cd, %s"

// parseLines splits command output into lines, dropping empty ones, so that
// empty output yields an empty, non-nil slice.
func parseLines(out string) []string {
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	return lo.Compact(lines)
}

// parseCommitLine parses one line of logFormat output.
func parseCommitLine(line string) (Commit, bool) {
	fields := strings.SplitN(line, commitFieldSep, 3)
	if len(fields) < 3 {
		return Commit{}, false
	}
	hash := strings.TrimSpace(fields[0])
	if !plumbing.IsHash(hash) {
		return Commit{}, false
	}
	return Commit{
		Hash:    hash,
		Date:    strings.TrimSpace(fields[1]),
		Subject: strings.TrimPrefix(fields[2], " "),
	}, true
}

// parseParents splits `%P` output into parent hashes.
func parseParents(out string) ([]string, bool) {
	parents := strings.Fields(out)
	if lo.SomeBy(parents, func(h string) bool { return !plumbing.IsHash(h) }) {
		return nil, false
	}
	if parents == nil {
		parents = []string{}
	}
	return parents, true
}

// parseNULFields splits `-z` output into its NUL-terminated records.
// Paths in these records are never quoted by git.
func parseNULFields(out string) []string {
	return lo.Compact(strings.Split(out, "\x00"))
}

// parseNameStatus parses `diff-tree -z --name-status` records: a status
// followed by one path, or by two paths for renames and copies. Renames are
// skipped; a copy is reported as its new path.
func parseNameStatus(fields []string) ([]Change, bool) {
	changes := make([]Change, 0, len(fields)/2)
	for i := 0; i < len(fields); {
		status := strings.TrimSpace(fields[i])
		if status == "" || i+1 >= len(fields) {
			return nil, false
		}

		switch status[0] {
		case 'R', 'C':
			if i+2 >= len(fields) {
				return nil, false
			}
			if status[0] == 'C' {
				changes = append(changes, Change{Path: fields[i+2], Kind: ChangeKindAdded})
			}
			i += 3
		default:
			changes = append(changes, Change{Path: fields[i+1], Kind: changeKindFromStatus(status)})
			i += 2
		}
	}
	return changes, true
}

// parseNumstatLine parses "<added>\t<deleted>\t<path>". A "-" count, which
// git prints for binary files, is read as 0.
func parseNumstatLine(line string) (FileStat, bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return FileStat{}, false
	}
	added, ok := parseNumstatCount(fields[0])
	if !ok {
		return FileStat{}, false
	}
	deleted, ok := parseNumstatCount(fields[1])
	if !ok {
		return FileStat{}, false
	}
	return FileStat{Added: added, Deleted: deleted}, true
}

func parseNumstatCount(field string) (int, bool) {
	field = strings.TrimSpace(field)
	if field == "-" {
		return 0, true
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
