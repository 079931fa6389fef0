package git

// Commit is one line of `git log --format="%H, %cd, %s"`.
type Commit struct {
	Hash    string `json:"hash"`
	Date    string `json:"date"` // committer date exactly as git printed it
	Subject string `json:"subject"`
}

// FileStat holds the line counts of one file between two revisions.
// Binary files report zero for both.
type FileStat struct {
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// Churn returns total lines changed (added + deleted).
func (s FileStat) Churn() int {
	return s.Added + s.Deleted
}

// Change is a file reported by diff-tree between two revisions.
type Change struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
	ChangeKindTypeChanged
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	case ChangeKindTypeChanged:
		return "type-changed"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and CSV output.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// changeKindFromStatus converts a diff status letter to ChangeKind.
func changeKindFromStatus(status string) ChangeKind {
	if status == "" {
		return ChangeKindModified
	}
	switch status[0] {
	case 'A':
		return ChangeKindAdded
	case 'D':
		return ChangeKindDeleted
	case 'R':
		return ChangeKindRenamed
	case 'T':
		return ChangeKindTypeChanged
	default:
		return ChangeKindModified
	}
}
