package git

import (
	"strings"
	"time"
)

// CommitRecord is the minimal view of a commit the binner needs:
// when it happened and who made it.
type CommitRecord struct {
	When   time.Time
	Author string
	Email  string
}

// DisplayAuthor returns the name used to group and label commits. Falls back
// to the email when the author name is missing.
func (r CommitRecord) DisplayAuthor() string {
	if name := strings.TrimSpace(r.Author); name != "" {
		return name
	}
	return strings.ToLower(r.Email)
}

// LogOptions configures a commit source.
type LogOptions struct {
	RepoPath       string
	Branch         string
	Since          *time.Time
	Until          *time.Time
	Authors        []string // Glob patterns; empty means all authors
	ExcludeAuthors []string // Glob patterns
	NoMerges       bool
	ExtraArgs      []string // Passed through verbatim to the git CLI source
}
