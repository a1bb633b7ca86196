package git

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// HistoryReader reads commit history from a Git repository in-process.
type HistoryReader struct {
	repo *gogit.Repository
	opts LogOptions
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts LogOptions) (*HistoryReader, error) {
	repo, err := gogit.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return &HistoryReader{repo: repo, opts: opts}, nil
}

// Read reads commit records from the repository. Records are returned in
// whatever order the log walk yields them; the binner sorts defensively.
func (r *HistoryReader) Read(ctx context.Context) ([]CommitRecord, error) {
	from, err := r.startHash()
	if err != nil {
		return nil, err
	}

	logOpts := &gogit.LogOptions{From: from}
	if r.opts.Since != nil {
		logOpts.Since = r.opts.Since
	}
	if r.opts.Until != nil {
		logOpts.Until = r.opts.Until
	}

	cIter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, err
	}

	var records []CommitRecord

	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.opts.NoMerges && c.NumParents() > 1 {
			return nil
		}

		rec := CommitRecord{
			When:   c.Committer.When,
			Author: c.Author.Name,
			Email:  c.Author.Email,
		}
		if !r.matchesAuthor(rec) {
			return nil
		}

		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// startHash resolves the revision the log walk starts from.
func (r *HistoryReader) startHash() (plumbing.Hash, error) {
	branch := strings.TrimSpace(r.opts.Branch)
	if branch == "" || strings.EqualFold(branch, "HEAD") {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *hash, nil
}

// matchesAuthor checks the record against the include/exclude author globs.
// Patterns match either the author name or the email, case-insensitively.
func (r *HistoryReader) matchesAuthor(rec CommitRecord) bool {
	return matchesAuthorGlobs(rec, r.opts.Authors, r.opts.ExcludeAuthors)
}

func matchesAuthorGlobs(rec CommitRecord, include, exclude []string) bool {
	name := strings.ToLower(rec.Author)
	email := strings.ToLower(rec.Email)

	// Check exclude patterns first
	for _, pattern := range exclude {
		pattern = strings.ToLower(pattern)
		if globMatch(pattern, name) || globMatch(pattern, email) {
			return false
		}
	}

	// If no include patterns, accept all
	if len(include) == 0 {
		return true
	}

	for _, pattern := range include {
		pattern = strings.ToLower(pattern)
		if globMatch(pattern, name) || globMatch(pattern, email) {
			return true
		}
	}

	return false
}

func globMatch(pattern, s string) bool {
	matched, _ := doublestar.Match(pattern, s)
	return matched
}
