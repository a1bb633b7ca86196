package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// LogReader reads commit history by shelling out to the git CLI. Unlike the
// in-process reader it accepts free-form trailing log arguments, which are
// passed through to `git log` verbatim.
type LogReader struct {
	opts LogOptions
}

// NewLogReader creates a git CLI backed commit source.
func NewLogReader(opts LogOptions) *LogReader {
	return &LogReader{opts: opts}
}

// Read invokes `git log` and parses its output into commit records.
// A failure to start the process or an abnormal exit is returned with the
// underlying cause; there are no retries.
func (r *LogReader) Read(ctx context.Context) ([]CommitRecord, error) {
	// One commit per line, fields NUL-separated: unix timestamp, author
	// name, author email. NUL cannot appear in either field, so the line
	// is reliably splittable.
	const format = "%at%x00%an%x00%ae"

	args := []string{
		"-C", r.opts.RepoPath,
		"log",
		"--no-color",
		"--pretty=format:" + format,
	}

	if r.opts.NoMerges {
		args = append(args, "--no-merges")
	}
	if r.opts.Since != nil {
		args = append(args, fmt.Sprintf("--since=@%d", r.opts.Since.Unix()))
	}
	if r.opts.Until != nil {
		args = append(args, fmt.Sprintf("--until=@%d", r.opts.Until.Unix()))
	}

	branch := strings.TrimSpace(r.opts.Branch)
	if branch != "" && !strings.EqualFold(branch, "HEAD") {
		args = append(args, branch)
	}

	args = append(args, r.opts.ExtraArgs...)

	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("git log failed: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	records, err := parseLogOutput(out)
	if err != nil {
		return nil, err
	}

	return filterAuthors(records, r.opts.Authors, r.opts.ExcludeAuthors), nil
}

// parseLogOutput parses the NUL-delimited `git log` lines into records.
func parseLogOutput(out []byte) ([]CommitRecord, error) {
	lines := bytes.Split(out, []byte{'\n'})
	records := make([]CommitRecord, 0, len(lines))

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}

		fields := bytes.SplitN(line, []byte{0x00}, 3)
		if len(fields) < 3 {
			return nil, fmt.Errorf("unexpected git log line format: %q", line)
		}

		unix, err := strconv.ParseInt(string(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse commit timestamp: %w", err)
		}

		records = append(records, CommitRecord{
			When:   time.Unix(unix, 0),
			Author: string(fields[1]),
			Email:  string(fields[2]),
		})
	}

	return records, nil
}

func filterAuthors(records []CommitRecord, include, exclude []string) []CommitRecord {
	if len(include) == 0 && len(exclude) == 0 {
		return records
	}

	filtered := records[:0]
	for _, rec := range records {
		if matchesAuthorGlobs(rec, include, exclude) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
