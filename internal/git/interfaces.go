package git

import "context"

// CommitSource defines the interface for reading commit history.
// This abstraction allows for easier testing and alternative implementations.
type CommitSource interface {
	// Read reads the commit history and returns a slice of CommitRecord.
	Read(ctx context.Context) ([]CommitRecord, error)
}

// Compile-time interface conformance checks.
var (
	_ CommitSource = (*HistoryReader)(nil)
	_ CommitSource = (*LogReader)(nil)
	_ CommitSource = (*MockSource)(nil)
)
