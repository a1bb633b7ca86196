package git

import "context"

// MockSource is a test double for a commit source.
// It allows tests to provide predefined commit data without a real Git repository.
type MockSource struct {
	Records []CommitRecord
	Error   error
}

// NewMockSource creates a new MockSource with the given data.
func NewMockSource(records []CommitRecord, err error) *MockSource {
	return &MockSource{Records: records, Error: err}
}

// Read returns the predefined records or error.
func (m *MockSource) Read(_ context.Context) ([]CommitRecord, error) {
	return m.Records, m.Error
}
