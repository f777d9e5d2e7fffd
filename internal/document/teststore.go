package document

import (
	"path/filepath"
	"testing"
)

// NewTestStore creates a store backed by a document file in a fresh
// temporary directory.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "inventar.json"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	return s
}
