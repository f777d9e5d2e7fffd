// Package document owns the on-disk representation of the service: one
// JSON file holding every collection. The file is the single source of
// truth; Load re-reads it on every call and Save rewrites it completely,
// so edits made by external tooling between requests are observed.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mlakar/inventar/internal/model"
)

// Store reads and writes the document file and serializes mutations.
type Store struct {
	path string

	// mu is the exclusive mutation slot: at most one load-mutate-save
	// cycle runs at a time. Readers never take it.
	mu sync.Mutex
}

// Open returns a store for the document at path, creating the parent
// directory if needed. The file itself appears on first save.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the document file path.
func (s *Store) Path() string { return s.path }

// Exists reports whether a document file has been persisted yet.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the current document from disk. A missing file yields a
// fresh empty document. An unparseable file is moved aside to a
// timestamped quarantine name and a fresh document is returned, so the
// service stays available after corruption instead of failing every
// request.
func (s *Store) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := model.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		quarantine := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
			return nil, fmt.Errorf("quarantining corrupt document: %w", renameErr)
		}
		slog.Warn("document unreadable, starting fresh",
			"quarantine", filepath.Base(quarantine), "error", err)
		return model.NewDocument(), nil
	}
	return doc, nil
}

// Save serializes doc and atomically replaces the document file: the
// bytes go to a temporary file in the same directory, are synced, then
// renamed over the target. A concurrent reader observes either the
// previous or the new content, never a partial write, and a crash
// mid-save leaves the previous file intact.
func (s *Store) Save(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("creating temporary document: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temporary document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
