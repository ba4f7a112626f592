package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot is the persisted form of a Store. A missing key decodes as an
// empty collection.
type Snapshot struct {
	Users        []Document `json:"users"`
	Incidents    []Document `json:"incidents"`
	StatusChecks []Document `json:"status_checks"`
}

// Persister reads and writes whole store snapshots.
type Persister interface {
	// Load returns the last saved snapshot, or nil with a nil error when
	// nothing has been saved yet.
	Load() (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(snap *Snapshot) error
	Close() error
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snap, nil
}

// FilePersister keeps the snapshot in a single JSON file.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Path() string {
	return p.path
}

func (p *FilePersister) Load() (*Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

func (p *FilePersister) Save(snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writeFileAtomic(p.path, data, 0o644)
}

func (p *FilePersister) Close() error {
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename, so readers never observe a half-written file.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

// MemoryPersister keeps the encoded snapshot in memory. Data is lost on restart.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load() (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil, nil
	}
	return decodeSnapshot(p.data)
}

func (p *MemoryPersister) Save(snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.data = data
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersister) Close() error {
	return nil
}
