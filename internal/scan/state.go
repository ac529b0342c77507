package scan

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// State is the persisted scan position plus cumulative counters. It is
// owned by the Scanner; nothing else writes it.
type State struct {
	LastProcessedID int       `json:"last_processed_id"`
	UpdatedAt       time.Time `json:"updated_at"`
	TotalRuns       int       `json:"total_runs"`
	TotalFound      int       `json:"total_found"`
	TotalMissing    int       `json:"total_missing"`
}

// FileStore persists State as a small JSON document. Saves go through a
// temp file rename: if anything fails before the rename, the previous
// file is untouched.
type FileStore struct {
	Path string
}

func (f FileStore) Load() (State, bool, error) {
	var st State
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, false, err
	}
	return st, true, nil
}

func (f FileStore) Save(st State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// Reset removes the persisted state. Only the operator-facing reset command
// calls this; the scanner itself never deletes state.
func (f FileStore) Reset() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
