package scan_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"espritjobs-engine/internal/scan"
)

func TestFileStoreLoadAbsent(t *testing.T) {
	fs := scan.FileStore{Path: filepath.Join(t.TempDir(), "state.json")}
	_, ok, err := fs.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := scan.FileStore{Path: filepath.Join(t.TempDir(), "nested", "state.json")}
	in := scan.State{
		LastProcessedID: 801,
		UpdatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		TotalRuns:       7,
		TotalFound:      42,
		TotalMissing:    9,
	}
	require.NoError(t, fs.Save(in))

	out, ok, err := fs.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestFileStoreFailedSaveLeavesPriorStateIntact(t *testing.T) {
	dir := t.TempDir()
	fs := scan.FileStore{Path: filepath.Join(dir, "state.json")}
	require.NoError(t, fs.Save(scan.State{LastProcessedID: 801}))

	before, err := os.ReadFile(fs.Path)
	require.NoError(t, err)

	// Occupy the temp path with a directory so the write cannot happen.
	require.NoError(t, os.Mkdir(fs.Path+".tmp", 0o755))
	require.Error(t, fs.Save(scan.State{LastProcessedID: 999}))

	after, err := os.ReadFile(fs.Path)
	require.NoError(t, err)
	require.Equal(t, before, after, "a failed save must not touch the existing file")
}

func TestFileStoreCorruptLoadErrors(t *testing.T) {
	fs := scan.FileStore{Path: filepath.Join(t.TempDir(), "state.json")}
	require.NoError(t, os.WriteFile(fs.Path, []byte("{oops"), 0o644))

	_, ok, err := fs.Load()
	require.Error(t, err)
	require.False(t, ok)
}

func TestFileStoreReset(t *testing.T) {
	fs := scan.FileStore{Path: filepath.Join(t.TempDir(), "state.json")}
	require.NoError(t, fs.Reset(), "resetting absent state is not an error")

	require.NoError(t, fs.Save(scan.State{LastProcessedID: 801}))
	require.NoError(t, fs.Reset())

	_, ok, err := fs.Load()
	require.NoError(t, err)
	require.False(t, ok)
}
