package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"espritjobs-engine/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Validate(config.Default()))
}

func TestDefaultValues(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, 795, cfg.Scan.SeedID)
	require.Equal(t, 2, cfg.Scan.MissThreshold)
	require.Equal(t, 1, cfg.Scan.Backtrack)
	require.Equal(t, "https://espritconnect.com", cfg.App.BaseURL)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := config.Default()
	cfg.Auth.Email = "student@esprit.tn"
	cfg.Scan.MaxJobs = 50
	cfg.Feeds.FeedBaseURL = "https://example.github.io/jobs/data"
	require.NoError(t, config.SaveAtomic(path, cfg))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app: [not: closed"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.App.BaseURL = "not a url"
	cfg.Scan.SeedID = 0
	cfg.HTTP.RequestsPerSecond = 0

	err := config.Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "app.base_url")
	require.Contains(t, err.Error(), "scan.seed_id")
	require.Contains(t, err.Error(), "http.requests_per_second")
}

func TestSaveAtomicRefusesInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	var cfg config.Config
	require.Error(t, config.SaveAtomic(path, cfg))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestEnsureUserConfigBootstraps(t *testing.T) {
	dir := t.TempDir()

	path, err := config.EnsureUserConfig(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "config.yml"), path)

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), got)
}

func TestEnsureUserConfigKeepsExisting(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Scan.SeedID = 1200
	require.NoError(t, config.SaveAtomic(filepath.Join(dir, "config.yml"), cfg))

	path, err := config.EnsureUserConfig(dir)
	require.NoError(t, err)

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1200, got.Scan.SeedID)
}
