package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"espritjobs-engine/internal/config"
	"espritjobs-engine/internal/extract"
	"espritjobs-engine/internal/fetch"
	"espritjobs-engine/internal/feed"
	"espritjobs-engine/internal/scan"
	"espritjobs-engine/internal/secrets"
	"espritjobs-engine/internal/store"
)

var (
	flagMaxJobs   int
	flagReset     bool
	flagSkipFeeds bool
)

func init() {
	runCmd.Flags().IntVar(&flagMaxJobs, "max-jobs", 0, "override scan.max_jobs for this run")
	runCmd.Flags().BoolVar(&flagReset, "reset", false, "forced restart: rescan from the seed id")
	runCmd.Flags().BoolVar(&flagSkipFeeds, "skip-feeds", false, "scan only, do not regenerate feeds")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs one scan and regenerates the published feeds.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir := dataDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		cfg, err := loadConfig(dir)
		if err != nil {
			return err
		}
		if flagMaxJobs > 0 {
			cfg.Scan.MaxJobs = flagMaxJobs
		}

		// One scan at a time against this data dir: a second invocation
		// racing the same state file is undefined behavior.
		lock := flock.New(filepath.Join(dir, "scraper.lock"))
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !locked {
			return errors.New("another scraper instance holds the lock, refusing to run")
		}
		defer lock.Unlock()

		db, err := store.Open(filepath.Join(dir, "jobs.db"))
		if err != nil {
			return fmt.Errorf("open job store: %w", err)
		}
		defer db.Close()

		email, password, err := secrets.Credentials(cfg)
		if err != nil {
			return err
		}

		client, err := fetch.New(fetch.Config{
			BaseURL:           cfg.App.BaseURL,
			Email:             email,
			Password:          password,
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
			Burst:             cfg.HTTP.Burst,
			RetryCount:        cfg.HTTP.RetryCount,
			Timeout:           time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			return err
		}
		if err := client.Login(ctx); err != nil {
			return fmt.Errorf("login: %w", err)
		}

		extractor, err := extract.New(cfg.App.BaseURL)
		if err != nil {
			return err
		}

		scanner := scan.New(scan.Config{
			SeedID:          cfg.Scan.SeedID,
			MaxJobs:         cfg.Scan.MaxJobs,
			MissThreshold:   cfg.Scan.MissThreshold,
			Backtrack:       cfg.Scan.Backtrack,
			CheckpointEvery: cfg.Scan.CheckpointEvery,
			ForceRestart:    flagReset,
		}, client, extractor, db, scan.FileStore{Path: statePath(dir)})

		sum, runErr := scanner.Run(ctx)
		if runErr != nil {
			// Progress is already checkpointed; report and keep going so the
			// feeds still reflect everything found so far.
			log.Printf("[run] scan stopped early: %v", runErr)
		}

		if !flagSkipFeeds {
			if err := writeFeeds(ctx, cfg, db, &sum); err != nil {
				return err
			}
		}
		if n, err := db.Count(ctx); err == nil {
			log.Printf("[run] dataset now holds %d postings", n)
		}

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			if errors.Is(runErr, scan.ErrAuthExpired) {
				return fmt.Errorf("session expired mid-scan, rotate credentials: %w", runErr)
			}
			return runErr
		}
		return nil
	},
}

func loadConfig(dir string) (config.Config, error) {
	path, err := config.EnsureUserConfig(dir)
	if err != nil {
		return config.Config{}, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("config load (%s): %w", path, err)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func statePath(dir string) string {
	return filepath.Join(dir, "scraper_state.json")
}

func writeFeeds(ctx context.Context, cfg config.Config, db *store.DB, sum *scan.Summary) error {
	jobs, err := db.List(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	w := feed.NewWriter(feed.Config{
		Title:       cfg.Feeds.Title,
		Description: cfg.Feeds.Description,
		SiteURL:     cfg.Feeds.SiteURL,
		FeedBaseURL: cfg.Feeds.FeedBaseURL,
		OutDir:      dataDir(),
	})
	if err := w.WriteAll(ctx, jobs); err != nil {
		return fmt.Errorf("write feeds: %w", err)
	}

	if sum != nil {
		info := feed.RunInfo{
			TotalJobs:      len(jobs),
			SessionStartID: sum.StartID,
			SessionEndID:   sum.LastAttemptedID,
			NextJobID:      sum.LastAttemptedID + 1,
			FoundThisRun:   sum.Found,
			MissedThisRun:  sum.Missing,
			SoftFailedRun:  sum.SoftFailures,
			StoppedBecause: string(sum.Stopped),
		}
		if err := w.WriteSummary(info); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}
