package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"espritjobs-engine/internal/domain"
)

type Config struct {
	Title       string
	Description string
	// SiteURL is the human-facing jobs page the feeds point back at.
	SiteURL string
	// FeedBaseURL is where the generated files get published; used for the
	// feed self-references. Optional.
	FeedBaseURL string
	OutDir      string
}

// Writer renders the accumulated dataset into the published outputs.
// Callers pass jobs already sorted newest-id first.
type Writer struct {
	cfg Config
	now func() time.Time
}

func NewWriter(cfg Config) *Writer {
	return &Writer{cfg: cfg, now: time.Now}
}

// WriteAll renders feed.xml, jobs.json and index.html. The three outputs
// are independent, so they render concurrently; the first failure wins.
func (w *Writer) WriteAll(ctx context.Context, jobs []domain.JobPosting) error {
	if err := os.MkdirAll(w.cfg.OutDir, 0o755); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return w.writeRSS(jobs) })
	g.Go(func() error { return w.writeJSONFeed(jobs) })
	g.Go(func() error { return w.writeHTMLIndex(jobs) })
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("[feed] wrote %d jobs to %s", len(jobs), w.cfg.OutDir)
	return nil
}

// RunInfo is the session record emitted alongside the feeds, mirroring the
// scan summary for whoever monitors the automation.
type RunInfo struct {
	TotalJobs      int       `json:"total_jobs"`
	SessionStartID int       `json:"session_start_job_id"`
	SessionEndID   int       `json:"session_end_job_id"`
	NextJobID      int       `json:"next_job_id"`
	FoundThisRun   int       `json:"found_this_run"`
	MissedThisRun  int       `json:"missed_this_run"`
	SoftFailedRun  int       `json:"soft_failed_this_run"`
	StoppedBecause string    `json:"stopped_because"`
	GeneratedAt    time.Time `json:"generated_at"`
}

func (w *Writer) WriteSummary(info RunInfo) error {
	if info.GeneratedAt.IsZero() {
		info.GeneratedAt = w.now().UTC()
	}
	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.cfg.OutDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.cfg.OutDir, "summary.json"), append(b, '\n'), 0o644)
}

func (w *Writer) feedURL(file string) string {
	if w.cfg.FeedBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", w.cfg.FeedBaseURL, file)
}
