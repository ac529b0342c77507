package scan

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Config struct {
	// SeedID is where the very first run starts, and the floor below which
	// resume never backtracks.
	SeedID int
	// MaxJobs caps how many identifiers get fetched in one invocation.
	// Duplicate skips are free and do not count against it.
	MaxJobs int
	// MissThreshold is how many consecutive nonexistent ids signal the
	// frontier. Upstream assigns ids densely, so a small value suffices.
	MissThreshold int
	// Backtrack re-checks a small window below the checkpointed id in case
	// a prior run crashed after a fetch but before its checkpoint.
	Backtrack int
	// CheckpointEvery saves state after every N successful extractions.
	// 0 means only the end-of-run checkpoint.
	CheckpointEvery int
	// ForceRestart discards the persisted position, starts over at SeedID
	// and prunes dataset records below it.
	ForceRestart bool
}

type StopReason string

const (
	StopFrontier StopReason = "frontier"
	StopJobCap   StopReason = "job_cap"
	StopError    StopReason = "error"
	StopCanceled StopReason = "canceled"
)

// Summary reports what a single run did. Counts are per-run; the cumulative
// totals live in State.
type Summary struct {
	StartID           int
	LastAttemptedID   int
	Found             int
	Duplicates        int
	Missing           int
	SoftFailures      int
	ConsecutiveMisses int
	Stopped           StopReason
}

func (s Summary) String() string {
	return fmt.Sprintf("ids %d..%d found=%d dup=%d missing=%d soft_failed=%d stopped=%s",
		s.StartID, s.LastAttemptedID, s.Found, s.Duplicates, s.Missing, s.SoftFailures, s.Stopped)
}

// Scanner sweeps job ids in order, merging finds into the dataset and
// checkpointing its position so the next run resumes past everything
// already attempted.
type Scanner struct {
	cfg     Config
	fetcher PageFetcher
	extract Extractor
	data    Dataset
	states  StateStore
}

func New(cfg Config, f PageFetcher, e Extractor, d Dataset, s StateStore) *Scanner {
	return &Scanner{cfg: cfg, fetcher: f, extract: e, data: d, states: s}
}

// Run executes one sweep. On any early stop (unrecoverable fetch error,
// expired session, cancellation) the progress made so far is checkpointed
// before the error is returned; the Summary is valid either way.
func (s *Scanner) Run(ctx context.Context) (Summary, error) {
	prev, havePrev, err := s.states.Load()
	if err != nil {
		log.Printf("[scan] warning: unreadable state, starting from seed %d: %v", s.cfg.SeedID, err)
		prev, havePrev = State{}, false
	}

	if s.cfg.ForceRestart {
		log.Printf("[scan] forced restart, pruning dataset below id %d", s.cfg.SeedID)
		if err := s.data.DeleteBelow(ctx, s.cfg.SeedID); err != nil {
			return Summary{}, fmt.Errorf("prune dataset: %w", err)
		}
		prev, havePrev = State{}, false
	}

	start := s.cfg.SeedID
	if havePrev {
		start = prev.LastProcessedID - s.cfg.Backtrack
		if start < s.cfg.SeedID {
			start = s.cfg.SeedID
		}
		log.Printf("[scan] resuming at id %d (checkpoint %d, backtrack %d)",
			start, prev.LastProcessedID, s.cfg.Backtrack)
	} else {
		log.Printf("[scan] first run, starting at seed id %d", start)
	}

	sum := Summary{StartID: start, LastAttemptedID: start - 1}
	misses := 0
	fetched := 0
	var runErr error

	for id := start; ; id++ {
		if ctx.Err() != nil {
			sum.Stopped = StopCanceled
			runErr = ctx.Err()
			break
		}
		if fetched >= s.cfg.MaxJobs {
			sum.Stopped = StopJobCap
			break
		}

		dup, err := s.data.Has(ctx, id)
		if err != nil {
			sum.Stopped = StopError
			runErr = fmt.Errorf("dataset lookup id %d: %w", id, err)
			break
		}
		if dup {
			// Already in the dataset: no request, no miss accounting.
			sum.Duplicates++
			sum.LastAttemptedID = id
			continue
		}

		res, err := s.fetcher.FetchJob(ctx, id)
		if err != nil {
			sum.Stopped = StopError
			runErr = fmt.Errorf("fetch id %d: %w", id, err)
			break
		}
		fetched++
		sum.LastAttemptedID = id

		if !res.Exists {
			misses++
			sum.Missing++
			log.Printf("[scan] id %d does not exist (%d/%d consecutive)", id, misses, s.cfg.MissThreshold)
			if misses >= s.cfg.MissThreshold {
				sum.Stopped = StopFrontier
				break
			}
			continue
		}

		job, err := s.extract.Extract(id, res.URL, res.HTML)
		if err != nil {
			// The page exists, only parsing failed. Skip this id, leave the
			// miss counter alone.
			sum.SoftFailures++
			log.Printf("[scan] id %d: extraction failed, skipping: %v", id, err)
			continue
		}

		if err := s.data.Put(ctx, job); err != nil {
			sum.Stopped = StopError
			runErr = fmt.Errorf("store id %d: %w", id, err)
			break
		}
		misses = 0
		sum.Found++
		log.Printf("[scan] id %d: %s @ %s", id, job.Title, job.Company)

		if s.cfg.CheckpointEvery > 0 && sum.Found%s.cfg.CheckpointEvery == 0 {
			if err := s.states.Save(s.stateAfter(prev, havePrev, sum)); err != nil {
				log.Printf("[scan] warning: checkpoint failed: %v", err)
			}
		}
	}
	sum.ConsecutiveMisses = misses

	if err := s.states.Save(s.stateAfter(prev, havePrev, sum)); err != nil {
		// The prior state file is still valid; the next run just re-covers
		// this run's window.
		log.Printf("[scan] warning: final checkpoint failed: %v", err)
	}

	log.Printf("[scan] done: %s", sum)
	return sum, runErr
}

// stateAfter folds this run's progress into the prior state. The position
// only ever moves forward: a backtrack window that re-hit known ids cannot
// drag the checkpoint below where it already was.
func (s *Scanner) stateAfter(prev State, havePrev bool, sum Summary) State {
	last := sum.LastAttemptedID
	if havePrev && prev.LastProcessedID > last {
		last = prev.LastProcessedID
	}
	return State{
		LastProcessedID: last,
		UpdatedAt:       time.Now().UTC(),
		TotalRuns:       prev.TotalRuns + 1,
		TotalFound:      prev.TotalFound + sum.Found,
		TotalMissing:    prev.TotalMissing + sum.Missing,
	}
}
