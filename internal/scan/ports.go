package scan

import (
	"context"
	"errors"

	"espritjobs-engine/internal/domain"
)

// ErrAuthExpired marks a fetch that bounced to the sign-in page. The run
// stops immediately so the operator can rotate credentials; retrying
// blindly would just burn the whole id range on redirects.
var ErrAuthExpired = errors.New("portal session expired")

// FetchResult is the outcome of requesting a single job page. Exists is
// false when the portal redirected to a generic landing page instead of
// the per-job URL, which is how nonexistent ids present upstream.
type FetchResult struct {
	Exists bool
	URL    string
	HTML   string
}

// PageFetcher retrieves the rendered page for one job id.
type PageFetcher interface {
	FetchJob(ctx context.Context, id int) (FetchResult, error)
}

// Extractor turns a rendered job page into a structured record. Errors are
// soft: the scan logs them and moves on without touching the miss counter.
type Extractor interface {
	Extract(id int, pageURL, html string) (domain.JobPosting, error)
}

// Dataset is the accumulated id-keyed job collection. Put overwrites
// (last-write-wins); records are never removed except by DeleteBelow on a
// forced restart.
type Dataset interface {
	Has(ctx context.Context, id int) (bool, error)
	Put(ctx context.Context, job domain.JobPosting) error
	DeleteBelow(ctx context.Context, id int) error
}

// StateStore persists ScanState between runs. Load reports ok=false when no
// state has ever been saved; Save must be atomic so a failed write leaves
// the previous state intact.
type StateStore interface {
	Load() (State, bool, error)
	Save(State) error
}
