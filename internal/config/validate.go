package config

import (
	"errors"
	"net/url"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.BaseURL == "" {
		errs = append(errs, "app.base_url is required")
	} else if u, err := url.Parse(cfg.App.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "app.base_url must be an absolute URL")
	}
	if cfg.App.DataDir == "" {
		errs = append(errs, "app.data_dir is required")
	}

	if cfg.Scan.SeedID <= 0 {
		errs = append(errs, "scan.seed_id must be > 0")
	}
	if cfg.Scan.MaxJobs <= 0 {
		errs = append(errs, "scan.max_jobs must be > 0")
	}
	if cfg.Scan.MissThreshold < 1 {
		errs = append(errs, "scan.miss_threshold must be >= 1")
	}
	if cfg.Scan.Backtrack < 0 {
		errs = append(errs, "scan.backtrack must be >= 0")
	}
	if cfg.Scan.CheckpointEvery < 0 {
		errs = append(errs, "scan.checkpoint_every must be >= 0")
	}

	if cfg.HTTP.RequestsPerSecond <= 0 {
		errs = append(errs, "http.requests_per_second must be > 0")
	}
	if cfg.HTTP.Burst < 1 {
		errs = append(errs, "http.burst must be >= 1")
	}
	if cfg.HTTP.RetryCount < 0 {
		errs = append(errs, "http.retry_count must be >= 0")
	}
	if cfg.HTTP.TimeoutSeconds <= 0 {
		errs = append(errs, "http.timeout_seconds must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
