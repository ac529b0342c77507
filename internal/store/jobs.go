package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"espritjobs-engine/internal/domain"
)

const jobColumns = `job_id, title, company, location, description, requirements,
posted_date, url, image_url, company_logo_url, employment_type, industry,
job_function, closing_date, added_by_name, added_by_company, scraped_at`

// Put inserts or fully replaces the record for a job id. Postings can be
// edited upstream, so a re-scrape always wins over whatever was stored.
func (d *DB) Put(ctx context.Context, j domain.JobPosting) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(job_id) DO UPDATE SET
  title=excluded.title,
  company=excluded.company,
  location=excluded.location,
  description=excluded.description,
  requirements=excluded.requirements,
  posted_date=excluded.posted_date,
  url=excluded.url,
  image_url=excluded.image_url,
  company_logo_url=excluded.company_logo_url,
  employment_type=excluded.employment_type,
  industry=excluded.industry,
  job_function=excluded.job_function,
  closing_date=excluded.closing_date,
  added_by_name=excluded.added_by_name,
  added_by_company=excluded.added_by_company,
  scraped_at=excluded.scraped_at;`,
		j.JobID, j.Title, j.Company, j.Location, j.Description, j.Requirements,
		j.PostedDate, j.URL, j.ImageURL, j.CompanyLogoURL, j.EmploymentType,
		j.Industry, j.JobFunction, j.ClosingDate, j.AddedByName, j.AddedByCompany,
		j.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert job %d: %w", j.JobID, err)
	}
	return nil
}

func (d *DB) Has(ctx context.Context, id int) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM jobs WHERE job_id = ? LIMIT 1;`, id).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, err
}

// List returns every stored posting, newest id first, which is the order
// the feeds render in.
func (d *DB) List(ctx context.Context) ([]domain.JobPosting, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT `+jobColumns+`
FROM jobs
ORDER BY job_id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobPosting
	for rows.Next() {
		var j domain.JobPosting
		var scrapedAt string
		if err := rows.Scan(&j.JobID, &j.Title, &j.Company, &j.Location,
			&j.Description, &j.Requirements, &j.PostedDate, &j.URL, &j.ImageURL,
			&j.CompanyLogoURL, &j.EmploymentType, &j.Industry, &j.JobFunction,
			&j.ClosingDate, &j.AddedByName, &j.AddedByCompany, &scrapedAt); err != nil {
			return nil, err
		}
		j.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		out = append(out, j)
	}
	return out, rows.Err()
}

// DeleteBelow prunes records with ids under the given one. Only the forced
// restart path uses this; stale-but-valid records are otherwise kept.
func (d *DB) DeleteBelow(ctx context.Context, id int) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM jobs WHERE job_id < ?;`, id)
	return err
}

func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n)
	return n, err
}
