package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"espritjobs-engine/internal/domain"
	"espritjobs-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleJob(id int) domain.JobPosting {
	return domain.JobPosting{
		JobID:       id,
		Title:       "Backend Engineer",
		Company:     "ACME",
		Location:    "Tunis",
		Description: "Build things.",
		URL:         "https://portal.test/jobs/1",
		ScrapedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestPutAndHas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ok, err := db.Has(ctx, 795)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, db.Put(ctx, sampleJob(795)))

	ok, err = db.Has(ctx, 795)
	require.NoError(t, err)
	require.True(t, ok)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestPutOverwritesLastWriteWins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, sampleJob(795)))

	edited := sampleJob(795)
	edited.Title = "Backend Engineer (Senior)"
	edited.ClosingDate = "Closing date for applications: 31/10/2026"
	require.NoError(t, db.Put(ctx, edited))

	jobs, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Backend Engineer (Senior)", jobs[0].Title)
	require.Equal(t, edited.ClosingDate, jobs[0].ClosingDate)
}

func TestListDescendingOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, id := range []int{795, 801, 798} {
		require.NoError(t, db.Put(ctx, sampleJob(id)))
	}

	jobs, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	require.Equal(t, 801, jobs[0].JobID)
	require.Equal(t, 798, jobs[1].JobID)
	require.Equal(t, 795, jobs[2].JobID)
}

func TestDeleteBelow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, id := range []int{700, 794, 795, 800} {
		require.NoError(t, db.Put(ctx, sampleJob(id)))
	}
	require.NoError(t, db.DeleteBelow(ctx, 795))

	jobs, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, 800, jobs[0].JobID)
	require.Equal(t, 795, jobs[1].JobID)
}

func TestRoundTripPreservesFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := domain.JobPosting{
		JobID:          805,
		Title:          "Data Scientist",
		Company:        "Globex",
		Location:       "Ariana, Tunisia",
		Description:    "ML on job data.",
		Requirements:   "Python, SQL",
		PostedDate:     "2 weeks ago",
		URL:            "https://portal.test/jobs/805",
		ImageURL:       "https://portal.test/img/805.jpg",
		CompanyLogoURL: "https://portal.test/logo/globex.png",
		EmploymentType: "Full-time",
		Industry:       "Software",
		JobFunction:    "Engineering",
		ClosingDate:    "Closing date for applications: 01/10/2026",
		AddedByName:    "Jane Recruiter",
		AddedByCompany: "Globex HR",
		ScrapedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Put(ctx, in))

	jobs, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, in, jobs[0])
}
