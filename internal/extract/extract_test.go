package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"espritjobs-engine/internal/extract"
)

const jobPageHTML = `<!DOCTYPE html>
<html>
<body>
  <div class="gw-company-logo"><img src="/assets/logos/acme.png"/></div>
  <h2 id="jobPageJobTitle">Backend&nbsp;Engineer</h2>
  <p id="jobPageOrganization_0">ACME Corp</p>
  <p id="jobPageOrganization_2">Full-time</p>
  <p id="jobPageJobFunction_0">Engineering</p>
  <p id="jobPageJobFunction_2">Software</p>
  <span class="location-icon-text">Tunis, Tunisia</span>
  <div id="jobPageDescription">We build backend systems in Go.</div>
  <div class="job-requirements">3+ years of Go.</div>
  <span class="posted-date">2 weeks ago</span>
  <p>Closing date for applications: 31/10/2026</p>
  <div>
    <h4 class="gw-section-caption">Added by</h4>
    <div class="gw-name">Jane Recruiter</div>
    <div class="gw-descr">ACME HR</div>
  </div>
</body>
</html>`

func newExtractor(t *testing.T) *extract.Extractor {
	t.Helper()
	e, err := extract.New("https://portal.test")
	require.NoError(t, err)
	return e
}

func TestExtractFullPage(t *testing.T) {
	e := newExtractor(t)

	job, err := e.Extract(795, "https://portal.test/jobs/795", jobPageHTML)
	require.NoError(t, err)

	require.Equal(t, 795, job.JobID)
	require.Equal(t, "Backend Engineer", job.Title)
	require.Equal(t, "ACME Corp", job.Company)
	require.Equal(t, "Tunis, Tunisia", job.Location)
	require.Equal(t, "Engineering", job.JobFunction)
	require.Equal(t, "We build backend systems in Go.", job.Description)
	require.Equal(t, "3+ years of Go.", job.Requirements)
	require.Equal(t, "2 weeks ago", job.PostedDate)
	require.Equal(t, "Full-time", job.EmploymentType)
	require.Equal(t, "Software", job.Industry)
	require.Equal(t, "Closing date for applications: 31/10/2026", job.ClosingDate)
	require.Equal(t, "Jane Recruiter", job.AddedByName)
	require.Equal(t, "ACME HR", job.AddedByCompany)
	require.Equal(t, "https://portal.test/jobs/795", job.URL)
	require.Equal(t, "https://portal.test/assets/logos/acme.png", job.CompanyLogoURL)
	require.False(t, job.ScrapedAt.IsZero())
}

func TestExtractFallbackSelectors(t *testing.T) {
	e := newExtractor(t)

	html := `<html><body>
	  <h1>Site Reliability Engineer</h1>
	  <div class="company">Globex</div>
	  <div class="location">Sousse</div>
	  <div class="description">Keep the lights on.</div>
	</body></html>`

	job, err := e.Extract(801, "https://portal.test/jobs/801", html)
	require.NoError(t, err)
	require.Equal(t, "Site Reliability Engineer", job.Title)
	require.Equal(t, "Globex", job.Company)
	require.Equal(t, "Sousse", job.Location)
}

func TestExtractMissingRequiredFields(t *testing.T) {
	e := newExtractor(t)

	// An SPA shell with navigation chrome but no job content.
	html := `<html><body><div class="nav">Home</div></body></html>`

	_, err := e.Extract(802, "https://portal.test/jobs/802", html)
	require.Error(t, err)

	var perr *extract.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 802, perr.JobID)
	require.Contains(t, perr.Missing, "title")
	require.Contains(t, perr.Missing, "company")
	require.Contains(t, perr.Missing, "description")
}

func TestExtractTruncatesLongText(t *testing.T) {
	e := newExtractor(t)

	long := strings.Repeat("golang backend services ", 100) // ~2400 chars
	html := `<html><body>
	  <h1>Engineer</h1>
	  <div class="company">ACME</div>
	  <div class="description">` + long + `</div>
	</body></html>`

	job, err := e.Extract(803, "https://portal.test/jobs/803", html)
	require.NoError(t, err)
	require.LessOrEqual(t, len(job.Description), 1004)
	require.True(t, strings.HasSuffix(job.Description, "..."))
}

func TestExtractAbsoluteImageKept(t *testing.T) {
	e := newExtractor(t)

	html := `<html><body>
	  <h1>Engineer</h1>
	  <div class="company">ACME</div>
	  <div class="description">Things.</div>
	  <div class="job-image"><img src="https://cdn.portal.test/banner.jpg"/></div>
	</body></html>`

	job, err := e.Extract(804, "https://portal.test/jobs/804", html)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.portal.test/banner.jpg", job.ImageURL)
}
