package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"espritjobs-engine/internal/domain"
)

const (
	maxDescriptionLen  = 1000
	maxRequirementsLen = 500
)

// ParseError reports which required fields a job page was missing. Pages
// that render but carry no real content (a redirect the fetcher failed to
// classify, or a half-loaded shell) surface this way.
type ParseError struct {
	JobID   int
	Missing []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("job %d: required fields missing: %s", e.JobID, strings.Join(e.Missing, ", "))
}

// Selector fallback tables: the Angular-generated ids come first, generic
// class names after, so a portal markup change degrades instead of breaking.
var (
	titleSelectors = []string{
		"#jobPageJobTitle", "h2#jobPageJobTitle",
		"h1.job-title", ".job-header h1", ".job-details h1",
		"h1", "h2", ".title",
	}
	companySelectors = []string{
		"#jobPageOrganization_0", "p#jobPageOrganization_0",
		".company-name", ".job-company", ".employer", ".company",
	}
	jobFunctionSelectors = []string{
		"#jobPageJobFunction_0", "p#jobPageJobFunction_0",
		".job-location", ".location", ".job-address",
	}
	descriptionSelectors = []string{
		"#jobPageDescription", "div#jobPageDescription",
		".job-description", ".description", ".job-content", ".content",
	}
	requirementsSelectors = []string{
		".job-requirements", ".requirements",
		".job-qualifications", ".qualifications",
	}
	postedDateSelectors = []string{
		".posted-date", ".job-date", ".publication-date",
	}
	locationSelectors = []string{
		".location-address", ".location-icon-text",
	}
	imageSelectors = []string{
		".job-image img", ".company-logo img", ".job-header img",
	}
	companyLogoSelectors = []string{
		".gw-company-logo img", ".company-logo-position img",
	}
	employmentTypeSelectors = []string{
		"#jobPageOrganization_2", "p#jobPageOrganization_2",
	}
	industrySelectors = []string{
		"#jobPageJobFunction_2", "p#jobPageJobFunction_2",
	}
)

const closingDateLabel = "Closing date for applications:"

// Extractor parses rendered job pages into JobPosting records.
type Extractor struct {
	base *url.URL
	now  func() time.Time
}

func New(baseURL string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Extractor{base: base, now: time.Now}, nil
}

func (e *Extractor) Extract(id int, pageURL, html string) (domain.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("job %d: parse html: %w", id, err)
	}

	title := firstText(doc, titleSelectors)
	company := firstText(doc, companySelectors)
	description := firstText(doc, descriptionSelectors)
	jobFunction := firstText(doc, jobFunctionSelectors)
	location := firstText(doc, locationSelectors)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if company == "" {
		missing = append(missing, "company")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return domain.JobPosting{}, &ParseError{JobID: id, Missing: missing}
	}

	job := domain.JobPosting{
		JobID:          id,
		Title:          title,
		Company:        company,
		Description:    truncate(description, maxDescriptionLen),
		Requirements:   truncate(firstText(doc, requirementsSelectors), maxRequirementsLen),
		PostedDate:     firstText(doc, postedDateSelectors),
		URL:            pageURL,
		ImageURL:       e.firstImage(doc, imageSelectors),
		CompanyLogoURL: e.firstImage(doc, companyLogoSelectors),
		EmploymentType: firstText(doc, employmentTypeSelectors),
		Industry:       firstText(doc, industrySelectors),
		ClosingDate:    closingDate(doc),
		ScrapedAt:      e.now().UTC(),
	}

	// The portal labels the primary field "job function"; the street address
	// only shows up separately when the posting has one.
	if location != "" {
		job.Location = location
		job.JobFunction = jobFunction
	} else {
		job.Location = jobFunction
	}

	job.AddedByName, job.AddedByCompany = addedBy(doc)

	return job, nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if t := cleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func (e *Extractor) firstImage(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		src := strings.TrimSpace(doc.Find(sel).First().AttrOr("src", ""))
		if src == "" {
			continue
		}
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return src
		}
		if ref, err := url.Parse(src); err == nil {
			return e.base.ResolveReference(ref).String()
		}
	}
	return ""
}

func closingDate(doc *goquery.Document) string {
	out := ""
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		t := cleanText(s.Text())
		if strings.Contains(t, closingDateLabel) {
			out = t
			return false
		}
		return true
	})
	return out
}

func addedBy(doc *goquery.Document) (name, company string) {
	doc.Find("h4.gw-section-caption").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if cleanText(s.Text()) != "Added by" {
			return true
		}
		parent := s.Parent()
		name = cleanText(parent.Find(".gw-name").First().Text())
		company = cleanText(parent.Find(".gw-descr").First().Text())
		return false
	})
	return name, company
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// truncate cuts at a word boundary when one is reasonably close to the
// limit, mirroring how the feeds shorten long descriptions.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut > max*8/10 {
		return s[:cut] + "..."
	}
	return s[:max] + "..."
}
