package domain

import "time"

// JobPosting is one scraped posting, keyed by the sequential job id the
// portal assigns. Records are immutable once extracted; a later scrape of
// the same id replaces the whole record.
type JobPosting struct {
	JobID          int       `json:"job_id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements,omitempty"`
	PostedDate     string    `json:"posted_date,omitempty"`
	URL            string    `json:"url"`
	ImageURL       string    `json:"image_url,omitempty"`
	CompanyLogoURL string    `json:"company_logo_url,omitempty"`
	EmploymentType string    `json:"employment_type,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	JobFunction    string    `json:"job_function,omitempty"`
	ClosingDate    string    `json:"closing_date,omitempty"`
	AddedByName    string    `json:"added_by_name,omitempty"`
	AddedByCompany string    `json:"added_by_company,omitempty"`
	ScrapedAt      time.Time `json:"scraped_at"`
}

// Image returns the best image to attach to a feed item, preferring the
// company logo over the job banner.
func (j JobPosting) Image() string {
	if j.CompanyLogoURL != "" {
		return j.CompanyLogoURL
	}
	return j.ImageURL
}
