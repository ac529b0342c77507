package feed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/feeds"

	"espritjobs-engine/internal/domain"
)

func (w *Writer) writeJSONFeed(jobs []domain.JobPosting) error {
	f := &feeds.JSONFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       w.cfg.Title,
		HomePageUrl: w.cfg.SiteURL,
		FeedUrl:     w.feedURL("jobs.json"),
		Description: w.cfg.Description,
	}

	for _, j := range jobs {
		j := j
		item := &feeds.JSONItem{
			Id:            strconv.Itoa(j.JobID),
			Url:           j.URL,
			ExternalUrl:   j.URL,
			Title:         j.Title + " - " + j.Company,
			ContentHTML:   contentHTML(j),
			Summary:       summaryText(j),
			Image:         j.Image(),
			PublishedDate: &j.ScrapedAt,
			Tags:          []string{"jobs", "esprit", strings.ToLower(j.Company)},
		}
		f.Items = append(f.Items, item)
	}

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.cfg.OutDir, "jobs.json"), append(b, '\n'), 0o644)
}
