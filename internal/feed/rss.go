package feed

import (
	"os"
	"path/filepath"

	"github.com/gorilla/feeds"

	"espritjobs-engine/internal/domain"
)

func (w *Writer) writeRSS(jobs []domain.JobPosting) error {
	f := &feeds.Feed{
		Title:       w.cfg.Title,
		Link:        &feeds.Link{Href: w.cfg.SiteURL},
		Description: w.cfg.Description,
		Created:     w.now().UTC(),
	}

	for _, j := range jobs {
		body := contentHTML(j)
		item := &feeds.Item{
			Title:       j.Title + " - " + j.Company,
			Link:        &feeds.Link{Href: j.URL},
			Id:          j.URL,
			Description: body,
			Content:     body,
			Created:     j.ScrapedAt,
		}
		if img := j.Image(); img != "" {
			item.Enclosure = &feeds.Enclosure{Url: img, Type: "image/jpeg", Length: "0"}
		}
		f.Items = append(f.Items, item)
	}

	rss, err := f.ToRss()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.cfg.OutDir, "feed.xml"), []byte(rss), 0o644)
}
