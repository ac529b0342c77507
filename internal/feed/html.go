package feed

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"espritjobs-engine/internal/domain"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .header, .stats { text-align: center; margin-bottom: 30px; background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .feeds { text-align: center; margin-bottom: 30px; }
        .feeds a { display: inline-block; margin: 0 10px; padding: 10px 20px; background: #007bff; color: white; text-decoration: none; border-radius: 5px; }
        .job-card { background: white; margin-bottom: 20px; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); overflow: hidden; }
        .job-card img.logo { max-width: 150px; height: auto; float: right; margin-left: 15px; border-radius: 4px; }
        .job-title { color: #333; margin-bottom: 10px; margin-right: 160px; }
        .job-meta { color: #666; font-size: 14px; margin-bottom: 15px; line-height: 1.8; margin-right: 160px; }
        .job-description { color: #333; line-height: 1.6; margin-right: 160px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>{{.Description}}</p>
        <p>Last updated: {{.UpdatedAt}}</p>
    </div>
    <div class="stats">
        <p><strong>Total Jobs Found:</strong> {{len .Jobs}}</p>
    </div>
    <div class="feeds">
        <a href="feed.xml">RSS Feed</a>
        <a href="jobs.json">JSON Feed</a>
        <a href="summary.json">Summary</a>
    </div>
    <div class="jobs">
{{- range .Jobs}}
        <div class="job-card">
            {{- if .Logo}}
            <img class="logo" src="{{.Logo}}" alt="{{.Company}} logo"/>
            {{- end}}
            <h2 class="job-title"><a href="{{.URL}}" target="_blank">{{.Title}}</a></h2>
            <div class="job-meta">{{.Meta}}</div>
            <div class="job-description"><p>{{.Description}}</p></div>
            <div style="clear: both;"></div>
        </div>
{{- end}}
    </div>
    <footer style="text-align: center; margin-top: 40px; color: #666;">
        <p>Generated by the espritjobs scraper</p>
    </footer>
</body>
</html>
`))

type indexCard struct {
	Title       string
	Company     string
	URL         string
	Logo        string
	Meta        string
	Description string
}

type indexData struct {
	Title       string
	Description string
	UpdatedAt   string
	Jobs        []indexCard
}

func (w *Writer) writeHTMLIndex(jobs []domain.JobPosting) error {
	data := indexData{
		Title:       w.cfg.Title,
		Description: w.cfg.Description,
		UpdatedAt:   w.now().UTC().Format("2006-01-02 15:04 UTC"),
	}

	for _, j := range jobs {
		meta := []string{"Company: " + j.Company, "Location: " + j.Location}
		if j.EmploymentType != "" {
			meta = append(meta, "Employment Type: "+j.EmploymentType)
		}
		if j.Industry != "" {
			meta = append(meta, "Industry: "+j.Industry)
		}
		if j.JobFunction != "" {
			meta = append(meta, "Job Function: "+j.JobFunction)
		}
		if j.ClosingDate != "" {
			meta = append(meta, "Closing Date: "+closingDateValue(j.ClosingDate))
		}
		if j.AddedByName != "" {
			by := j.AddedByName
			if j.AddedByCompany != "" {
				by += " (" + j.AddedByCompany + ")"
			}
			meta = append(meta, "Added by: "+by)
		}

		data.Jobs = append(data.Jobs, indexCard{
			Title:       j.Title,
			Company:     j.Company,
			URL:         j.URL,
			Logo:        j.Image(),
			Meta:        strings.Join(meta, " | "),
			Description: smartTruncate(j.Description, 1000),
		})
	}

	out, err := os.Create(filepath.Join(w.cfg.OutDir, "index.html"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := indexTmpl.Execute(out, data); err != nil {
		return err
	}
	return out.Close()
}
