package feed

import (
	"fmt"
	"html"
	"strings"

	"espritjobs-engine/internal/domain"
)

// contentHTML builds the item body shared by the RSS and JSON feeds: logo,
// metadata lines, then description and requirements.
func contentHTML(j domain.JobPosting) string {
	var parts []string

	if j.CompanyLogoURL != "" {
		parts = append(parts, fmt.Sprintf(
			`<img src=%q alt="%s Logo" style="max-width: 200px; height: auto; margin-bottom: 10px;"/>`,
			j.CompanyLogoURL, html.EscapeString(j.Company)))
	}

	parts = append(parts,
		"<p>Company: "+html.EscapeString(j.Company)+"</p>",
		"<p>Location: "+html.EscapeString(j.Location)+"</p>",
	)
	if j.EmploymentType != "" {
		parts = append(parts, "<p>Employment Type: "+html.EscapeString(j.EmploymentType)+"</p>")
	}
	if j.Industry != "" {
		parts = append(parts, "<p>Industry: "+html.EscapeString(j.Industry)+"</p>")
	}
	if j.JobFunction != "" {
		parts = append(parts, "<p>Job Function: "+html.EscapeString(j.JobFunction)+"</p>")
	}
	if j.ClosingDate != "" {
		parts = append(parts, "<p>Closing Date: <strong>"+html.EscapeString(closingDateValue(j.ClosingDate))+"</strong></p>")
	}
	if j.AddedByName != "" || j.AddedByCompany != "" {
		var by []string
		if j.AddedByName != "" {
			by = append(by, "<strong>"+html.EscapeString(j.AddedByName)+"</strong>")
		}
		if j.AddedByCompany != "" {
			by = append(by, "("+html.EscapeString(j.AddedByCompany)+")")
		}
		parts = append(parts, "<p>Added by: "+strings.Join(by, " ")+"</p>")
	}

	parts = append(parts,
		"<p>Description:</p>",
		"<p>"+html.EscapeString(j.Description)+"</p>",
	)
	if j.Requirements != "" {
		parts = append(parts,
			"<p>Requirements:</p>",
			"<p>"+html.EscapeString(j.Requirements)+"</p>",
		)
	}

	return strings.Join(parts, "\n")
}

// summaryText combines description and requirements into a plain-text
// summary aimed at about a thousand characters.
func summaryText(j domain.JobPosting) string {
	combined := j.Description
	if len(combined) < 1000 && j.Requirements != "" {
		combined += "\n\nRequirements: " + j.Requirements
	}
	return smartTruncate(combined, 1000)
}

// closingDateValue strips the "Closing date for applications:" label the
// portal embeds in the text node.
func closingDateValue(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// smartTruncate cuts at a word boundary when one is close enough to the
// limit, otherwise cuts hard; either way it appends an ellipsis.
func smartTruncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut > max*8/10 {
		return s[:cut] + "..."
	}
	return s[:max] + "..."
}
