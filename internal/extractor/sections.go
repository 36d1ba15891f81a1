package extractor

import (
	"strings"

	"cvscan/pkg/models"
)

// summaryConfidence is fixed: summaries are low-risk to extract verbatim.
const summaryConfidence = 0.8

// extractSummary keeps the section content as-is. Multiple summary sections
// concatenate in processing order.
func (r *run) extractSummary(section models.OCRSection) (float64, []models.Issue) {
	content := strings.TrimSpace(section.Content)
	if r.data.Summary == "" {
		r.data.Summary = content
	} else if content != "" {
		r.data.Summary += "\n" + content
	}
	return summaryConfidence, nil
}

// extractProjects derives one entry per section: the first content line names
// the project, the rest describes it.
func (r *run) extractProjects(section models.OCRSection) (float64, []models.Issue) {
	lines := contentLines(section)
	if len(lines) == 0 {
		return 0, []models.Issue{{
			Field:    "projects",
			Issue:    "projects section empty",
			Severity: models.SeverityLow,
		}}
	}
	r.data.Projects = append(r.data.Projects, models.Project{
		Name:        lines[0],
		Description: strings.Join(lines[1:], "\n"),
	})
	return 0.5, nil
}

// extractCertifications keeps each non-empty content line as one
// certification entry.
func (r *run) extractCertifications(section models.OCRSection) (float64, []models.Issue) {
	lines := contentLines(section)
	if len(lines) == 0 {
		return 0, []models.Issue{{
			Field:    "certifications",
			Issue:    "certifications section empty",
			Severity: models.SeverityLow,
		}}
	}
	r.data.Certifications = append(r.data.Certifications, lines...)
	return 0.6, nil
}
