package extractor

import (
	"strings"

	"cvscan/pkg/models"
)

// extractEducation produces one Education record per section: period from the
// shared date cascade, degree and institution from their keyword lists, and
// whatever remains as description.
func (r *run) extractEducation(section models.OCRSection) (float64, []models.Issue) {
	var edu models.Education
	confidence := 0.0
	lines := contentLines(section)

	period, _ := extractPeriod(section.Content)
	if period != "" {
		edu.Period = period
		confidence += 0.3
	}

	for _, line := range lines {
		if containsAny(line, degreeKeywords) {
			edu.Degree = line
			confidence += 0.4
			break
		}
	}

	for _, line := range lines {
		if line == edu.Degree {
			continue
		}
		if containsAny(line, institutionKeywords) {
			edu.Institution = line
			confidence += 0.3
			break
		}
	}

	var description []string
	for _, line := range lines {
		if line == edu.Degree || line == edu.Institution {
			continue
		}
		description = append(description, line)
	}
	edu.Description = strings.Join(description, "\n")

	var issues []models.Issue
	if edu.Degree == "" {
		issues = append(issues, models.Issue{
			Field:    "education.degree",
			Issue:    "degree not detected",
			Severity: models.SeverityMedium,
		})
	}
	if edu.Institution == "" {
		issues = append(issues, models.Issue{
			Field:    "education.institution",
			Issue:    "institution not detected",
			Severity: models.SeverityLow,
		})
	}

	r.data.Education = append(r.data.Education, edu)
	return clamp01(confidence), issues
}
