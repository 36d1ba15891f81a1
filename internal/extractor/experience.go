package extractor

import (
	"strings"

	"cvscan/internal/classifier"
	"cvscan/pkg/models"
)

// extractExperience produces exactly one Experience record for the section.
// Records are never merged across sections; two employers classified into two
// sections stay two entries.
func (r *run) extractExperience(section models.OCRSection) (float64, []models.Issue) {
	var exp models.Experience
	confidence := 0.0
	lines := contentLines(section)

	period, dates := extractPeriod(section.Content)
	if period != "" {
		exp.Period = period
		confidence += 0.3
	}

	for _, line := range lines {
		if containsAny(line, positionKeywords) {
			exp.Position = line
			confidence += 0.4
			break
		}
	}

	for _, line := range lines {
		if line == exp.Position {
			continue
		}
		if isCompanyLine(line, dates) {
			exp.Company = line
			confidence += 0.3
			break
		}
	}

	var description []string
	for _, line := range lines {
		if !isDescriptionLine(line) {
			continue
		}
		description = append(description, line)
		confidence += 0.1
		r.collectTechnologies(line, &exp)
	}
	exp.Description = strings.Join(description, "\n")

	if exp.Position == "" {
		exp.Description = strings.TrimSpace(section.Content)
	}

	var issues []models.Issue
	if exp.Position == "" {
		issues = append(issues, models.Issue{
			Field:    "experience.position",
			Issue:    "position not detected",
			Severity: models.SeverityMedium,
		})
	}
	if exp.Company == "" {
		issues = append(issues, models.Issue{
			Field:    "experience.company",
			Issue:    "company not detected",
			Severity: models.SeverityLow,
		})
	}
	if exp.Period == "" {
		issues = append(issues, models.Issue{
			Field:    "experience.period",
			Issue:    "period not detected",
			Severity: models.SeverityLow,
		})
	}

	r.data.Experience = append(r.data.Experience, exp)
	return clamp01(confidence), issues
}

// isCompanyLine flags employer candidates: a preposition introducing an
// employer, a legal-form suffix, or the presence of one of the section's
// extracted dates.
func isCompanyLine(line string, dates []string) bool {
	if containsAnyWord(line, companyPrepositions) || containsAnyWord(line, companyLegalForms) {
		return true
	}
	for _, d := range dates {
		if strings.Contains(line, d) {
			return true
		}
	}
	return false
}

// isDescriptionLine treats bullets and indented lines as description
// material. Indentation rarely survives normalization, so the bullet check
// carries most of the weight. The bullet test is the classifier's, so both
// stages recognize the same list markers.
func isDescriptionLine(line string) bool {
	return classifier.IsBulletLine(line) || strings.HasPrefix(line, "  ")
}

// collectTechnologies scans a description line against the technology
// vocabulary and appends hits to the record, skipping values it already
// holds.
func (r *run) collectTechnologies(line string, exp *models.Experience) {
	lower := strings.ToLower(line)
	for _, term := range technicalSkills {
		if !strings.Contains(lower, term) {
			continue
		}
		name := titleCase(term)
		already := false
		for _, t := range exp.Technologies {
			if t == name {
				already = true
				break
			}
		}
		if !already {
			exp.Technologies = append(exp.Technologies, name)
		}
	}
}
