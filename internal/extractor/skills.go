package extractor

import (
	"strings"

	"cvscan/pkg/models"
)

// extractSkills scans section content against the technical and soft
// vocabularies. When neither vocabulary matches anything and no earlier
// section has populated the lists, the raw content is split on newlines and
// commas and the tokens are kept verbatim as technical skills, so the
// section is preserved instead of discarded.
func (r *run) extractSkills(section models.OCRSection) (float64, []models.Issue) {
	confidence := 0.0
	lower := strings.ToLower(section.Content)

	for _, term := range technicalSkills {
		if strings.Contains(lower, term) && !r.seenTech[term] {
			r.seenTech[term] = true
			r.data.Skills.Technical = append(r.data.Skills.Technical, titleCase(term))
			confidence += 0.05
		}
	}
	for _, term := range softSkills {
		if strings.Contains(lower, term) && !r.seenSoft[term] {
			r.seenSoft[term] = true
			r.data.Skills.Soft = append(r.data.Skills.Soft, titleCase(term))
			confidence += 0.05
		}
	}

	if len(r.data.Skills.Technical) == 0 && len(r.data.Skills.Soft) == 0 {
		for _, token := range splitTokens(section.Content) {
			key := strings.ToLower(token)
			if r.seenTech[key] {
				continue
			}
			r.seenTech[key] = true
			r.data.Skills.Technical = append(r.data.Skills.Technical, token)
		}
		if len(r.data.Skills.Technical) > 0 {
			confidence += 0.2
		}
	}

	var issues []models.Issue
	if len(r.data.Skills.Technical) == 0 {
		issues = append(issues, models.Issue{
			Field:    "skills.technical",
			Issue:    "no technical skills detected",
			Severity: models.SeverityLow,
		})
	}
	return clamp01(confidence), issues
}

// extractLanguages scans for known language names; the skills fallback
// applies identically when the vocabulary finds nothing.
func (r *run) extractLanguages(section models.OCRSection) (float64, []models.Issue) {
	confidence := 0.0
	lower := strings.ToLower(section.Content)

	matched := false
	for _, name := range languageNames {
		if strings.Contains(lower, name) && !r.seenLanguage[name] {
			r.seenLanguage[name] = true
			r.data.Skills.Languages = append(r.data.Skills.Languages, titleCase(name))
			confidence += 0.1
			matched = true
		}
	}

	if !matched {
		for _, token := range splitTokens(section.Content) {
			key := strings.ToLower(token)
			if r.seenLanguage[key] {
				continue
			}
			r.seenLanguage[key] = true
			r.data.Skills.Languages = append(r.data.Skills.Languages, token)
		}
		if len(r.data.Skills.Languages) > 0 {
			confidence += 0.2
		}
	}

	var issues []models.Issue
	if len(r.data.Skills.Languages) == 0 {
		issues = append(issues, models.Issue{
			Field:    "skills.languages",
			Issue:    "no languages detected",
			Severity: models.SeverityLow,
		})
	}
	return clamp01(confidence), issues
}

// splitTokens is the fallback tokenizer: split on newlines and commas, trim,
// keep non-empty tokens verbatim.
func splitTokens(content string) []string {
	var tokens []string
	for _, part := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == ','
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
