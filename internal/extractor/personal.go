package extractor

import (
	"regexp"
	"strings"

	"cvscan/pkg/models"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// phonePattern covers French mobile and landline numbers: +33 or 0
	// prefix, then nine digits with optional separators.
	phonePattern = regexp.MustCompile(`(\+33[\s.-]?|0)[1-9]([\s.-]?\d{2}){4}`)
)

// extractPersonal scans the pooled personal lines. Each line claims at most
// one still-unclaimed field, tested in fixed priority order: email, phone,
// linkedin, website, name, address, birthday. The first qualifying line wins
// a field; later candidates are ignored.
func (r *run) extractPersonal(lines []string) (float64, []models.Issue) {
	info := &r.data.Personal
	confidence := 0.0

	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case info.Email == "" && emailPattern.MatchString(line):
			info.Email = emailPattern.FindString(line)
			confidence += 0.3
		case info.Phone == "" && phonePattern.MatchString(line):
			info.Phone = strings.TrimSpace(phonePattern.FindString(line))
			confidence += 0.3
		case info.LinkedIn == "" && strings.Contains(lower, "linkedin"):
			info.LinkedIn = line
			confidence += 0.2
		case info.Website == "" && (strings.Contains(lower, "www.") || strings.Contains(lower, "http")):
			info.Website = line
			confidence += 0.2
		case info.Name == "" && isNameCandidate(line):
			info.Name = line
			confidence += 0.4
		case info.Address == "" && containsAnyWord(line, streetKeywords):
			info.Address = line
			confidence += 0.3
		case info.Birthday == "" && containsAny(line, birthKeywords):
			if date, ok := parseDateFromLine(line); ok {
				info.Birthday = date
				confidence += 0.3
			}
		}
	}

	var issues []models.Issue
	if info.Name == "" {
		issues = append(issues, models.Issue{
			Field:    "personal.name",
			Issue:    "name not detected",
			Severity: models.SeverityMedium,
		})
	}
	if info.Email == "" {
		issues = append(issues, models.Issue{
			Field:    "personal.email",
			Issue:    "email not detected",
			Severity: models.SeverityLow,
		})
	}
	if info.Phone == "" {
		issues = append(issues, models.Issue{
			Field:    "personal.phone",
			Issue:    "phone number not detected",
			Severity: models.SeverityLow,
		})
	}
	return clamp01(confidence), issues
}

// isNameCandidate accepts short lines without digits, at-signs or street
// words. First-match-wins claiming makes this order-dependent, which mirrors
// the layout assumption that the name sits at the top of the contact block.
func isNameCandidate(line string) bool {
	n := len([]rune(line))
	if n < 3 || n >= 50 {
		return false
	}
	if strings.ContainsAny(line, "0123456789@") {
		return false
	}
	return !containsAnyWord(line, streetKeywords)
}
