package extractor

import (
	"regexp"
	"strings"
)

// periodPatterns is the fixed date cascade for experience and education
// periods, tried in order: month-name + year, year ranges, month/year, bare
// year. The first pattern with any match wins; later patterns are not
// consulted, so a "2020 - 2022" range is captured whole instead of as two
// bare years.
var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)\s+(19|20)\d{2}`),
	regexp.MustCompile(`\b(19|20)\d{2}\s*-\s*(19|20)\d{2}\b`),
	regexp.MustCompile(`\b(19|20)\d{2}\s*/\s*(19|20)\d{2}\b`),
	regexp.MustCompile(`\b(0[1-9]|1[0-2])/(19|20)\d{2}\b`),
	regexp.MustCompile(`\b(19|20)\d{2}\b`),
}

// birthdayPatterns parse explicit calendar dates on birth lines.
var birthdayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(er)?\s+(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)\s+\d{4}`),
	regexp.MustCompile(`\b(19|20)\d{2}\b`),
}

// extractDateMentions returns up to max date mentions found in content using
// the period cascade.
func extractDateMentions(content string, max int) []string {
	for _, p := range periodPatterns {
		matches := p.FindAllString(content, max)
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// extractPeriod joins up to two date mentions with " - ".
func extractPeriod(content string) (string, []string) {
	dates := extractDateMentions(content, 2)
	return strings.Join(dates, " - "), dates
}

// parseDateFromLine returns the first explicit date found in a line, used for
// birthday extraction.
func parseDateFromLine(line string) (string, bool) {
	for _, p := range birthdayPatterns {
		if m := p.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}
