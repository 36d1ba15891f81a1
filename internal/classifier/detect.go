package classifier

import (
	"regexp"
	"strings"

	"cvscan/pkg/models"
)

var (
	yearPattern        = regexp.MustCompile(`(19|20)\d{2}`)
	frenchMonthPattern = regexp.MustCompile(`(?i)\b(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)\b`)
	numericDatePattern = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2})\b`)

	enumeratedPrefix = regexp.MustCompile(`^(\d{1,2}[.)]|[a-zA-Z]\))\s`)
	upperRun         = regexp.MustCompile(`\p{Lu}{3,}`)
)

// matchKeywords reports the first section type whose stems appear in the line
// and how many distinct stems of that type matched.
func matchKeywords(line string) (models.SectionType, int, bool) {
	upper := strings.ToUpper(line)
	for _, set := range sectionKeywords {
		matched := 0
		for _, stem := range set.Stems {
			if strings.Contains(upper, strings.ToUpper(stem)) {
				matched++
			}
		}
		if matched > 0 {
			return set.Type, matched, true
		}
	}
	return "", 0, false
}

// IsBulletLine reports whether the line opens a list item, either with a
// bullet glyph or an enumerated prefix such as "1." or "a)". The extractor
// shares this check so both stages agree on what a list item is.
func IsBulletLine(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return enumeratedPrefix.MatchString(line)
}

// hasDateHint reports whether the line carries a year, a French month name or
// a numeric date.
func hasDateHint(line string) bool {
	return yearPattern.MatchString(line) ||
		frenchMonthPattern.MatchString(line) ||
		numericDatePattern.MatchString(line)
}

func containsAnyWord(line string, words []string) bool {
	lower := strings.ToLower(line)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// detectSectionStart applies the per-line rules in priority order: keyword
// match, bullet inheritance (up to 3 lines back), then date-context
// inference over a window of 2 lines either side. A zero return means the
// line is plain content.
func detectSectionStart(lines []string, idx int) (models.SectionType, float64, bool) {
	line := lines[idx]

	if typ, matched, ok := matchKeywords(line); ok {
		return typ, headerConfidence(line, matched), true
	}

	if IsBulletLine(line) {
		for back := 1; back <= 3 && idx-back >= 0; back++ {
			if typ, _, ok := matchKeywords(lines[idx-back]); ok {
				return typ, headerConfidence(line, 0), true
			}
		}
		return "", 0, false
	}

	if hasDateHint(line) {
		lo := idx - 2
		if lo < 0 {
			lo = 0
		}
		hi := idx + 2
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for j := lo; j <= hi; j++ {
			if containsAnyWord(lines[j], employerHints) || containsAnyWord(lines[j], positionHints) {
				return models.SectionExperience, headerConfidence(line, 0), true
			}
		}
		for j := lo; j <= hi; j++ {
			if containsAnyWord(lines[j], institutionHints) || containsAnyWord(lines[j], degreeHints) {
				return models.SectionEducation, headerConfidence(line, 0), true
			}
		}
	}

	return "", 0, false
}

// headerConfidence scores a section-start line: base 0.5, +0.2 per distinct
// matched keyword, +0.1 for a run of 3+ uppercase letters, +0.2 when the
// whole line is uppercase, +0.1 when it contains a colon, clamped to [0,1].
func headerConfidence(line string, matchedKeywords int) float64 {
	score := 0.5 + 0.2*float64(matchedKeywords)
	if upperRun.MatchString(line) {
		score += 0.1
	}
	if isAllUpper(line) {
		score += 0.2
	}
	if strings.Contains(line, ":") {
		score += 0.1
	}
	return clamp01(score)
}

// isAllUpper reports whether the line is entirely uppercase and contains at
// least one cased letter.
func isAllUpper(line string) bool {
	return line == strings.ToUpper(line) && line != strings.ToLower(line)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
