package classifier

import (
	"regexp"
	"strings"
)

var (
	// typographicReplacer maps typographic dashes, quotes and ellipses emitted
	// by OCR engines to their ASCII equivalents.
	typographicReplacer = strings.NewReplacer(
		"—", "-", // em dash
		"–", "-", // en dash
		"−", "-", // minus sign
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"«", `"`,
		"»", `"`,
		"…", "...",
	)

	// disallowedChars strips everything outside Latin letters (accented
	// included), digits, common punctuation, currency symbols, whitespace and
	// the bullet glyphs that detection and extraction key on.
	disallowedChars = regexp.MustCompile(`[^a-zA-ZÀ-ÖØ-öø-ÿŒœ0-9\s.,;:!?@#&()\[\]{}/\\'"+*%€$£§°_|<>=•◦▪▸▶-]`)

	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// normalizeText cleans raw recognized text and splits it into the non-empty
// trimmed line sequence the classifier operates on. Line indexes into the
// returned slice are the Position values reported on sections.
func normalizeText(raw string) []string {
	text := typographicReplacer.Replace(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = disallowedChars.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
