package classifier

import (
	"sort"
	"strings"

	"cvscan/pkg/models"
)

const (
	// consecutiveMergeGap is the maximum position distance between two
	// same-type sections considered for merging.
	consecutiveMergeGap = 10

	// overlapThreshold is the minimum word-overlap similarity for a merge.
	overlapThreshold = 0.3
)

// mergeSections reduces over-segmentation from noisy OCR. All personal
// sections collapse into one (contact info is often scattered across the top
// of a scanned page and wrongly split); other types merge only when two
// same-type sections sit close together and share vocabulary, so genuinely
// distinct repeated sections stay separate.
func mergeSections(sections []models.OCRSection) []models.OCRSection {
	if len(sections) <= 1 {
		return sections
	}

	var personals []models.OCRSection
	var typeOrder []models.SectionType
	groups := make(map[models.SectionType][]models.OCRSection)

	for _, s := range sections {
		if s.Type == models.SectionPersonal {
			personals = append(personals, s)
			continue
		}
		if _, seen := groups[s.Type]; !seen {
			typeOrder = append(typeOrder, s.Type)
		}
		groups[s.Type] = append(groups[s.Type], s)
	}

	var merged []models.OCRSection
	if len(personals) > 0 {
		merged = append(merged, mergePersonal(personals))
	}
	for _, typ := range typeOrder {
		group := groups[typ]
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}
		merged = append(merged, mergeConsecutive(group)...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Position < merged[j].Position
	})
	return merged
}

// mergePersonal folds all personal-typed sections into the first one.
// Confidence is averaged pairwise in encounter order.
func mergePersonal(group []models.OCRSection) models.OCRSection {
	out := group[0]
	for _, next := range group[1:] {
		out.Content = joinContent(out.Content, next.Content)
		out.Confidence = (out.Confidence + next.Confidence) / 2
		out.RawLines = append(out.RawLines, next.RawLines...)
		if out.Title == "" {
			out.Title = next.Title
		}
	}
	return out
}

// mergeConsecutive walks a same-type group sorted by position and folds each
// section into its predecessor when the position gap is below
// consecutiveMergeGap and the word-overlap similarity exceeds
// overlapThreshold.
func mergeConsecutive(group []models.OCRSection) []models.OCRSection {
	out := []models.OCRSection{group[0]}
	for _, next := range group[1:] {
		cur := &out[len(out)-1]
		if next.Position-cur.Position < consecutiveMergeGap &&
			wordOverlap(cur.Content, next.Content) > overlapThreshold {
			cur.Content = joinContent(cur.Content, next.Content)
			cur.Confidence = (cur.Confidence + next.Confidence) / 2
			cur.RawLines = append(cur.RawLines, next.RawLines...)
			continue
		}
		out = append(out, next)
	}
	return out
}

// wordOverlap measures similarity as the count of distinct shared words
// longer than 3 characters, divided by the larger distinct word count.
func wordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for w := range setA {
		if setB[w] {
			shared++
		}
	}
	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len([]rune(w)) > 3 {
			set[w] = true
		}
	}
	return set
}

func joinContent(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
