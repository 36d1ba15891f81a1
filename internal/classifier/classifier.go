// Package classifier partitions raw OCR text into an ordered sequence of
// typed CV sections (personal, experience, education, skills, summary,
// projects, languages, certifications).
//
// The classifier is a pure, total function over any string input: it never
// returns an error, even for empty or garbled text. Its only failure signals
// are an empty section list, advisory warnings and low confidence scores.
// The confidence values it reports are locally computed heuristic strengths,
// not statistical probabilities, and are independent of whatever confidence
// the upstream OCR engine reported for the recognition itself.
package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

// AnalysisVersion is stamped into classification metadata so downstream
// consumers can tell which heuristic revision produced a result.
const AnalysisVersion = "1.2.0"

const (
	// implicitSectionConfidence is assigned to the fallback personal section
	// opened for leading header-like content (name and contact block).
	implicitSectionConfidence = 0.5

	// lowConfidenceThreshold marks sections worth a warning.
	lowConfidenceThreshold = 0.3

	// fullCoverageLines is the assumed line count of a fully covered
	// one-page resume, used in the overall confidence blend.
	fullCoverageLines = 50
)

// Classifier segments recognized text into typed sections. It holds no
// mutable state across calls; a single instance may be used concurrently.
type Classifier struct {
	log zerolog.Logger
}

// New creates a section classifier.
func New() *Classifier {
	return &Classifier{
		log: logger.WithComponent("classifier"),
	}
}

// Classify partitions rawText into typed sections. Sections are returned
// sorted ascending by Position and never overlap; every cleaned input line
// belongs to exactly one section.
func (c *Classifier) Classify(rawText string) models.ClassificationResult {
	start := time.Now()

	lines := normalizeText(rawText)
	sections := c.buildSections(lines)
	sections = mergeSections(sections)

	result := models.ClassificationResult{
		Sections:   sections,
		Confidence: overallConfidence(sections),
		Warnings:   collectWarnings(sections, len(lines)),
		Metadata: models.ClassificationMetadata{
			TotalLines:       len(lines),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			AnalysisVersion:  AnalysisVersion,
		},
	}

	c.log.Info().
		Int("total_lines", len(lines)).
		Int("sections", len(sections)).
		Float64("confidence", result.Confidence).
		Int("warnings", len(result.Warnings)).
		Int64("duration_ms", result.Metadata.ProcessingTimeMs).
		Msg("Classification completed")

	return result
}

// buildSections walks the cleaned lines keeping a single open section at a
// time. A detected section start of a different type closes the current
// section; content encountered before any start opens the implicit personal
// section that catches the contact block at the top of a scanned resume.
func (c *Classifier) buildSections(lines []string) []models.OCRSection {
	var sections []models.OCRSection
	var current *models.OCRSection
	nextID := 0

	newID := func() string {
		nextID++
		return fmt.Sprintf("sec-%03d", nextID)
	}

	for i, line := range lines {
		typ, confidence, isStart := detectSectionStart(lines, i)

		if isStart && (current == nil || typ != current.Type) {
			if current != nil {
				sections = append(sections, finalizeSection(*current))
			}
			current = &models.OCRSection{
				ID:         newID(),
				Type:       typ,
				Title:      line,
				Confidence: confidence,
				RawLines:   []string{line},
				Position:   i,
			}
			continue
		}

		if current == nil {
			current = &models.OCRSection{
				ID:         newID(),
				Type:       models.SectionPersonal,
				Title:      "",
				Confidence: implicitSectionConfidence,
				Position:   i,
			}
		}
		current.RawLines = append(current.RawLines, line)
	}

	if current != nil {
		sections = append(sections, finalizeSection(*current))
	}
	return sections
}

// finalizeSection derives Content from the accumulated raw lines. The header
// line, when present, contributes to RawLines (it is a source line of the
// section) but not to Content.
func finalizeSection(s models.OCRSection) models.OCRSection {
	contentLines := s.RawLines
	if s.Title != "" && len(contentLines) > 0 && contentLines[0] == s.Title {
		contentLines = contentLines[1:]
	}
	s.Content = strings.TrimSpace(strings.Join(contentLines, "\n"))
	s.Confidence = clamp01(s.Confidence)
	return s
}

// overallConfidence blends per-section certainty with coverage breadth:
// 0.7 * mean(section confidences) + 0.3 * min(1, classified lines / 50).
func overallConfidence(sections []models.OCRSection) float64 {
	if len(sections) == 0 {
		return 0
	}
	var sum float64
	classified := 0
	for _, s := range sections {
		sum += s.Confidence
		classified += len(s.RawLines)
	}
	mean := sum / float64(len(sections))
	coverage := float64(classified) / fullCoverageLines
	if coverage > 1 {
		coverage = 1
	}
	return clamp01(0.7*mean + 0.3*coverage)
}

// collectWarnings produces the advisory warning list. Warnings never change
// the returned sections.
func collectWarnings(sections []models.OCRSection, totalLines int) []string {
	warnings := []string{}

	if len(sections) == 0 {
		warnings = append(warnings, "no sections detected")
		return warnings
	}

	lowConfidence := 0
	classified := 0
	for _, s := range sections {
		if s.Confidence < lowConfidenceThreshold {
			lowConfidence++
		}
		classified += len(s.RawLines)
	}
	if lowConfidence > 0 {
		warnings = append(warnings, fmt.Sprintf("%d section(s) with low confidence", lowConfidence))
	}
	if totalLines > 0 && float64(totalLines-classified)/float64(totalLines) > 0.5 {
		warnings = append(warnings, "more than 50% of content uncategorized")
	}
	return warnings
}
