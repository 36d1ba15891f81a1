// Package extractor turns classified CV sections into a structured document.
//
// Each section type has its own extraction routine, selected by an exhaustive
// dispatch over the closed SectionType enumeration. A panic inside one
// routine is contained at the section boundary: it becomes a single
// high-severity issue tagged with that section's type and never aborts the
// remaining sections. The extractor itself never returns an error.
package extractor

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

// Extractor produces a StructuredCVData document from classified sections.
// It holds no state across calls; one instance may serve concurrent callers.
type Extractor struct {
	log zerolog.Logger
}

// New creates a field extractor.
func New() *Extractor {
	return &Extractor{
		log: logger.WithComponent("extractor"),
	}
}

// run accumulates one extraction call's output. Seen-sets deduplicate skills
// and languages case-insensitively across sections and across the vocabulary
// and fallback paths.
type run struct {
	data         models.StructuredCVData
	issues       []models.Issue
	confidences  []float64
	seenTech     map[string]bool
	seenSoft     map[string]bool
	seenLanguage map[string]bool
	personalDone bool
}

func newRun() *run {
	return &run{
		data: models.StructuredCVData{
			Skills: models.SkillSet{
				Technical: []string{},
				Soft:      []string{},
				Languages: []string{},
			},
		},
		issues:       []models.Issue{},
		seenTech:     make(map[string]bool),
		seenSoft:     make(map[string]bool),
		seenLanguage: make(map[string]bool),
	}
}

// Extract processes each section according to its type. Confidence is the
// unweighted mean of per-section confidences; issues are concatenated in
// section-processing order.
func (e *Extractor) Extract(sections []models.OCRSection) models.ExtractionResult {
	r := newRun()

	for _, section := range sections {
		e.processSection(r, section, sections)
	}

	confidence := 0.0
	if len(r.confidences) > 0 {
		var sum float64
		for _, c := range r.confidences {
			sum += c
		}
		confidence = clamp01(sum / float64(len(r.confidences)))
	}

	e.log.Info().
		Int("sections", len(sections)).
		Float64("confidence", confidence).
		Int("issues", len(r.issues)).
		Msg("Extraction completed")

	return models.ExtractionResult{
		Data:       r.data,
		Confidence: confidence,
		Issues:     r.issues,
	}
}

// processSection dispatches one section and contains any panic raised by its
// handler. A recovered panic contributes a zero confidence so a broken
// section still weighs into the overall mean.
func (e *Extractor) processSection(r *run, section models.OCRSection, all []models.OCRSection) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().
				Str("section_id", section.ID).
				Str("section_type", string(section.Type)).
				Interface("panic", rec).
				Msg("Section extraction failed")
			r.issues = append(r.issues, models.Issue{
				Field:    string(section.Type),
				Issue:    fmt.Sprintf("extraction failed: %v", rec),
				Severity: models.SeverityHigh,
			})
			r.confidences = append(r.confidences, 0)
		}
	}()

	var (
		confidence float64
		issues     []models.Issue
	)

	switch section.Type {
	case models.SectionPersonal:
		if r.personalDone {
			return
		}
		r.personalDone = true
		confidence, issues = r.extractPersonal(personalPool(all))
	case models.SectionExperience:
		confidence, issues = r.extractExperience(section)
	case models.SectionEducation:
		confidence, issues = r.extractEducation(section)
	case models.SectionSkills:
		confidence, issues = r.extractSkills(section)
	case models.SectionSummary:
		confidence, issues = r.extractSummary(section)
	case models.SectionLanguages:
		confidence, issues = r.extractLanguages(section)
	case models.SectionProjects:
		confidence, issues = r.extractProjects(section)
	case models.SectionCertifications:
		confidence, issues = r.extractCertifications(section)
	default:
		panic(fmt.Sprintf("unhandled section type %q", section.Type))
	}

	r.confidences = append(r.confidences, clamp01(confidence))
	r.issues = append(r.issues, issues...)
}

// personalPool gathers the raw lines of every personal-typed section so
// contact data scattered across several fragments is processed as one block.
func personalPool(sections []models.OCRSection) []string {
	var pool []string
	for _, s := range sections {
		if s.Type == models.SectionPersonal {
			pool = append(pool, s.RawLines...)
		}
	}
	return pool
}

// contentLines splits a section's content into its non-empty lines.
func contentLines(section models.OCRSection) []string {
	var lines []string
	for _, line := range strings.Split(section.Content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
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
