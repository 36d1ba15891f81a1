package models

// SectionType is the semantic category assigned to a contiguous span of
// recognized lines. The enumeration is closed: the classifier never emits a
// type outside this set.
type SectionType string

const (
	SectionPersonal       SectionType = "personal"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionSummary        SectionType = "summary"
	SectionProjects       SectionType = "projects"
	SectionLanguages      SectionType = "languages"
	SectionCertifications SectionType = "certifications"
)

// OCRSection is one contiguous, classified chunk of source text.
type OCRSection struct {
	// ID is unique within a single classification run.
	ID string `json:"id"`

	// Type is the assigned semantic category.
	Type SectionType `json:"type"`

	// Title is the line judged to be the section header. Empty for sections
	// inferred implicitly (e.g. the default leading personal block).
	Title string `json:"title"`

	// Content holds all non-header lines of the section, one per line,
	// single-spaced within each line.
	Content string `json:"content"`

	// Confidence is the heuristic strength of the type assignment, in [0,1].
	Confidence float64 `json:"confidence"`

	// RawLines are the original source lines contributing to the section,
	// in order. Non-empty after finalization.
	RawLines []string `json:"raw_lines"`

	// Position is the zero-based index of the section's first source line in
	// the cleaned line sequence. Sections are ordered ascending by Position
	// and never overlap.
	Position int `json:"position"`
}

// ClassificationMetadata carries observability data for one classification run.
type ClassificationMetadata struct {
	TotalLines       int    `json:"total_lines"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	AnalysisVersion  string `json:"analysis_version"`
}

// ClassificationResult is the classifier's output for one document.
type ClassificationResult struct {
	Sections   []OCRSection           `json:"sections"`
	Confidence float64                `json:"confidence"`
	Warnings   []string               `json:"warnings"`
	Metadata   ClassificationMetadata `json:"metadata"`
}
