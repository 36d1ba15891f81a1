package models

// PersonalInfo holds the contact block of a CV. Every field is independently
// optional; fields the extractor could not detect stay empty and are flagged
// as issues, never guessed.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

// Experience is one professional position. The extractor produces one entry
// per experience-typed section; entries are never merged across sections.
type Experience struct {
	Company      string   `json:"company,omitempty"`
	Position     string   `json:"position,omitempty"`
	Period       string   `json:"period,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree or training entry, one per education-typed section.
type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// SkillSet groups extracted skills by kind. Lists are deduplicated
// case-insensitively across sections and across the vocabulary and fallback
// extraction paths.
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// Project is one project entry derived from a projects-typed section.
type Project struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// StructuredCVData is the extractor's output document. It is created fresh
// per extraction call; persistence and merging into a larger CV model are the
// caller's responsibility.
type StructuredCVData struct {
	Personal       PersonalInfo `json:"personal"`
	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Skills         SkillSet     `json:"skills"`
	Projects       []Project    `json:"projects,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
}

// Severity grades an extraction issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a structured, non-fatal annotation describing a field the
// extractor could not confidently populate.
type Issue struct {
	Field    string   `json:"field"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// ExtractionResult wraps the structured document with an overall confidence
// (arithmetic mean of per-section extraction confidences, unweighted) and the
// issues collected in section-processing order.
type ExtractionResult struct {
	Data       StructuredCVData `json:"data"`
	Confidence float64          `json:"confidence"`
	Issues     []Issue          `json:"issues"`
}
