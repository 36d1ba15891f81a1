package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvscan/internal/classifier"
	"cvscan/pkg/models"
)

func personalSection(lines ...string) models.OCRSection {
	return models.OCRSection{
		ID:       "sec-001",
		Type:     models.SectionPersonal,
		RawLines: lines,
	}
}

func TestExtractPersonalContactBlock(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{personalSection(
		"Jean Dupont",
		"jean.dupont@example.com",
		"06 12 34 56 78",
		"linkedin.com/in/jeandupont",
		"12 rue de la Paix, Paris",
	)})

	info := result.Data.Personal
	assert.Equal(t, "Jean Dupont", info.Name)
	assert.Equal(t, "jean.dupont@example.com", info.Email)
	assert.Equal(t, "06 12 34 56 78", info.Phone)
	assert.Equal(t, "linkedin.com/in/jeandupont", info.LinkedIn)
	assert.Equal(t, "12 rue de la Paix, Paris", info.Address)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestExtractPersonalPoolsFragments(t *testing.T) {
	e := New()

	// Contact data split across two personal fragments is processed once,
	// as one block.
	result := e.Extract([]models.OCRSection{
		personalSection("Jean Dupont"),
		personalSection("jean.dupont@example.com", "06 12 34 56 78"),
	})

	info := result.Data.Personal
	assert.Equal(t, "Jean Dupont", info.Name)
	assert.Equal(t, "jean.dupont@example.com", info.Email)
	assert.Equal(t, "06 12 34 56 78", info.Phone)
	require.Len(t, result.Issues, 0)
	// One pooled pass, not one per fragment.
	assert.Len(t, result.Data.Experience, 0)
}

func TestExtractPersonalMissingFieldsBecomeIssues(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{personalSection("12 rue de la Paix")})

	fields := make(map[string]models.Severity)
	for _, issue := range result.Issues {
		fields[issue.Field] = issue.Severity
	}
	assert.Equal(t, models.SeverityMedium, fields["personal.name"])
	assert.Equal(t, models.SeverityLow, fields["personal.email"])
	assert.Equal(t, models.SeverityLow, fields["personal.phone"])
}

func TestExtractExperience(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionExperience,
		Title:   "EXPÉRIENCE PROFESSIONNELLE",
		Content: "Développeur Web\nchez Société ABC\n2020 - 2022\n- Développement d'applications React et Node",
	}
	result := e.Extract([]models.OCRSection{section})

	require.Len(t, result.Data.Experience, 1)
	exp := result.Data.Experience[0]
	assert.Equal(t, "Développeur Web", exp.Position)
	assert.Equal(t, "chez Société ABC", exp.Company)
	assert.Equal(t, "2020 - 2022", exp.Period)
	assert.Equal(t, "- Développement d'applications React et Node", exp.Description)
	assert.Equal(t, []string{"React", "Node"}, exp.Technologies)
	assert.Empty(t, result.Issues)
}

func TestExtractExperienceBulletsJoinDescription(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionExperience,
		Content: "Développeur Web - Acme Corp (2020 - 2022)\n- Conception d'API REST\n- Migration vers Docker",
	}
	result := e.Extract([]models.OCRSection{section})

	require.Len(t, result.Data.Experience, 1)
	exp := result.Data.Experience[0]
	assert.Contains(t, exp.Position, "Développeur")
	assert.Contains(t, exp.Period, "2020")
	assert.Contains(t, exp.Period, "2022")
	assert.Equal(t, "- Conception d'API REST\n- Migration vers Docker", exp.Description)
	assert.Equal(t, []string{"Docker"}, exp.Technologies)
}

func TestExtractBulletGlyphsThroughFullPipeline(t *testing.T) {
	classification := classifier.New().Classify(
		"EXPÉRIENCE PROFESSIONNELLE\nDéveloppeur Web - Acme Corp (2020 - 2022)\n• Conception d'API REST\n• Migration vers Docker")
	require.Len(t, classification.Sections, 1)

	result := New().Extract(classification.Sections)

	require.Len(t, result.Data.Experience, 1)
	exp := result.Data.Experience[0]
	assert.Contains(t, exp.Position, "Développeur")
	assert.Equal(t, "2020 - 2022", exp.Period)
	assert.Equal(t, "• Conception d'API REST\n• Migration vers Docker", exp.Description)
	assert.Equal(t, []string{"Docker"}, exp.Technologies)
}

func TestExtractExperienceWithoutPositionKeepsRawContent(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionExperience,
		Content: "Travail saisonnier\nRécolte et conditionnement",
	}
	result := e.Extract([]models.OCRSection{section})

	require.Len(t, result.Data.Experience, 1)
	exp := result.Data.Experience[0]
	assert.Empty(t, exp.Position)
	assert.Equal(t, "Travail saisonnier\nRécolte et conditionnement", exp.Description,
		"unrecognized sections keep their content instead of losing it")

	fields := make(map[string]models.Severity)
	for _, issue := range result.Issues {
		fields[issue.Field] = issue.Severity
	}
	assert.Equal(t, models.SeverityMedium, fields["experience.position"])
	assert.Equal(t, models.SeverityLow, fields["experience.company"])
	assert.Equal(t, models.SeverityLow, fields["experience.period"])
}

func TestExtractOneEntryPerExperienceSection(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{
		{ID: "sec-001", Type: models.SectionExperience, Content: "Développeur chez Acme\n2018 - 2020"},
		{ID: "sec-002", Type: models.SectionExperience, Content: "Consultant chez Globex\n2020 - 2022"},
	})

	assert.Len(t, result.Data.Experience, 2, "entries are never merged across sections")
}

func TestExtractEducation(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionEducation,
		Content: "Master Informatique\nUniversité de Lyon\n2015 - 2017",
	}
	result := e.Extract([]models.OCRSection{section})

	require.Len(t, result.Data.Education, 1)
	edu := result.Data.Education[0]
	assert.Equal(t, "Master Informatique", edu.Degree)
	assert.Equal(t, "Université de Lyon", edu.Institution)
	assert.Equal(t, "2015 - 2017", edu.Period)
	assert.Empty(t, result.Issues)
}

func TestExtractSkillsVocabulary(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionSkills,
		Content: "Python, Docker, communication, leadership",
	}
	result := e.Extract([]models.OCRSection{section})

	assert.Equal(t, []string{"Python", "Docker"}, result.Data.Skills.Technical)
	assert.Equal(t, []string{"Communication", "Leadership"}, result.Data.Skills.Soft)
	assert.Empty(t, result.Issues)
}

func TestExtractSkillsFallbackKeepsTokensVerbatim(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionSkills,
		Content: "Gestion de budgets, relations clients, Excel avancé",
	}
	result := e.Extract([]models.OCRSection{section})

	assert.Equal(t, []string{"Gestion de budgets", "relations clients", "Excel avancé"},
		result.Data.Skills.Technical)
	assert.Empty(t, result.Issues, "a populated fallback is not an issue")
}

func TestExtractSkillsDeduplicatesAcrossSections(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{
		{ID: "sec-001", Type: models.SectionSkills, Content: "Python, Docker"},
		{ID: "sec-002", Type: models.SectionSkills, Content: "docker, python, React"},
	})

	assert.Equal(t, []string{"Python", "Docker", "React"}, result.Data.Skills.Technical)
}

func TestExtractLanguages(t *testing.T) {
	e := New()

	section := models.OCRSection{
		ID:      "sec-001",
		Type:    models.SectionLanguages,
		Content: "Français (natif), Anglais courant",
	}
	result := e.Extract([]models.OCRSection{section})

	assert.Equal(t, []string{"Français", "Anglais"}, result.Data.Skills.Languages)
}

func TestExtractSummaryProjectsCertifications(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{
		{ID: "sec-001", Type: models.SectionSummary, Content: "Développeur passionné."},
		{ID: "sec-002", Type: models.SectionProjects, Content: "Site vitrine\nRefonte complète du site"},
		{ID: "sec-003", Type: models.SectionCertifications, Content: "AWS Solutions Architect\nScrum Master"},
	})

	assert.Equal(t, "Développeur passionné.", result.Data.Summary)
	require.Len(t, result.Data.Projects, 1)
	assert.Equal(t, "Site vitrine", result.Data.Projects[0].Name)
	assert.Equal(t, "Refonte complète du site", result.Data.Projects[0].Description)
	assert.Equal(t, []string{"AWS Solutions Architect", "Scrum Master"}, result.Data.Certifications)
}

func TestExtractIsolatesSectionFailures(t *testing.T) {
	e := New()

	result := e.Extract([]models.OCRSection{
		{ID: "sec-001", Type: models.SectionSummary, Content: "Développeur passionné."},
		{ID: "sec-002", Type: models.SectionType("bogus"), Content: "x"},
	})

	// The healthy section is unaffected.
	assert.Equal(t, "Développeur passionné.", result.Data.Summary)

	// The broken section yields exactly one high-severity issue and weighs
	// into the mean with zero confidence.
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "bogus", result.Issues[0].Field)
	assert.Equal(t, models.SeverityHigh, result.Issues[0].Severity)
	assert.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestExtractEmptyInput(t *testing.T) {
	e := New()

	result := e.Extract(nil)

	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Issues)
	assert.NotNil(t, result.Data.Skills.Technical)
	assert.NotNil(t, result.Data.Skills.Soft)
	assert.NotNil(t, result.Data.Skills.Languages)
}

func TestExtractionResultJSONRoundTrip(t *testing.T) {
	e := New()

	original := e.Extract([]models.OCRSection{
		personalSection("Jean Dupont", "jean.dupont@example.com"),
		{ID: "sec-002", Type: models.SectionExperience, Content: "Développeur chez Acme\n2018 - 2020"},
		{ID: "sec-003", Type: models.SectionSkills, Content: "Python, Docker"},
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded models.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
