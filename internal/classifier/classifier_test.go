package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvscan/pkg/models"
)

const sampleCV = `Jean Dupont
jean.dupont@example.com
06 12 34 56 78

EXPÉRIENCE PROFESSIONNELLE
Développeur Web chez Société ABC
2020 - 2022
- Développement d'applications React

FORMATION
Master Informatique
Université de Lyon
2015 - 2017

COMPÉTENCES
Python, Docker, Communication`

func TestClassifyContactBlockBecomesPersonalSection(t *testing.T) {
	c := New()

	result := c.Classify("Jean Dupont\njean.dupont@example.com\n06 12 34 56 78\n\nEXPÉRIENCE PROFESSIONNELLE\nDéveloppeur Web chez Société ABC")

	require.NotEmpty(t, result.Sections)
	first := result.Sections[0]
	assert.Equal(t, models.SectionPersonal, first.Type)
	assert.Empty(t, first.Title, "implicit section has no header line")
	assert.Equal(t, implicitSectionConfidence, first.Confidence)
	assert.Contains(t, first.Content, "jean.dupont@example.com")
	assert.Contains(t, first.Content, "06 12 34 56 78")
}

func TestClassifyExperienceHeader(t *testing.T) {
	c := New()

	result := c.Classify("EXPÉRIENCE PROFESSIONNELLE\nDéveloppeur Web chez Société ABC\n2020 - 2022\n- Développement d'applications React")

	require.Len(t, result.Sections, 1)
	section := result.Sections[0]
	assert.Equal(t, models.SectionExperience, section.Type)
	assert.Equal(t, "EXPÉRIENCE PROFESSIONNELLE", section.Title)
	assert.Equal(t, 1.0, section.Confidence, "uppercase multi-keyword header saturates the score")
	// The header is a raw line of the section but not part of its content.
	assert.Equal(t, "EXPÉRIENCE PROFESSIONNELLE", section.RawLines[0])
	assert.NotContains(t, section.Content, "EXPÉRIENCE")
	assert.Contains(t, section.Content, "2020 - 2022")
}

func TestClassifyBulletGlyphsStayWithTheirSection(t *testing.T) {
	c := New()

	result := c.Classify("EXPÉRIENCE PROFESSIONNELLE\nDéveloppeur Web chez Société ABC\n• Conception d'API REST\n• Migration vers Docker")

	require.Len(t, result.Sections, 1)
	section := result.Sections[0]
	assert.Equal(t, models.SectionExperience, section.Type)
	assert.Contains(t, section.Content, "• Conception d'API REST")
	assert.Contains(t, section.Content, "• Migration vers Docker")
}

func TestClassifyNoHeadersAtAll(t *testing.T) {
	c := New()

	result := c.Classify("Jean Dupont\njean.dupont@example.com\n06 12 34 56 78")

	require.Len(t, result.Sections, 1)
	section := result.Sections[0]
	assert.Equal(t, models.SectionPersonal, section.Type)
	assert.Equal(t, implicitSectionConfidence, section.Confidence)
	assert.Empty(t, result.Warnings, "a classified fallback section is not a warning condition")
}

func TestClassifyEmptyInput(t *testing.T) {
	c := New()

	result := c.Classify("   \n\n\t\n")

	assert.Empty(t, result.Sections)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, []string{"no sections detected"}, result.Warnings)
	assert.Zero(t, result.Metadata.TotalLines)
}

func TestClassifyCoverageInvariant(t *testing.T) {
	c := New()

	result := c.Classify(sampleCV)

	classified := 0
	for _, s := range result.Sections {
		classified += len(s.RawLines)
	}
	assert.Equal(t, result.Metadata.TotalLines, classified,
		"every cleaned line belongs to exactly one section")
}

func TestClassifyOrderingAndIdentity(t *testing.T) {
	c := New()

	result := c.Classify(sampleCV)
	require.NotEmpty(t, result.Sections)

	seen := make(map[string]bool)
	lastPos := -1
	for _, s := range result.Sections {
		assert.False(t, seen[s.ID], "section IDs are unique")
		seen[s.ID] = true
		assert.True(t, strings.HasPrefix(s.ID, "sec-"))
		assert.Greater(t, s.Position, lastPos, "sections are sorted by position")
		lastPos = s.Position
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := New()

	for _, input := range []string{sampleCV, "random text", "EXPÉRIENCE\nEXPÉRIENCE\nEXPÉRIENCE"} {
		result := c.Classify(input)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
		for _, s := range result.Sections {
			assert.GreaterOrEqual(t, s.Confidence, 0.0)
			assert.LessOrEqual(t, s.Confidence, 1.0)
		}
	}
}

func TestClassifyDeterminism(t *testing.T) {
	c := New()

	a := c.Classify(sampleCV)
	b := c.Classify(sampleCV)

	// Wall-clock timing is the only nondeterministic output field.
	a.Metadata.ProcessingTimeMs = 0
	b.Metadata.ProcessingTimeMs = 0
	assert.Equal(t, a, b)
}

func TestClassifySectionTypes(t *testing.T) {
	c := New()

	result := c.Classify(sampleCV)

	types := make([]models.SectionType, 0, len(result.Sections))
	for _, s := range result.Sections {
		types = append(types, s.Type)
	}
	assert.Equal(t, []models.SectionType{
		models.SectionPersonal,
		models.SectionExperience,
		models.SectionEducation,
		models.SectionSkills,
	}, types)
}

func TestClassifyMetadataVersion(t *testing.T) {
	c := New()

	result := c.Classify(sampleCV)

	assert.Equal(t, AnalysisVersion, result.Metadata.AnalysisVersion)
	assert.Equal(t, 13, result.Metadata.TotalLines)
}
