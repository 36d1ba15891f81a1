package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cvscan/pkg/models"
)

func resultFixture() models.ExtractionResult {
	return models.ExtractionResult{
		Data: models.StructuredCVData{
			Personal: models.PersonalInfo{
				Name:  "Jean Dupont",
				Email: "jean.dupont@example.com",
			},
			Experience: []models.Experience{
				{
					Company:      "Société ABC",
					Position:     "Développeur Web",
					Period:       "2020 - 2022",
					Technologies: []string{"React", "Node"},
				},
			},
			Education: []models.Education{
				{Institution: "Université de Lyon", Degree: "Master Informatique", Period: "2015 - 2017"},
			},
			Skills: models.SkillSet{
				Technical: []string{"Python", "Docker"},
				Soft:      []string{"Communication"},
				Languages: []string{"Français", "Anglais"},
			},
		},
		Confidence: 0.82,
		Issues: []models.Issue{
			{Field: "personal.phone", Issue: "phone number not detected", Severity: models.SeverityLow},
		},
	}
}

func TestExportXLSX(t *testing.T) {
	workbook, err := NewService().ExportXLSX(resultFixture())
	require.NoError(t, err)
	require.NotEmpty(t, workbook)

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Personal", "Experience", "Education", "Skills", "Issues"} {
		assert.Contains(t, sheets, want)
	}
	assert.NotContains(t, sheets, "Sheet1")

	name, err := f.GetCellValue("Personal", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", name)

	company, err := f.GetCellValue("Experience", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Société ABC", company)

	technologies, err := f.GetCellValue("Experience", "E2")
	require.NoError(t, err)
	assert.Equal(t, "React, Node", technologies)

	degree, err := f.GetCellValue("Education", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Master Informatique", degree)

	language, err := f.GetCellValue("Skills", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Anglais", language)

	issueField, err := f.GetCellValue("Issues", "A4")
	require.NoError(t, err)
	assert.Equal(t, "personal.phone", issueField)
}

func TestExportXLSXEmptyResult(t *testing.T) {
	workbook, err := NewService().ExportXLSX(models.ExtractionResult{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	require.NoError(t, err)
	defer f.Close()

	// All sheets exist even when the document is empty.
	assert.Len(t, f.GetSheetList(), 5)
}
