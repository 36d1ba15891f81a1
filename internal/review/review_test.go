package review

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvscan/pkg/models"
)

func extractedFixture() models.StructuredCVData {
	return models.StructuredCVData{
		Personal: models.PersonalInfo{
			Name:  "Jean Dupon",
			Email: "jean.dupont@example.com",
		},
		Experience: []models.Experience{
			{Company: "chez Société ABC", Position: "Développeur Web", Period: "2020 - 2022"},
		},
		Skills: models.SkillSet{
			Technical: []string{"Python", "Docker"},
			Soft:      []string{},
			Languages: []string{},
		},
	}
}

func TestApplyAcceptsValidCorrections(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	corrected := extractedFixture()
	corrected.Personal.Name = "Jean Dupont"
	corrected.Experience[0].Company = "Société ABC"
	raw, err := json.Marshal(corrected)
	require.NoError(t, err)

	result, err := service.Apply(extractedFixture(), raw)
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", result.Data.Personal.Name)
	require.Len(t, result.Corrections, 2)
	// Corrections come out in lexical field order.
	assert.Equal(t, Correction{
		Field:    "experience[0].company",
		Original: "chez Société ABC",
		Reviewed: "Société ABC",
	}, result.Corrections[0])
	assert.Equal(t, Correction{
		Field:    "personal.name",
		Original: "Jean Dupon",
		Reviewed: "Jean Dupont",
	}, result.Corrections[1])
}

func TestApplyNoChangesYieldsNoCorrections(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	raw, err := json.Marshal(extractedFixture())
	require.NoError(t, err)

	result, err := service.Apply(extractedFixture(), raw)
	require.NoError(t, err)

	assert.Empty(t, result.Corrections)
}

func TestApplyRejectsUnknownFields(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	_, err = service.Apply(extractedFixture(), []byte(`{
		"personal": {"name": "Jean Dupont"},
		"skills": {"technical": [], "soft": [], "languages": []},
		"salary": "a lot"
	}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestApplyRejectsWrongTypes(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	_, err = service.Apply(extractedFixture(), []byte(`{
		"personal": {"name": 42},
		"skills": {"technical": [], "soft": [], "languages": []}
	}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestApplyRejectsMalformedJSON(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	_, err = service.Apply(extractedFixture(), []byte(`{not json`))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDocument, "malformed input never reaches validation")
}

func TestApplyCountsAdditionsAndRemovals(t *testing.T) {
	service, err := NewService()
	require.NoError(t, err)

	corrected := extractedFixture()
	corrected.Personal.Phone = "06 12 34 56 78" // added by reviewer
	corrected.Personal.Email = ""               // removed by reviewer
	raw, err := json.Marshal(corrected)
	require.NoError(t, err)

	result, err := service.Apply(extractedFixture(), raw)
	require.NoError(t, err)

	require.Len(t, result.Corrections, 2)
	assert.Equal(t, "personal.email", result.Corrections[0].Field)
	assert.Empty(t, result.Corrections[0].Reviewed)
	assert.Equal(t, "personal.phone", result.Corrections[1].Field)
	assert.Equal(t, "06 12 34 56 78", result.Corrections[1].Reviewed)
}
