// Package export renders a structured CV as an XLSX workbook, one sheet per
// CV area, so reviewers can check a scan against the source document side by
// side.
package export

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

// Service produces XLSX bytes from extracted CV data.
type Service struct {
	log zerolog.Logger
}

func NewService() *Service {
	return &Service{log: logger.WithComponent("export")}
}

// ExportXLSX returns an XLSX workbook for the extraction result. Issues are
// written to their own sheet so low-confidence fields stay visible next to
// the data.
func (s *Service) ExportXLSX(result models.ExtractionResult) ([]byte, error) {
	const op = "ExportXLSX"

	f := excelize.NewFile()

	if err := s.writePersonalSheet(f, result.Data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.writeExperienceSheet(f, result.Data.Experience)
	s.writeEducationSheet(f, result.Data.Education)
	s.writeSkillsSheet(f, result.Data.Skills)
	s.writeIssuesSheet(f, result)

	// Excelize always creates "Sheet1"; everything lives on named sheets.
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex("Personal"); err == nil && index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: xlsx write: %w", op, err)
	}

	s.log.Info().
		Int("experience_rows", len(result.Data.Experience)).
		Int("education_rows", len(result.Data.Education)).
		Int("issues", len(result.Issues)).
		Msg("CV exported to XLSX")
	return buf.Bytes(), nil
}

func (s *Service) writePersonalSheet(f *excelize.File, data models.StructuredCVData) error {
	const sheet = "Personal"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][2]string{
		{"Name", data.Personal.Name},
		{"Email", data.Personal.Email},
		{"Phone", data.Personal.Phone},
		{"Address", data.Personal.Address},
		{"LinkedIn", data.Personal.LinkedIn},
		{"Website", data.Personal.Website},
		{"Birthday", data.Personal.Birthday},
		{"Summary", data.Summary},
	}
	for i, r := range rows {
		writeCell(f, sheet, 1, i+1, r[0])
		writeCell(f, sheet, 2, i+1, r[1])
	}
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	return nil
}

func (s *Service) writeExperienceSheet(f *excelize.File, entries []models.Experience) {
	const sheet = "Experience"
	_, _ = f.NewSheet(sheet)

	headers := []string{"Company", "Position", "Period", "Description", "Technologies"}
	for i, h := range headers {
		writeCell(f, sheet, i+1, 1, h)
	}
	for i, e := range entries {
		row := i + 2
		writeCell(f, sheet, 1, row, e.Company)
		writeCell(f, sheet, 2, row, e.Position)
		writeCell(f, sheet, 3, row, e.Period)
		writeCell(f, sheet, 4, row, e.Description)
		writeCell(f, sheet, 5, row, strings.Join(e.Technologies, ", "))
	}
	_ = f.SetColWidth(sheet, "A", "C", 22)
	_ = f.SetColWidth(sheet, "D", "D", 60)
	_ = f.SetColWidth(sheet, "E", "E", 32)
}

func (s *Service) writeEducationSheet(f *excelize.File, entries []models.Education) {
	const sheet = "Education"
	_, _ = f.NewSheet(sheet)

	headers := []string{"Institution", "Degree", "Period", "Location", "Description"}
	for i, h := range headers {
		writeCell(f, sheet, i+1, 1, h)
	}
	for i, e := range entries {
		row := i + 2
		writeCell(f, sheet, 1, row, e.Institution)
		writeCell(f, sheet, 2, row, e.Degree)
		writeCell(f, sheet, 3, row, e.Period)
		writeCell(f, sheet, 4, row, e.Location)
		writeCell(f, sheet, 5, row, e.Description)
	}
	_ = f.SetColWidth(sheet, "A", "B", 28)
	_ = f.SetColWidth(sheet, "C", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 60)
}

func (s *Service) writeSkillsSheet(f *excelize.File, skills models.SkillSet) {
	const sheet = "Skills"
	_, _ = f.NewSheet(sheet)

	columns := []struct {
		header string
		values []string
	}{
		{"Technical", skills.Technical},
		{"Soft", skills.Soft},
		{"Languages", skills.Languages},
	}
	for col, c := range columns {
		writeCell(f, sheet, col+1, 1, c.header)
		for i, v := range c.values {
			writeCell(f, sheet, col+1, i+2, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "C", 26)
}

func (s *Service) writeIssuesSheet(f *excelize.File, result models.ExtractionResult) {
	const sheet = "Issues"
	_, _ = f.NewSheet(sheet)

	writeCell(f, sheet, 1, 1, "Overall Confidence")
	writeCell(f, sheet, 2, 1, fmt.Sprintf("%.2f", result.Confidence))

	headers := []string{"Field", "Issue", "Severity"}
	for i, h := range headers {
		writeCell(f, sheet, i+1, 3, h)
	}
	for i, issue := range result.Issues {
		row := i + 4
		writeCell(f, sheet, 1, row, issue.Field)
		writeCell(f, sheet, 2, row, issue.Issue)
		writeCell(f, sheet, 3, row, string(issue.Severity))
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "C", 12)
}

func writeCell(f *excelize.File, sheet string, col, row int, v any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, v)
}
