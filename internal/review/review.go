// Package review accepts human corrections to an extracted CV. Corrected
// documents are validated against a JSON schema before acceptance, and the
// accepted document is diffed against the machine extraction so callers can
// see how much the scan got wrong.
package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

// ErrInvalidDocument indicates the corrected document failed schema validation.
var ErrInvalidDocument = errors.New("corrected document failed validation")

// Correction records one field whose reviewed value differs from the
// machine-extracted value.
type Correction struct {
	Field    string `json:"field"`
	Original string `json:"original"`
	Reviewed string `json:"reviewed"`
}

// Result is the outcome of one review: the accepted document plus the diff
// against the machine extraction.
type Result struct {
	Data        models.StructuredCVData `json:"data"`
	Corrections []Correction            `json:"corrections"`
}

// Service validates and applies reviewed CV documents.
type Service struct {
	schema *jsonschema.Schema
	log    zerolog.Logger
}

// NewService compiles the CV document schema once for the lifetime of the
// service.
func NewService() (*Service, error) {
	const op = "NewService"

	raw, err := json.Marshal(buildCVSchema())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal schema: %w", op, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("cv-schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%s: failed to add schema resource: %w", op, err)
	}
	schema, err := compiler.Compile("cv-schema.json")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to compile schema: %w", op, err)
	}

	return &Service{
		schema: schema,
		log:    logger.WithComponent("review"),
	}, nil
}

// Apply validates the corrected JSON document and, if valid, returns it as
// structured data together with the field-level corrections made against the
// machine extraction. extracted is left untouched.
func (s *Service) Apply(extracted models.StructuredCVData, corrected []byte) (*Result, error) {
	const op = "Apply"

	var doc any
	if err := json.Unmarshal(corrected, &doc); err != nil {
		return nil, fmt.Errorf("%s: corrected document is not valid JSON: %w", op, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		s.log.Warn().Err(err).Msg("Reviewed document rejected by schema")
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidDocument, err)
	}

	var reviewed models.StructuredCVData
	if err := json.Unmarshal(corrected, &reviewed); err != nil {
		return nil, fmt.Errorf("%s: failed to decode corrected document: %w", op, err)
	}

	corrections := diffDocuments(extracted, reviewed)
	s.log.Info().
		Int("corrections", len(corrections)).
		Msg("Reviewed document accepted")

	return &Result{Data: reviewed, Corrections: corrections}, nil
}

// diffDocuments flattens both documents to field paths and reports every path
// whose value changed, in lexical path order so output is deterministic.
func diffDocuments(extracted, reviewed models.StructuredCVData) []Correction {
	before := flatten(extracted)
	after := flatten(reviewed)

	paths := make(map[string]struct{}, len(before)+len(after))
	for p := range before {
		paths[p] = struct{}{}
	}
	for p := range after {
		paths[p] = struct{}{}
	}

	ordered := make([]string, 0, len(paths))
	for p := range paths {
		ordered = append(ordered, p)
	}
	sort.Strings(ordered)

	var corrections []Correction
	for _, p := range ordered {
		if before[p] != after[p] {
			corrections = append(corrections, Correction{
				Field:    p,
				Original: before[p],
				Reviewed: after[p],
			})
		}
	}
	return corrections
}

// flatten maps a document to "path -> value" pairs, e.g.
// "experience[0].company" -> "Acme". Lists of strings are flattened per index.
func flatten(data models.StructuredCVData) map[string]string {
	out := make(map[string]string)

	setIf := func(path, value string) {
		if value != "" {
			out[path] = value
		}
	}

	setIf("personal.name", data.Personal.Name)
	setIf("personal.email", data.Personal.Email)
	setIf("personal.phone", data.Personal.Phone)
	setIf("personal.address", data.Personal.Address)
	setIf("personal.linkedin", data.Personal.LinkedIn)
	setIf("personal.website", data.Personal.Website)
	setIf("personal.birthday", data.Personal.Birthday)
	setIf("summary", data.Summary)

	for i, exp := range data.Experience {
		prefix := fmt.Sprintf("experience[%d]", i)
		setIf(prefix+".company", exp.Company)
		setIf(prefix+".position", exp.Position)
		setIf(prefix+".period", exp.Period)
		setIf(prefix+".description", exp.Description)
		for j, t := range exp.Technologies {
			setIf(fmt.Sprintf("%s.technologies[%d]", prefix, j), t)
		}
		for j, a := range exp.Achievements {
			setIf(fmt.Sprintf("%s.achievements[%d]", prefix, j), a)
		}
	}
	for i, edu := range data.Education {
		prefix := fmt.Sprintf("education[%d]", i)
		setIf(prefix+".institution", edu.Institution)
		setIf(prefix+".degree", edu.Degree)
		setIf(prefix+".period", edu.Period)
		setIf(prefix+".description", edu.Description)
		setIf(prefix+".location", edu.Location)
	}
	for i, v := range data.Skills.Technical {
		setIf(fmt.Sprintf("skills.technical[%d]", i), v)
	}
	for i, v := range data.Skills.Soft {
		setIf(fmt.Sprintf("skills.soft[%d]", i), v)
	}
	for i, v := range data.Skills.Languages {
		setIf(fmt.Sprintf("skills.languages[%d]", i), v)
	}
	for i, p := range data.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		setIf(prefix+".name", p.Name)
		setIf(prefix+".description", p.Description)
	}
	for i, c := range data.Certifications {
		setIf(fmt.Sprintf("certifications[%d]", i), c)
	}

	return out
}
