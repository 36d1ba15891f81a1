package review

// buildCVSchema returns the JSON Schema (draft 2020-12) that a reviewed CV
// document must satisfy before its corrections are accepted.
func buildCVSchema() map[string]any {
	stringArray := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"personal", "skills"},
		"properties": map[string]any{
			"personal": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":     map[string]any{"type": "string"},
					"email":    map[string]any{"type": "string"},
					"phone":    map[string]any{"type": "string"},
					"address":  map[string]any{"type": "string"},
					"linkedin": map[string]any{"type": "string"},
					"website":  map[string]any{"type": "string"},
					"birthday": map[string]any{"type": "string"},
				},
			},
			"experience": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"company":      map[string]any{"type": "string"},
						"position":     map[string]any{"type": "string"},
						"period":       map[string]any{"type": "string"},
						"description":  map[string]any{"type": "string"},
						"technologies": stringArray,
						"achievements": stringArray,
					},
				},
			},
			"education": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"institution": map[string]any{"type": "string"},
						"degree":      map[string]any{"type": "string"},
						"period":      map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"location":    map[string]any{"type": "string"},
					},
				},
			},
			"skills": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"technical", "soft", "languages"},
				"properties": map[string]any{
					"technical": stringArray,
					"soft":      stringArray,
					"languages": stringArray,
				},
			},
			"summary": map[string]any{"type": "string"},
			"projects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
					},
				},
			},
			"certifications": stringArray,
		},
	}
}
