package requirement

import (
	"github.com/xeipuuv/gojsonschema"
)

// Soft validation schema. Violations are surfaced as warnings, never as
// errors: extractor output is too variable to gate on.
var payloadSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":        map[string]interface{}{"type": "string"},
		"description":  map[string]interface{}{"type": "string"},
		"buyerCountry": map[string]interface{}{"type": "string"},
		"categories": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"criteria": map[string]interface{}{"type": "object"},
		"laptops":  map[string]interface{}{"type": "object"},
		"monitors": map[string]interface{}{"type": "object"},
	},
}

// validatePayload returns human-readable warnings for schema violations.
// A validator failure itself is reported as a warning as well.
func validatePayload(payload map[string]interface{}) []string {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(payloadSchema),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		return []string{"schema validation unavailable: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}

	warnings := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warnings = append(warnings, desc.Field()+": "+desc.Description())
	}
	return warnings
}
