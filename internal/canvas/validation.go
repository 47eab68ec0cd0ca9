// internal/canvas/validation.go
package canvas

import (
	"encoding/json"

	apperrors "business-canvas/internal/common/errors"
	"business-canvas/internal/common/validation"
	"business-canvas/pkg/registry"
)

const generateSchemaJSON = `{
	"type": "object",
	"properties": {
		"prompt": {"type": "string"},
		"name": {"type": ["string", "null"]}
	},
	"required": ["prompt"]
}`

var (
	generateSchema = validation.MustCompileSchema("generate-canvas", generateSchemaJSON)
	updateSchema   = validation.MustCompileSchema("update-canvas", updateSchemaJSON())
)

// updateSchemaJSON types the allow-listed keys only; anything else in the
// body is ignored by the merge and so left unconstrained here.
func updateSchemaJSON() string {
	blockSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"content"},
	}

	properties := map[string]interface{}{
		"name": map[string]interface{}{"type": "string"},
	}
	for _, def := range registry.Blocks() {
		properties[def.Field] = blockSchema
	}

	raw, err := json.Marshal(map[string]interface{}{
		"type":       "object",
		"properties": properties,
	})
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// validateGenerate checks a decoded generate body and converts it.
func validateGenerate(body interface{}) (GenerateRequest, error) {
	result, err := generateSchema.Validate(body)
	if err != nil {
		return GenerateRequest{}, apperrors.NewValidationFailedError(err.Error())
	}
	if !result.Valid {
		return GenerateRequest{}, apperrors.NewValidationFailedError(result.Error())
	}

	fields := body.(map[string]interface{})
	req := GenerateRequest{Prompt: fields["prompt"].(string)}
	if name, ok := fields["name"].(string); ok {
		req.Name = name
	}
	return req, nil
}

// rejectedFields names the allow-listed update keys that failed updateSchema.
func rejectedFields(result *validation.ValidationResult) []string {
	var out []string
	if result.HasErrors("name") {
		out = append(out, "name")
	}
	for _, def := range registry.Blocks() {
		if len(result.GetErrorsForField(def.Field)) > 0 {
			out = append(out, def.Field)
		}
	}
	return out
}
