package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

// definitionSchema is the wire shape of an assessment definition payload as
// the builder PUTs it. Structural rules the schema cannot express
// (conditional reference ordering, per-type validation rules) are checked
// separately by CheckDefinition.
const definitionSchema = `{
	"type": "object",
	"required": ["title", "sections"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"sections": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title", "questions"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string"},
					"questions": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "type", "text"],
							"properties": {
								"id": {"type": "string", "minLength": 1},
								"type": {
									"type": "string",
									"enum": ["single-choice", "multi-choice", "short-text", "long-text", "numeric", "file-upload"]
								},
								"text": {"type": "string"},
								"required": {"type": "boolean"},
								"options": {"type": "array", "items": {"type": "string"}},
								"validation": {
									"type": "object",
									"properties": {
										"minLength": {"type": "integer", "minimum": 0},
										"maxLength": {"type": "integer", "minimum": 0},
										"min": {"type": "number"},
										"max": {"type": "number"}
									}
								},
								"conditionalOn": {
									"type": "object",
									"required": ["questionId", "answer"],
									"properties": {
										"questionId": {"type": "string", "minLength": 1}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}`

var compiledDefinitionSchema = mustCompileSchema(definitionSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile definition schema: %v", err))
	}
	return rs
}

// ValidatePayload checks a raw definition payload against the wire schema
// before it is decoded and structurally checked.
func ValidatePayload(ctx context.Context, payload []byte) error {
	verrs, err := compiledDefinitionSchema.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("validate definition payload: %w", err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("invalid definition payload: %s: %s", verrs[0].PropertyPath, verrs[0].Message)
	}
	return nil
}
