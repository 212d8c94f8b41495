package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const lessonSchemaURL = "schema://lesson.json"

// lessonSchema describes a lesson file: topic name -> list of questions,
// where every question field is a string.
var lessonSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":          "object",
			"minProperties": 1,
			"properties": map[string]any{
				"type": map[string]any{
					"type": "string",
					"enum": []any{"text", "image", "multi"},
				},
				"image": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateLesson checks raw lesson JSON against lessonSchema.
func validateLesson(raw []byte) error {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileLessonSchema()
	})
	if compileErr != nil {
		return compileErr
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileLessonSchema() (*jsonschema.Schema, error) {
	// The compiler wants a plain decoded JSON value.
	defBytes, err := json.Marshal(lessonSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal lesson schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse lesson schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(lessonSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(lessonSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
