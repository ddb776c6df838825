package todo

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// taskSchema is the embedded JSON Schema for task documents: a single task
// object or an array of task objects, matching Task's MarshalJSON shape.
const taskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Todo Task",
  "$defs": {
    "task": {
      "type": "object",
      "additionalProperties": false,
      "required": ["id", "title", "description", "completed", "created_at"],
      "properties": {
        "id": { "type": "string", "pattern": "^T[0-9]+$" },
        "title": { "type": "string", "minLength": 1, "maxLength": 200 },
        "description": { "type": "string", "maxLength": 1000 },
        "completed": { "type": "boolean" },
        "created_at": {
          "type": "string",
          "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$"
        }
      }
    }
  },
  "oneOf": [
    { "$ref": "#/$defs/task" },
    { "type": "array", "items": { "$ref": "#/$defs/task" } }
  ]
}`

// TaskSchemaJSON returns the embedded task schema document.
func TaskSchemaJSON() []byte {
	return []byte(taskSchema)
}

// CompileTaskSchema compiles the embedded schema into a validator.
func CompileTaskSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.CompileString("task.schema.json", taskSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling task schema: %w", err)
	}
	return schema, nil
}

// ValidateTaskJSON checks that data (a task object or task array) conforms
// to the embedded schema.
func ValidateTaskJSON(data []byte) error {
	schema, err := CompileTaskSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing task JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("task JSON does not match schema: %w", err)
	}
	return nil
}
