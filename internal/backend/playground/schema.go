package playground

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const userSchemaJSON = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "id": {"type": "integer"},
    "todos": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "label"],
        "properties": {
          "id": {"type": "integer"},
          "label": {"type": "string"},
          "is_done": {"type": "boolean"}
        }
      }
    }
  }
}`

var userSchema = jsonschema.MustCompileString("user.schema.json", userSchemaJSON)

// validateUser checks a GET /users/{name} body before it is decoded.
func validateUser(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode user: %w", err)
	}
	if err := userSchema.Validate(v); err != nil {
		return fmt.Errorf("invalid user payload: %w", err)
	}
	return nil
}
