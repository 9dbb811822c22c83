package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError is the structured error a Schema returns on failed
// validation. It satisfies error.
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string { return e.Message }

// Schema validates a payload, producing either a typed value or a
// *ValidationError. Any library satisfying this shape is usable; the
// only built-in implementation is JSONSchema below.
type Schema interface {
	Validate(payload any) (any, error)
}

// AnySchema is the schema used for events registered without one:
// validation trivially succeeds.
type AnySchema struct{}

func (AnySchema) Validate(payload any) (any, error) { return payload, nil }

// JSONSchema adapts github.com/santhosh-tekuri/jsonschema/v5 to the
// Schema interface.
type JSONSchema struct {
	name     string
	compiled *jsonschema.Schema
}

// NewJSONSchema compiles a JSON Schema document (already decoded into a
// Go value, or raw JSON bytes/string) under the given name.
func NewJSONSchema(name string, doc any) (*JSONSchema, error) {
	var raw []byte
	switch v := doc.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("webhook: marshal schema %q: %w", name, err)
		}
	}

	resourceURL := "mem://webhook/" + name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("webhook: add schema resource %q: %w", name, err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("webhook: compile schema %q: %w", name, err)
	}
	return &JSONSchema{name: name, compiled: compiled}, nil
}

// Validate runs payload (expected to be the result of encoding/json
// unmarshalling into interface{}) through the compiled schema.
func (s *JSONSchema) Validate(payload any) (any, error) {
	if err := s.compiled.Validate(payload); err != nil {
		ve := &ValidationError{Message: err.Error()}
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			ve.Details = map[string]any{
				"schema":      s.name,
				"causeCount":  len(verr.Causes),
				"instanceLoc": verr.InstanceLocation,
			}
		}
		return nil, ve
	}
	return payload, nil
}
