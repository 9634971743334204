package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ViolationError reports a structural mismatch between an LLM response and
// its declared shape, carrying the failing field path and the expectation
// that was violated.
type ViolationError struct {
	Schema Name
	Path   string
	Expect string
}

func (e *ViolationError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("schema %s violated at %s: %s", e.Schema, path, e.Expect)
}

// CardinalityError reports an array-length contract broken by an otherwise
// parseable response, such as a three-option concept payload.
type CardinalityError struct {
	Field  string
	Expect string
	Got    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %d", e.Field, e.Expect, e.Got)
}

var (
	compileOnce sync.Once
	compiled    map[Name]*jsonschema.Schema
	compileErr  error
)

func compiledSchema(name Name) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[Name]*jsonschema.Schema, len(documents))
		for n, doc := range documents {
			compiler := jsonschema.NewCompiler()
			url := fmt.Sprintf("mem://%s.json", n)
			if err := compiler.AddResource(url, bytes.NewReader([]byte(doc))); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", n, err)
				return
			}
			s, err := compiler.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", n, err)
				return
			}
			compiled[n] = s
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}

	s, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return s, nil
}

// Validate checks raw JSON against the named shape. A mismatch is returned as
// a *ViolationError pointing at the deepest failing field.
func Validate(raw json.RawMessage, name Name) error {
	s, err := compiledSchema(name)
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &ViolationError{Schema: name, Expect: fmt.Sprintf("valid JSON document: %v", err)}
	}

	if err := s.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return &ViolationError{
				Schema: name,
				Path:   leaf.InstanceLocation,
				Expect: leaf.Message,
			}
		}
		return &ViolationError{Schema: name, Expect: err.Error()}
	}

	return nil
}

// Decode validates raw against the named shape and unmarshals it into T.
func Decode[T any](raw json.RawMessage, name Name) (T, error) {
	var out T
	if err := Validate(raw, name); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ViolationError{Schema: name, Expect: fmt.Sprintf("decode into %T: %v", out, err)}
	}
	return out, nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
