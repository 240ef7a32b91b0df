// Package schemas checks oracle responses against the embedded JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

// FieldError is one violation, located by its dotted field path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%d schema violation(s): %s", len(ve.Errors), strings.Join(parts, "; "))
}

// Fields returns the path of each violation in report order
func (ve *ValidationError) Fields() []string {
	fields := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		fields[i] = fe.Field
	}
	return fields
}

// SchemaLoadError means the schema or the document could not be read at all
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	msg := "schema " + e.Path + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

// Compile parses schema content. name only labels errors.
func Compile(name, content string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// Validate checks a JSON document, returning a *ValidationError when it does not conform
func (s *Schema) Validate(document string) error {
	result, err := s.compiled.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &SchemaLoadError{Path: s.name, Message: "document is not JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

var embedded sync.Map // name -> *Schema

// Load returns the raw content of an embedded schema
func Load(name string) (string, error) {
	data, err := schemafiles.Files.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "not embedded", Cause: err}
	}
	return string(data), nil
}

// Embedded returns the compiled form of an embedded schema, compiling it on first use
func Embedded(name string) (*Schema, error) {
	if s, ok := embedded.Load(name); ok {
		return s.(*Schema), nil
	}
	content, err := Load(name)
	if err != nil {
		return nil, err
	}
	s, err := Compile(name, content)
	if err != nil {
		return nil, err
	}
	actual, _ := embedded.LoadOrStore(name, s)
	return actual.(*Schema), nil
}

// Validate checks document against the embedded schema called name
func Validate(name, document string) error {
	s, err := Embedded(name)
	if err != nil {
		return err
	}
	return s.Validate(document)
}
