package portfolio

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var ErrInvalidShape = errors.New("invalid shape")

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ShapeError lists every place a document or section departs from the
// schema.
type ShapeError struct {
	Problems []string
}

func (e *ShapeError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

// ValidateSection checks raw against the schema of section s. Fields the
// schema does not know about are allowed; none is required.
func ValidateSection(s Section, raw json.RawMessage) error {
	if !json.Valid(raw) {
		return &ShapeError{Problems: []string{"content is not valid JSON"}}
	}
	wrapped, err := json.Marshal(map[Section]json.RawMessage{s: raw})
	if err != nil {
		return err
	}
	return validate(wrapped)
}

// ValidateDocument checks a whole serialized document.
func ValidateDocument(data []byte) error {
	if !json.Valid(data) {
		return &ShapeError{Problems: []string{"document is not valid JSON"}}
	}
	return validate(data)
}

func validate(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	res, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &ShapeError{Problems: problems}
}
