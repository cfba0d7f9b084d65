// Package schemas validates graph snapshot documents against an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// GraphSnapshotSchema is the JSON Schema every graph snapshot must satisfy
//
//go:embed graph_snapshot.schema.json
var GraphSnapshotSchema string

// maxReported caps how many problems ValidationError.Error lists
const maxReported = 5

// FieldError is one schema violation at a JSON path
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError lists every violation found in a document, ordered by field
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "snapshot validation failed with %d problem(s): ", len(e.Errors))
	for i, fe := range e.Errors {
		if i == maxReported {
			fmt.Fprintf(&sb, "; and %d more", len(e.Errors)-maxReported)
			break
		}
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// DocumentError means the document is not parseable JSON
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("snapshot is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// snapshotSchema compiles the embedded schema once
var snapshotSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(GraphSnapshotSchema))
})

// ValidateSnapshot checks snapshot JSON against GraphSnapshotSchema. It returns a
// *DocumentError for malformed JSON and a *ValidationError for schema violations.
func ValidateSnapshot(jsonContent []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return fmt.Errorf("failed to compile graph snapshot schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonContent))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   field,
			Rule:    desc.Type(),
			Message: desc.Description(),
		})
	}
	sort.SliceStable(verr.Errors, func(i, j int) bool {
		return verr.Errors[i].Field < verr.Errors[j].Field
	})
	return verr
}
