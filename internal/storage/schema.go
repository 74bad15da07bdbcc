package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/duke-go/internal/task"
)

//go:embed task.schema.json
var bundledSchema string

const bundledSchemaURL = "https://github.com/nibzard/duke-go/task.schema.json"

// BundledSchema returns the JSON Schema compiled into the binary.
func BundledSchema() string {
	return bundledSchema
}

// ValidationError describes one invalid record.
type ValidationError struct {
	Line int    // 1-based line in the task file, 0 when unknown
	Path string // field inside the record
	Err  error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validator checks raw records before they become tasks.
type validator struct {
	schema   *jsonschema.Schema
	warnings []string
}

// newValidator compiles the schema at schemaPath, or the bundled schema when
// schemaPath is empty. If compiling fails the validator falls back to
// minimal checks and records a warning.
func newValidator(schemaPath string) *validator {
	v := &validator{}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			v.warn("invalid schema path: %v", err)
			return v
		}
		if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				v.warn("schema file not found: %s", absPath)
			} else {
				v.warn("failed to read schema file: %v", err)
			}
			return v
		}
		schema, err := compiler.Compile(absPath)
		if err != nil {
			v.warn("invalid schema file: %v", err)
			return v
		}
		v.schema = schema
		return v
	}

	if err := compiler.AddResource(bundledSchemaURL, strings.NewReader(bundledSchema)); err != nil {
		v.warn("bundled schema: %v", err)
		return v
	}
	schema, err := compiler.Compile(bundledSchemaURL)
	if err != nil {
		v.warn("bundled schema: %v", err)
		return v
	}
	v.schema = schema
	return v
}

func (v *validator) warn(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// usesSchema reports whether JSON Schema validation is active.
func (v *validator) usesSchema() bool {
	return v.schema != nil
}

// decode validates one record and rebuilds its task.
func (v *validator) decode(line int, data []byte) (task.Task, []error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return task.Task{}, []error{&ValidationError{Line: line, Err: fmt.Errorf("invalid JSON: %w", err)}}
	}

	var errs []error
	if v.schema != nil {
		if err := v.schema.Validate(doc); err != nil {
			errs = schemaErrors(line, err)
		}
	} else {
		errs = validateMinimal(line, doc)
	}
	if len(errs) > 0 {
		return task.Task{}, errs
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return task.Task{}, []error{&ValidationError{Line: line, Err: err}}
	}
	t, err := rec.Task()
	if err != nil {
		return task.Task{}, []error{&ValidationError{Line: line, Err: err}}
	}
	return t, nil
}

// validateMinimal performs the structural checks used when no schema is available.
func validateMinimal(line int, doc any) []error {
	obj, ok := doc.(map[string]any)
	if !ok {
		return []error{&ValidationError{Line: line, Err: errors.New("record must be a JSON object")}}
	}

	var errs []error
	fail := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Line: line, Path: path, Err: fmt.Errorf(format, args...)})
	}

	for _, field := range []string{"id", "kind", "description"} {
		s, ok := obj[field].(string)
		if !ok || strings.TrimSpace(s) == "" {
			fail(field, "missing required field")
		}
	}
	if kind, ok := obj["kind"].(string); ok {
		if _, err := task.ParseKind(kind); err != nil {
			fail("kind", "invalid kind %q, must be one of: todo, deadline, event", kind)
		}
	}
	if when, present := obj["when"]; present {
		if _, ok := when.(string); !ok {
			fail("when", "must be a string")
		}
	}
	if _, ok := obj["done"].(bool); !ok {
		fail("done", "missing required boolean field")
	}
	return errs
}

func schemaErrors(line int, err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{&ValidationError{Line: line, Err: err}}
	}
	var out []error
	collectSchemaErrors(line, ve, &out)
	return out
}

func collectSchemaErrors(line int, err *jsonschema.ValidationError, out *[]error) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Line: line,
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(line, cause, out)
	}
}

// jsonPointerToPath turns "/when" into "when". Records are flat, so a
// pointer has at most one segment.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	ptr = strings.ReplaceAll(ptr, "/", ".")
	ptr = strings.ReplaceAll(ptr, "~1", "/")
	return strings.ReplaceAll(ptr, "~0", "~")
}
