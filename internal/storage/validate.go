package storage

import (
	"errors"
	"fmt"
	"os"
)

// Report summarizes the records of a task file.
type Report struct {
	Path       string
	Records    int
	Valid      int
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// OK reports whether every record is valid.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks every record of the JSON Lines file at path without
// stopping at the first failure. Strict is ignored. A missing file yields
// a warning, not an error.
func Validate(path string, opts Options) (*Report, error) {
	v := newValidator(opts.SchemaPath)
	report := &Report{
		Path:       path,
		Warnings:   append([]string(nil), v.warnings...),
		UsedSchema: v.usesSchema(),
	}
	if !report.UsedSchema {
		report.Warnings = append(report.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	seen := make(map[string]int)
	err := scanRecords(path, func(line int, data []byte) error {
		report.Records++
		t, errs := v.decode(line, data)
		if len(errs) > 0 {
			report.Errors = append(report.Errors, errs...)
			return nil
		}
		if first, dup := seen[t.ID]; dup {
			report.Errors = append(report.Errors, &ValidationError{
				Line: line,
				Path: "id",
				Err:  fmt.Errorf("duplicate id %s (first seen on line %d)", t.ID, first),
			})
			return nil
		}
		seen[t.ID] = line
		report.Valid++
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		report.Warnings = append(report.Warnings, fmt.Sprintf("task file not found: %s", path))
		return report, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}
