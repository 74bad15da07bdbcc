package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBundledSchemaCompiles(t *testing.T) {
	v := newValidator("")
	if !v.usesSchema() {
		t.Fatalf("bundled schema did not compile: %v", v.warnings)
	}
	if !strings.Contains(BundledSchema(), `"deadline"`) {
		t.Error("BundledSchema should list the deadline kind")
	}
}

func TestValidatorDecode(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		wantErr bool
	}{
		{"todo", `{"id":"a","kind":"todo","description":"read","done":false}`, false},
		{"deadline", `{"id":"a","kind":"deadline","description":"read","when":"Fri","done":true}`, false},
		{"event", `{"id":"a","kind":"event","description":"party","when":"Sat 2pm","done":false}`, false},
		{"unknown kind", `{"id":"a","kind":"chore","description":"read","done":false}`, true},
		{"missing when", `{"id":"a","kind":"event","description":"party","done":false}`, true},
		{"blank when", `{"id":"a","kind":"deadline","description":"read","when":"  ","done":false}`, true},
		{"todo with when", `{"id":"a","kind":"todo","description":"read","when":"Fri","done":false}`, true},
		{"blank description", `{"id":"a","kind":"todo","description":"","done":false}`, true},
		{"missing id", `{"kind":"todo","description":"read","done":false}`, true},
		{"done not bool", `{"id":"a","kind":"todo","description":"read","done":"yes"}`, true},
		{"extra field", `{"id":"a","kind":"todo","description":"read","done":false,"priority":1}`, true},
		{"not an object", `["a"]`, true},
		{"bad json", `{"id":`, true},
	}

	validators := map[string]*validator{
		"schema":  newValidator(""),
		"minimal": {},
	}
	for mode, v := range validators {
		for _, tt := range tests {
			// Minimal checks do not police unknown fields.
			if mode == "minimal" && tt.name == "extra field" {
				continue
			}
			t.Run(mode+"/"+tt.name, func(t *testing.T) {
				_, errs := v.decode(7, []byte(tt.record))
				if (len(errs) > 0) != tt.wantErr {
					t.Fatalf("decode(%s): errs = %v, wantErr %v", tt.record, errs, tt.wantErr)
				}
				for _, err := range errs {
					var ve *ValidationError
					if !errors.As(err, &ve) {
						t.Errorf("error %T is not *ValidationError", err)
					} else if ve.Line != 7 {
						t.Errorf("Line: got %d, want 7", ve.Line)
					}
				}
			})
		}
	}
}

func TestMissingSchemaFallsBack(t *testing.T) {
	v := newValidator(filepath.Join(t.TempDir(), "missing.json"))
	if v.usesSchema() {
		t.Fatal("expected minimal validation")
	}
	if len(v.warnings) != 1 || !strings.Contains(v.warnings[0], "schema file not found") {
		t.Errorf("warnings: got %v", v.warnings)
	}
}

func TestCustomSchemaFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "task.schema.json")
	if err := os.WriteFile(schemaPath, []byte(BundledSchema()), 0o644); err != nil {
		t.Fatal(err)
	}
	v := newValidator(schemaPath)
	if !v.usesSchema() {
		t.Fatalf("schema file did not compile: %v", v.warnings)
	}
}

func TestValidateReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.jsonl")
	content := mixedRecords + `{"id":"a","kind":"todo","description":"again","done":false}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Validate(path, Options{})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Records != 7 {
		t.Errorf("Records: got %d, want 7", report.Records)
	}
	if report.Valid != 2 {
		t.Errorf("Valid: got %d, want 2", report.Valid)
	}
	if report.OK() {
		t.Error("report should not be OK")
	}
	if !report.UsedSchema {
		t.Error("UsedSchema should be true")
	}
	var dup bool
	for _, err := range report.Errors {
		if strings.Contains(err.Error(), "duplicate id a") {
			dup = true
		}
	}
	if !dup {
		t.Errorf("expected duplicate id error, got %v", report.Errors)
	}
}

func TestValidateMissingFile(t *testing.T) {
	report, err := Validate(filepath.Join(t.TempDir(), "tasks.jsonl"), Options{})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !report.OK() || report.Records != 0 {
		t.Errorf("report: got %+v", report)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a missing-file warning")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Line: 3, Path: "kind", Err: errors.New("bad")}
	if got := err.Error(); got != "line 3: kind: bad" {
		t.Errorf("Error(): got %q", got)
	}
	err = &ValidationError{Err: errors.New("bad")}
	if got := err.Error(); got != "bad" {
		t.Errorf("Error(): got %q", got)
	}
}
