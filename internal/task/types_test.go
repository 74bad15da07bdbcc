package task

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		description string
		when        string
		wantErr     error
		wantDesc    string
		wantWhen    string
	}{
		{name: "todo", kind: KindTodo, description: "read book", wantDesc: "read book"},
		{name: "todo trims", kind: KindTodo, description: "  read book  ", wantDesc: "read book"},
		{name: "deadline", kind: KindDeadline, description: "submit report", when: " Friday", wantDesc: "submit report", wantWhen: "Friday"},
		{name: "event", kind: KindEvent, description: "party", when: "Sat 2pm", wantDesc: "party", wantWhen: "Sat 2pm"},
		{name: "empty description", kind: KindTodo, description: "   ", wantErr: ErrEmptyDescription},
		{name: "deadline without time", kind: KindDeadline, description: "report", when: " ", wantErr: ErrEmptyWhen},
		{name: "event without time", kind: KindEvent, description: "party", wantErr: ErrEmptyWhen},
		{name: "todo with time", kind: KindTodo, description: "x", when: "Friday", wantErr: ErrUnexpectedWhen},
		{name: "unknown kind", kind: Kind(9), description: "x", wantErr: ErrUnknownKind},
		{name: "zero kind", kind: 0, description: "x", wantErr: ErrUnknownKind},
		{name: "invalid utf-8 description", kind: KindTodo, description: "caf\xe9", wantErr: ErrInvalidText},
		{name: "invalid utf-8 time", kind: KindEvent, description: "party", when: "Sat\xff", wantErr: ErrInvalidText},
		{name: "utf-8 description", kind: KindTodo, description: "café ☕", wantDesc: "café ☕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.kind, tt.description, tt.when)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("Description: got %q, want %q", got.Description, tt.wantDesc)
			}
			if got.When != tt.wantWhen {
				t.Errorf("When: got %q, want %q", got.When, tt.wantWhen)
			}
			if got.Done {
				t.Error("new task should be pending")
			}
			if got.ID == "" {
				t.Error("new task should have an ID")
			}
		})
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a, _ := NewTodo("a")
	b, _ := NewTodo("a")
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %s", a.ID)
	}
}

func TestRestoreKeepsIDAndDone(t *testing.T) {
	got, err := Restore("abc", KindEvent, "party", "Sat", true)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got.ID != "abc" || !got.Done {
		t.Errorf("Restore() = %+v, want ID abc and done", got)
	}

	got, err = Restore("", KindTodo, "x", "", false)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got.ID == "" {
		t.Error("Restore with empty id should assign one")
	}
}

func TestMarkDoneIdempotent(t *testing.T) {
	tk, _ := NewTodo("read book")
	tk.MarkDone()
	tk.MarkDone()
	if !tk.Done {
		t.Error("task should stay done")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.Keyword())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.Keyword(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.Keyword(), got, k)
		}
	}
	if _, err := ParseKind("chore"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(chore) error = %v, want ErrUnknownKind", err)
	}
}

func TestString(t *testing.T) {
	todo, _ := NewTodo("read book")
	deadline, _ := NewDeadline("submit report", "Friday")
	event, _ := NewEvent("party", "Sat 2pm")
	event.MarkDone()

	tests := []struct {
		task Task
		want string
	}{
		{todo, "[T][ ] read book"},
		{deadline, "[D][ ] submit report (by: Friday)"},
		{event, "[E][X] party (at: Sat 2pm)"},
	}
	for _, tt := range tests {
		if got := tt.task.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
