package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind identifies the task variant.
type Kind int

const (
	KindTodo Kind = iota + 1
	KindDeadline
	KindEvent
)

var (
	// ErrEmptyDescription is returned when a task is built without a description.
	ErrEmptyDescription = errors.New("description cannot be empty")
	// ErrEmptyWhen is returned when a deadline or event has no time value.
	ErrEmptyWhen = errors.New("time cannot be empty")
	// ErrUnexpectedWhen is returned when a todo is given a time value.
	ErrUnexpectedWhen = errors.New("todo tasks do not take a time")
	// ErrUnknownKind is returned for a kind outside the closed variant set.
	ErrUnknownKind = errors.New("unknown task kind")
	// ErrInvalidText is returned when a description or time is not valid UTF-8.
	ErrInvalidText = errors.New("text must be valid UTF-8")
)

// Kinds lists every variant in a stable order.
func Kinds() []Kind {
	return []Kind{KindTodo, KindDeadline, KindEvent}
}

// Keyword returns the command keyword that creates this kind.
// It doubles as the persisted kind name.
func (k Kind) Keyword() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return ""
	}
}

// Symbol returns the one-letter tag shown in listings.
func (k Kind) Symbol() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// Delimiter returns the token separating description and time,
// or "" for kinds without a time.
func (k Kind) Delimiter() string {
	switch k {
	case KindDeadline:
		return "/by"
	case KindEvent:
		return "/at"
	default:
		return ""
	}
}

// WhenLabel returns the label used when rendering the time value.
func (k Kind) WhenLabel() string {
	switch k {
	case KindDeadline:
		return "by"
	case KindEvent:
		return "at"
	default:
		return ""
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= KindTodo && k <= KindEvent
}

func (k Kind) String() string {
	if name := k.Keyword(); name != "" {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a persisted kind name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.Keyword() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Task is a single tracked item.
type Task struct {
	ID          string
	Kind        Kind
	Description string
	When        string // due-by for deadlines, at-time for events
	Done        bool
}

// New builds a pending task of the given kind with a fresh ID.
func New(kind Kind, description, when string) (Task, error) {
	return Restore(uuid.NewString(), kind, description, when, false)
}

// NewTodo builds a pending todo.
func NewTodo(description string) (Task, error) {
	return New(KindTodo, description, "")
}

// NewDeadline builds a pending deadline due by the given time.
func NewDeadline(description, by string) (Task, error) {
	return New(KindDeadline, description, by)
}

// NewEvent builds a pending event happening at the given time.
func NewEvent(description, at string) (Task, error) {
	return New(KindEvent, description, at)
}

// Restore rebuilds a task from stored fields, applying the same checks as New.
// An empty id gets a fresh one.
func Restore(id string, kind Kind, description, when string, done bool) (Task, error) {
	if !kind.Valid() {
		return Task{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if !utf8.ValidString(description) || !utf8.ValidString(when) {
		return Task{}, ErrInvalidText
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, ErrEmptyDescription
	}
	when = strings.TrimSpace(when)
	switch kind {
	case KindTodo:
		if when != "" {
			return Task{}, ErrUnexpectedWhen
		}
	case KindDeadline, KindEvent:
		if when == "" {
			return Task{}, ErrEmptyWhen
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return Task{
		ID:          id,
		Kind:        kind,
		Description: description,
		When:        when,
		Done:        done,
	}, nil
}

// MarkDone moves the task to the done state. Calling it again is a no-op.
func (t *Task) MarkDone() {
	t.Done = true
}

// StatusIcon returns "X" for done tasks and " " otherwise.
func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task the way listings show it, e.g. "[D][ ] report (by: Friday)".
func (t Task) String() string {
	line := fmt.Sprintf("[%s][%s] %s", t.Kind.Symbol(), t.StatusIcon(), t.Description)
	if label := t.Kind.WhenLabel(); label != "" {
		line += fmt.Sprintf(" (%s: %s)", label, t.When)
	}
	return line
}
