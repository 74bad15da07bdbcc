package command

import (
	"errors"
	"fmt"
)

// ErrorKind classifies interpreter failures.
type ErrorKind int

const (
	// KindValidation covers malformed commands: unknown keyword, empty
	// description, missing delimiter, unparseable task number.
	KindValidation ErrorKind = iota + 1
	// KindIndex is a task number outside 1..size.
	KindIndex
	// KindNotFound is a find with no matches.
	KindNotFound
	// KindIO is a failed sync after the in-memory change was applied.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIndex:
		return "index"
	case KindNotFound:
		return "not_found"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by Interpret for every rejected or partially failed command.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindIO && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a command Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}
