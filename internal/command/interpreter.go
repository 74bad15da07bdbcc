package command

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/duke-go/internal/task"
)

// Keywords lists every recognized command keyword.
var Keywords = []string{"list", "done", "todo", "deadline", "event", "delete", "find", "bye"}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for command outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Interpreter applies command lines to a task list.
type Interpreter struct {
	tasks  *task.List
	store  Gateway
	view   Presenter
	logger *log.Logger
	quit   bool
}

// New returns an interpreter bound to one session's list, gateway and presenter.
func New(tasks *task.List, store Gateway, view Presenter, opts ...Option) *Interpreter {
	i := &Interpreter{
		tasks:  tasks,
		store:  store,
		view:   view,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Quit reports whether bye has been interpreted.
func (i *Interpreter) Quit() bool {
	return i.quit
}

// Interpret runs one command line and returns the response text.
// Failures are returned as *Error.
func (i *Interpreter) Interpret(line string) (string, error) {
	keyword, rest := splitCommand(line)

	resp, err := i.dispatch(keyword, rest)
	if err != nil {
		var ce *Error
		switch {
		case errors.As(err, &ce) && ce.Kind == KindIO:
			i.logger.Error("sync failed, storage is stale", "command", keyword, "err", ce.Err)
		case errors.As(err, &ce):
			i.logger.Warn("command rejected", "command", keyword, "kind", ce.Kind, "reason", ce.Msg)
		default:
			i.logger.Error("command failed", "command", keyword, "err", err)
		}
		return "", err
	}
	i.logger.Debug("command applied", "command", keyword, "tasks", i.tasks.Len())
	return resp, nil
}

func (i *Interpreter) dispatch(keyword, rest string) (string, error) {
	switch keyword {
	case "list":
		return i.view.RenderList(i.tasks.All()), nil
	case "todo":
		return i.add(task.KindTodo, rest)
	case "deadline":
		return i.add(task.KindDeadline, rest)
	case "event":
		return i.add(task.KindEvent, rest)
	case "done":
		return i.done(keyword, rest)
	case "delete":
		return i.remove(keyword, rest)
	case "find":
		return i.find(rest)
	case "bye":
		i.quit = true
		return i.view.Farewell(), nil
	case "":
		return "", validationf("unknown command")
	default:
		return "", validationf("unknown command %q", keyword)
	}
}

func (i *Interpreter) add(kind task.Kind, rest string) (string, error) {
	if rest == "" {
		return "", validationf("the description of a %s cannot be empty", kind)
	}

	description, when := rest, ""
	if delim := kind.Delimiter(); delim != "" {
		before, after, ok := splitAtDelimiter(rest, delim)
		if !ok {
			return "", validationf("a %s needs a time: %s <description> %s <time>", kind, kind, delim)
		}
		description, when = before, after
	}

	t, err := task.New(kind, description, when)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrEmptyDescription):
			return "", validationf("the description of a %s cannot be empty", kind)
		case errors.Is(err, task.ErrEmptyWhen):
			return "", validationf("a %s needs a time after %s", kind, kind.Delimiter())
		case errors.Is(err, task.ErrInvalidText):
			return "", validationf("the %s contains invalid characters", kind)
		default:
			return "", &Error{Kind: KindValidation, Msg: err.Error(), Err: err}
		}
	}

	i.tasks.Add(t)
	if err := i.store.AppendRecord(t); err != nil {
		return "", &Error{Kind: KindIO, Msg: "task added but could not be saved", Err: err}
	}
	return i.view.RenderTask(ActionAdded, t, i.tasks.All()), nil
}

func (i *Interpreter) done(keyword, rest string) (string, error) {
	idx, err := i.parseIndex(keyword, rest)
	if err != nil {
		return "", err
	}
	t, err := i.tasks.MarkDone(idx)
	if err != nil {
		return "", i.indexError(idx+1, err)
	}
	if err := i.store.RewriteAll(i.tasks.All()); err != nil {
		return "", &Error{Kind: KindIO, Msg: "task marked done but could not be saved", Err: err}
	}
	return i.view.RenderTask(ActionCompleted, t, i.tasks.All()), nil
}

func (i *Interpreter) remove(keyword, rest string) (string, error) {
	idx, err := i.parseIndex(keyword, rest)
	if err != nil {
		return "", err
	}
	t, err := i.tasks.Delete(idx)
	if err != nil {
		return "", i.indexError(idx+1, err)
	}
	if err := i.store.RewriteAll(i.tasks.All()); err != nil {
		return "", &Error{Kind: KindIO, Msg: "task removed but could not be saved", Err: err}
	}
	return i.view.RenderTask(ActionRemoved, t, i.tasks.All()), nil
}

func (i *Interpreter) find(term string) (string, error) {
	if term == "" {
		return "", validationf("find needs a search term")
	}
	var matches []task.Task
	for _, t := range i.tasks.All() {
		if strings.Contains(t.Description, term) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return "", &Error{Kind: KindNotFound, Msg: "no matching task"}
	}
	return i.view.RenderMatches(matches), nil
}

// parseIndex turns a 1-based task number into a 0-based list index.
func (i *Interpreter) parseIndex(keyword, rest string) (int, error) {
	if rest == "" {
		return 0, validationf("%s needs a task number", keyword)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, &Error{Kind: KindValidation, Msg: "task number must be an integer, got " + strconv.Quote(rest), Err: err}
	}
	if n < 1 || n > i.tasks.Len() {
		return 0, i.indexError(n, &task.IndexError{Index: n - 1, Size: i.tasks.Len()})
	}
	return n - 1, nil
}

func (i *Interpreter) indexError(n int, cause error) *Error {
	size := i.tasks.Len()
	if size == 0 {
		return &Error{Kind: KindIndex, Msg: "there is no task " + strconv.Itoa(n) + ": the list is empty", Err: cause}
	}
	return &Error{
		Kind: KindIndex,
		Msg:  "there is no task " + strconv.Itoa(n) + ": pick a number from 1 to " + strconv.Itoa(size),
		Err:  cause,
	}
}
