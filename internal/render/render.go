// Package render formats tasks into response text.
package render

import (
	"fmt"
	"strings"

	"github.com/nibzard/duke-go/internal/command"
	"github.com/nibzard/duke-go/internal/task"
)

const (
	greeting = "Hello! I'm Duke\nWhat can I do for you?"
	farewell = "Bye. Hope to see you again soon!"
)

// Presenter is the plain-text command.Presenter.
type Presenter struct{}

// New returns a Presenter.
func New() Presenter {
	return Presenter{}
}

// Greeting is shown when a session starts.
func (Presenter) Greeting() string {
	return greeting
}

// Farewell is the response to bye.
func (Presenter) Farewell() string {
	return farewell
}

// RenderList numbers every task from 1.
func (Presenter) RenderList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "Your list is empty."
	}
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t)
	}
	return b.String()
}

// RenderTask describes a task that was just added, completed or removed.
func (Presenter) RenderTask(action command.Action, t task.Task, tasks []task.Task) string {
	switch action {
	case command.ActionAdded:
		return fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", t, countLine(len(tasks)))
	case command.ActionCompleted:
		return fmt.Sprintf("Nice! I've marked this task as done:\n  %s", t)
	case command.ActionRemoved:
		return fmt.Sprintf("Noted. I've removed this task:\n  %s\n%s", t, countLine(len(tasks)))
	default:
		return "  " + t.String()
	}
}

// RenderMatches writes one task per line.
func (Presenter) RenderMatches(tasks []task.Task) string {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}
