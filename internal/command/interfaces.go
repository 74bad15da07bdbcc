package command

import "github.com/nibzard/duke-go/internal/task"

// Gateway mirrors the task list to durable storage.
type Gateway interface {
	// Load returns the persisted tasks in order. Called once per session.
	Load() ([]task.Task, error)
	// AppendRecord persists a task that was just added to the end of the list.
	AppendRecord(t task.Task) error
	// RewriteAll replaces the stored tasks with the given ones.
	RewriteAll(tasks []task.Task) error
}

// Action says what just happened to a task.
type Action int

const (
	ActionAdded Action = iota + 1
	ActionCompleted
	ActionRemoved
)

// Presenter turns tasks into response text. Implementations must be pure.
type Presenter interface {
	RenderList(tasks []task.Task) string
	// RenderTask describes a task that was just added, completed or removed.
	// tasks is the list after the change.
	RenderTask(action Action, t task.Task, tasks []task.Task) string
	// RenderMatches renders find results, one task per line.
	RenderMatches(tasks []task.Task) string
	Farewell() string
}
