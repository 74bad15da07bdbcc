package storage

import (
	"github.com/nibzard/duke-go/internal/task"
)

// Record is the persisted form of a task.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Kind        string `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
	When        string `json:"when,omitempty" yaml:"when,omitempty"`
	Done        bool   `json:"done" yaml:"done"`
}

// FromTask converts a task to its record.
func FromTask(t task.Task) Record {
	return Record{
		ID:          t.ID,
		Kind:        t.Kind.Keyword(),
		Description: t.Description,
		When:        t.When,
		Done:        t.Done,
	}
}

// FromTasks converts tasks to records, keeping their order.
func FromTasks(tasks []task.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, FromTask(t))
	}
	return records
}

// Task rebuilds the task a record describes. The same checks as task.New apply.
func (r Record) Task() (task.Task, error) {
	kind, err := task.ParseKind(r.Kind)
	if err != nil {
		return task.Task{}, err
	}
	return task.Restore(r.ID, kind, r.Description, r.When, r.Done)
}
