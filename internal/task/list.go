package task

import "fmt"

// IndexError reports an index outside [0, Size).
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("index %d out of range: list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}

// List is the ordered collection owning every task of a session.
type List struct {
	tasks []Task
}

// NewList returns a list seeded with the given tasks, in order.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Add appends a task.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Get returns the task at index i.
func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	return l.tasks[i], nil
}

// Delete removes and returns the task at index i. Later tasks shift down by one.
func (l *List) Delete(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	removed := l.tasks[i]
	copy(l.tasks[i:], l.tasks[i+1:])
	l.tasks[len(l.tasks)-1] = Task{}
	l.tasks = l.tasks[:len(l.tasks)-1]
	return removed, nil
}

// MarkDone marks the task at index i done and returns its new state.
func (l *List) MarkDone(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	l.tasks[i].MarkDone()
	return l.tasks[i], nil
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// All returns a copy of the tasks in order. Changes to the copy do not
// reach the list.
func (l *List) All() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return &IndexError{Index: i, Size: len(l.tasks)}
	}
	return nil
}
