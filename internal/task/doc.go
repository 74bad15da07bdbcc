// Package task defines the task model and the ordered task list.
//
// A Task is a closed tagged variant: its Kind selects which payload fields
// are meaningful.
//
//   - KindTodo: description only
//   - KindDeadline: description plus a due-by time ("/by")
//   - KindEvent: description plus an at-time ("/at")
//
// Time values are free-form strings and are stored exactly as given after
// trimming. No calendar parsing is performed.
//
// # Task State
//
// A task is either pending or done. MarkDone is idempotent and there is no
// transition back to pending.
//
// # Indexing
//
// List is indexed from 0. Translation from the 1-based numbers users type
// happens in the command interpreter, never here.
package task
