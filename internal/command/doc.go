// Package command interprets one line of user input against the task list.
//
// The first whitespace-delimited token selects the command:
//
//	list                         show every task
//	todo <desc>                  add a todo
//	deadline <desc> /by <time>   add a deadline
//	event <desc> /at <time>      add an event
//	done <n>                     mark task n done
//	delete <n>                   remove task n
//	find <term>                  show tasks whose description contains term
//	bye                          say goodbye
//
// Task numbers are 1-based here and converted to the list's 0-based
// indices before any lookup.
//
// Every mutating command calls exactly one Gateway operation after the
// in-memory change succeeds: AppendRecord for additions, RewriteAll for
// done and delete. A failed sync is reported as a KindIO error but the
// in-memory change is kept; storage stays stale until the next successful
// sync.
package command
