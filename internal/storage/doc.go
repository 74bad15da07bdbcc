// Package storage persists task lists.
//
// Two backends implement the same gateway contract:
//
//   - FileGateway keeps one JSON record per line (JSON Lines). Adding a
//     task appends a line; completing or deleting rewrites the file
//     through a temporary file and a rename.
//   - SQLiteGateway keeps the same records in a single "tasks" table
//     ordered by position.
//
// A record looks like:
//
//	{"id":"4f0c...","kind":"deadline","description":"submit report","when":"Friday","done":false}
//
// # Validation
//
// Records read from a file are checked against the bundled JSON Schema
// (see BundledSchema) or a schema file named in the configuration. When the
// schema cannot be compiled, minimal structural checks are used instead.
// Invalid records are skipped with a warning unless strict mode is on, in
// which case the first invalid record fails the load.
package storage
