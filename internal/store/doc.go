// Package store persists task collections.
//
// Two backends implement task.Store:
//
//   - "json" (JSONStore): a JSON array of task objects, validated on load
//     against an embedded JSON Schema (tasks.schema.json).
//   - "sqlite" (SQLiteStore): an embedded SQLite database with a single
//     tasks table, ordered by insertion position.
//
// Both backends read and write the whole collection on every call and keep no
// state between calls. A missing or blank store loads as an empty collection.
// Content that exists but cannot be read is reported as a
// *task.MalformedStoreError and is never repaired.
//
// # File Format
//
// JSONStore writes:
//   - 2-space indentation
//   - Trailing newline
//   - Keys in the order id, title, description, status, priority
//   - Non-ASCII and HTML characters unescaped
//
// Writes go to a temporary file in the target directory which is then renamed
// over the store.
package store
