// Package catalog owns the personal media entries: the Entry model, the
// watch-status enumeration, and the SQLite-backed Entity Store.
//
// Entries are keyed by a UUID string. Create overwrites unconditionally,
// Update refuses to materialize an entry that does not exist, and Delete
// reports whether anything was removed. Every store operation runs under the
// store's own guard so concurrent callers observe whole-record writes.
//
// The package also carries the list filter used by the CLI and HTTP API and
// the JSON export/import format.
package catalog
