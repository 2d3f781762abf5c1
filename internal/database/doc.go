// Package database opens the SQLite file that backs both Shelf key spaces.
//
// Catalog entries and cached images live in separate tables of one database
// file, so identifiers from one namespace can never collide with keys of the
// other. The package applies pragmas, creates the embedded schema, verifies
// the schema version, and offers retry helpers for SQLITE_BUSY contention.
//
// Schema changes bump schemaVersion in schema.go. Column additions that older
// rows can satisfy use defaults so existing databases keep decoding.
package database
