// Package api is the command surface shared by the IPC server and the HTTP
// API. It translates catalog and image-cache models into transport-friendly
// DTOs and routes each command to the entity store or the artwork service.
//
// # Key Types
//
// Entry/EntryInput: catalog entry as sent and received over the wire. Status
// travels as its lowercase name and unknown names are rejected.
//
// Image/ImageInfo: cached cover image with and without its bytes.
//
// Summary: entry and image counts for status reporting.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript/TypeScript consumers.
// Timestamps use RFC3339 with milliseconds. Image bytes are carried as a
// base64 string inside JSON payloads.
package api
