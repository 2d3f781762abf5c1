// Package services defines shared utilities consumed by the catalog stores,
// the image resolver, and the command surface.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so every failure carries a
//     stable classification (not found, unsupported source, transport, parse,
//     persistence, concurrency, validation) and a readable message.
//   - Context helpers that stamp correlation identifiers and entry IDs for
//     logging.
//
// Use these helpers when wiring new commands so error reporting and
// observability stay uniform across the IPC and HTTP surfaces.
package services
