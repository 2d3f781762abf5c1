// Package daemon coordinates the long-running Shelf process.
//
// It owns the shared database handle and the command surface, enforces a
// single instance per data directory with a flock-based lock, and serves the
// read-only HTTP API that lets a UI render entries and cover images directly.
// The IPC server in package ipc routes client commands through the daemon.
package daemon
