// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs for the
// catalog command surface. Every call gets a fresh correlation id for log
// correlation. Errors cross the socket together with their classification so
// the client can restore the services error markers; callers keep using
// errors.Is against services.ErrNotFound and friends.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
