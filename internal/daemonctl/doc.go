// Package daemonctl launches, stops, and inspects the shelf daemon from the
// CLI side of the IPC socket.
//
// Start launches a detached `shelf serve` and waits for its socket. Stop
// signals the PID the daemon reports over IPC and falls back to SIGKILL with
// pid/lock cleanup when the socket does not go away within the grace period.
// BuildStatusSnapshot reads the database directly when no daemon is running.
package daemonctl
