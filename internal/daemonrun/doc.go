// Package daemonrun wires the shelf daemon process: logger, database, stores,
// resolver, orchestrator, HTTP API, and IPC socket. It backs `shelf serve`.
package daemonrun
