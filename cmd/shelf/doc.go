// Package main hosts the shelf CLI entrypoint and command graph.
//
// The same binary runs the daemon (`shelf serve`) and acts as its client.
// Catalog and cover commands translate into IPC calls against the daemon
// socket; `config` and `status` work without a running daemon.
package main
