// Package server runs the notes API HTTP server.
//
// [Server.Run] blocks until its context is cancelled or the process receives
// SIGTERM, SIGINT or SIGQUIT, then shuts the listener down gracefully within
// the configured shutdown timeout.
package server
