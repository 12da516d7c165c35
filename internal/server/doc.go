// Package server wires and runs the application's transport servers.
//
// It starts the HTTP server and the optional gRPC health server together
// with the background workers, and stops all of them on SIGINT, SIGTERM or
// SIGQUIT.
package server
