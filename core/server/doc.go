// Package server holds configuration for the HTTP server.
//
// The front-end boundary (the messaging layer) talks to this service over
// a small authenticated HTTP API. The server itself is a Fiber application
// assembled in cmd/start.go; this package only carries its settings so the
// config loader can bind them.
package server
