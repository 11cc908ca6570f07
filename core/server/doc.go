// Package server holds the HTTP server configuration.
//
// The supervisor that owns the listening lifecycle lives in core/supervisor;
// this package only defines the settings it reads: bind address, the size of
// the connection worker pool, transport timeouts, and whether client
// disconnects are absorbed per request or escalated to a whole-server restart.
//
// # Configuration
//
//	SERVER_HOST=127.0.0.1
//	SERVER_PORT=44950
//	SERVER_ISOLATE_REQUESTS=true
package server
