// Package server implements the framed TCP front of the board service: a
// listener accepting client connections, per-connection frame assembly that
// tolerates arbitrary partial reads, and a fixed-size worker pool that
// executes each request against the shared domain store and writes the
// framed reply back on the originating connection.
package server
