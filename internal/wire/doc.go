// Package wire defines the client/server message protocol: the command and
// reply enums, the tagged message record exchanged as JSON, and the 4-byte
// length-prefixed framing that carries it over TCP.
package wire
