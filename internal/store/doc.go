// Package store holds the authoritative in-memory state of the board
// server: the user registry and the project set, each guarded by its own
// reader/writer lock. Every operation acquires the minimal lock scope it
// needs, runs its whole check-then-mutate sequence under that lock, and
// returns exactly one wire reply tag.
package store
