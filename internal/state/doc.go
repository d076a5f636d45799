// Package state persists the domain store to a directory tree on shutdown
// and reconstructs it on startup: one users file at the root, one
// subdirectory per project holding a members file and one file per card.
package state
