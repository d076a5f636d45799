// Package notify implements the push-notification service: a hub of
// WebSocket subscribers that receives full user-registry and project-set
// snapshots whenever the store changes, plus the HTTP surface clients use
// to register accounts and subscribe to events.
//
// Delivery is best-effort. A subscriber that cannot keep up or whose
// connection fails is dropped without affecting the others.
package notify
