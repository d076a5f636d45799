// Package mcast assigns multicast chat addresses to projects and provides
// the UDP send primitive for per-project chat groups.
package mcast
