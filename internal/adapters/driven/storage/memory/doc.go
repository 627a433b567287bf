// Package memory provides in-memory implementations of driven ports.
// They back --ephemeral sessions and service tests; nothing is written to disk.
package memory
