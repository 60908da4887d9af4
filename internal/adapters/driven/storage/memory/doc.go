// Package memory provides in-memory implementations of driven store interfaces.
// They are used in tests and when no library directory is configured.
package memory
