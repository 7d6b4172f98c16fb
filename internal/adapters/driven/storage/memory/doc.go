// Package memory provides in-memory implementations of driven port interfaces.
// They back service tests and never touch the filesystem.
package memory
