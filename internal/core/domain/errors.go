package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStorage matches any *StorageError.
	ErrStorage = errors.New("storage error")

	// ErrGeneration matches any *GenerationError.
	ErrGeneration = errors.New("generation error")

	// ErrDatabaseUnavailable indicates the store failed to open at startup.
	ErrDatabaseUnavailable = errors.New("database not available")

	// ErrAPIKeyRequired indicates no generation API key is configured.
	ErrAPIKeyRequired = errors.New("openai api key is required")
)

// StorageError wraps a failure from the storage engine: a lost connection,
// a constraint violation or a malformed statement.
type StorageError struct {
	// Op names the storage operation, e.g. "insert content".
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error { return e.Err }

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// GenerationError wraps a failure from the text-generation endpoint.
type GenerationError struct {
	// Op names the generation step, e.g. "summary".
	Op string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	Err error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrGeneration.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
