// Package logger provides process-wide logging for brainspread.
// Debug, Info, Warn and Section only print when verbose mode is enabled
// via the --verbose flag. Error always prints.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes a line with the given level tag. Only Error bypasses verbosity.
func logf(level string, always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose || always {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("DEBUG", false, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("INFO", false, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("WARN", false, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf("ERROR", true, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Trace prefixes every message with an identifier so that the lines of one
// workflow can be picked out of interleaved output.
type Trace string

// Debug prints a traced message if verbose mode is enabled.
func (t Trace) Debug(format string, args ...any) {
	logf("DEBUG", false, "["+string(t)+"] "+format, args...)
}

// Info prints a traced informational message if verbose mode is enabled.
func (t Trace) Info(format string, args ...any) {
	logf("INFO", false, "["+string(t)+"] "+format, args...)
}

// Warn prints a traced warning if verbose mode is enabled.
func (t Trace) Warn(format string, args ...any) {
	logf("WARN", false, "["+string(t)+"] "+format, args...)
}

// Error prints a traced error regardless of verbose mode.
func (t Trace) Error(format string, args ...any) {
	logf("ERROR", true, "["+string(t)+"] "+format, args...)
}
