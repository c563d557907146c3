// Package apperrors provides domain-specific error types for dk.
// These error types carry the context needed to report a failure and to pick
// the process exit code.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes used when no engine exit status is available.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitNotLaunched = 127
)

// ErrNotLaunched marks an engine binary that could not be started at all.
var ErrNotLaunched = errors.New("command could not be launched")

// UsageError represents a local validation failure: missing or extra
// arguments, unknown subcommands. No engine process is started for these.
// An empty Message means the usage text was already printed.
type UsageError struct {
	Message string
}

// Error implements the error interface for UsageError.
func (e *UsageError) Error() string {
	return e.Message
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// EngineError represents a container engine invocation that exited non-zero.
type EngineError struct {
	Command  string // Assembled command line (e.g., "docker rm -f abc")
	ExitCode int    // Exit status reported by the process
	Stderr   string // Captured standard error, empty in interactive mode
	Err      error  // Underlying error
}

// Error implements the error interface for EngineError.
// The captured standard error is the message when there is one.
func (e *EngineError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents configuration-related errors.
// It includes the configuration file path and specific key that caused the error.
type ConfigurationError struct {
	ConfigPath string // Path to the configuration file
	Key        string // Configuration key that caused the error
	Err        error  // Underlying error
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error in %s (key: %s): %v", e.ConfigPath, e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.ConfigPath, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DaemonError represents a failed call against the engine daemon API.
// It includes the daemon host and the operation that failed.
type DaemonError struct {
	Host      string // Daemon host (e.g., unix:///var/run/docker.sock)
	Operation string // Operation that failed (e.g., "Ping", "ServerVersion")
	Err       error  // Underlying error
}

// Error implements the error interface for DaemonError.
func (e *DaemonError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("docker %s failed (host: %s): %v", e.Operation, e.Host, e.Err)
	}
	return fmt.Sprintf("docker %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *DaemonError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
// Engine failures keep the engine's own status; a binary that could not be
// launched maps to 127; everything else is a generic failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrNotLaunched) {
		return ExitNotLaunched
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) && engineErr.ExitCode > 0 {
		return engineErr.ExitCode
	}
	return ExitFailure
}

// Reported wraps an error whose message has already been shown to the user.
// The exit code is preserved; the top-level handler prints nothing more.
type Reported struct {
	Err error
}

// Error implements the error interface for Reported.
func (e *Reported) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error for error wrapping chains.
func (e *Reported) Unwrap() error {
	return e.Err
}

// IsReported reports whether err (or anything it wraps) was already shown.
func IsReported(err error) bool {
	var r *Reported
	if errors.As(err, &r) {
		return true
	}
	var u *UsageError
	return errors.As(err, &u) && u.Message == ""
}
