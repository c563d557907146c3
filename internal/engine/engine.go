// Package engine runs the external container engine binary.
//
// Every dk operation is an argument vector handed to the engine. The Runner
// interface hides how that happens so command handlers can be exercised
// against a recording fake instead of a real engine.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

// DefaultBinary is the engine executable used when none is configured.
const DefaultBinary = "docker"

// Runner defines the process execution modes dk needs.
// All methods return *apperrors.EngineError when the process exits non-zero
// and an error wrapping apperrors.ErrNotLaunched when it cannot start.
type Runner interface {
	// Binary returns the engine executable name.
	Binary() string
	// Run executes the engine with inherited stdio (interactive mode).
	Run(ctx context.Context, args ...string) error
	// Exec executes an arbitrary argument vector with inherited stdio.
	// argv[0] is the program.
	Exec(ctx context.Context, argv []string) error
	// Capture executes the engine and returns its standard output.
	// On failure the error message is the captured standard error.
	Capture(ctx context.Context, args ...string) (string, error)
	// Stream executes the engine with standard output copied to w.
	Stream(ctx context.Context, w io.Writer, args ...string) error
}

// Exec is the os/exec backed Runner.
type Exec struct {
	binary string
	trace  func(cmdline string)
	logger *log.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Compile-time verification that Exec implements Runner
var _ Runner = (*Exec)(nil)

// Option configures an Exec runner.
type Option func(*Exec)

// WithTrace sets the function that prints every interactive command line.
func WithTrace(fn func(cmdline string)) Option {
	return func(e *Exec) {
		e.trace = fn
	}
}

// WithLogger sets the logger used for debug traces of captured commands.
func WithLogger(l *log.Logger) Option {
	return func(e *Exec) {
		e.logger = l
	}
}

// WithStdio overrides the streams inherited by interactive commands.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Exec) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExec creates a runner for the given engine binary (DefaultBinary if empty).
func NewExec(binary string, opts ...Option) *Exec {
	if binary == "" {
		binary = DefaultBinary
	}
	e := &Exec{
		binary: binary,
		logger: log.New(io.Discard),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Binary returns the engine executable name.
func (e *Exec) Binary() string {
	return e.binary
}

// Run executes the engine in interactive mode.
func (e *Exec) Run(ctx context.Context, args ...string) error {
	return e.Exec(ctx, append([]string{e.binary}, args...))
}

// Exec executes argv in interactive mode and propagates its exit code.
func (e *Exec) Exec(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command line", apperrors.ErrNotLaunched)
	}
	cmdline := strings.Join(argv, " ")
	if e.trace != nil {
		e.trace(cmdline)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) // #nosec G204 -- argv is the user's own engine command
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	return commandError(cmdline, cmd.Run(), "")
}

// Capture executes the engine and buffers both output streams.
func (e *Exec) Capture(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmdline := e.cmdline(args)
	e.logger.Debug("capture", "cmd", cmdline)

	cmd := exec.CommandContext(ctx, e.binary, args...) // #nosec G204 -- binary comes from settings
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := commandError(cmdline, cmd.Run(), stderr.String()); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Stream executes the engine with standard output copied to w.
func (e *Exec) Stream(ctx context.Context, w io.Writer, args ...string) error {
	var stderr bytes.Buffer
	cmdline := e.cmdline(args)
	e.logger.Debug("stream", "cmd", cmdline)

	cmd := exec.CommandContext(ctx, e.binary, args...) // #nosec G204 -- binary comes from settings
	cmd.Stdout = w
	cmd.Stderr = &stderr

	return commandError(cmdline, cmd.Run(), stderr.String())
}

func (e *Exec) cmdline(args []string) string {
	return strings.Join(append([]string{e.binary}, args...), " ")
}

// commandError converts an os/exec result into the dk error model.
func commandError(cmdline string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			// Terminated by a signal
			code = apperrors.ExitFailure
		}
		return &apperrors.EngineError{
			Command:  cmdline,
			ExitCode: code,
			Stderr:   stderr,
			Err:      err,
		}
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrNotLaunched, cmdline, err)
}
