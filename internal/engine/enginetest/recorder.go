// Package enginetest provides a recording engine.Runner for tests.
package enginetest

import (
	"context"
	"io"
	"strings"

	"github.com/zorak1103/dk/internal/engine"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

// Invocation modes recorded by the Recorder.
const (
	ModeRun     = "run"
	ModeCapture = "capture"
	ModeStream  = "stream"
)

// Call is one recorded invocation.
type Call struct {
	Mode string
	Argv []string
}

// Cmdline returns the call's argv joined with spaces.
func (c Call) Cmdline() string {
	return strings.Join(c.Argv, " ")
}

type response struct {
	prefix string
	output string
	err    error
}

// Recorder records every invocation and answers from scripted responses.
// Responses match on the longest command line prefix; unmatched commands
// succeed with empty output.
type Recorder struct {
	binary    string
	responses []response
	Calls     []Call
}

// Compile-time verification that Recorder implements engine.Runner
var _ engine.Runner = (*Recorder)(nil)

// New creates a Recorder that pretends to be the docker binary.
func New() *Recorder {
	return &Recorder{binary: engine.DefaultBinary}
}

// Respond scripts the output for commands starting with prefix.
func (r *Recorder) Respond(prefix, output string) *Recorder {
	r.responses = append(r.responses, response{prefix: prefix, output: output})
	return r
}

// Fail scripts a non-zero exit for commands starting with prefix.
func (r *Recorder) Fail(prefix string, code int, stderr string) *Recorder {
	r.responses = append(r.responses, response{
		prefix: prefix,
		err: &apperrors.EngineError{
			Command:  prefix,
			ExitCode: code,
			Stderr:   stderr,
		},
	})
	return r
}

// FailLaunch scripts a launch failure for commands starting with prefix.
func (r *Recorder) FailLaunch(prefix string) *Recorder {
	r.responses = append(r.responses, response{prefix: prefix, err: apperrors.ErrNotLaunched})
	return r
}

// Binary returns the engine executable name.
func (r *Recorder) Binary() string {
	return r.binary
}

// Run records an interactive engine invocation.
func (r *Recorder) Run(_ context.Context, args ...string) error {
	_, err := r.record(ModeRun, append([]string{r.binary}, args...))
	return err
}

// Exec records an interactive invocation of an arbitrary argv.
func (r *Recorder) Exec(_ context.Context, argv []string) error {
	_, err := r.record(ModeRun, argv)
	return err
}

// Capture records a captured invocation and returns the scripted output.
func (r *Recorder) Capture(_ context.Context, args ...string) (string, error) {
	return r.record(ModeCapture, append([]string{r.binary}, args...))
}

// Stream records a streamed invocation and writes the scripted output to w.
func (r *Recorder) Stream(_ context.Context, w io.Writer, args ...string) error {
	out, err := r.record(ModeStream, append([]string{r.binary}, args...))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Commands returns the command lines of all recorded calls in order.
func (r *Recorder) Commands() []string {
	cmds := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		cmds = append(cmds, c.Cmdline())
	}
	return cmds
}

// CommandsFor returns the command lines recorded in the given mode.
func (r *Recorder) CommandsFor(mode string) []string {
	var cmds []string
	for _, c := range r.Calls {
		if c.Mode == mode {
			cmds = append(cmds, c.Cmdline())
		}
	}
	return cmds
}

func (r *Recorder) record(mode string, argv []string) (string, error) {
	call := Call{Mode: mode, Argv: append([]string(nil), argv...)}
	r.Calls = append(r.Calls, call)

	cmdline := call.Cmdline()
	var best *response
	for i := range r.responses {
		resp := &r.responses[i]
		if strings.HasPrefix(cmdline, resp.prefix) && (best == nil || len(resp.prefix) > len(best.prefix)) {
			best = resp
		}
	}
	if best == nil {
		return "", nil
	}
	return best.output, best.err
}
