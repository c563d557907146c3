package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "usage error", err: Usagef("bad %s", "args"), want: ExitFailure},
		{name: "engine error keeps code", err: &EngineError{ExitCode: 125}, want: 125},
		{name: "wrapped engine error", err: fmt.Errorf("batch: %w", &EngineError{ExitCode: 2}), want: 2},
		{name: "engine error without code", err: &EngineError{}, want: ExitFailure},
		{name: "not launched", err: fmt.Errorf("exec docker: %w", ErrNotLaunched), want: ExitNotLaunched},
		{name: "reported engine error", err: &Reported{Err: &EngineError{ExitCode: 3}}, want: 3},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestEngineError_Message(t *testing.T) {
	withStderr := &EngineError{Command: "docker rm -f 99", ExitCode: 1, Stderr: "Error: No such container: 99\n"}
	assert.Equal(t, "Error: No such container: 99", withStderr.Error())

	withoutStderr := &EngineError{Command: "docker exec -it x /bin/bash", ExitCode: 126}
	assert.Equal(t, "docker exec -it x /bin/bash: exit code 126", withoutStderr.Error())
}

func TestConfigurationError_Unwrap(t *testing.T) {
	inner := errors.New("permission denied")
	err := &ConfigurationError{ConfigPath: "/home/u/.dk/dk_config.json", Key: "ots", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "key: ots")
}

func TestDaemonError(t *testing.T) {
	err := &DaemonError{Host: "unix:///var/run/docker.sock", Operation: "Ping", Err: errors.New("refused")}
	assert.Equal(t, "docker Ping failed (host: unix:///var/run/docker.sock): refused", err.Error())

	err = &DaemonError{Operation: "ServerVersion", Err: errors.New("refused")}
	assert.Equal(t, "docker ServerVersion failed: refused", err.Error())
}

func TestIsReported(t *testing.T) {
	assert.True(t, IsReported(&Reported{Err: errors.New("x")}))
	assert.True(t, IsReported(&UsageError{}))
	assert.False(t, IsReported(&UsageError{Message: "'rm' command requires at least one container"}))
	assert.False(t, IsReported(errors.New("x")))
}
