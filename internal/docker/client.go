// Package docker probes the Docker daemon through the Engine API.
//
// Everything else dk does goes through the engine binary; this package only
// answers "is the daemon reachable, and what is it" for `dk sys ping`.
package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

// Common errors
var (
	ErrConnectionFailed = errors.New("docker connection failed")
)

// API is the subset of the Docker SDK client used by dk.
// *client.Client satisfies it; tests substitute a mock.
type API interface {
	Ping(ctx context.Context) (types.Ping, error)
	ServerVersion(ctx context.Context) (types.Version, error)
	Close() error
}

// Compile-time verification that the SDK client implements API
var _ API = (*client.Client)(nil)

// Client defines the daemon operations dk performs.
// All methods accept context.Context for cancellation and timeout support.
type Client interface {
	// Probe pings the daemon and reads its version information.
	// Failures are returned as *apperrors.DaemonError.
	Probe(ctx context.Context) (*Info, error)
	// Host returns the daemon address the client talks to.
	Host() string
	// Close closes the Docker client connection and releases resources.
	Close() error
}

// dockerClient wraps the Docker SDK with dk's error model
type dockerClient struct {
	api  API
	host string
}

// Compile-time verification that dockerClient implements Client
var _ Client = (*dockerClient)(nil)

// NewClient connects to the Docker daemon at host (or the SDK default if empty).
func NewClient(host string) (Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}

	// Add host option if specified; it wins over DOCKER_HOST
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, &apperrors.DaemonError{
			Host:      host,
			Operation: "connect",
			Err:       fmt.Errorf("%w: %v", ErrConnectionFailed, err),
		}
	}

	return &dockerClient{api: cli, host: cli.DaemonHost()}, nil
}

// NewClientWithInterface is used for testing with mock implementations.
func NewClientWithInterface(api API, host string) Client {
	return &dockerClient{api: api, host: host}
}

func (c *dockerClient) Host() string {
	return c.host
}

func (c *dockerClient) Close() error {
	return c.api.Close()
}

func (c *dockerClient) Probe(ctx context.Context) (*Info, error) {
	ping, err := c.api.Ping(ctx)
	if err != nil {
		return nil, c.daemonError("ping", err)
	}

	version, err := c.api.ServerVersion(ctx)
	if err != nil {
		return nil, c.daemonError("version", err)
	}

	info := &Info{
		Host:          c.host,
		APIVersion:    ping.APIVersion,
		ServerVersion: version.Version,
		MinAPIVersion: version.MinAPIVersion,
		OS:            version.Os,
		Arch:          version.Arch,
		KernelVersion: version.KernelVersion,
		Experimental:  ping.Experimental,
	}
	if info.APIVersion == "" {
		info.APIVersion = version.APIVersion
	}
	if info.OS == "" {
		info.OS = ping.OSType
	}
	return info, nil
}

func (c *dockerClient) daemonError(operation string, err error) error {
	return &apperrors.DaemonError{
		Host:      c.host,
		Operation: operation,
		Err:       fmt.Errorf("%w: %v", ErrConnectionFailed, err),
	}
}
