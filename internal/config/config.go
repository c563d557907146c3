// Package config handles the dk settings and the OTS service catalog.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Common errors
var (
	Err       = errors.New("config error")
	ErrNoHome = errors.New("cannot determine home directory")
)

// Settings represents the runtime settings of dk.
type Settings struct {
	// Engine is the container engine executable dk shells out to.
	Engine string `mapstructure:"engine"`
	// DockerHost is the daemon address used by `dk sys ping`.
	DockerHost string `mapstructure:"docker_host"`
	// CatalogPath is the OTS catalog file; empty means DefaultCatalogPath.
	CatalogPath string `mapstructure:"catalog"`
}

// autoDetectDockerHost determines the daemon address based on environment and platform.
func autoDetectDockerHost() string {
	if os.Getenv("DOCKER_HOST") != "" {
		return os.Getenv("DOCKER_HOST")
	}
	// Check for Unix socket
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return "unix:///var/run/docker.sock"
	}
	// Default to Windows named pipe if Unix socket not found
	return "npipe:////./pipe/docker_engine"
}

// LoadSettings reads settings from defaults, an optional .env file and
// DK_* environment variables. catalogPath overrides the catalog location
// when non-empty.
func LoadSettings(catalogPath string) (*Settings, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()
	setDefaults(v)

	// Environment variable support
	v.SetEnvPrefix("DK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings from environment: %w", err)
	}

	if catalogPath != "" {
		s.CatalogPath = catalogPath
	}
	if s.CatalogPath == "" {
		path, err := DefaultCatalogPath()
		if err != nil {
			return nil, err
		}
		s.CatalogPath = path
	}
	if s.DockerHost == "" {
		s.DockerHost = autoDetectDockerHost()
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine", "docker")
	v.SetDefault("docker_host", "") // Required for AutomaticEnv to work
	v.SetDefault("catalog", "")
}

// Validate ensures all required fields are set.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Engine) == "" {
		return fmt.Errorf("%w: engine is required (set DK_ENGINE)", Err)
	}
	if strings.ContainsAny(s.Engine, " \t") {
		return fmt.Errorf("%w: engine must be a single executable, got %q", Err, s.Engine)
	}
	if s.CatalogPath == "" {
		return fmt.Errorf("%w: catalog path is required", Err)
	}
	return nil
}
