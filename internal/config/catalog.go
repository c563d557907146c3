package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

// Catalog location under the user's home directory.
const (
	CatalogDirName  = ".dk"
	CatalogFileName = "dk_config.json"
)

// Catalog is the persisted set of OTS service definitions.
type Catalog struct {
	OTS []Service `json:"ots" mapstructure:"ots"`
}

// Service is one OTS launch recipe. Port is informational only and is not
// checked against CommandLine.
type Service struct {
	Name        string `json:"name" mapstructure:"name"`
	Port        int    `json:"port" mapstructure:"port"`
	CommandLine string `json:"command_line" mapstructure:"command_line"`
}

// ContainerName returns the container name `ots down` removes.
func (s Service) ContainerName() string {
	return "ots_" + s.Name
}

// Lookup returns the service with the given name.
func (c *Catalog) Lookup(name string) (Service, bool) {
	for _, svc := range c.OTS {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}

// Names returns the service names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.OTS))
	for _, svc := range c.OTS {
		names = append(names, svc.Name)
	}
	return names
}

// Validate ensures every service has a unique, non-empty name.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.OTS))
	for i, svc := range c.OTS {
		if svc.Name == "" {
			return fmt.Errorf("%w: ots[%d].name is required", Err, i)
		}
		if seen[svc.Name] {
			return fmt.Errorf("%w: duplicate ots name %q", Err, svc.Name)
		}
		seen[svc.Name] = true
	}
	return nil
}

func (c *Catalog) normalize() {
	if c.OTS == nil {
		c.OTS = []Service{}
	}
}

// DefaultCatalogPath returns <home>/.dk/dk_config.json.
func DefaultCatalogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, CatalogDirName, CatalogFileName), nil
}

// Store loads and saves the catalog file.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore creates a store for the catalog file at path.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog. A missing file is created with DefaultCatalog.
// An unreadable or malformed file is moved aside to <path>.bak and replaced
// with DefaultCatalog.
func (s *Store) Load() (*Catalog, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("catalog not found, writing defaults", "path", s.path)
		return s.regenerate()
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	var c Catalog
	err := v.ReadInConfig()
	if err == nil {
		err = v.Unmarshal(&c)
	}
	if err != nil {
		return s.recover(err)
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: s.path, Key: "ots", Err: err}
	}

	s.logger.Debug("catalog loaded", "path", s.path, "services", len(c.OTS))
	return &c, nil
}

// Save writes the catalog as indented JSON, replacing the file atomically.
func (s *Store) Save(c *Catalog) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	out := *c
	out.normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to marshal catalog for %s: %w", s.path, err)
	}

	return writeFileAtomic(s.path, buf.Bytes())
}

func (s *Store) regenerate() (*Catalog, error) {
	c := DefaultCatalog()
	if err := s.Save(c); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: s.path, Err: err}
	}
	return c, nil
}

func (s *Store) recover(cause error) (*Catalog, error) {
	backup := s.path + ".bak"
	s.logger.Warn("catalog is corrupt, restoring defaults", "path", s.path, "backup", backup, "err", cause)
	if err := os.Rename(s.path, backup); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: s.path, Err: fmt.Errorf("failed to back up corrupt catalog: %w", err)}
	}
	return s.regenerate()
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &apperrors.ConfigurationError{ConfigPath: s.path, Err: fmt.Errorf("failed to create directory %s: %w", dir, err)}
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "dk_config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in directory %s for %s: %w", dir, path, err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()    // Best effort cleanup
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to write temp file %s for %s: %w", tmpPath, path, err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()    // Best effort cleanup
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to sync temp file %s for %s: %w", tmpPath, path, err)
	}

	_ = tmpFile.Close() // Explicit ignore - we've already synced

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("failed to rename temp file %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
