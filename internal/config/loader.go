package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name searched for in the current
// directory.
const DefaultConfigFile = ".ok22"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration wraps time.Duration so YAML values like "10s" parse.
// yaml.v3 has no native duration support.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// File is the YAML config file shape. Every field is optional; zero
// values leave the corresponding Config default untouched.
type File struct {
	// Endpoint overrides the activation portal URL.
	Endpoint string `yaml:"endpoint"`
	// UserAgent overrides the request User-Agent header.
	UserAgent string `yaml:"user_agent"`
	// Timeout overrides the per-attempt timeout (e.g. "10s").
	Timeout Duration `yaml:"timeout"`
	// Retries overrides the per-address attempt budget.
	Retries int `yaml:"retries"`
	// Backoff overrides the wait between failed attempts (e.g. "1s").
	Backoff Duration `yaml:"backoff"`
	// Concurrency overrides the in-flight task ceiling.
	Concurrency int `yaml:"concurrency"`
	// Proxies names the egress path list file.
	Proxies string `yaml:"proxies"`
	// OutputDir names the directory output files are created in.
	OutputDir string `yaml:"output_dir"`
}

// LoadConfigFile loads overrides from a YAML file.
// Returns ErrConfigNotFound when the file does not exist so callers can
// distinguish "no file" from "broken file".
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in order:
//  1. the explicit path, if given
//  2. .ok22 in the current directory
//  3. config.yml in the XDG config directory (~/.config/ok22)
//
// Returns the path if found, or empty string.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}

	xdgPath := filepath.Join(XDGConfigDir(), "config.yml")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

// Apply merges non-zero file values into the config. Flags are applied
// after the file by the CLI layer, so flags win over the file and the
// file wins over defaults.
func (f *File) Apply(c *Config) {
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Timeout > 0 {
		c.Timeout = time.Duration(f.Timeout)
	}
	if f.Retries > 0 {
		c.Retries = f.Retries
	}
	if f.Backoff > 0 {
		c.Backoff = time.Duration(f.Backoff)
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.Proxies != "" {
		c.ProxyFile = f.Proxies
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
}
