package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Runner strategy names accepted for git.runner
const (
	RunnerInherit  = "inherit"
	RunnerCaptured = "captured"
	RunnerQuiet    = "quiet"
	RunnerShell    = "shell"
)

type GitCfg struct {
	Binary         string `yaml:"binary" json:"binary"`                   // Checkout executable (default: git)
	Depth          int    `yaml:"depth" json:"depth"`                     // Shallow clone depth, 0 = full history
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"` // External checkout deadline
	Runner         string `yaml:"runner" json:"runner"`                   // Spawn strategy: inherit, captured, quiet, shell
}

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"`
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type Config struct {
	AllowedRoots   []string      `yaml:"allowed_roots" json:"allowed_roots"`     // Destinations must live under these
	ProtectedPaths []string      `yaml:"protected_paths" json:"protected_paths"` // Extra prefixes the sweeper must never touch
	DatabasePath   string        `yaml:"database_path" json:"database_path"`     // SQLite file for the sweep audit trail
	MinFreeMB      int64         `yaml:"min_free_mb" json:"min_free_mb"`         // Refuse to clone below this much free space, 0 = no check
	Prometheus     PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging        LoggingCfg    `yaml:"logging" json:"logging"`
	Git            GitCfg        `yaml:"git" json:"git"`
}

var (
	errNoRoots         = errors.New("configuration must specify allowed_roots")
	errInvalidPath     = errors.New("path must be absolute")
	errInvalidRunner   = errors.New("git.runner must be one of inherit, captured, quiet, shell")
	errNegativeDepth   = errors.New("git.depth cannot be negative")
	errInvalidTimeout  = errors.New("git.timeout_seconds cannot be negative")
	errNegativeMinFree = errors.New("min_free_mb cannot be negative")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.AllowedRoots) == 0 {
		return errNoRoots
	}

	cleaned := make([]string, 0, len(c.AllowedRoots))
	for _, p := range c.AllowedRoots {
		cp, err := cleanAbsolute(p)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, cp)
	}
	c.AllowedRoots = cleaned

	for i, p := range c.ProtectedPaths {
		cp, err := cleanAbsolute(p)
		if err != nil {
			return err
		}
		c.ProtectedPaths[i] = cp
	}

	if c.DatabasePath == "" {
		c.DatabasePath = "/var/lib/repo-sweep/sweeps.db"
	}

	if c.MinFreeMB < 0 {
		return errNegativeMinFree
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}

	if c.Git.Binary == "" {
		c.Git.Binary = "git"
	}
	if c.Git.Depth < 0 {
		return errNegativeDepth
	}
	if c.Git.TimeoutSeconds < 0 {
		return errInvalidTimeout
	}
	if c.Git.TimeoutSeconds == 0 {
		c.Git.TimeoutSeconds = 600 // Default: 10 minutes for the external checkout
	}
	switch c.Git.Runner {
	case "":
		c.Git.Runner = RunnerInherit
	case RunnerInherit, RunnerCaptured, RunnerQuiet, RunnerShell:
	default:
		return fmt.Errorf("%w: %q", errInvalidRunner, c.Git.Runner)
	}

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

func (c *Config) CloneTimeout() time.Duration {
	return time.Duration(c.Git.TimeoutSeconds) * time.Second
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
