// Package config handles project discovery and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file kustodian looks for.
const FileName = "kustodian.yaml"

// DefaultBuildTimeout bounds a single kustomize build invocation.
const DefaultBuildTimeout = 60 * time.Second

// Config holds the kustodian project configuration.
type Config struct {
	// Enabled toggles directive rendering. When false, render passes
	// pages through untouched.
	Enabled *bool `yaml:"enabled,omitempty"`

	// KustomizePath is the kustomize binary to invoke (default "kustomize").
	KustomizePath string `yaml:"kustomize_path,omitempty"`

	// KustomizeDirs are search roots tried, in order, when a directive's
	// path token is not an existing directory on its own.
	KustomizeDirs []string `yaml:"kustomize_dirs,omitempty"`

	// AutoNavPath is the root walked for auto-discovered kustomize
	// directories. Empty disables discovery and page generation.
	AutoNavPath string `yaml:"auto_nav_path,omitempty"`

	// NavTitle is the section title for generated pages.
	NavTitle string `yaml:"nav_title,omitempty"`

	// RepoURL is interpolated into generated usage snippets. When empty,
	// it is detected from the git remote if possible.
	RepoURL string `yaml:"repo_url,omitempty"`

	// BuildTimeout bounds each kustomize build invocation (e.g. "90s").
	BuildTimeout Duration `yaml:"build_timeout,omitempty"`

	// Root is the directory the config file was found in (or the working
	// directory when no file exists). Not read from YAML.
	Root string `yaml:"-"`
}

// RenderingEnabled reports whether directive rendering is on.
// Rendering defaults to enabled when the field is unset.
func (c *Config) RenderingEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Timeout returns the configured build timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.BuildTimeout > 0 {
		return time.Duration(c.BuildTimeout)
	}
	return DefaultBuildTimeout
}

// Duration wraps time.Duration so YAML configs can use strings like "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// FindRoot searches upward from the current directory for kustodian.yaml.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no %s in any parent directory)", FileName)
}

// Load finds the project root and returns its parsed Config.
// When no config file exists anywhere up the tree, defaults are returned
// rooted at the working directory.
func Load() (*Config, error) {
	root, err := FindRoot()
	if err != nil {
		cwd, werr := os.Getwd()
		if werr != nil {
			return nil, werr
		}
		cfg := defaults()
		cfg.Root = cwd
		return cfg, nil
	}
	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile parses the config file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		KustomizePath: "kustomize",
		NavTitle:      "Kustomize",
	}
}
