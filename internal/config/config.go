// Package config provides configuration management for kacl using koanf.
// Configuration is loaded with priority: environment variables > project
// config (.kacl.yml) > defaults. Command-line flags are applied on top by
// the CLI layer.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProjectConfigFile is the per-repository config file name, looked up in
// the working directory.
const ProjectConfigFile = ".kacl.yml"

// Config holds the kacl settings that shape parsing and link derivation.
type Config struct {
	// Path is the changelog file operated on.
	Path string `koanf:"path"`
	// RepoURL is the repository web URL used for release and compare
	// links. When empty it is inferred from the changelog's own links or
	// the git origin remote.
	RepoURL string `koanf:"repo_url"`
	// TagPrefix is prepended to version numbers to form tag names ("v"
	// for repositories tagging v1.2.3).
	TagPrefix string `koanf:"tag_prefix"`
	// Head is the git reference the unreleased compare link points at.
	Head string `koanf:"head"`
	// Compact uses compact spacing for newly created changelogs.
	Compact bool `koanf:"compact"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ConfigPath overrides the project config path (default: .kacl.yml).
	ConfigPath string
}

// Defaults returns the built-in configuration values. Head has no default
// here: when left empty the CLI resolves it from the checked-out git
// branch, falling back to "HEAD".
func Defaults() map[string]any {
	return map[string]any{
		"path": "CHANGELOG.md",
	}
}

// Load loads configuration from defaults, the project config file, and
// KACL_* environment variables, in increasing priority.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	path := opts.ConfigPath
	if path == "" {
		path = ProjectConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if opts.ConfigPath != "" {
		return nil, fmt.Errorf("config file %s not found", opts.ConfigPath)
	}

	if err := k.Load(env.Provider("KACL_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: KACL_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "KACL_"))
}
