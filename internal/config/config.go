// Package config loads and validates md2man build configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2man/internal/fileutil"
	"github.com/alnah/go-md2man/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the user config directory: $XDG_CONFIG_HOME/go-md2man.
const AppName = "go-md2man"

// Field length limits.
const (
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxStyleLength = 64   // chroma style names are short
	MaxWorkers     = 32
)

// Config holds the configuration of a build.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	HTML   HTMLConfig   `yaml:"html"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines the manual source tree.
type InputConfig struct {
	Dir string `yaml:"dir"` // Directory holding man*/ sections (empty = must specify)
}

// OutputConfig defines where and what a build writes.
// Unset toggles default to enabled.
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // Empty = next to the sources
	Roff    *bool  `yaml:"roff"`    // Write roff pages
	HTML    *bool  `yaml:"html"`    // Write HTML pages
	Index   *bool  `yaml:"index"`   // Write index.html and section redirects
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// HTMLConfig defines HTML rendering options.
type HTMLConfig struct {
	Highlight  string `yaml:"highlight"`  // chroma style name (empty = off)
	Standalone bool   `yaml:"standalone"` // Wrap pages in a full document
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RoffEnabled reports whether roff pages are written.
func (o OutputConfig) RoffEnabled() bool { return enabled(o.Roff) }

// HTMLEnabled reports whether HTML pages are written.
func (o OutputConfig) HTMLEnabled() bool { return enabled(o.HTML) }

// IndexEnabled reports whether the index page is written.
func (o OutputConfig) IndexEnabled() bool { return enabled(o.Index) }

func enabled(toggle *bool) bool {
	return toggle == nil || *toggle
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.dir", c.Input.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("html.highlight", c.HTML.Highlight, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Output.Workers < 0 || c.Output.Workers > MaxWorkers {
		return fmt.Errorf("%w: output.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Output.Workers)
	}
	if !c.Output.RoffEnabled() && !c.Output.HTMLEnabled() {
		return fmt.Errorf("%w: output.roff and output.html are both disabled", ErrInvalidValue)
	}
	if c.HTML.Standalone && !c.Output.HTMLEnabled() {
		return fmt.Errorf("%w: html.standalone requires output.html", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// roff, HTML and index output enabled, no highlighting, embedded assets.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as <name>.yaml|.yml in the current directory,
// then in the user config directory.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
