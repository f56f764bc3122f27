package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2man/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2MAN_CONFIG: config file name or path
	InputDir   string // MD2MAN_INPUT_DIR: manual source tree
	OutputDir  string // MD2MAN_OUTPUT_DIR: output directory
	Highlight  string // MD2MAN_HIGHLIGHT: chroma style name
	Workers    int    // MD2MAN_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2MAN_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2MAN_CONFIG":     true,
	"MD2MAN_INPUT_DIR":  true,
	"MD2MAN_OUTPUT_DIR": true,
	"MD2MAN_HIGHLIGHT":  true,
	"MD2MAN_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable or non-positive MD2MAN_WORKERS is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2MAN_CONFIG"),
		InputDir:   os.Getenv("MD2MAN_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2MAN_OUTPUT_DIR"),
		Highlight:  os.Getenv("MD2MAN_HIGHLIGHT"),
	}

	if workers := os.Getenv("MD2MAN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2MAN_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2MAN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.Dir == "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Highlight != "" && cfg.HTML.Highlight == "" {
		cfg.HTML.Highlight = env.Highlight
	}
	if env.Workers > 0 && cfg.Output.Workers == 0 {
		cfg.Output.Workers = env.Workers
	}
}
