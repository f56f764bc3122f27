package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - warnUnknownEnvVars reads the whole process environment, so assertions
//   check for presence or absence of one variable name only.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-md2man/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MD2MAN_CONFIG", "release")
	t.Setenv("MD2MAN_INPUT_DIR", "man")
	t.Setenv("MD2MAN_OUTPUT_DIR", "site")
	t.Setenv("MD2MAN_HIGHLIGHT", "github")
	t.Setenv("MD2MAN_WORKERS", "3")

	cfg := loadEnvConfig()

	want := envConfig{
		ConfigPath: "release",
		InputDir:   "man",
		OutputDir:  "site",
		Highlight:  "github",
		Workers:    3,
	}
	if *cfg != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	for _, value := range []string{"many", "-2", "0"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("MD2MAN_WORKERS", value)

			if got := loadEnvConfig().Workers; got != 0 {
				t.Errorf("Workers = %d, want 0 for %q", got, value)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2MAN_HIGHLITE", "monokai")
	t.Setenv("MD2MAN_HIGHLIGHT", "monokai")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "unknown environment variable MD2MAN_HIGHLITE") {
		t.Errorf("missing typo warning, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "MD2MAN_HIGHLIGHT ") {
		t.Errorf("known variable reported: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{InputDir: "env-man", OutputDir: "env-site", Highlight: "github", Workers: 2}

	t.Run("fills empty values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Input.Dir != "env-man" || cfg.Output.Dir != "env-site" ||
			cfg.HTML.Highlight != "github" || cfg.Output.Workers != 2 {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})

	t.Run("keeps config values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Input.Dir = "cfg-man"
		cfg.Output.Dir = "cfg-site"
		cfg.HTML.Highlight = "monokai"
		cfg.Output.Workers = 6
		applyEnvConfig(env, cfg)

		if cfg.Input.Dir != "cfg-man" || cfg.Output.Dir != "cfg-site" ||
			cfg.HTML.Highlight != "monokai" || cfg.Output.Workers != 6 {
			t.Errorf("applyEnvConfig() overrode config: %+v", cfg)
		}
	})
}
