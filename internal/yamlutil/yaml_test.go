package yamlutil_test

// Notes:
// - Marshal error branch: not tested, yaml.Marshal only fails on types such
//   as channels or functions that no caller passes
// - TestInputSizeLimit mutates MaxInputSize and is not parallel

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2man/internal/yamlutil"
)

type testSection struct {
	Dir   string `yaml:"dir"`
	Index *bool  `yaml:"index"`
}

type testConfig struct {
	Output  testSection `yaml:"output"`
	Workers int         `yaml:"workers"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Strict decoding
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "nested known fields",
			data: []byte("output:\n  dir: site\n  index: false\nworkers: 3"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Output.Dir != "site" {
					t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "site")
				}
				if cfg.Output.Index == nil || *cfg.Output.Index {
					t.Errorf("Output.Index = %v, want false", cfg.Output.Index)
				}
				if cfg.Workers != 3 {
					t.Errorf("Workers = %d, want 3", cfg.Workers)
				}
			},
		},
		{
			name: "absent pointer stays nil",
			data: []byte("output:\n  dir: site"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if cfg := v.(*testConfig); cfg.Output.Index != nil {
					t.Errorf("Output.Index = %v, want nil", *cfg.Output.Index)
				}
			},
		},
		{
			name:    "unknown field causes error",
			data:    []byte("output:\n  dri: site"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "syntax error",
			data:    []byte("output: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("workers: 1"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.HasPrefix(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want prefix %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	index := true
	data, err := yamlutil.Marshal(&testConfig{Output: testSection{Dir: "public", Index: &index}, Workers: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{"dir: public", "index: true", "workers: 2"} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal() output missing %q, got:\n%s", want, s)
		}
	}

	var decoded testConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error = %v", err)
	}
	if decoded.Output.Dir != "public" || decoded.Workers != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := []byte("workers: 1" + strings.Repeat(" ", 90))
		var cfg testConfig
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails with sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := make([]byte, 100)
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain both sizes, got: %s", msg)
		}
	})
}
