package assets

// Notes:
// - Asset trees are built in t.TempDir with writeAsset
// - The symlink test skips where symlinks are unsupported

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset writes content to base/rel, creating parent directories.
func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()

	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base path validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "file.txt", "x")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid directory", tmpDir, nil},
		{"empty path", "", ErrInvalidBasePath},
		{"nonexistent directory", filepath.Join(tmpDir, "missing"), ErrInvalidBasePath},
		{"file instead of directory", filepath.Join(tmpDir, "file.txt"), ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewFilesystemLoader(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFilesystemLoader(%q) error = %v", tt.path, err)
			}
			if loader == nil {
				t.Fatal("NewFilesystemLoader() returned nil")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_Load - Styles and templates
// ---------------------------------------------------------------------------

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles/custom.css", "body { color: red; }")
	writeAsset(t, tmpDir, "templates/custom.html", "<main>{{.Body}}</main>")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{"style", loader.LoadStyle, "custom", "body { color: red; }", nil},
		{"template", loader.LoadTemplate, "custom", "<main>{{.Body}}</main>", nil},
		{"missing style", loader.LoadStyle, "manpage", "", ErrStyleNotFound},
		{"missing template", loader.LoadTemplate, "page", "", ErrTemplateNotFound},
		{"invalid style name", loader.LoadStyle, "../custom", "", ErrInvalidAssetName},
		{"invalid template name", loader.LoadTemplate, "custom.evil", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load(%q) error = %v", tt.asset, err)
			}
			if got != tt.want {
				t.Errorf("load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "styles"), 0o755); err != nil {
		t.Fatalf("creating styles dir: %v", err)
	}

	secretDir := t.TempDir()
	writeAsset(t, secretDir, "secret.css", "secret content")

	if err := os.Symlink(filepath.Join(secretDir, "secret.css"), filepath.Join(tmpDir, "styles", "evil.css")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() with symlink escape error = %v, want ErrPathTraversal", err)
	}
}
