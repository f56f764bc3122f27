package pipeline

// Notes:
// - Tests RewriteRelativePaths through its public API only
// - Directories are relative so results do not depend on the OS root;
//   filepath.Abs resolves both against the same working directory
// - Coverage gaps on error branches in parseHTML/renderHTML are acceptable:
//   the html package rarely fails on valid input

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Main Function Tests
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	const (
		sourceDir = "man/man1"
		outputDir = "site/man1"
	)

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/logo.png">`,
			wantContains: []string{`src="../../man/man1/images/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="logo.png">`,
			wantContains: []string{`src="../../man/man1/logo.png"`},
		},
		{
			name:         "relative link keeps fragment",
			html:         `<a href="../README.md#usage">readme</a>`,
			wantContains: []string{`href="../../man/README.md#usage"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "http URL unchanged",
			html:         `<img src="https://example.com/logo.png">`,
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#options">options</a>`,
			wantContains: []string{`href="#options"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:me@example.com">me</a>`,
			wantContains: []string{`href="mailto:me@example.com"`},
		},
		{
			name:         "cross-reference unchanged",
			html:         `<a class="md2man-reference" href="../man3/printf.3.html">printf(3)</a>`,
			wantContains: []string{`href="../man3/printf.3.html"`},
			wantExcludes: []string{"../../"},
		},
		{
			name:         "empty src unchanged",
			html:         `<img src="">`,
			wantContains: []string{`src=""`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, sourceDir, outputDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRelativePaths() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_Unchanged(t *testing.T) {
	t.Parallel()

	html := `<p><img src="logo.png"></p>`

	tests := []struct {
		name      string
		sourceDir string
		outputDir string
	}{
		{"empty source dir", "", "out"},
		{"empty output dir", "man", ""},
		{"same dir", "man/man1", "man/man1"},
		{"same dir after cleaning", "man/man1", "man/./man1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(html, tt.sourceDir, tt.outputDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if got != html {
				t.Errorf("RewriteRelativePaths() = %q, want input unchanged", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths_DocumentTypes - Full Document vs Fragment
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><img src="./logo.png"></body>
</html>`

	got, err := RewriteRelativePaths(html, "man/man1", "site/man1")
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	// html.Render may lowercase DOCTYPE
	if !strings.Contains(strings.ToLower(got), "doctype") {
		t.Error("Full document should preserve DOCTYPE")
	}
	if !strings.Contains(got, "<html") {
		t.Error("Full document should preserve <html>")
	}
	if !strings.Contains(got, `src="../../man/man1/logo.png"`) {
		t.Errorf("Image path should be rewritten, got %q", got)
	}
}

func TestRewriteRelativePaths_Fragment(t *testing.T) {
	t.Parallel()

	html := `<p>Hello</p><img src="./logo.png"><p>World</p>`

	got, err := RewriteRelativePaths(html, "man/man1", "site/man1")
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	if strings.Contains(got, "<html>") {
		t.Error("Fragment should not be wrapped in <html>")
	}
	if !strings.Contains(got, "<p>Hello</p>") {
		t.Error("Fragment should preserve content")
	}
	if !strings.Contains(got, `src="../../man/man1/logo.png"`) {
		t.Errorf("Image path should be rewritten, got %q", got)
	}
}

func TestRewriteRelativePaths_PreservesAttributes(t *testing.T) {
	t.Parallel()

	html := `<img src="./logo.png" alt="Logo" class="logo" width="100">`

	got, err := RewriteRelativePaths(html, "man/man1", "site/man1")
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	for _, want := range []string{`alt="Logo"`, `class="logo"`, `width="100"`} {
		if !strings.Contains(got, want) {
			t.Errorf("attribute %s lost: %q", want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath - Helper Tests
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"./image.png", true},
		{"image.png", true},
		{"../image.png", true},
		{"http://example.com/x.png", false},
		{"https://example.com/x.png", false},
		{"file:///tmp/x.png", false},
		{"data:image/png;base64,abc", false},
		{"mailto:me@example.com", false},
		{"//cdn.example.com/x.png", false},
		{"#section", false},
		{"/abs/x.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestHasClass(t *testing.T) {
	t.Parallel()

	doc, _, err := parseHTML(`<a class="x md2man-reference y">r</a><a class="md2man-references">s</a>`)
	if err != nil {
		t.Fatalf("parseHTML() error = %v", err)
	}

	first := doc.FirstChild
	second := first.NextSibling
	if !hasClass(first, ReferenceClass) {
		t.Error("hasClass(first) = false, want true")
	}
	if hasClass(second, ReferenceClass) {
		t.Error("hasClass(second) = true, want false")
	}
}
