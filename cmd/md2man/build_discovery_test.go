package main

import (
	"errors"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverPages - man*/ source discovery
// ---------------------------------------------------------------------------

func TestDiscoverPages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeManTree(t, dir)
	writeFile(t, filepath.Join(root, "other", "x.1.md"), "# x 1\n")
	writeFile(t, filepath.Join(root, "manifest"), "not a section")
	writeFile(t, filepath.Join(root, "man1", ".md"), "no page name")

	tests := []struct {
		name      string
		outputDir string
		wantOut   string
	}{
		{"next to sources", "", root},
		{"separate output", filepath.Join(dir, "site"), filepath.Join(dir, "site")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages, err := discoverPages(root, tt.outputDir)
			if err != nil {
				t.Fatalf("discoverPages() error = %v", err)
			}

			want := []PageToBuild{
				{
					InputPath: filepath.Join(root, "man1", "bar.1.markdown"),
					Section:   "man1",
					Name:      "bar.1",
					RoffPath:  filepath.Join(tt.wantOut, "man1", "bar.1"),
					HTMLPath:  filepath.Join(tt.wantOut, "man1", "bar.1.html"),
				},
				{
					InputPath: filepath.Join(root, "man1", "foo.1.md"),
					Section:   "man1",
					Name:      "foo.1",
					RoffPath:  filepath.Join(tt.wantOut, "man1", "foo.1"),
					HTMLPath:  filepath.Join(tt.wantOut, "man1", "foo.1.html"),
				},
				{
					InputPath: filepath.Join(root, "man5", "foo.conf.5.mkd"),
					Section:   "man5",
					Name:      "foo.conf.5",
					RoffPath:  filepath.Join(tt.wantOut, "man5", "foo.conf.5"),
					HTMLPath:  filepath.Join(tt.wantOut, "man5", "foo.conf.5.html"),
				},
			}

			if len(pages) != len(want) {
				t.Fatalf("discoverPages() = %+v, want %d pages", pages, len(want))
			}
			for i := range want {
				if pages[i] != want[i] {
					t.Errorf("pages[%d] = %+v, want %+v", i, pages[i], want[i])
				}
			}
		})
	}
}

func TestDiscoverPages_Empty(t *testing.T) {
	t.Parallel()

	pages, err := discoverPages(t.TempDir(), "")
	if err != nil {
		t.Fatalf("discoverPages() error = %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("discoverPages() = %+v, want none", pages)
	}
}

func TestIsSourceFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"foo.1.md", true},
		{"foo.1.markdown", true},
		{"foo.1.mkd", true},
		{"foo.1.MD", false},
		{"foo.1", false},
		{".md", false},
		{"README", false},
	}

	for _, tt := range tests {
		if got := isSourceFile(tt.name); got != tt.want {
			t.Errorf("isSourceFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{8, false},
		{32, false},
		{33, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}
