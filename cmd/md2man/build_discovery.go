package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2man/internal/config"
)

// ErrInvalidWorkerCount is returned for a worker count out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// sourceExtensions are the Markdown extensions picked up by a build.
var sourceExtensions = []string{".md", ".markdown", ".mkd"}

// PageToBuild is one manual page source and its output paths.
type PageToBuild struct {
	InputPath string
	Section   string // Section directory, e.g. "man1"
	Name      string // Page file name without extension, e.g. "foo.1"
	RoffPath  string
	HTMLPath  string
}

// discoverPages finds <inputDir>/man*/*.{md,markdown,mkd}, sorted by
// section directory then file name.
func discoverPages(inputDir, outputDir string) ([]PageToBuild, error) {
	if outputDir == "" {
		outputDir = inputDir
	}

	sectionDirs, err := filepath.Glob(filepath.Join(inputDir, "man*"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inputDir, err)
	}

	var pages []PageToBuild
	for _, dir := range sectionDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		if !info.IsDir() {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}

		section := filepath.Base(dir)
		for _, entry := range entries {
			if entry.IsDir() || !isSourceFile(entry.Name()) {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			pages = append(pages, PageToBuild{
				InputPath: filepath.Join(dir, entry.Name()),
				Section:   section,
				Name:      name,
				RoffPath:  filepath.Join(outputDir, section, name),
				HTMLPath:  filepath.Join(outputDir, section, name+".html"),
			})
		}
	}

	return pages, nil
}

// isSourceFile reports whether name has a Markdown extension and a
// non-empty page name.
func isSourceFile(name string) bool {
	ext := filepath.Ext(name)
	if ext == name {
		return false
	}
	for _, want := range sourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
