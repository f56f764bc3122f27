package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2man/internal/config"
)

// testEnv returns an environment writing to buffers and reading stdin.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}
	return env, stdout, stderr
}

// writeFile creates path and its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// readFile returns the content of path, failing the test if it is missing.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

const (
	fooSource  = "# foo 1\n\n## NAME\n\nfoo - frobnicate the bar\n\n## SEE ALSO\n\nbar(1)\n"
	barSource  = "# bar 1\n\n## NAME\n\nbar - cats & dogs\n"
	confSource = "# foo.conf 5\n\n## NAME\n\nfoo.conf - foo settings\n"
)

// writeManTree creates a small man/ tree under dir and returns its path.
func writeManTree(t *testing.T, dir string) string {
	t.Helper()

	root := filepath.Join(dir, "man")
	writeFile(t, filepath.Join(root, "man1", "foo.1.md"), fooSource)
	writeFile(t, filepath.Join(root, "man1", "bar.1.markdown"), barSource)
	writeFile(t, filepath.Join(root, "man5", "foo.conf.5.mkd"), confSource)
	writeFile(t, filepath.Join(root, "man1", "notes.txt"), "not a page")
	return root
}
