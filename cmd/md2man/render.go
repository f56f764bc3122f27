package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	md2man "github.com/alnah/go-md2man"
	"github.com/alnah/go-md2man/internal/hints"
)

// Sentinel errors for single-page rendering.
var (
	ErrReadSource  = errors.New("failed to read markdown source")
	ErrTooManyArgs = errors.New("too many arguments")
	ErrUsage       = errors.New("invalid usage")
)

// engineFactory creates an engine for one output format.
type engineFactory func(opts ...md2man.Option) (*md2man.Engine, error)

// runRender renders one page from a file or stdin to stdout.
func runRender(newEngine engineFactory, name string, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(name, args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: %s takes at most one file", ErrTooManyArgs, name)
	}

	source, err := readSource(positional, env.Stdin)
	if err != nil {
		return err
	}

	var opts []md2man.Option
	if flags.highlight != "" {
		opts = append(opts, md2man.WithHighlighting(flags.highlight))
	}
	engine, err := newEngine(opts...)
	if err != nil {
		return withHighlightHint(err)
	}

	out, err := engine.Render(source)
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Stdout, out)
	return err
}

// readSource reads the named file, or stdin when args is empty or "-".
func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadSource, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	return string(data), nil
}

// usageError marks flag parsing failures as usage errors.
// flag.ErrHelp passes through so -h exits successfully.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// withHighlightHint appends the list of known styles to an unknown-style error.
func withHighlightHint(err error) error {
	if errors.Is(err, md2man.ErrHighlightStyle) {
		return fmt.Errorf("%w%s", err, hints.ForHighlightStyle(md2man.HighlightStyles()))
	}
	return err
}
