package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags selects what a build writes.
type outputFlags struct {
	noRoff  bool
	noHTML  bool
	noIndex bool
}

// htmlFlags holds HTML rendering flags.
type htmlFlags struct {
	highlight  string
	standalone bool
	assetPath  string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	workers int
	outputs outputFlags
	html    htmlFlags
}

// renderFlags holds flags for the roff and html commands.
type renderFlags struct {
	highlight string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds output selection flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.noRoff, "no-roff", false, "do not write roff pages")
	fs.BoolVar(&f.noHTML, "no-html", false, "do not write HTML pages")
	fs.BoolVar(&f.noIndex, "no-index", false, "do not write index.html")
}

// addHTMLFlags adds HTML rendering flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for fenced code blocks")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap HTML pages in a full document")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.outputs)
	addHTMLFlags(fs, &f.html)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseRenderFlags parses flags of the roff and html commands.
func parseRenderFlags(name string, args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{}

	if name == "html" {
		fs.StringVar(&f.highlight, "highlight", "", "chroma style for fenced code blocks")
	}

	fs.Usage = func() { printRenderUsage(usage, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
