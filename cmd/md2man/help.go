package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2man <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  roff       Render a manual page to roff")
	fmt.Fprintln(w, "  html       Render a manual page to an HTML fragment")
	fmt.Fprintln(w, "  build      Render a man/ tree to roff and HTML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2man help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the roff and html commands.
func printRenderUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: md2man %s [flags] [file]\n", name)
	fmt.Fprintln(w)
	if name == "roff" {
		fmt.Fprintln(w, "Render a Markdown manual page to roff on stdout.")
	} else {
		fmt.Fprintln(w, "Render a Markdown manual page to an HTML fragment on stdout.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file    Markdown file (stdin when omitted or \"-\")")
	if name == "html" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprintln(w, "      --highlight <style>   Chroma style for fenced code blocks")
	}
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2man build [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every <dir>/man*/*.{md,markdown,mkd} to roff and HTML.")
	fmt.Fprintln(w, "man1/foo.1.md becomes man1/foo.1 and man1/foo.1.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Manual source tree (optional if config has input.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: dir)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --no-roff             Do not write roff pages")
	fmt.Fprintln(w, "      --no-html             Do not write HTML pages")
	fmt.Fprintln(w, "      --no-index            Do not write index.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML:")
	fmt.Fprintln(w, "      --highlight <style>   Chroma style for fenced code blocks")
	fmt.Fprintln(w, "      --standalone          Wrap pages in a full HTML document")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2MAN_CONFIG, MD2MAN_INPUT_DIR, MD2MAN_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MD2MAN_HIGHLIGHT, MD2MAN_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "roff", "html":
		printRenderUsage(env.Stdout, args[0])
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2man version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2man help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
