package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the static site from the content tree")
	fmt.Fprintln(w, "  bib        Convert a BibTeX file to a markdown bibliography")
	fmt.Fprintln(w, "  digest     Fetch feeds and write a new digest issue")
	fmt.Fprintln(w, "  verify     Scan the built site for forbidden link targets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sitegen help <command>' for details on a specific command.")
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the static site from the content tree.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --content <dir>   Content tree root (default \"content\")")
	fmt.Fprintln(w, "  -o, --out <dir>       Output directory (default \"site\")")
	fmt.Fprintln(w, "  -w, --workers <n>     Parallel page writers (0 = auto)")
	fmt.Fprintln(w, "      --config <path>   Site config file (default <content>/site.yaml)")
	fmt.Fprintln(w, "      --no-highlight    Disable syntax highlighting for code blocks")
	fmt.Fprintln(w, "  -q, --quiet           Suppress the build summary")
	fmt.Fprintln(w, "  -v, --verbose         Print progress to stderr")
}

func printBibUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen bib <input.bib> [output.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a BibTeX file to a categorized markdown bibliography.")
	fmt.Fprintln(w, "Without an output path the markdown goes to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --strict    Report skipped input as diagnostics and fail on any")
}

func printDigestUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen digest [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fetch the feeds in content/feeds/feeds.txt and write a new digest")
	fmt.Fprintln(w, "issue plus an updated index. Skips if today's issue exists.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --content <dir>   Content tree root (default \"content\")")
}

func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitegen verify [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan built HTML for href/src values pointing at forbidden targets.")
	fmt.Fprintln(w, "Exits non-zero when any are found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --site <dir>    Built site directory (default \"site\")")
}

// printCommandHelp dispatches 'sitegen help <command>'.
func printCommandHelp(w io.Writer, command string) bool {
	switch command {
	case "build":
		printBuildUsage(w)
	case "bib":
		printBibUsage(w)
	case "digest":
		printDigestUsage(w)
	case "verify":
		printVerifyUsage(w)
	default:
		return false
	}
	return true
}
