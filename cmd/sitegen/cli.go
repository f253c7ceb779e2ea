package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	sitegen "github.com/artlife/sitegen"
	"github.com/artlife/sitegen/internal/feed"
	"github.com/artlife/sitegen/internal/highlight"
)

// run dispatches the subcommand and returns the process exit code.
func run(args []string, out, errW io.Writer) int {
	if len(args) == 0 {
		printUsage(errW)
		return ExitUsage
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:], out, errW)
	case "bib":
		return runBib(args[1:], out, errW)
	case "digest":
		return runDigest(args[1:], out, errW)
	case "verify":
		return runVerify(args[1:], out, errW)
	case "version", "--version":
		fmt.Fprintf(out, "sitegen %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		if len(args) > 1 {
			if !printCommandHelp(out, args[1]) {
				fmt.Fprintf(errW, "unknown command %q\n", args[1])
				printUsage(errW)
				return ExitUsage
			}
			return ExitSuccess
		}
		printUsage(out)
		return ExitSuccess
	default:
		fmt.Fprintf(errW, "unknown command %q\n", args[0])
		printUsage(errW)
		return ExitUsage
	}
}

func runBuild(args []string, out, errW io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(errW)
	contentDir := fs.StringP("content", "c", "content", "content tree root")
	outputDir := fs.StringP("out", "o", "site", "output directory")
	workers := fs.IntP("workers", "w", 0, "parallel page writers (0 = auto)")
	configPath := fs.String("config", "", "site config file (default <content>/site.yaml)")
	noHighlight := fs.Bool("no-highlight", false, "disable syntax highlighting")
	quiet := fs.BoolP("quiet", "q", false, "suppress the build summary")
	verbose := fs.BoolP("verbose", "v", false, "print progress to stderr")
	if err := fs.Parse(args); err != nil {
		printBuildUsage(errW)
		return ExitUsage
	}

	var rendererOpts []sitegen.RendererOption
	if !*noHighlight {
		rendererOpts = append(rendererOpts, sitegen.WithCodeHighlighter(highlight.Code))
	}

	opts := []sitegen.BuilderOption{
		sitegen.WithContentDir(*contentDir),
		sitegen.WithOutputDir(*outputDir),
		sitegen.WithWorkers(*workers),
		sitegen.WithRenderer(sitegen.NewRenderer(rendererOpts...)),
	}
	if *configPath != "" {
		opts = append(opts, sitegen.WithConfigFile(*configPath))
	}
	builder := sitegen.NewBuilder(opts...)

	if *verbose {
		fmt.Fprintf(errW, "Building %s -> %s\n", *contentDir, *outputDir)
	}
	stats, err := builder.Build(context.Background())
	if err != nil {
		fmt.Fprintln(errW, err)
		return exitCodeFor(err)
	}
	if !*quiet {
		fmt.Fprintf(out, "Built %d pages, %d posts, %d digests into %s\n",
			stats.Pages, stats.Posts, stats.Digests, *outputDir)
	}
	return ExitSuccess
}

func runBib(args []string, out, errW io.Writer) int {
	fs := flag.NewFlagSet("bib", flag.ContinueOnError)
	fs.SetOutput(errW)
	strict := fs.Bool("strict", false, "fail on skipped input")
	if err := fs.Parse(args); err != nil {
		printBibUsage(errW)
		return ExitUsage
	}
	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		printBibUsage(errW)
		return ExitUsage
	}

	data, err := os.ReadFile(rest[0])
	if err != nil {
		fmt.Fprintln(errW, err)
		return exitCodeFor(err)
	}

	var entries []sitegen.Entry
	if *strict {
		var diags []sitegen.Diagnostic
		entries, diags = sitegen.ParseBibTeXStrict(string(data))
		for _, d := range diags {
			fmt.Fprintf(errW, "%s: offset %d: %s\n", rest[0], d.Offset, d.Message)
		}
		if len(diags) > 0 {
			return ExitGeneral
		}
	} else {
		entries = sitegen.ParseBibTeX(string(data))
	}

	markdown := sitegen.FormatBibliography(entries)
	if len(rest) == 2 {
		if err := os.WriteFile(rest[1], []byte(markdown), 0o644); err != nil {
			fmt.Fprintln(errW, err)
			return exitCodeFor(err)
		}
		fmt.Fprintf(out, "Wrote %d entries to %s\n", len(entries), rest[1])
		return ExitSuccess
	}
	fmt.Fprint(out, markdown)
	return ExitSuccess
}

func runDigest(args []string, out, errW io.Writer) int {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(errW)
	contentDir := fs.StringP("content", "c", "content", "content tree root")
	if err := fs.Parse(args); err != nil {
		printDigestUsage(errW)
		return ExitUsage
	}

	fetcher := feed.NewFetcher()
	path, err := fetcher.Update(context.Background(), *contentDir, time.Now())
	if errors.Is(err, feed.ErrAlreadyCurrent) {
		fmt.Fprintln(out, "Digest already exists for today. Skipping.")
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(errW, err)
		return exitCodeFor(err)
	}
	fmt.Fprintf(out, "Wrote digest %s\n", path)
	return ExitSuccess
}

func runVerify(args []string, out, errW io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errW)
	siteDir := fs.StringP("site", "s", "site", "built site directory")
	if err := fs.Parse(args); err != nil {
		printVerifyUsage(errW)
		return ExitUsage
	}

	hits, err := sitegen.VerifyLinks(*siteDir, nil)
	if err != nil {
		fmt.Fprintln(errW, err)
		return exitCodeFor(err)
	}
	if len(hits) > 0 {
		fmt.Fprintln(errW, "Forbidden external targets found:")
		for _, hit := range hits {
			fmt.Fprintf(errW, "  %s: %s (matches %s)\n", hit.File, hit.URL, hit.Matched)
		}
		return ExitGeneral
	}
	fmt.Fprintln(out, "Link verification passed. No forbidden external targets found.")
	return ExitSuccess
}
