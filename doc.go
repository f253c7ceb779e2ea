// Package sitegen turns structured text content into a static website.
//
// The package has two halves. The markup engine converts a lightweight
// Markdown dialect into HTML fragments and parses BibTeX bibliographies
// into typed entries:
//
//	html := sitegen.RenderMarkdown("# Title\n\nSome *text*.")
//
//	entries := sitegen.ParseBibTeX(bibSource)
//	doc := sitegen.FormatBibliography(entries) // markdown, re-renderable
//
// The site builder assembles full pages from CSV/YAML content trees,
// writing the output directory from scratch on every run:
//
//	b := sitegen.NewBuilder(
//	    sitegen.WithContentDir("content"),
//	    sitegen.WithOutputDir("site"),
//	)
//	stats, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Markdown dialect
//
// The engine is intentionally not CommonMark. It supports ATX headings
// (rendered one level deeper than written, clamped at h6), unordered
// lists, recursive blockquotes, fenced code blocks, thematic breaks,
// paragraphs, inline code, emphasis, and links. Malformed input never
// fails: it degrades to escaped paragraph text.
//
// # BibTeX
//
// ParseBibTeX is deliberately lossy: malformed fragments are skipped
// character by character so that well-formed entries elsewhere in the
// same file survive hand-editing accidents. ParseBibTeXStrict reports
// the skipped fragments as diagnostics without changing the entry list.
//
// All parse and render calls are pure functions of their input and are
// safe for concurrent use.
package sitegen
