package sitegen

import (
	"regexp"
	"strings"
)

// Precompiled inline span patterns. All of them operate on text that
// has already been HTML-escaped, so literal source text can never
// reappear as unescaped markup.
var (
	codeSpanPattern = regexp.MustCompile("`([^`]+)`")
	linkPattern     = regexp.MustCompile(`\[([^\]]+?)\]\(([^)]+?)\)`)
	boldPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern   = regexp.MustCompile(`\*([^*]+)\*`)
)

// htmlEscaper escapes the four HTML metacharacters. The replacement
// set is fixed by the dialect; html.EscapeString would additionally
// escape single quotes and change rendered output.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeHTML escapes &, <, > and " in text.
func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// renderInline converts one block's raw text to an HTML fragment.
// Processing order is strict: escape, then code spans, then links,
// then emphasis on whatever text remains outside those spans.
// Unmatched delimiters pass through literally.
func renderInline(text string) string {
	escaped := escapeHTML(text)

	var out strings.Builder
	last := 0
	for _, m := range codeSpanPattern.FindAllStringSubmatchIndex(escaped, -1) {
		out.WriteString(renderLinks(escaped[last:m[0]]))
		// Code span content is frozen: no emphasis or links inside.
		out.WriteString("<code>")
		out.WriteString(escaped[m[2]:m[3]])
		out.WriteString("</code>")
		last = m[1]
	}
	out.WriteString(renderLinks(escaped[last:]))
	return out.String()
}

// renderLinks converts [label](href) spans, handing the surrounding
// text and the label to the emphasis pass. The label deliberately
// skips link rendering, so links never nest; the href is used as-is
// (already escaped).
func renderLinks(text string) string {
	var out strings.Builder
	last := 0
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		out.WriteString(renderEmphasis(text[last:m[0]]))
		out.WriteString(`<a href="`)
		out.WriteString(text[m[4]:m[5]])
		out.WriteString(`">`)
		out.WriteString(renderEmphasis(text[m[2]:m[3]]))
		out.WriteString("</a>")
		last = m[1]
	}
	out.WriteString(renderEmphasis(text[last:]))
	return out.String()
}

// renderEmphasis applies **bold** then *italic*, leftmost-first,
// non-overlapping, non-nested.
func renderEmphasis(text string) string {
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	return italicPattern.ReplaceAllString(text, "<em>$1</em>")
}
