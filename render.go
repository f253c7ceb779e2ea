package sitegen

import (
	"fmt"
	"strings"
)

// CodeHighlighter converts fenced code with a language tag to HTML.
// Returning ok=false falls back to the plain escaped rendering.
type CodeHighlighter func(lang, source string) (html string, ok bool)

// Renderer converts markdown text to HTML fragments. The zero value
// is usable; options customize code block handling.
type Renderer struct {
	highlight CodeHighlighter
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithCodeHighlighter installs a highlighter for fenced code blocks
// that carry a language tag. Blocks without a tag always use the
// plain escaped path.
func WithCodeHighlighter(h CodeHighlighter) RendererOption {
	return func(r *Renderer) { r.highlight = h }
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRenderer backs the package-level RenderMarkdown.
var defaultRenderer = NewRenderer()

// RenderMarkdown converts markdown text to an HTML fragment using the
// default renderer (no syntax highlighting).
func RenderMarkdown(text string) string {
	return defaultRenderer.Render(text)
}

// Render segments text and renders every block, joined by newlines.
// The output is a fragment: no document wrapper is added.
func (r *Renderer) Render(text string) string {
	return r.RenderBlocks(SegmentBlocks(text))
}

// RenderBlocks renders an already-segmented block sequence.
func (r *Renderer) RenderBlocks(blocks []Block) string {
	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		rendered = append(rendered, r.renderBlock(b))
	}
	return strings.Join(rendered, "\n")
}

func (r *Renderer) renderBlock(b Block) string {
	switch b.Kind {
	case BlockHeading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, renderInline(b.Text), b.Level)
	case BlockList:
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, item := range b.Items {
			sb.WriteString("<li>")
			sb.WriteString(renderInline(item))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()
	case BlockQuote:
		return "<blockquote>" + r.RenderBlocks(b.Children) + "</blockquote>"
	case BlockCode:
		return r.renderCode(b)
	case BlockRule:
		return "<hr />"
	default:
		return "<p>" + renderInline(b.Text) + "</p>"
	}
}

// renderCode emits a fenced block. Markdown syntax inside is never
// processed; without a highlighter the content is escaped verbatim.
func (r *Renderer) renderCode(b Block) string {
	source := strings.Join(b.Lines, "\n")
	if b.Lang != "" && r.highlight != nil {
		if html, ok := r.highlight(b.Lang, source); ok {
			return html
		}
	}
	if b.Lang != "" {
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
			escapeHTML(b.Lang), escapeHTML(source))
	}
	return "<pre><code>" + escapeHTML(source) + "</code></pre>"
}
