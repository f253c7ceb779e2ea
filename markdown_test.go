package sitegen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegmentBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "empty input yields no blocks",
			input: "",
			want:  nil,
		},
		{
			name:  "blank lines only yield no blocks",
			input: "\n\n   \n",
			want:  nil,
		},
		{
			name:  "single paragraph",
			input: "hello world",
			want:  []Block{{Kind: BlockParagraph, Text: "hello world"}},
		},
		{
			name:  "paragraph lines joined with single spaces",
			input: "line one\nline two",
			want:  []Block{{Kind: BlockParagraph, Text: "line one line two"}},
		},
		{
			name:  "blank line splits paragraphs",
			input: "first\n\nsecond",
			want: []Block{
				{Kind: BlockParagraph, Text: "first"},
				{Kind: BlockParagraph, Text: "second"},
			},
		},
		{
			name:  "heading level is hash count plus one",
			input: "# Title",
			want:  []Block{{Kind: BlockHeading, Level: 2, Text: "Title"}},
		},
		{
			name:  "six hashes clamp at level six",
			input: "###### Deep",
			want:  []Block{{Kind: BlockHeading, Level: 6, Text: "Deep"}},
		},
		{
			name:  "rule from three hyphens",
			input: "---",
			want:  []Block{{Kind: BlockRule}},
		},
		{
			name:  "rule from many hyphens",
			input: "--------",
			want:  []Block{{Kind: BlockRule}},
		},
		{
			name:  "two hyphens stay a paragraph",
			input: "--",
			want:  []Block{{Kind: BlockParagraph, Text: "--"}},
		},
		{
			name:  "list with both markers",
			input: "- a\n* b",
			want:  []Block{{Kind: BlockList, Items: []string{"a", "b"}}},
		},
		{
			name:  "list flushes preceding paragraph",
			input: "intro\n- a",
			want: []Block{
				{Kind: BlockParagraph, Text: "intro"},
				{Kind: BlockList, Items: []string{"a"}},
			},
		},
		{
			name:  "code block keeps lines verbatim",
			input: "```\n# not a heading\n  indented\n```",
			want:  []Block{{Kind: BlockCode, Lines: []string{"# not a heading", "  indented"}}},
		},
		{
			name:  "code fence captures language tag",
			input: "```go\nx := 1\n```",
			want:  []Block{{Kind: BlockCode, Lang: "go", Lines: []string{"x := 1"}}},
		},
		{
			name:  "unterminated fence flushes at end of input",
			input: "```\ndangling",
			want:  []Block{{Kind: BlockCode, Lines: []string{"dangling"}}},
		},
		{
			name:  "quote segments its content recursively",
			input: "> # Inner\n> text",
			want: []Block{{
				Kind: BlockQuote,
				Children: []Block{
					{Kind: BlockHeading, Level: 2, Text: "Inner"},
					{Kind: BlockParagraph, Text: "text"},
				},
			}},
		},
		{
			name:  "nested quote",
			input: "> > deep",
			want: []Block{{
				Kind: BlockQuote,
				Children: []Block{{
					Kind:     BlockQuote,
					Children: []Block{{Kind: BlockParagraph, Text: "deep"}},
				}},
			}},
		},
		{
			name:  "crlf input is normalized",
			input: "a\r\n\r\nb",
			want: []Block{
				{Kind: BlockParagraph, Text: "a"},
				{Kind: BlockParagraph, Text: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentBlocks(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SegmentBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentBlocksParagraphCount(t *testing.T) {
	// For pure-paragraph input the number of blocks equals the number
	// of non-empty chunks between blank lines.
	input := "one\n\ntwo\n\n\nthree\n\n"
	got := SegmentBlocks(input)
	if len(got) != 3 {
		t.Fatalf("SegmentBlocks() produced %d blocks, want 3", len(got))
	}
	for _, b := range got {
		if b.Kind != BlockParagraph {
			t.Errorf("block kind = %v, want BlockParagraph", b.Kind)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text renders one escaped paragraph",
			input: "a < b & c",
			want:  "<p>a &lt; b &amp; c</p>",
		},
		{
			name:  "heading renders one level deeper",
			input: "# Title",
			want:  "<h2>Title</h2>",
		},
		{
			name:  "deep heading clamps at h6",
			input: "###### Deep",
			want:  "<h6>Deep</h6>",
		},
		{
			name:  "heading text goes through inline rendering",
			input: "## A *b*",
			want:  "<h3>A <em>b</em></h3>",
		},
		{
			name:  "list",
			input: "- a\n- b",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "rule",
			input: "---",
			want:  "<hr />",
		},
		{
			name:  "code content is escaped and left unprocessed",
			input: "```\n**x** <tag>\n```",
			want:  "<pre><code>**x** &lt;tag&gt;</code></pre>",
		},
		{
			name:  "quote renders nested blocks",
			input: "> # Inner\n> text",
			want:  "<blockquote><h2>Inner</h2>\n<p>text</p></blockquote>",
		},
		{
			name:  "blocks joined by newline",
			input: "first\n\nsecond",
			want:  "<p>first</p>\n<p>second</p>",
		},
		{
			name:  "link inside paragraph",
			input: "See [x](y) now.",
			want:  `<p>See <a href="y">x</a> now.</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderMarkdown(tt.input)
			if got != tt.want {
				t.Errorf("RenderMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCodeLanguageClass(t *testing.T) {
	got := RenderMarkdown("```go\nx := 1\n```")
	want := `<pre><code class="language-go">x := 1</code></pre>`
	if got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
}

func TestRenderWithCodeHighlighter(t *testing.T) {
	r := NewRenderer(WithCodeHighlighter(func(lang, source string) (string, bool) {
		if lang != "go" {
			return "", false
		}
		return "<pre class=\"hl\">" + source + "</pre>", true
	}))

	got := r.Render("```go\ncode\n```")
	if want := `<pre class="hl">code</pre>`; got != want {
		t.Errorf("highlighted block = %q, want %q", got, want)
	}

	// Highlighter declines: fall back to the escaped path.
	got = r.Render("```python\ncode\n```")
	if want := `<pre><code class="language-python">code</code></pre>`; got != want {
		t.Errorf("fallback block = %q, want %q", got, want)
	}

	// No language tag: highlighter is never consulted.
	got = r.Render("```\ncode\n```")
	if want := "<pre><code>code</code></pre>"; got != want {
		t.Errorf("untagged block = %q, want %q", got, want)
	}
}

func TestRenderMarkdownConcurrent(t *testing.T) {
	// Render calls share no mutable state; hammer the default
	// renderer from several goroutines under -race.
	const workers = 8
	input := strings.Repeat("# H\n\npara with [l](u) and `c`\n\n- item\n\n", 20)
	want := RenderMarkdown(input)

	done := make(chan string, workers)
	for i := 0; i < workers; i++ {
		go func() { done <- RenderMarkdown(input) }()
	}
	for i := 0; i < workers; i++ {
		if got := <-done; got != want {
			t.Fatal("concurrent render produced different output")
		}
	}
}
