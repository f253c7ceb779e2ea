package sitegen

import "testing"

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "metacharacters escaped",
			input: `a & b < c > d "e"`,
			want:  "a &amp; b &lt; c &gt; d &quot;e&quot;",
		},
		{
			name:  "bold",
			input: "**bold**",
			want:  "<strong>bold</strong>",
		},
		{
			name:  "italic",
			input: "*italic*",
			want:  "<em>italic</em>",
		},
		{
			name:  "bold and italic side by side",
			input: "**b** and *i*",
			want:  "<strong>b</strong> and <em>i</em>",
		},
		{
			name:  "code span content is escaped but otherwise frozen",
			input: "run `a < *b*` now",
			want:  "run <code>a &lt; *b*</code> now",
		},
		{
			name:  "link",
			input: "[label](url)",
			want:  `<a href="url">label</a>`,
		},
		{
			name:  "link href keeps escaping",
			input: "[x](y?a=1&b=2)",
			want:  `<a href="y?a=1&amp;b=2">x</a>`,
		},
		{
			name:  "link label gets emphasis only",
			input: "[*em* label](url)",
			want:  `<a href="url"><em>em</em> label</a>`,
		},
		{
			name:  "emphasis outside links still applies",
			input: "*see* [x](y) **now**",
			want:  `<em>see</em> <a href="y">x</a> <strong>now</strong>`,
		},
		{
			name:  "non-greedy link matching",
			input: "[a](1) and [b](2)",
			want:  `<a href="1">a</a> and <a href="2">b</a>`,
		},
		{
			name:  "no emphasis inside code span",
			input: "`**not bold**`",
			want:  "<code>**not bold**</code>",
		},
		{
			name:  "unmatched asterisk passes through",
			input: "*dangling",
			want:  "*dangling",
		},
		{
			name:  "unmatched backtick passes through",
			input: "`dangling",
			want:  "`dangling",
		},
		{
			name:  "unclosed link passes through",
			input: "[label](url",
			want:  "[label](url",
		},
		{
			name:  "bare bracket passes through",
			input: "a [b] c",
			want:  "a [b] c",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderInline(tt.input)
			if got != tt.want {
				t.Errorf("renderInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	got := escapeHTML(`<script>alert("x & y")</script>`)
	want := "&lt;script&gt;alert(&quot;x &amp; y&quot;)&lt;/script&gt;"
	if got != want {
		t.Errorf("escapeHTML() = %q, want %q", got, want)
	}
}
