// Package highlight wraps chroma to provide optional syntax
// highlighting for fenced code blocks.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const defaultStyle = "github"

// formatter emits class-based markup so colors live in a stylesheet
// instead of inline styles.
var formatter = html.New(
	html.WithClasses(true),
	html.WithPreWrapper(preWrapper{}),
)

type preWrapper struct{}

func (preWrapper) Start(code bool, styleAttr string) string {
	if code {
		return "<pre class=\"chroma\"><code>"
	}
	return "<pre class=\"chroma\">"
}

func (preWrapper) End(code bool) string {
	if code {
		return "</code></pre>"
	}
	return "</pre>"
}

// Code highlights source for the given language tag. It reports false
// when the language is unknown, letting the caller fall back to plain
// escaped output.
func Code(lang, source string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := formatter.Format(&b, style(), iterator); err != nil {
		return "", false
	}
	return b.String(), true
}

// StyleCSS returns the stylesheet backing the class-based markup.
func StyleCSS() (string, error) {
	var b strings.Builder
	if err := formatter.WriteCSS(&b, style()); err != nil {
		return "", err
	}
	return b.String(), nil
}

func style() *chroma.Style {
	if s := styles.Get(defaultStyle); s != nil {
		return s
	}
	return styles.Fallback
}
