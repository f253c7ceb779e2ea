package highlight

import (
	"strings"
	"testing"
)

func TestCode(t *testing.T) {
	out, ok := Code("go", "package main")
	if !ok {
		t.Fatal("Code() did not recognize go")
	}
	if !strings.Contains(out, "<pre class=\"chroma\"><code>") {
		t.Errorf("missing class-based pre wrapper:\n%s", out)
	}
	if !strings.Contains(out, "package") {
		t.Errorf("source text missing from output:\n%s", out)
	}
	if strings.Contains(out, "style=") {
		t.Errorf("inline styles present despite class mode:\n%s", out)
	}
}

func TestCodeUnknownLanguage(t *testing.T) {
	if _, ok := Code("not-a-language-xyz", "x"); ok {
		t.Error("Code() accepted an unknown language")
	}
	if _, ok := Code("", "x"); ok {
		t.Error("Code() accepted an empty language")
	}
}

func TestStyleCSS(t *testing.T) {
	css, err := StyleCSS()
	if err != nil {
		t.Fatalf("StyleCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet missing chroma selectors:\n%.200s", css)
	}
}
