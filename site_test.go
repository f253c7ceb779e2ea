package sitegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeContentFile(t *testing.T, contentDir, name, body string) {
	t.Helper()
	path := filepath.Join(contentDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupContentTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeContentFile(t, dir, "control.csv", `page_slug,order,section,kind,title,source_md,cta_text,cta_url,status,active
home,0,,page,Welcome,,,,live,true
home,1,intro,hero,Open Questions,intro.md,Read more,about,live,true
home,2,digest-home,digest_list,Digest,,,,live,true
about,0,,page,About,,,,live,true
about,1,mission,section,Our Mission,mission.md,,,live,true
contact,0,,page,Contact,,,,live,true
contact,1,form,contact_form,Write to us,,,,live,true
blog,0,,page,Blog,,,,live,true
digest,0,,page,Digest,,,,live,true
`)
	writeContentFile(t, dir, "links.csv", "label,url,kind,order\nGitHub,https://github.com/x,social,1\n")
	writeContentFile(t, dir, "site.yaml", `site_name: Test Institute
site_tagline: Somewhere
meta_description: Test site
`)
	writeContentFile(t, dir, filepath.Join("blocks", "intro.md"), "Intro paragraph with `code`.\n")
	writeContentFile(t, dir, filepath.Join("blocks", "mission.md"), "# Mission\n\n- first\n- second\n")
	writeContentFile(t, dir, filepath.Join("blog", "first.txt"), "Title: First Post\nDate: 2026-01-10\n\nPost body.\n")
	writeContentFile(t, dir, filepath.Join("digests", "2026-01-15.md"), "# Digest Issue\n\n- [Item](https://example.org)\n")
	writeContentFile(t, dir, filepath.Join("digests", "index.json"),
		`{"digests": [{"date": "2026-01-15", "title": "Issue 1", "slug": "2026-01-15", "source_md": "digests/2026-01-15.md"}]}`)
	writeContentFile(t, dir, filepath.Join("media", "team.jpg"), "jpegdata")
	return dir
}

func readOutput(t *testing.T, outDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	contentDir := setupContentTree(t)
	outDir := filepath.Join(t.TempDir(), "site")

	b := NewBuilder(WithContentDir(contentDir), WithOutputDir(outDir), WithWorkers(2))
	stats, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats.Pages != 5 || stats.Posts != 1 || stats.Digests != 1 {
		t.Errorf("stats = %+v", stats)
	}

	home := readOutput(t, outDir, "index.html")
	if !strings.Contains(home, "<title>Welcome</title>") {
		t.Errorf("home title missing:\n%.400s", home)
	}
	if !strings.Contains(home, "<h1>Open Questions</h1>") {
		t.Errorf("hero heading missing")
	}
	if !strings.Contains(home, "Intro paragraph with <code>code</code>.") {
		t.Errorf("hero block markdown missing")
	}
	// show_digest_home defaults to false, so the digest_list section
	// is dropped from the home page.
	if strings.Contains(home, "digest-section") {
		t.Errorf("digest list rendered on home despite default")
	}
	if !strings.Contains(home, "Test Institute") {
		t.Errorf("configured site name missing")
	}

	about := readOutput(t, outDir, "about/index.html")
	if !strings.Contains(about, "<h2>Our Mission</h2>") {
		t.Errorf("about section missing")
	}
	if !strings.Contains(about, "<li>first</li>") {
		t.Errorf("mission list not rendered")
	}

	contact := readOutput(t, outDir, "contact/index.html")
	if !strings.Contains(contact, "data-contact-form") {
		t.Errorf("contact form missing")
	}
	if !strings.Contains(contact, "data-newsletter-form") {
		t.Errorf("newsletter form missing on contact page")
	}

	post := readOutput(t, outDir, "blog/first/index.html")
	if !strings.Contains(post, "<h1>First Post</h1>") {
		t.Errorf("post page missing title")
	}

	digest := readOutput(t, outDir, "digest/2026-01-15/index.html")
	if !strings.Contains(digest, "<h2>Digest Issue</h2>") {
		t.Errorf("digest body not rendered")
	}

	// Assets and endpoints.
	for _, rel := range []string{
		"assets/css/style.css",
		"assets/js/main.js",
		"assets/img/placeholder-hero.svg",
		"assets/img/team.jpg",
		"subscribe.php",
		"contact.php",
		"data/.htaccess",
	} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing output file %s: %v", rel, err)
		}
	}

	// The built tree passes link verification.
	hits, err := VerifyLinks(outDir, nil)
	if err != nil {
		t.Fatalf("VerifyLinks() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("unexpected forbidden links: %+v", hits)
	}
}

func TestBuildShowDigestHome(t *testing.T) {
	contentDir := setupContentTree(t)
	writeContentFile(t, contentDir, "site.yaml", "site_name: Test\nshow_digest_home: true\n")
	outDir := filepath.Join(t.TempDir(), "site")

	if _, err := NewBuilder(WithContentDir(contentDir), WithOutputDir(outDir)).Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	home := readOutput(t, outDir, "index.html")
	if !strings.Contains(home, "digest-section") {
		t.Errorf("digest list missing from home with show_digest_home: true")
	}
}

func TestBuildMissingControl(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "site")
	_, err := NewBuilder(WithContentDir(dir), WithOutputDir(outDir)).Build(context.Background())
	if err == nil {
		t.Fatal("Build() succeeded without a control file")
	}
}

func TestBuildHighlightedRendererEmitsChromaCSS(t *testing.T) {
	contentDir := setupContentTree(t)
	writeContentFile(t, contentDir, filepath.Join("blocks", "mission.md"),
		"```go\npackage main\n```\n")
	outDir := filepath.Join(t.TempDir(), "site")

	highlighter := func(lang, source string) (string, bool) {
		return "<pre class=\"chroma\"><code>" + source + "</code></pre>", true
	}
	b := NewBuilder(
		WithContentDir(contentDir),
		WithOutputDir(outDir),
		WithRenderer(NewRenderer(WithCodeHighlighter(highlighter))),
	)
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "assets", "css", "chroma.css")); err != nil {
		t.Errorf("chroma.css not emitted: %v", err)
	}
	about := readOutput(t, outDir, "about/index.html")
	if !strings.Contains(about, `<pre class="chroma">`) {
		t.Errorf("highlighter output missing:\n%s", about)
	}
	if !strings.Contains(about, "assets/css/chroma.css") {
		t.Errorf("chroma stylesheet not linked")
	}
}

func TestBuildCanceledContext(t *testing.T) {
	contentDir := setupContentTree(t)
	outDir := filepath.Join(t.TempDir(), "site")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder(WithContentDir(contentDir), WithOutputDir(outDir)).Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}
