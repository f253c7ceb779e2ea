package sitegen

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/artlife/sitegen/internal/config"
	"github.com/artlife/sitegen/internal/content"
)

// navSlugs fixes the navigation order; pages absent from the control
// file are simply skipped.
var navSlugs = []string{"", "about", "research", "projects", "digest", "blog", "contact"}

// footerLegalSlugs are linked from the footer when present.
var footerLegalSlugs = []string{"privacy", "imprint"}

// assembler renders full HTML documents from loaded site data. All
// methods are read-only, so one assembler is shared across workers.
type assembler struct {
	cfg        *config.Site
	pages      map[string]*content.Page
	links      []content.Link
	posts      []content.Post
	digests    []content.Digest
	renderer   *Renderer
	contentDir string
}

func escape(s string) string {
	return html.EscapeString(s)
}

// pageOutputPath maps a slug to its file in the output tree. Pages
// other than home live in their own directory for clean URLs.
func pageOutputPath(slug string) string {
	if slug == "" {
		return "index.html"
	}
	return slug + "/index.html"
}

// relLink computes the href from the page at currentPath to a target
// file, both given as slash-separated output-relative paths.
func relLink(currentPath, target string) string {
	dir := filepath.Dir(filepath.FromSlash(currentPath))
	rel, err := filepath.Rel(dir, filepath.FromSlash(target))
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// relDirLink is relLink for directory targets; the result carries a
// trailing slash.
func relDirLink(currentPath, targetDir string) string {
	rel := relLink(currentPath, targetDir)
	if rel == "." {
		return "./"
	}
	return strings.TrimSuffix(rel, "/") + "/"
}

func relPageLink(currentPath, slug string) string {
	if slug == "" {
		return relDirLink(currentPath, ".")
	}
	return relDirLink(currentPath, slug)
}

func (a *assembler) resolveImageSrc(raw, currentPath string) string {
	image := strings.TrimSpace(raw)
	if image == "" {
		image = "placeholder-hero.svg"
	}
	if strings.HasPrefix(image, "assets/") {
		return relLink(currentPath, image)
	}
	return relLink(currentPath, "assets/img/"+image)
}

// resolveCTAURL maps a page slug to a relative link; external URLs,
// mailto links, and fragments pass through.
func (a *assembler) resolveCTAURL(raw, currentPath string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "#") {
		return raw
	}
	slug := content.NormalizeSlug(raw)
	if _, ok := a.pages[slug]; ok {
		return relPageLink(currentPath, slug)
	}
	return raw
}

func (a *assembler) renderHead(title, cssHref, extraCSS string) string {
	var b strings.Builder
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"utf-8\" />\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", escape(title))
	fmt.Fprintf(&b, "  <meta name=\"description\" content=\"%s\" />\n", escape(a.cfg.MetaDescription))
	fmt.Fprintf(&b, "  <link rel=\"stylesheet\" href=\"%s\" />\n", escape(cssHref))
	if extraCSS = strings.TrimSpace(extraCSS); extraCSS != "" {
		b.WriteString("  " + extraCSS + "\n")
	}
	b.WriteString("</head>")
	return b.String()
}

func (a *assembler) renderHeader(currentSlug, currentPath string) string {
	var nav strings.Builder
	for _, slug := range navSlugs {
		page, ok := a.pages[slug]
		if !ok {
			continue
		}
		active := ""
		if slug == currentSlug {
			active = "active"
		}
		fmt.Fprintf(&nav, "<a class=%q href=%q>%s</a>",
			active, escape(relPageLink(currentPath, slug)), escape(page.Title))
	}

	ctaHref := "#"
	if _, ok := a.pages[a.cfg.NavCTATarget]; ok {
		ctaHref = relPageLink(currentPath, a.cfg.NavCTATarget)
	}

	var b strings.Builder
	b.WriteString("<header class=\"site-header\">\n")
	fmt.Fprintf(&b, "  <a class=\"logo\" href=%q>%s</a>\n",
		escape(relPageLink(currentPath, "")), escape(a.cfg.LogoText))
	fmt.Fprintf(&b, "  <nav class=\"nav\">%s</nav>\n", nav.String())
	fmt.Fprintf(&b, "  <a class=\"cta\" href=%q>%s</a>\n", escape(ctaHref), escape(a.cfg.NavCTAText))
	b.WriteString("</header>")
	return b.String()
}

func (a *assembler) renderFooter(currentPath string) string {
	var legal strings.Builder
	for _, slug := range footerLegalSlugs {
		page, ok := a.pages[slug]
		if !ok {
			continue
		}
		fmt.Fprintf(&legal, "<a href=%q>%s</a>",
			escape(relPageLink(currentPath, slug)), escape(page.Title))
	}

	var b strings.Builder
	b.WriteString("<footer class=\"site-footer\">\n  <div class=\"footer-grid\">\n    <div>\n")
	fmt.Fprintf(&b, "      <p class=\"footer-title\">%s</p>\n", escape(a.cfg.SiteName))
	fmt.Fprintf(&b, "      <p>%s</p>\n", escape(a.cfg.Address))
	fmt.Fprintf(&b, "      <p>%s</p>\n", escape(a.cfg.FooterNote))
	fmt.Fprintf(&b, "      <p><a href=%q>%s</a></p>\n", escape(a.cfg.Domain), escape(a.cfg.Domain))
	b.WriteString("    </div>\n    <div>\n      <p class=\"footer-title\">Digital presence</p>\n      ")
	b.WriteString(a.renderLinkTags())
	b.WriteString("\n    </div>\n    <div>\n      <p class=\"footer-title\">Legal</p>\n")
	fmt.Fprintf(&b, "      <div class=\"footer-links\">%s</div>\n", legal.String())
	b.WriteString("    </div>\n  </div>\n</footer>")
	return b.String()
}

// renderLinkTags renders the external link list as footer tags.
func (a *assembler) renderLinkTags() string {
	if len(a.links) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<div class=\"tag-list\">")
	for _, link := range a.links {
		class := "tag primary"
		if link.Kind == "placeholder" {
			class = "tag"
		}
		fmt.Fprintf(&b, "<a class=%q href=%q rel=\"noopener\">%s</a>",
			class, escape(link.URL), escape(link.Label))
	}
	b.WriteString("</div>")
	return b.String()
}

func (a *assembler) renderNewsletterForm(currentPath string) string {
	endpoint := relLink(currentPath, "subscribe.php")
	if a.cfg.NewsletterMode != "local" && a.cfg.NewsletterProviderURL != "" {
		endpoint = a.cfg.NewsletterProviderURL
	}
	return fmt.Sprintf(`<div class="newsletter" id="newsletter">
  <div>
    <h3>Newsletter</h3>
    <p>Subscribe for institute updates, events, and research highlights.</p>
  </div>
  <form class="newsletter-form" data-newsletter-form action=%q method="post">
    <label class="sr-only" for="newsletter-email">Email</label>
    <input id="newsletter-email" name="email" type="email" placeholder="you@example.org" required />
    <div class="sr-only" aria-hidden="true">
      <label for="newsletter-company">Company</label>
      <input id="newsletter-company" name="company" type="text" tabindex="-1" autocomplete="off" />
    </div>
    <button class="button" type="submit">Subscribe</button>
    <p class="form-status" aria-live="polite"></p>
  </form>
</div>`, escape(endpoint))
}

func (a *assembler) renderSection(sec content.Section, currentPath string) (string, error) {
	switch sec.Kind {
	case "contact_form":
		return a.renderContactForm(sec, currentPath)
	case "digest_list":
		return a.renderDigestList(sec, currentPath)
	}

	body, err := a.renderBlockHTML(sec.SourceMD)
	if err != nil {
		return "", err
	}
	heading := escape(sec.Title)

	cta := ""
	ctaURL := a.resolveCTAURL(sec.CTAURL, currentPath)
	if sec.CTAText != "" && ctaURL != "" {
		cta = fmt.Sprintf("<a class=\"button ghost\" href=%q>%s</a>", escape(ctaURL), escape(sec.CTAText))
	}
	image := fmt.Sprintf("<figure class=\"image-frame\"><img src=%q alt=\"%s image\" /></figure>",
		escape(a.resolveImageSrc(sec.HeroImage, currentPath)), heading)

	class := fmt.Sprintf("content-section width-%s style-%s", sec.Width, sec.StyleVariant)
	if strings.Contains(strings.ToLower(sec.Title), "publications") {
		class += " publications-section"
	}

	return fmt.Sprintf(`<section class=%q id=%q>
  <div class="content-grid">
    <div class="section-body">
      <h2>%s</h2>
      %s
      %s
    </div>
    %s
  </div>
</section>`, class, escape(sec.ID), heading, body, cta, image), nil
}

func (a *assembler) renderContactForm(sec content.Section, currentPath string) (string, error) {
	body, err := a.renderBlockHTML(sec.SourceMD)
	if err != nil {
		return "", err
	}
	id := sec.ID
	if id == "" {
		id = "contact-form"
	}
	heading := sec.Title
	if heading == "" {
		heading = "Contact"
	}
	endpoint := relLink(currentPath, "contact.php")
	return fmt.Sprintf(`<section class="content-section contact-section" id=%q>
  <div class="content-grid">
    <div>
      <h2>%s</h2>
      %s
    </div>
    <div class="contact-card">
      <form class="contact-form" data-contact-form action=%q method="post">
        <div class="contact-field">
          <label for="contact-name">Name</label>
          <input id="contact-name" name="name" type="text" required />
        </div>
        <div class="contact-field">
          <label for="contact-email">Email</label>
          <input id="contact-email" name="email" type="email" required />
        </div>
        <div class="contact-field">
          <label for="contact-message">Message</label>
          <textarea id="contact-message" name="message" rows="5" required></textarea>
        </div>
        <div class="contact-field sr-only" aria-hidden="true">
          <label for="contact-company">Company</label>
          <input id="contact-company" name="company" type="text" tabindex="-1" autocomplete="off" />
        </div>
        <button class="button" type="submit">Send message</button>
        <p class="form-status" aria-live="polite"></p>
      </form>
    </div>
  </div>
</section>`, escape(id), escape(heading), body, escape(endpoint)), nil
}

func (a *assembler) renderDigestList(sec content.Section, currentPath string) (string, error) {
	intro, err := a.renderBlockHTML(sec.SourceMD)
	if err != nil {
		return "", err
	}
	id := sec.ID
	if id == "" {
		id = "digest"
	}
	heading := sec.Title
	if heading == "" {
		heading = "Digest"
	}

	items := a.digests
	if len(items) > 5 {
		items = items[:5]
	}
	listing := "<p>No digests yet. Run the digest command to create the first issue.</p>"
	if len(items) > 0 {
		var cards strings.Builder
		cards.WriteString("<div class=\"digest-grid\">")
		for _, d := range items {
			cards.WriteString(a.renderDigestCard(d, currentPath))
		}
		cards.WriteString("</div>")
		listing = cards.String()
	}

	return fmt.Sprintf(`<section class="content-section digest-section" id=%q>
  <div class="content-grid">
    <div>
      <h2>%s</h2>
      %s
    </div>
    <div>
      %s
    </div>
  </div>
</section>`, escape(id), escape(heading), intro, listing), nil
}

func (a *assembler) renderDigestCard(d content.Digest, currentPath string) string {
	target := relDirLink(currentPath, "digest/"+d.Slug)
	return fmt.Sprintf(`<article class="digest-card">
  <p class="post-date">%s</p>
  <h3><a href=%q>%s</a></h3>
</article>`, escape(d.Date), escape(target), escape(d.Title))
}

// renderHomeOverview links the inner nav pages as cards on the home
// page. Blog and contact already have dedicated entry points.
func (a *assembler) renderHomeOverview(currentPath string) string {
	var b strings.Builder
	b.WriteString("<div class=\"card-grid\">")
	for _, slug := range navSlugs {
		if slug == "" || slug == "blog" || slug == "contact" {
			continue
		}
		page, ok := a.pages[slug]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "<a class=\"card\" href=%q><h3>%s</h3><p>Placeholder summary for %s.</p></a>",
			escape(relPageLink(currentPath, slug)), escape(page.Title), escape(page.Title))
	}
	b.WriteString("</div>")
	return b.String()
}

func (a *assembler) renderBlogIndex(currentPath string) string {
	if len(a.posts) == 0 {
		return "<p>No posts yet. Add a file to content/blog/ to publish the first update.</p>"
	}
	var b strings.Builder
	b.WriteString("<div class=\"post-grid\">")
	for _, post := range a.posts {
		target := relDirLink(currentPath, "blog/"+post.Slug)
		teaser := firstParagraph(post.Body)
		fmt.Fprintf(&b, `
<article class="post-card">
  <p class="post-date">%s</p>
  <h3><a href=%q>%s</a></h3>
  <p>%s</p>
</article>
`, escape(post.Date), escape(target), escape(post.Title), escape(teaser))
	}
	b.WriteString("</div>")
	return b.String()
}

func (a *assembler) renderDigestIndex(currentPath string) string {
	if len(a.digests) == 0 {
		return "<p>No digests yet. Add feeds and run the digest command to publish the first issue.</p>"
	}
	var b strings.Builder
	b.WriteString("<div class=\"digest-grid\">")
	for _, d := range a.digests {
		b.WriteString(a.renderDigestCard(d, currentPath))
	}
	b.WriteString("</div>")
	return b.String()
}

func firstParagraph(text string) string {
	for _, chunk := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if chunk = strings.TrimSpace(chunk); chunk != "" {
			return chunk
		}
	}
	return ""
}

func (a *assembler) renderBlockHTML(sourceMD string) (string, error) {
	text, err := content.ReadBlock(a.contentDir, sourceMD)
	if err != nil {
		return "", err
	}
	// A .bib source is first formatted as a markdown bibliography,
	// then rendered like any other block.
	if strings.HasSuffix(sourceMD, ".bib") {
		text = FormatBibliography(ParseBibTeX(text))
	}
	return a.renderer.Render(text), nil
}

// bodyAttrs exposes the newsletter configuration to the page script.
func (a *assembler) bodyAttrs() string {
	return fmt.Sprintf("data-newsletter-mode=%q data-newsletter-url=%q",
		escape(a.cfg.NewsletterMode), escape(a.cfg.NewsletterProviderURL))
}

// renderDocument wraps assembled main content in the shared shell.
func (a *assembler) renderDocument(title, currentSlug, currentPath, mainHTML string) string {
	cssHref := relLink(currentPath, "assets/css/style.css")
	jsHref := relLink(currentPath, "assets/js/main.js")
	extraCSS := ""
	if a.renderer.highlight != nil {
		extraCSS = fmt.Sprintf("<link rel=\"stylesheet\" href=%q />",
			escape(relLink(currentPath, "assets/css/chroma.css")))
	}
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
%s
<body %s>
  <div class="page-shell">
    %s
    <main>
      %s
    </main>
    %s
  </div>
  <script src=%q></script>
</body>
</html>
`, a.renderHead(title, cssHref, extraCSS), a.bodyAttrs(),
		a.renderHeader(currentSlug, currentPath), mainHTML,
		a.renderFooter(currentPath), escape(jsHref))
}

// renderPage assembles one control-file page.
func (a *assembler) renderPage(slug string, showDigestHome bool) (string, error) {
	page := a.pages[slug]
	if page == nil {
		return "", fmt.Errorf("%w: %q", ErrNoPages, slug)
	}
	currentPath := pageOutputPath(slug)

	sections := page.Sections
	if slug == "" && !showDigestHome {
		filtered := make([]content.Section, 0, len(sections))
		for _, sec := range sections {
			if sec.Kind != "digest_list" {
				filtered = append(filtered, sec)
			}
		}
		sections = filtered
	}

	var hero content.Section
	heroIdx := -1
	for i, sec := range sections {
		if sec.Kind == "hero" {
			hero, heroIdx = sec, i
			break
		}
	}
	if heroIdx < 0 && len(sections) > 0 {
		hero, heroIdx = sections[0], 0
	}

	heroHeading := hero.Title
	if heroHeading == "" {
		heroHeading = page.Title
	}
	heroBody, err := a.renderBlockHTML(hero.SourceMD)
	if err != nil {
		return "", err
	}
	heroCTA := ""
	if hero.CTAText != "" {
		if ctaURL := a.resolveCTAURL(hero.CTAURL, currentPath); ctaURL != "" {
			heroCTA = fmt.Sprintf("<a class=\"button\" href=%q>%s</a>", escape(ctaURL), escape(hero.CTAText))
		}
	}
	heroImageSrc := a.resolveImageSrc(hero.HeroImage, currentPath)

	var sectionsHTML strings.Builder
	for i, sec := range sections {
		if i == heroIdx {
			continue
		}
		rendered, err := a.renderSection(sec, currentPath)
		if err != nil {
			return "", err
		}
		sectionsHTML.WriteString(rendered)
	}

	var extras []string
	if slug == "blog" {
		extras = append(extras, a.renderBlogIndex(currentPath))
	}
	if slug == "digest" {
		extras = append(extras, a.renderDigestIndex(currentPath))
	}
	if slug == "" || slug == "contact" || slug == "digest" {
		extras = append(extras, a.renderNewsletterForm(currentPath))
	}
	if slug == "contact" {
		extras = append(extras, a.renderLinkTags())
	}
	pageBody := ""
	if inner := strings.TrimSpace(strings.Join(extras, "")); inner != "" {
		pageBody = fmt.Sprintf(`
      <section class="page-body">
        <div class="content-block reveal">
          %s
        </div>
      </section>`, inner)
	}

	overview := ""
	if slug == "" {
		overview = a.renderHomeOverview(currentPath)
	}

	main := fmt.Sprintf(`<section class="hero">
        <div class="hero-orbit"></div>
        <div class="hero-inner">
          <div>
            <p class="eyebrow">%s</p>
            <h1>%s</h1>
            <p class="subtitle">%s</p>
            %s
            <div class="hero-actions">%s</div>
          </div>
          <div class="hero-art">
            <figure class="image-frame"><img src=%q alt="%s image" /></figure>
            <h3>Dynamic systems, grounded experiments</h3>
            <p>%s</p>
          </div>
        </div>
      </section>
      %s
      %s
      %s`,
		escape(a.cfg.SiteName), escape(heroHeading), escape(a.cfg.SiteTagline),
		heroBody, heroCTA, escape(heroImageSrc), escape(heroHeading),
		escape(a.cfg.ContactBlurb), overview, sectionsHTML.String(), pageBody)

	return a.renderDocument(page.Title, slug, currentPath, main), nil
}

// renderPostPage assembles one blog post page; the returned path is
// relative to the output directory.
func (a *assembler) renderPostPage(post content.Post) (path, doc string) {
	currentPath := "blog/" + post.Slug + "/index.html"
	backLink := relPageLink(currentPath, "blog")
	main := fmt.Sprintf(`<section class="page-hero">
        <div class="page-hero-inner">
          <p class="eyebrow">Institute Blog</p>
          <h1>%s</h1>
          <p class="post-date">%s</p>
        </div>
      </section>
      <section class="page-body">
        <div class="content-block">
          %s
          <a class="button ghost" href=%q>Back to blog</a>
        </div>
      </section>`,
		escape(post.Title), escape(post.Date), a.renderer.Render(post.Body), escape(backLink))
	return currentPath, a.renderDocument(post.Title, "blog", currentPath, main)
}

// renderDigestPage assembles one digest issue page.
func (a *assembler) renderDigestPage(d content.Digest) (path, doc string, err error) {
	currentPath := "digest/" + d.Slug + "/index.html"
	body, err := a.renderBlockHTML(d.SourceMD)
	if err != nil {
		return "", "", err
	}
	backLink := relPageLink(currentPath, "digest")
	main := fmt.Sprintf(`<section class="page-hero">
        <div class="page-hero-inner">
          <p class="eyebrow">Research Digest</p>
          <h1>%s</h1>
          <p class="post-date">%s</p>
        </div>
      </section>
      <section class="page-body">
        <div class="content-block">
          %s
          <a class="button ghost" href=%q>Back to digest</a>
        </div>
      </section>`,
		escape(d.Title), escape(d.Date), body, escape(backLink))
	return currentPath, a.renderDocument(d.Title, "digest", currentPath, main), nil
}
