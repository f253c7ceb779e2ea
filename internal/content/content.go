// Package content reads the structured text inputs the site is built
// from: the control and links CSV files, blog posts, digest indexes,
// and markdown block files.
package content

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for content operations.
var (
	ErrMissingControl   = errors.New("missing control file")
	ErrMissingBlock     = errors.New("missing block file")
	ErrBlockOutsideTree = errors.New("block path outside content directory")
)

var (
	slugStripPattern = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugSpacePattern = regexp.MustCompile(`\s+`)
)

// Section is one row of the control file describing a page section.
type Section struct {
	ID           string
	Kind         string // "section", "hero", "contact_form", "digest_list", ...
	Title        string
	SourceMD     string
	CTAText      string
	CTAURL       string
	HeroImage    string
	Width        string // "full" (default) or "split"
	StyleVariant string // "glass" (default), "terminal", "paper"
	Order        int
}

// Page groups the sections that render into one output page.
type Page struct {
	Slug     string
	Title    string
	Order    int
	Sections []Section
}

// Statuses that drop a control row entirely.
var inactiveStatuses = map[string]bool{
	"draft":    true,
	"hidden":   true,
	"archived": true,
	"inactive": true,
}

// ReadControl parses control.csv into pages keyed by slug. Rows with
// an inactive status or active != true are dropped; "page"/"meta"
// rows set the page title and order; all other rows append sections,
// sorted by their order column.
func ReadControl(path string) (map[string]*Page, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingControl, path)
		}
		return nil, fmt.Errorf("opening control file: %w", err)
	}
	defer file.Close()

	rows, err := readCSVMap(file)
	if err != nil {
		return nil, fmt.Errorf("parsing control file: %w", err)
	}

	pages := make(map[string]*Page)
	for _, row := range rows {
		status := strings.ToLower(row["status"])
		active := strings.ToLower(valueOr(row, "active", "true"))
		if inactiveStatuses[status] || active != "true" {
			continue
		}

		slug := NormalizeSlug(row["page_slug"])
		order := atoiOr(row["order"], 0)
		page, ok := pages[slug]
		if !ok {
			page = &Page{Slug: slug, Title: defaultPageTitle(slug)}
			pages[slug] = page
		}

		kind := strings.ToLower(valueOr(row, "kind", "section"))
		if kind == "page" || kind == "meta" {
			if row["title"] != "" {
				page.Title = row["title"]
			}
			page.Order = order
			continue
		}

		id := row["section"]
		if id == "" {
			id = row["id"]
		}
		page.Sections = append(page.Sections, Section{
			ID:           id,
			Kind:         kind,
			Title:        row["title"],
			SourceMD:     row["source_md"],
			CTAText:      row["cta_text"],
			CTAURL:       row["cta_url"],
			HeroImage:    row["hero_image"],
			Width:        strings.ToLower(valueOr(row, "width", "full")),
			StyleVariant: strings.ToLower(valueOr(row, "style_variant", "glass")),
			Order:        order,
		})
	}

	for _, page := range pages {
		sort.SliceStable(page.Sections, func(i, j int) bool {
			return page.Sections[i].Order < page.Sections[j].Order
		})
	}
	return pages, nil
}

// Link is one row of links.csv.
type Link struct {
	Label string
	URL   string
	Kind  string
	Order int
}

// ReadLinks parses links.csv, dropping rows without a label and
// sorting by order. A missing file yields an empty list.
func ReadLinks(path string) ([]Link, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening links file: %w", err)
	}
	defer file.Close()

	rows, err := readCSVMap(file)
	if err != nil {
		return nil, fmt.Errorf("parsing links file: %w", err)
	}

	var links []Link
	for _, row := range rows {
		if row["label"] == "" {
			continue
		}
		links = append(links, Link{
			Label: row["label"],
			URL:   row["url"],
			Kind:  row["kind"],
			Order: atoiOr(row["order"], 0),
		})
	}
	sort.SliceStable(links, func(i, j int) bool { return links[i].Order < links[j].Order })
	return links, nil
}

// NormalizeSlug maps the home aliases to the empty slug and strips
// surrounding slashes.
func NormalizeSlug(raw string) string {
	slug := strings.TrimSpace(raw)
	switch slug {
	case "", "/", "index", "home":
		return ""
	}
	return strings.Trim(slug, "/")
}

// Slugify lowercases text and replaces whitespace runs with hyphens,
// dropping anything that is not alphanumeric, space, or hyphen.
func Slugify(text string) string {
	cleaned := slugStripPattern.ReplaceAllString(text, "")
	cleaned = slugSpacePattern.ReplaceAllString(strings.TrimSpace(cleaned), "-")
	if cleaned == "" {
		return "post"
	}
	return strings.ToLower(cleaned)
}

// ResolveBlockPath resolves a source_md reference against the content
// tree: bare names live in blocks/, relative paths under the content
// dir, absolute paths are taken as-is. Paths that escape the content
// directory are rejected.
func ResolveBlockPath(contentDir, sourceMD string) (string, error) {
	if sourceMD == "" {
		return "", nil
	}
	var candidate string
	switch {
	case filepath.IsAbs(sourceMD):
		candidate = sourceMD
	case strings.ContainsAny(sourceMD, `/\`):
		candidate = filepath.Join(contentDir, sourceMD)
	default:
		candidate = filepath.Join(contentDir, "blocks", sourceMD)
	}

	absContent, err := filepath.Abs(contentDir)
	if err != nil {
		return "", fmt.Errorf("resolving content dir: %w", err)
	}
	absCandidate, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving block path: %w", err)
	}
	rel, err := filepath.Rel(absContent, absCandidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrBlockOutsideTree, sourceMD)
	}
	return absCandidate, nil
}

// ReadBlock reads a block file referenced from the control file.
// An empty reference reads as empty text.
func ReadBlock(contentDir, sourceMD string) (string, error) {
	path, err := ResolveBlockPath(contentDir, sourceMD)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingBlock, path)
		}
		return "", fmt.Errorf("reading block file: %w", err)
	}
	return string(data), nil
}

// readCSVMap reads a header-keyed CSV into one map per row, with all
// values trimmed. Short rows are tolerated.
func readCSVMap(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func valueOr(row map[string]string, key, fallback string) string {
	if v := row[key]; v != "" {
		return v
	}
	return fallback
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func defaultPageTitle(slug string) string {
	if slug == "" {
		return "Home"
	}
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '/' })
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
