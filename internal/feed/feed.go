// Package feed fetches RSS and Atom feeds and assembles them into
// digest issues under the content tree.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/artlife/sitegen/internal/content"
)

// Sentinel errors for feed operations.
var (
	ErrNoFeeds        = errors.New("no feed URLs configured")
	ErrFeedTooLarge   = errors.New("feed exceeds size limit")
	ErrUnsafeXML      = errors.New("feed contains DOCTYPE or ENTITY declarations")
	ErrAlreadyCurrent = errors.New("digest already exists for today")
)

const (
	// MaxFeedBytes caps a single feed document.
	MaxFeedBytes = 1_000_000
	// ItemsPerFeed limits how many items one feed contributes.
	ItemsPerFeed = 3

	userAgent = "ALI Digest Bot/1.0"
)

// Item is one feed entry worth listing in a digest.
type Item struct {
	Title string
	Link  string
	Date  string
}

// Fetcher retrieves and parses feeds.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	perFeed  int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default 10s-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithItemsPerFeed overrides the per-feed item limit.
func WithItemsPerFeed(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.perFeed = n
		}
	}
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		maxBytes: MaxFeedBytes,
		perFeed:  ItemsPerFeed,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ReadFeedList parses a feeds.txt file: one URL or file path per
// line, blank lines and #-comments skipped. A missing file yields an
// empty list.
func ReadFeedList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading feed list: %w", err)
	}
	var feeds []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feeds = append(feeds, line)
	}
	return feeds, nil
}

// Fetch retrieves one feed, from HTTP(S) or a local file path, and
// returns its leading items.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]Item, error) {
	var data []byte
	var err error
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err = f.fetchHTTP(ctx, ref)
	} else {
		data, err = os.ReadFile(strings.TrimPrefix(ref, "file://"))
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	if err := validateXML(data); err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	items, err := f.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ref, err)
	}
	return items, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
}

func validateXML(data []byte) error {
	if int64(len(data)) > MaxFeedBytes {
		return ErrFeedTooLarge
	}
	if bytes.Contains(data, []byte("<!DOCTYPE")) || bytes.Contains(data, []byte("<!ENTITY")) {
		return ErrUnsafeXML
	}
	return nil
}

// Parse extracts items from an RSS 2.0 or Atom document, keeping at
// most the per-feed limit. Unrecognized documents yield no items.
func (f *Fetcher) Parse(data []byte) ([]Item, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, node := range xmlquery.Find(doc, "//channel/item") {
		if len(items) >= f.perFeed {
			break
		}
		items = append(items, Item{
			Title: childText(node, "title"),
			Link:  rssLink(node),
			Date:  firstChildText(node, "pubDate", "date"),
		})
	}
	if len(items) > 0 {
		return items, nil
	}

	for _, node := range xmlquery.Find(doc, "//entry") {
		if len(items) >= f.perFeed {
			break
		}
		items = append(items, Item{
			Title: childText(node, "title"),
			Link:  atomLink(node),
			Date:  firstChildText(node, "updated", "published"),
		})
	}
	return items, nil
}

func childText(node *xmlquery.Node, name string) string {
	if child := xmlquery.FindOne(node, name); child != nil {
		return strings.TrimSpace(child.InnerText())
	}
	return ""
}

func firstChildText(node *xmlquery.Node, names ...string) string {
	for _, name := range names {
		if text := childText(node, name); text != "" {
			return text
		}
	}
	return ""
}

func rssLink(node *xmlquery.Node) string {
	if child := xmlquery.FindOne(node, "link"); child != nil {
		if href := child.SelectAttr("href"); href != "" {
			return strings.TrimSpace(href)
		}
		return strings.TrimSpace(child.InnerText())
	}
	return ""
}

// atomLink prefers the alternate link, falling back to the first link
// with an href.
func atomLink(node *xmlquery.Node) string {
	var fallback string
	for _, link := range xmlquery.Find(node, "link") {
		href := strings.TrimSpace(link.SelectAttr("href"))
		if href == "" {
			continue
		}
		rel := link.SelectAttr("rel")
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}

// BuildDigest renders a digest issue as markdown.
func BuildDigest(items []Item, issueNumber int, date string) (title, markdown string) {
	title = fmt.Sprintf("ALI Digest Issue #%d", issueNumber)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s*\n\n## Highlights\n\n", title, date)
	for _, item := range items {
		label := item.Title
		if label == "" {
			label = "Untitled"
		}
		if item.Link == "" {
			fmt.Fprintf(&b, "- %s\n", label)
			continue
		}
		if host := linkHost(item.Link); host != "" {
			fmt.Fprintf(&b, "- [%s](%s) — %s\n", label, item.Link, host)
		} else {
			fmt.Fprintf(&b, "- [%s](%s)\n", label, item.Link)
		}
	}
	return title, b.String()
}

func linkHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}

// Update fetches every feed listed in content/feeds/feeds.txt and
// writes a new digest issue plus an updated index.json, unless an
// issue for today already exists (ErrAlreadyCurrent). Issue numbers
// continue from the index length. The written markdown path is
// returned.
func (f *Fetcher) Update(ctx context.Context, contentDir string, now time.Time) (string, error) {
	feeds, err := ReadFeedList(filepath.Join(contentDir, "feeds", "feeds.txt"))
	if err != nil {
		return "", err
	}
	if len(feeds) == 0 {
		return "", ErrNoFeeds
	}

	var collected []Item
	for _, ref := range feeds {
		items, err := f.Fetch(ctx, ref)
		if err != nil {
			return "", err
		}
		collected = append(collected, items...)
	}

	digestsDir := filepath.Join(contentDir, "digests")
	index, err := content.ReadDigests(digestsDir)
	if err != nil {
		return "", err
	}
	today := now.UTC().Format("2006-01-02")
	for _, d := range index {
		if d.Date == today {
			return "", ErrAlreadyCurrent
		}
	}

	title, markdown := BuildDigest(collected, len(index)+1, today)
	path := filepath.Join(digestsDir, today+".md")
	if err := os.MkdirAll(digestsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating digest dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing digest: %w", err)
	}

	updated := append([]content.Digest{{
		Date:     today,
		Title:    title,
		Slug:     today,
		SourceMD: "digests/" + today + ".md",
	}}, index...)
	if err := content.WriteDigestIndex(digestsDir, updated); err != nil {
		return "", err
	}
	return path, nil
}
