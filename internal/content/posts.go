package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/artlife/sitegen/internal/yamlutil"
)

// Post is one blog post, metadata resolved and body still markdown.
type Post struct {
	Title string
	Date  string // YYYY-MM-DD
	Slug  string
	Body  string
}

type postFrontMatter struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Slug  string `yaml:"slug"`
}

// ParsePost reads a single post file. YAML front matter takes
// precedence; otherwise the legacy header format is used, where
// "Title:" and "Date:" lines precede a blank line (or a "Body:"
// marker) and everything after is the body. Missing dates fall back
// to the file's modification time.
func ParsePost(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("reading post %s: %w", path, err)
	}
	raw := string(data)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	post := Post{Slug: Slugify(stem)}

	var meta postFrontMatter
	body, err := yamlutil.UnmarshalFrontMatter(raw, &meta)
	switch {
	case err == nil:
		post.Title = meta.Title
		post.Date = meta.Date
		if meta.Slug != "" {
			post.Slug = Slugify(meta.Slug)
		}
		post.Body = body
	case errors.Is(err, yamlutil.ErrNoFrontMatter):
		post.Title, post.Date, post.Body = parseLegacyPost(raw)
	default:
		return Post{}, fmt.Errorf("parsing post %s: %w", path, err)
	}

	if post.Title == "" {
		post.Title = stem
	}
	if post.Date == "" {
		post.Date = fileDate(path)
	}
	return post, nil
}

func parseLegacyPost(raw string) (title, date, body string) {
	var bodyLines []string
	inBody := false
	for _, line := range strings.Split(raw, "\n") {
		if !inBody && strings.TrimSpace(line) == "" {
			inBody = true
			continue
		}
		if !inBody {
			switch {
			case strings.HasPrefix(line, "Title:"):
				title = strings.TrimSpace(line[len("Title:"):])
			case strings.HasPrefix(line, "Date:"):
				date = strings.TrimSpace(line[len("Date:"):])
			case strings.HasPrefix(line, "Body:"):
				inBody = true
			}
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	return title, date, strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

func fileDate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format("2006-01-02")
}

// ReadPosts collects blog posts from blogDir. Rows of posts.csv come
// first, with CSV metadata overriding what the source file declares;
// any *.txt file not already claimed by a CSV row is picked up
// afterwards. Posts are returned newest first and de-duplicated by
// slug. A missing directory yields an empty list.
func ReadPosts(blogDir string) ([]Post, error) {
	entries, err := os.ReadDir(blogDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading blog dir: %w", err)
	}

	var posts []Post
	seen := make(map[string]bool)

	csvPath := filepath.Join(blogDir, "posts.csv")
	if file, err := os.Open(csvPath); err == nil {
		rows, err := readCSVMap(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing posts.csv: %w", err)
		}
		for _, row := range rows {
			if row["source_md"] == "" {
				continue
			}
			post, err := ParsePost(filepath.Join(blogDir, row["source_md"]))
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, err
			}
			if row["title"] != "" {
				post.Title = row["title"]
			}
			if row["date"] != "" {
				post.Date = row["date"]
			}
			if row["slug"] != "" {
				post.Slug = Slugify(row["slug"])
			}
			posts = append(posts, post)
			seen[post.Slug] = true
		}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		post, err := ParsePost(filepath.Join(blogDir, name))
		if err != nil {
			return nil, err
		}
		if seen[post.Slug] {
			continue
		}
		posts = append(posts, post)
		seen[post.Slug] = true
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts, nil
}

// Digest describes one digest issue listed in index.json.
type Digest struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	SourceMD string `json:"source_md"`
}

type digestIndex struct {
	Digests []Digest `json:"digests"`
}

// ReadDigests loads digestsDir/index.json. Entries missing a date,
// slug, or source_md are skipped; a missing title defaults to
// "Digest <date>". A missing directory or index yields an empty list.
func ReadDigests(digestsDir string) ([]Digest, error) {
	data, err := os.ReadFile(filepath.Join(digestsDir, "index.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading digest index: %w", err)
	}
	var index digestIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing digest index: %w", err)
	}

	var digests []Digest
	for _, d := range index.Digests {
		d.Date = strings.TrimSpace(d.Date)
		d.Title = strings.TrimSpace(d.Title)
		d.Slug = strings.TrimSpace(d.Slug)
		d.SourceMD = strings.TrimSpace(d.SourceMD)
		if d.Date == "" || d.Slug == "" || d.SourceMD == "" {
			continue
		}
		if d.Title == "" {
			d.Title = "Digest " + d.Date
		}
		digests = append(digests, d)
	}
	return digests, nil
}

// WriteDigestIndex writes the digest descriptors back to
// digestsDir/index.json, pretty-printed for hand editing.
func WriteDigestIndex(digestsDir string, digests []Digest) error {
	data, err := json.MarshalIndent(digestIndex{Digests: digests}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding digest index: %w", err)
	}
	path := filepath.Join(digestsDir, "index.json")
	if err := os.MkdirAll(digestsDir, 0o755); err != nil {
		return fmt.Errorf("creating digest dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing digest index: %w", err)
	}
	return nil
}
