package sitegen

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/artlife/sitegen/internal/config"
	"github.com/artlife/sitegen/internal/content"
	"github.com/artlife/sitegen/internal/fileutil"
	"github.com/artlife/sitegen/internal/highlight"
)

// Builder assembles a complete static site from a content tree.
type Builder struct {
	contentDir string
	outputDir  string
	configPath string
	workers    int
	renderer   *Renderer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithContentDir sets the content tree root (default "content").
func WithContentDir(dir string) BuilderOption {
	return func(b *Builder) { b.contentDir = dir }
}

// WithOutputDir sets the output tree root (default "site").
func WithOutputDir(dir string) BuilderOption {
	return func(b *Builder) { b.outputDir = dir }
}

// WithConfigFile overrides the default site.yaml/site.json lookup
// inside the content directory.
func WithConfigFile(path string) BuilderOption {
	return func(b *Builder) { b.configPath = path }
}

// WithWorkers sets how many pages are written concurrently.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) { b.workers = n }
}

// WithRenderer replaces the default markdown renderer, e.g. to enable
// syntax highlighting.
func WithRenderer(r *Renderer) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.renderer = r
		}
	}
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		contentDir: "content",
		outputDir:  "site",
		renderer:   NewRenderer(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.workers = ResolveWorkers(b.workers)
	return b
}

// BuildStats summarizes one build.
type BuildStats struct {
	Pages   int
	Posts   int
	Digests int
}

// Build reads the content tree, resets the output directory, and
// writes every page, post, digest, asset, and form endpoint.
func (b *Builder) Build(ctx context.Context) (BuildStats, error) {
	var stats BuildStats

	var cfg *config.Site
	var err error
	if b.configPath != "" {
		cfg, err = config.LoadFile(b.configPath)
	} else {
		cfg, err = config.Load(b.contentDir)
	}
	if err != nil {
		return stats, err
	}
	pages, err := content.ReadControl(filepath.Join(b.contentDir, "control.csv"))
	if err != nil {
		return stats, err
	}
	if len(pages) == 0 {
		return stats, ErrNoPages
	}
	links, err := content.ReadLinks(filepath.Join(b.contentDir, "links.csv"))
	if err != nil {
		return stats, err
	}
	posts, err := content.ReadPosts(filepath.Join(b.contentDir, "blog"))
	if err != nil {
		return stats, err
	}
	digests, err := content.ReadDigests(filepath.Join(b.contentDir, "digests"))
	if err != nil {
		return stats, err
	}

	asm := &assembler{
		cfg:        cfg,
		pages:      pages,
		links:      links,
		posts:      posts,
		digests:    digests,
		renderer:   b.renderer,
		contentDir: b.contentDir,
	}

	if err := fileutil.ResetDir(b.outputDir); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	if err := b.writeAssets(cfg); err != nil {
		return stats, err
	}
	if err := b.writeFormEndpoints(); err != nil {
		return stats, err
	}

	var tasks []func() error
	for slug := range pages {
		slug := slug
		tasks = append(tasks, func() error {
			doc, err := asm.renderPage(slug, cfg.ShowDigestHome)
			if err != nil {
				return err
			}
			return b.writePage(pageOutputPath(slug), doc)
		})
	}
	for _, post := range posts {
		post := post
		tasks = append(tasks, func() error {
			path, doc := asm.renderPostPage(post)
			return b.writePage(path, doc)
		})
	}
	for _, digest := range digests {
		digest := digest
		tasks = append(tasks, func() error {
			path, doc, err := asm.renderDigestPage(digest)
			if err != nil {
				return err
			}
			return b.writePage(path, doc)
		})
	}

	if err := runParallel(ctx, b.workers, tasks); err != nil {
		return stats, err
	}

	stats.Pages = len(pages)
	stats.Posts = len(posts)
	stats.Digests = len(digests)
	return stats, nil
}

func (b *Builder) writePage(relPath, doc string) error {
	if err := fileutil.WriteFile(filepath.Join(b.outputDir, filepath.FromSlash(relPath)), doc); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return nil
}

func (b *Builder) writeAsset(relPath, body string) error {
	if err := fileutil.WriteFile(filepath.Join(b.outputDir, filepath.FromSlash(relPath)), body); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteAsset, err)
	}
	return nil
}

// writeAssets emits the stylesheet, page script, placeholder images,
// and any user media and static assets from the content tree.
func (b *Builder) writeAssets(cfg *config.Site) error {
	if err := b.writeAsset("assets/css/style.css", BuildCSS(cfg.Theme)); err != nil {
		return err
	}
	if err := b.writeAsset("assets/js/main.js", BuildJS()); err != nil {
		return err
	}
	if b.renderer.highlight != nil {
		css, err := highlight.StyleCSS()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteAsset, err)
		}
		if err := b.writeAsset("assets/css/chroma.css", css); err != nil {
			return err
		}
	}
	for name, label := range placeholderImages {
		if err := b.writeAsset("assets/img/"+name, BuildPlaceholderSVG(label)); err != nil {
			return err
		}
	}
	if err := b.copyTree(filepath.Join(b.contentDir, "media"), filepath.Join(b.outputDir, "assets", "img"), true); err != nil {
		return err
	}
	// Static overrides never replace generated files.
	return b.copyTree(filepath.Join(b.contentDir, "assets"), filepath.Join(b.outputDir, "assets"), false)
}

func (b *Builder) writeFormEndpoints() error {
	if err := b.writeAsset("subscribe.php", subscribePHP); err != nil {
		return err
	}
	if err := b.writeAsset("contact.php", contactPHP); err != nil {
		return err
	}
	return b.writeAsset("data/.htaccess", dataHtaccess)
}

// copyTree copies every regular file under src into dst, preserving
// relative paths. A missing src is fine.
func (b *Builder) copyTree(src, dst string, overwrite bool) error {
	if !fileutil.DirExists(src) {
		return nil
	}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if !overwrite && fileutil.FileExists(target) {
			return nil
		}
		return copyFile(path, target)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteAsset, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
