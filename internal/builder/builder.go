// internal/builder/builder.go
package builder

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/config"
	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
	"github.com/itikhon0v/itikhon0v.github.io/internal/render"
)

// BuildOptions are the command-line switches that affect a build.
type BuildOptions struct {
	Sanitize     bool
	RewriteLinks bool
	// Logger receives progress lines. Nil discards them.
	Logger *log.Logger
}

// Builder runs the stages of one build against a loaded config.
type Builder struct {
	cfg *config.Config
	md  *post.Markdown
	log *log.Logger

	// Now is the clock used for YEAR, BUILD_DATE, BUILD_TIME and the feed's
	// lastBuildDate. Tests replace it.
	Now func() time.Time
}

// New returns a Builder for cfg.
func New(cfg *config.Config, opts BuildOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{
		cfg: cfg,
		md: post.NewMarkdown(post.MarkdownOptions{
			Sanitize:     opts.Sanitize,
			RewriteLinks: opts.RewriteLinks,
		}),
		log: logger,
		Now: time.Now,
	}
}

// Build renders every post, then the index, then the feed. start is the
// moment the run began and is used for the index's BUILD_TIME.
func (b *Builder) Build(start time.Time) (Result, error) {
	posts, err := b.BuildPosts()
	if err != nil {
		return Result{}, err
	}
	if err := b.BuildIndex(posts, start); err != nil {
		return Result{}, err
	}
	if err := b.BuildFeed(posts); err != nil {
		return Result{}, err
	}
	return Result{Posts: len(posts)}, nil
}

// BuildPosts parses every *.md file directly inside the input directory and
// writes <output_dir>/<slug>.html for each. The parsed posts are returned in
// file name order. The first failure aborts the build.
func (b *Builder) BuildPosts() ([]post.Post, error) {
	if err := b.cfg.Require("paths.input_dir", "paths.output_dir", "paths.post_template", "site.date_format"); err != nil {
		return nil, err
	}
	paths, dateFormat := b.cfg.Paths, b.cfg.Site.DateFormat

	if err := os.MkdirAll(paths.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tmpl, err := readTemplate(paths.PostTemplate)
	if err != nil {
		return nil, err
	}

	sources, err := postFiles(paths.InputDir)
	if err != nil {
		return nil, err
	}

	year := strconv.Itoa(b.Now().UTC().Year())
	posts := make([]post.Post, 0, len(sources))
	slugs := make(slugSet, len(sources))
	for _, src := range sources {
		p, err := post.Parse(src, dateFormat, b.md)
		if err != nil {
			return nil, err
		}
		if err := slugs.claim(p); err != nil {
			return nil, err
		}

		page := render.Render(tmpl, postContext(p, dateFormat, year))
		outPath := filepath.Join(paths.OutputDir, p.Slug+".html")
		if err := writeFile(outPath, page); err != nil {
			return nil, fmt.Errorf("failed to write page for %s: %w", src, err)
		}
		b.log.Printf("Wrote %s", outPath)
		posts = append(posts, p)
	}
	return posts, nil
}

func postContext(p post.Post, dateFormat, year string) render.Context {
	return render.Context{
		"title":   p.Title,
		"date":    post.FormatDate(p.Date, dateFormat),
		"tags":    p.JoinedTags(),
		"content": p.Content,
		"year":    year,
		// There is no summary field; the title stands in.
		"description": p.Title,
	}
}

// postFiles lists the non-hidden *.md files in dir, sorted by name.
func postFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}

// writeFile creates or truncates path and writes content. Parent
// directories are not created.
func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
