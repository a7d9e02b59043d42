// internal/scaffold/scaffold.go
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/config"
	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
	"github.com/itikhon0v/itikhon0v.github.io/internal/render"
	"github.com/itikhon0v/itikhon0v.github.io/internal/slug"
)

// ErrExists is returned instead of overwriting a file.
var ErrExists = errors.New("file already exists")

// CreateNewSite lays out a buildable site in dir: a config, both templates,
// one sample post and the output directories.
func CreateNewSite(dir string, now time.Time) error {
	fmt.Println("Scaffolding new site in:", dir)
	for _, sub := range []string{"posts", "templates", "public/blog"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	sample := render.Render(postArchetype, render.Context{
		"title": "Hello, World",
		"date":  post.FormatDate(now, defaultDateFormat),
		"tags":  "meta",
		"body":  "This is the first post. Edit or delete it, then run `blog` again.",
	})
	files := []struct{ path, content string }{
		{config.DefaultPath, configContent},
		{"templates/post.html", postTemplateContent},
		{"templates/index.html", indexTemplateContent},
		{"posts/hello-world.md", sample},
	}
	for _, f := range files {
		if err := writeNew(filepath.Join(dir, f.path), f.content); err != nil {
			return err
		}
	}
	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", dir)
	fmt.Println("  blog serve")
	return nil
}

// CreateNewPost writes an empty post titled title into the configured input
// directory, dated now in the configured format, and returns its path.
func CreateNewPost(cfg *config.Config, title string, now time.Time) (string, error) {
	if err := cfg.Require("paths.input_dir", "site.date_format"); err != nil {
		return "", err
	}
	name := slug.Make(post.EscapeTitle(strings.TrimSpace(title)))
	if name == "" {
		return "", fmt.Errorf("title %q has no characters usable in a file name", title)
	}

	content := render.Render(postArchetype, render.Context{
		"title": strings.TrimSpace(title),
		"date":  post.FormatDate(now, cfg.Site.DateFormat),
		"tags":  "",
		"body":  "Write something meaningful here.",
	})
	path := filepath.Join(cfg.Paths.InputDir, name+".md")
	if err := os.MkdirAll(cfg.Paths.InputDir, 0755); err != nil {
		return "", err
	}
	if err := writeNew(path, content); err != nil {
		return "", err
	}
	fmt.Println("Created:", path)
	return path, nil
}

func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return f.Close()
}

const defaultDateFormat = "%Y-%m-%d"

// postArchetype is the four-part post layout with the body on line four.
const postArchetype = "{{ TITLE }}\n{{ DATE }}\n{{ TAGS }}\n{{ BODY }}\n"

const configContent = `site:
  title: My Blog
  description: Notes and essays.
  url: https://example.com
  date_format: "%Y-%m-%d"

paths:
  input_dir: posts
  output_dir: public/blog
  post_template: templates/post.html
  index_template: templates/index.html
  index_output: public/index.html
  rss_output: public/rss.xml
`

const postTemplateContent = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{ TITLE }}</title>
  <meta name="description" content="{{ DESCRIPTION }}">
</head>
<body>
  <header><a href="../index.html">home</a></header>
  <main>
    <h1>{{ TITLE }}</h1>
    <p><small>{{ DATE }} &bullet; {{ TAGS }}</small></p>
    {{ CONTENT }}
  </main>
  <footer>&copy; {{ YEAR }}</footer>
</body>
</html>
`

const indexTemplateContent = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>My Blog</title>
  <link rel="alternate" type="application/rss+xml" href="rss.xml">
</head>
<body>
  <main>
{{ BLOG }}
  </main>
  <footer>
    &copy; {{ YEAR }} &bullet; built {{ BUILD_DATE }} in {{ BUILD_TIME }}
  </footer>
</body>
</html>
`
