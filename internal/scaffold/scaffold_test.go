package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/builder"
	"github.com/itikhon0v/itikhon0v.github.io/internal/config"
	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
)

var now = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

// loadSite loads the scaffolded config with every path made absolute.
func loadSite(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(dir, config.DefaultPath))
	if err != nil {
		t.Fatal(err)
	}
	p := &cfg.Paths
	for _, field := range []*string{&p.InputDir, &p.OutputDir, &p.PostTemplate, &p.IndexTemplate, &p.IndexOutput, &p.RSSOutput} {
		*field = filepath.Join(dir, *field)
	}
	return cfg
}

func TestCreateNewSiteBuilds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	if err := CreateNewSite(dir, now); err != nil {
		t.Fatalf("CreateNewSite: %v", err)
	}

	cfg := loadSite(t, dir)
	res, err := builder.New(cfg, builder.BuildOptions{}).Build(now)
	if err != nil {
		t.Fatalf("Build of scaffolded site: %v", err)
	}
	if res.Posts != 1 {
		t.Errorf("Posts = %d, want 1", res.Posts)
	}
	for _, path := range []string{
		filepath.Join(cfg.Paths.OutputDir, "hello-world.html"),
		cfg.Paths.IndexOutput,
		cfg.Paths.RSSOutput,
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}
}

func TestCreateNewSiteRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := CreateNewSite(dir, now); err != nil {
		t.Fatal(err)
	}
	if err := CreateNewSite(dir, now); !errors.Is(err, ErrExists) {
		t.Errorf("second CreateNewSite = %v, want ErrExists", err)
	}
}

func TestCreateNewPost(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Site:  config.SiteConfig{DateFormat: "%d.%m.%Y"},
		Paths: config.PathsConfig{InputDir: filepath.Join(dir, "posts")},
	}

	path, err := CreateNewPost(cfg, "  Rust & Go: a comparison ", now)
	if err != nil {
		t.Fatalf("CreateNewPost: %v", err)
	}
	if filepath.Base(path) != "rust-amp-go-a-comparison.md" {
		t.Errorf("path = %s", path)
	}

	p, err := post.Parse(path, cfg.Site.DateFormat, nil)
	if err != nil {
		t.Fatalf("generated post does not parse: %v", err)
	}
	if p.Title != "Rust &amp; Go: a comparison" || !p.Date.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected post: %+v", p)
	}
	if filepath.Base(path) != p.Slug+".md" {
		t.Errorf("file name %s does not match slug %s", filepath.Base(path), p.Slug)
	}
	if !strings.Contains(p.Content, "Write something") {
		t.Errorf("content = %q", p.Content)
	}

	if _, err := CreateNewPost(cfg, "Rust & Go: a comparison", now); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate post = %v, want ErrExists", err)
	}
	if _, err := CreateNewPost(cfg, "?!", now); err == nil {
		t.Error("untitled post was created")
	}
}

func TestCreateNewPostMissingKey(t *testing.T) {
	_, err := CreateNewPost(&config.Config{}, "Title", now)
	if !errors.Is(err, config.ErrMissingKey) {
		t.Errorf("got %v, want ErrMissingKey", err)
	}
}
