package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `site:
  title: Notes
  description: Things I wrote down
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

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.Title != "Notes" || cfg.Site.DateFormat != "%Y-%m-%d" {
		t.Errorf("unexpected site config: %+v", cfg.Site)
	}
	if cfg.Paths.RSSOutput != "public/rss.xml" {
		t.Errorf("RSSOutput = %q", cfg.Paths.RSSOutput)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if err := cfg.Require("paths.input_dir", "site.url"); err != nil {
		t.Errorf("Require: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, doc := range []string{"", "   \n", "~", "null", "{}", "[]", `""`} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrConfig) {
			t.Errorf("Parse(%q) = %v, want ErrConfig", doc, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("site: [unterminated")); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestRequireMissingKey(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  title: Notes\n"))
	if err != nil {
		t.Fatal(err)
	}

	err = cfg.Require("site.title", "paths.output_dir", "site.url")
	var keyErr *KeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected *KeyError, got %v", err)
	}
	if keyErr.Key != "paths.output_dir" {
		t.Errorf("Key = %q, want paths.output_dir", keyErr.Key)
	}
	if !errors.Is(err, ErrMissingKey) {
		t.Error("expected errors.Is(err, ErrMissingKey)")
	}
}

func TestLookupUnknownKey(t *testing.T) {
	cfg := &Config{}
	if _, ok := cfg.Lookup("site.author"); ok {
		t.Error("unknown key reported as present")
	}
	if err := cfg.Require("site.author"); err == nil {
		t.Error("Require of unknown key succeeded")
	}
}
