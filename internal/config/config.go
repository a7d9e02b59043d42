// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no -config flag is given.
const DefaultPath = "config.yml"

var (
	// ErrConfig is wrapped by every error Load returns.
	ErrConfig = errors.New("configuration error")
	// ErrMissingKey is matched by *KeyError.
	ErrMissingKey = errors.New("missing configuration key")
)

// Config holds the contents of config.yml.
type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Paths PathsConfig `yaml:"paths"`

	// path is the file the config was read from, used by the server to watch it.
	path string
}

// SiteConfig is the site metadata used in pages and the feed.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	DateFormat  string `yaml:"date_format"`
}

// PathsConfig holds every filesystem location the build reads or writes.
type PathsConfig struct {
	InputDir      string `yaml:"input_dir"`
	OutputDir     string `yaml:"output_dir"`
	PostTemplate  string `yaml:"post_template"`
	IndexTemplate string `yaml:"index_template"`
	IndexOutput   string `yaml:"index_output"`
	RSSOutput     string `yaml:"rss_output"`
}

// KeyError reports a key that a build step needed but the config lacks.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("config key %q is missing or empty", e.Key)
}

func (e *KeyError) Is(target error) bool { return target == ErrMissingKey }

// Load reads and parses the YAML file at path. Keys are not validated here;
// callers use Require for the keys they consume.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read config file at %s: %w", ErrConfig, path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes a config document. An empty or null document is an error.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: could not parse config: %w", ErrConfig, err)
	}
	if isEmpty(&doc) {
		return nil, fmt.Errorf("%w: configuration is missing or invalid", ErrConfig)
	}

	cfg := &Config{}
	if err := doc.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: could not decode config: %w", ErrConfig, err)
	}
	return cfg, nil
}

// isEmpty reports whether the document has no content, is null, or is an
// empty mapping, sequence or string.
func isEmpty(doc *yaml.Node) bool {
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return true
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return len(root.Content) == 0
	case yaml.ScalarNode:
		return root.Tag == "!!null" || strings.TrimSpace(root.Value) == ""
	}
	return false
}

// Path returns the file the config was loaded from, or "" for parsed configs.
func (c *Config) Path() string { return c.path }

// Lookup returns the value of a dotted key such as "paths.input_dir".
func (c *Config) Lookup(key string) (string, bool) {
	var v string
	switch key {
	case "site.title":
		v = c.Site.Title
	case "site.description":
		v = c.Site.Description
	case "site.url":
		v = c.Site.URL
	case "site.date_format":
		v = c.Site.DateFormat
	case "paths.input_dir":
		v = c.Paths.InputDir
	case "paths.output_dir":
		v = c.Paths.OutputDir
	case "paths.post_template":
		v = c.Paths.PostTemplate
	case "paths.index_template":
		v = c.Paths.IndexTemplate
	case "paths.index_output":
		v = c.Paths.IndexOutput
	case "paths.rss_output":
		v = c.Paths.RSSOutput
	default:
		return "", false
	}
	return v, v != ""
}

// Require returns a *KeyError for the first key that is unset.
func (c *Config) Require(keys ...string) error {
	for _, k := range keys {
		if _, ok := c.Lookup(k); !ok {
			return &KeyError{Key: k}
		}
	}
	return nil
}
