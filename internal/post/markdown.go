// internal/post/markdown.go
package post

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// MarkdownOptions toggles optional post-processing of rendered bodies. The
// zero value renders bodies as-is.
type MarkdownOptions struct {
	// Sanitize runs the rendered HTML through a bluemonday UGC policy.
	Sanitize bool
	// RewriteLinks turns relative links to "*.md" files into "*.html" links.
	RewriteLinks bool
}

// Markdown renders post bodies to HTML. Fenced code blocks are part of
// CommonMark; tables come from the goldmark table extension. Raw HTML in a
// body is passed through.
type Markdown struct {
	engine    goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewMarkdown builds a renderer. It is safe to reuse for every post of a build.
func NewMarkdown(opts MarkdownOptions) *Markdown {
	parserOpts := []parser.Option{}
	if opts.RewriteLinks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(newMDLinkTransformer(), 100),
		))
	}

	m := &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	if opts.Sanitize {
		m.sanitizer = bluemonday.UGCPolicy()
	}
	return m
}

// Render converts a Markdown body to HTML. A nil *Markdown uses the default
// options.
func (m *Markdown) Render(body string) (string, error) {
	if m == nil {
		m = NewMarkdown(MarkdownOptions{})
	}
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	if m.sanitizer != nil {
		return string(m.sanitizer.SanitizeBytes(buf.Bytes())), nil
	}
	return buf.String(), nil
}
