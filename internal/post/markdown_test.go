package post

import (
	"strings"
	"testing"
)

func TestMarkdownExtensions(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fenced code", "```go\nfmt.Println(1)\n```", `<pre><code class="language-go">fmt.Println(1)`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"raw html", "<div class=\"note\">kept</div>", `<div class="note">kept</div>`},
	}
	for _, tt := range tests {
		got, err := md.Render(tt.input)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: Render(%q) = %q, want it to contain %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestMarkdownSanitize(t *testing.T) {
	input := "Hello <script>alert(1)</script> **there**"

	plain, err := NewMarkdown(MarkdownOptions{}).Render(input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain, "<script>") {
		t.Errorf("default renderer dropped raw html: %q", plain)
	}

	clean, err := NewMarkdown(MarkdownOptions{Sanitize: true}).Render(input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(clean, "<script>") {
		t.Errorf("sanitized output still has script: %q", clean)
	}
	if !strings.Contains(clean, "<strong>there</strong>") {
		t.Errorf("sanitizer removed formatting: %q", clean)
	}
}

func TestMarkdownRewriteLinks(t *testing.T) {
	input := "[next](second-post.md) [anchor](second-post.md#part) [ext](https://example.com/readme.md) [img](pic.png)"

	got, err := NewMarkdown(MarkdownOptions{RewriteLinks: true}).Render(input)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`href="second-post.html"`,
		`href="second-post.html#part"`,
		`href="https://example.com/readme.md"`,
		`href="pic.png"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}

	untouched, err := NewMarkdown(MarkdownOptions{}).Render(input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(untouched, `href="second-post.md"`) {
		t.Errorf("links rewritten without RewriteLinks: %q", untouched)
	}
}
