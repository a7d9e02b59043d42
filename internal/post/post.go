// internal/post/post.go

// Package post parses the blog's Markdown post files.
//
// A post file is laid out as
//
//	Title of the post
//	2024-06-15
//	go, tooling
//	Markdown body, from the fourth line to the end of the file.
package post

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/itikhon0v/itikhon0v.github.io/internal/slug"
	"github.com/ncruces/go-strftime"
)

// minLines is title, date, tags and at least one body line.
const minLines = 4

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("post parse error")

// Post is one parsed blog entry.
type Post struct {
	Title   string // HTML-escaped
	Date    time.Time
	Tags    []string
	Slug    string
	Content string // rendered HTML
	Source  string // file the post was read from
}

// ParseError describes a post file that does not follow the layout.
type ParseError struct {
	Path string
	Line int // 1-based, 0 when the error is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Parse reads the post file at path. dateFormat is a strftime pattern such
// as "%Y-%m-%d".
func Parse(path, dateFormat string, md *Markdown) (Post, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("failed to read post %s: %w", path, err)
	}
	return ParseBytes(src, path, dateFormat, md)
}

// ParseBytes parses the contents of a post file. path is only used for
// Post.Source and error messages.
func ParseBytes(src []byte, path, dateFormat string, md *Markdown) (Post, error) {
	lines := splitLines(string(src))
	if len(lines) < minLines {
		return Post{}, &ParseError{
			Path: path,
			Err:  fmt.Errorf("not enough lines to parse metadata: got %d, need %d", len(lines), minLines),
		}
	}

	title := EscapeTitle(strings.TrimSpace(lines[0]))

	date, err := ParseDate(strings.TrimSpace(lines[1]), dateFormat)
	if err != nil {
		return Post{}, &ParseError{Path: path, Line: 2, Err: err}
	}

	tags := strings.Split(lines[2], ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}

	content, err := md.Render(strings.Join(lines[3:], "\n"))
	if err != nil {
		return Post{}, &ParseError{Path: path, Line: 4, Err: err}
	}

	return Post{
		Title:   title,
		Date:    date,
		Tags:    tags,
		Slug:    slug.Make(title),
		Content: content,
		Source:  path,
	}, nil
}

// JoinedTags returns the tags joined with ", ".
func (p Post) JoinedTags() string {
	return strings.Join(p.Tags, ", ")
}

// ParseDate parses value strictly against the strftime pattern format. The
// result is in UTC.
func ParseDate(value, format string) (time.Time, error) {
	t, err := strftime.Parse(format, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q does not match format %q: %w", value, format, err)
	}
	return t.UTC(), nil
}

// FormatDate renders t with the strftime pattern format.
func FormatDate(t time.Time, format string) string {
	return strftime.Format(format, t)
}

var titleEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeTitle escapes the five HTML special characters. The entity spelling
// feeds into slugs, so quotes must stay &quot; and &#x27;.
func EscapeTitle(s string) string {
	return titleEscaper.Replace(s)
}

// splitLines splits s at line boundaries. A terminator at the very end does
// not start an extra empty line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
