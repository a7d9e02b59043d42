// internal/builder/models.go
package builder

import (
	"fmt"
	"sort"

	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
)

// Result summarizes a finished build.
type Result struct {
	Posts int
}

// SlugCollisionError is returned when two post files reduce to the same
// slug and would overwrite each other's page.
type SlugCollisionError struct {
	Slug   string
	First  string
	Second string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("posts %s and %s both have slug %q", e.First, e.Second, e.Slug)
}

// slugSet maps each slug already used in a build to its source file.
type slugSet map[string]string

func (s slugSet) claim(p post.Post) error {
	if prev, ok := s[p.Slug]; ok {
		return &SlugCollisionError{Slug: p.Slug, First: prev, Second: p.Source}
	}
	s[p.Slug] = p.Source
	return nil
}

// SortPosts returns a copy of posts ordered newest first. Posts with equal
// dates keep their relative order.
func SortPosts(posts []post.Post) []post.Post {
	sorted := make([]post.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
