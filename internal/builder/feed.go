// internal/builder/feed.go
package builder

import (
	"fmt"
	"os"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
)

// BuildFeed writes an RSS 2.0 feed of the posts, newest first, to
// paths.rss_output. Item descriptions carry the tags, not the content.
func (b *Builder) BuildFeed(posts []post.Post) error {
	if err := b.cfg.Require("site.title", "site.description", "site.url", "paths.rss_output"); err != nil {
		return err
	}
	feed := newFeed(b.cfg.Site.Title, b.cfg.Site.Description, b.cfg.Site.URL, SortPosts(posts))
	feed.Updated = b.Now().UTC()

	outPath := b.cfg.Paths.RSSOutput
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	if err := feed.WriteRss(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write feed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	b.log.Printf("Wrote %s", outPath)
	return nil
}

func newFeed(title, description, baseURL string, posts []post.Post) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: baseURL, Rel: "alternate"},
		Description: description,
	}
	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: PostURL(baseURL, p.Slug)},
			Description: p.JoinedTags(),
			Created:     p.Date.UTC(),
		})
	}
	return feed
}

// PostURL is the permalink of the post with the given slug.
func PostURL(baseURL, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + "/blog/" + slug + ".html"
}
