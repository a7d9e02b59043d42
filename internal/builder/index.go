// internal/builder/index.go
package builder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
	"github.com/itikhon0v/itikhon0v.github.io/internal/render"
)

const buildDateLayout = "2006-01-02 15:04:05 UTC"

// BuildIndex renders the homepage listing posts newest first and writes it
// to paths.index_output. The output directory must already exist.
func (b *Builder) BuildIndex(posts []post.Post, start time.Time) error {
	if err := b.cfg.Require("paths.index_template", "paths.index_output", "site.date_format"); err != nil {
		return err
	}
	tmpl, err := readTemplate(b.cfg.Paths.IndexTemplate)
	if err != nil {
		return err
	}

	now := b.Now()
	ctx := indexContext(indexEntries(SortPosts(posts), b.cfg.Site.DateFormat), now, now.Sub(start))

	outPath := b.cfg.Paths.IndexOutput
	if err := writeFile(outPath, render.Render(tmpl, ctx)); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	b.log.Printf("Wrote %s", outPath)
	return nil
}

// indexContext derives every time value from the single reading now.
func indexContext(entries string, now time.Time, elapsed time.Duration) render.Context {
	return render.Context{
		"BLOG":       entries,
		"YEAR":       strconv.Itoa(now.UTC().Year()),
		"BUILD_DATE": now.UTC().Format(buildDateLayout),
		"BUILD_TIME": formatElapsed(elapsed),
	}
}

func indexEntries(posts []post.Post, dateFormat string) string {
	var sb strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&sb, "<p><a href=\"blog/%s.html\">%s</a><br />\n", p.Slug, p.Title)
		fmt.Fprintf(&sb, "<small>%s &bullet; %s</small></p>\n", post.FormatDate(p.Date, dateFormat), p.JoinedTags())
	}
	return sb.String()
}

// formatElapsed prints d in seconds, e.g. "0.0123 s".
func formatElapsed(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + " s"
}
