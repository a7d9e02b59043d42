// internal/builder/check.go
package builder

import (
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/post"
	"github.com/itikhon0v/itikhon0v.github.io/internal/render"
)

// CheckReport is the outcome of a dry run.
type CheckReport struct {
	Posts []post.Post
	// UnfilledPost and UnfilledIndex list template placeholders that no
	// build value replaces. They are left in the output verbatim.
	UnfilledPost  []string
	UnfilledIndex []string
}

// Check parses every post and both templates without writing anything.
// Errors are the same ones a build would stop on.
func (b *Builder) Check() (CheckReport, error) {
	if err := b.cfg.Require("paths.input_dir", "paths.post_template", "paths.index_template", "site.date_format"); err != nil {
		return CheckReport{}, err
	}
	postTmpl, err := readTemplate(b.cfg.Paths.PostTemplate)
	if err != nil {
		return CheckReport{}, err
	}
	indexTmpl, err := readTemplate(b.cfg.Paths.IndexTemplate)
	if err != nil {
		return CheckReport{}, err
	}

	sources, err := postFiles(b.cfg.Paths.InputDir)
	if err != nil {
		return CheckReport{}, err
	}
	report := CheckReport{
		UnfilledPost:  render.Unfilled(postTmpl, postContext(post.Post{}, "", "")),
		UnfilledIndex: render.Unfilled(indexTmpl, indexContext("", time.Time{}, 0)),
	}
	slugs := make(slugSet, len(sources))
	for _, src := range sources {
		p, err := post.Parse(src, b.cfg.Site.DateFormat, b.md)
		if err != nil {
			return CheckReport{}, err
		}
		if err := slugs.claim(p); err != nil {
			return CheckReport{}, err
		}
		report.Posts = append(report.Posts, p)
	}
	return report, nil
}
