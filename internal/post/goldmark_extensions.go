// internal/post/goldmark_extensions.go
package post

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdLinkTransformer points links between posts at the generated pages:
// a relative destination "other-post.md" becomes "other-post.html".
type mdLinkTransformer struct{}

func newMDLinkTransformer() parser.ASTTransformer {
	return &mdLinkTransformer{}
}

func (t *mdLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		link.Destination = rewriteMDLink(link.Destination)
		return ast.WalkContinue, nil
	})
}

// rewriteMDLink leaves absolute URLs alone. A "#fragment" after the file
// name is kept.
func rewriteMDLink(dest []byte) []byte {
	if bytes.Contains(dest, []byte("://")) || bytes.HasPrefix(dest, []byte("mailto:")) {
		return dest
	}
	path, fragment := dest, []byte(nil)
	if i := bytes.IndexByte(dest, '#'); i >= 0 {
		path, fragment = dest[:i], dest[i:]
	}
	if !bytes.HasSuffix(path, []byte(".md")) {
		return dest
	}
	out := make([]byte, 0, len(dest)+2)
	out = append(out, bytes.TrimSuffix(path, []byte(".md"))...)
	out = append(out, ".html"...)
	return append(out, fragment...)
}
