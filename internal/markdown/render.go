package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// codeBlockRenderer replaces fenced code blocks with placeholders.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.render)
}

func (r *codeBlockRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	index := 0
	if v, ok := n.AttributeString(codeIndexAttr); ok {
		if b, ok := v.([]byte); ok {
			fmt.Sscanf(string(b), "%d", &index)
		}
	}
	_, _ = w.WriteString(placeholder(index))
	return ast.WalkSkipChildren, nil
}

// taskRenderer renders task list checkboxes with their persisted-state id.
type taskRenderer struct{}

func (r *taskRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(east.KindTaskCheckBox, r.render)
}

func (r *taskRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	box := n.(*east.TaskCheckBox)
	id := ""
	if v, ok := n.AttributeString(checkIDAttr); ok {
		if b, ok := v.([]byte); ok {
			id = string(b)
		}
	}
	checked := ""
	if box.IsChecked {
		checked = " checked"
	}
	fmt.Fprintf(w, `<input type="checkbox" class="%s" %s="%s"%s> `, TaskBoxClass, checkIDAttr, id, checked)
	return ast.WalkContinue, nil
}

// linkTransformer marks in-page anchors for smooth scrolling, opens
// external links in a new tab and points .md links at document routes.
type linkTransformer struct {
	suffix string
}

func (t linkTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			dest := string(link.Destination)
			switch {
			case strings.HasPrefix(dest, "#"):
				link.SetAttributeString("class", []byte(AnchorLinkClass))
				link.SetAttributeString("data-smooth-scroll", []byte("true"))
			case isExternal(dest):
				markExternal(link)
			default:
				link.Destination = []byte(rewriteMDLink(dest, t.suffix))
			}
		case *ast.AutoLink:
			if link.AutoLinkType == ast.AutoLinkURL {
				markExternal(link)
			}
		}
		return ast.WalkContinue, nil
	})
}

func markExternal(n ast.Node) {
	n.SetAttributeString("target", []byte("_blank"))
	n.SetAttributeString("rel", []byte("noopener noreferrer"))
}

func isExternal(dest string) bool {
	lower := strings.ToLower(dest)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

// rewriteMDLink turns "guide.md" and "guide.md#setup" into document routes,
// appending suffix to the route.
func rewriteMDLink(dest, suffix string) string {
	path, fragment := dest, ""
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		path, fragment = dest[:i], dest[i:]
	}
	if !strings.HasSuffix(path, ".md") {
		return dest
	}
	return strings.TrimSuffix(path, ".md") + suffix + fragment
}
