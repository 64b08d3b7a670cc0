// Package markdown turns raw markdown into the HTML served for a document.
//
// Rendering extracts fenced code blocks into placeholders (hydrated later
// into interactive blocks), assigns slug identifiers to headings, decorates
// links for in-page scrolling or new-tab navigation, and tags task list
// checkboxes with a persisted-state identifier.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/docreader/internal/slug"
)

// Class names and attributes shared with the page script and the highlighter.
const (
	PlaceholderClass = "code-placeholder"
	AnchorLinkClass  = "anchor-link"
	TaskItemClass    = "task-item"
	TaskBoxClass     = "task-checkbox"

	codeIndexAttr = "data-code-index"
	checkIDAttr   = "data-check-id"
)

// Task is a rendered task list checkbox.
type Task struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Output is the structural result of rendering one document.
type Output struct {
	DocumentID string
	HTML       string
	CodeBlocks []CodeBlock
	Tasks      []Task
	Headings   []Heading
}

// Hydrated returns HTML with every code placeholder replaced by its
// interactive code block.
func (o *Output) Hydrated() (string, error) {
	out := o.HTML
	for _, block := range o.CodeBlocks {
		rendered, err := Hydrate(block)
		if err != nil {
			return "", err
		}
		out = strings.Replace(out, placeholder(block.Index), rendered, 1)
	}
	return out, nil
}

func placeholder(index int) string {
	return fmt.Sprintf(`<div class="%s" %s="%d"></div>`+"\n", PlaceholderClass, codeIndexAttr, index)
}

// Pipeline renders markdown documents. It is safe for concurrent use.
type Pipeline struct {
	md         goldmark.Markdown
	inline     bool
	linkSuffix string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithInlineHighlighting keeps code blocks in the HTML flow, highlighted by
// goldmark-highlighting, instead of extracting them. Used for printable pages.
func WithInlineHighlighting() Option {
	return func(p *Pipeline) { p.inline = true }
}

// WithLinkSuffix makes links to other .md documents end in suffix (for
// example ".html" in a static build) instead of pointing at the bare route.
func WithLinkSuffix(suffix string) Option {
	return func(p *Pipeline) { p.linkSuffix = suffix }
}

// New creates a Pipeline with GFM enabled.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}

	extensions := []goldmark.Extender{extension.GFM}
	nodeRenderers := []util.PrioritizedValue{
		util.Prioritized(&taskRenderer{}, 100),
	}
	if p.inline {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(CodeStyle),
		))
	} else {
		nodeRenderers = append(nodeRenderers, util.Prioritized(&codeBlockRenderer{}, 100))
	}

	p.md = goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(linkTransformer{suffix: p.linkSuffix}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(nodeRenderers...),
		),
	)
	return p
}

// Render converts source into HTML and collects the code blocks, task
// checkboxes and headings it contains. The same input always produces the
// same output.
func (p *Pipeline) Render(source []byte, docID string) (*Output, error) {
	pc := parser.NewContext(parser.WithIDs(slugIDs{}))
	doc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	out := &Output{DocumentID: docID}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			id := ""
			if v, ok := node.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			out.Headings = append(out.Headings, Heading{
				ID:    id,
				Text:  inlineText(node, source),
				Level: node.Level,
			})
		case *ast.FencedCodeBlock:
			if p.inline {
				return ast.WalkSkipChildren, nil
			}
			block := extractCodeBlock(len(out.CodeBlocks), node, source)
			node.SetAttributeString(codeIndexAttr, []byte(strconv.Itoa(block.Index)))
			out.CodeBlocks = append(out.CodeBlocks, block)
			return ast.WalkSkipChildren, nil
		case *east.TaskCheckBox:
			label := strings.TrimSpace(inlineText(node.Parent(), source))
			id := TaskCheckID(label, docID)
			node.SetAttributeString(checkIDAttr, []byte(id))
			if item := enclosingListItem(node); item != nil {
				item.SetAttributeString("class", []byte(TaskItemClass))
			}
			out.Tasks = append(out.Tasks, Task{ID: id, Text: label, Checked: node.IsChecked})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", docID, err)
	}

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", docID, err)
	}
	out.HTML = buf.String()
	return out, nil
}

func extractCodeBlock(index int, node *ast.FencedCodeBlock, source []byte) CodeBlock {
	var code bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	info := ""
	if node.Info != nil {
		info = string(node.Info.Segment.Value(source))
	}
	body := code.String()
	return CodeBlock{
		Index:    index,
		Language: NormalizeLanguage(info),
		Filename: SniffFilename(body),
		Code:     body,
	}
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if tt, ok := cc.(*ast.Text); ok {
					b.Write(tt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func enclosingListItem(n ast.Node) ast.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return p
		}
	}
	return nil
}

// slugIDs assigns heading identifiers straight from Slugify. Duplicate
// headings share an identifier.
type slugIDs struct{}

func (slugIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(slug.Slugify(string(value)))
}

func (slugIDs) Put([]byte) {}
