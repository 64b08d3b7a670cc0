package highlight

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// ContentClass marks the element whose text is searched.
	ContentClass = "markdown-content"
	// MarkerAttr identifies highlight elements; its value is the pass ID.
	MarkerAttr = "data-search-highlight"
	// MarkClass styles the highlight element.
	MarkClass = "search-highlight"
	// FadingClass is added when the display period ends.
	FadingClass = "fading"
)

// NewPassID returns a fresh identifier for one highlight pass.
func NewPassID() string {
	return uuid.NewString()
}

// ContentRegion returns the main content element under root, or nil.
func ContentRegion(root *html.Node) *html.Node {
	sel := goquery.NewDocumentFromNode(root).Find("." + ContentClass).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// Apply wraps the first occurrence of term within the content region in a
// highlight element tagged with passID. It returns the new element, or
// false when there is no region or no match, in which case the tree is
// left untouched.
func Apply(root *html.Node, term, passID string) (*html.Node, bool) {
	region := ContentRegion(root)
	if region == nil || term == "" {
		return nil, false
	}
	nodes := textNodes(region)
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.Data
	}
	m, ok := First(texts, term)
	if !ok {
		return nil, false
	}

	target := nodes[m.Node]
	parent := target.Parent
	var mark *html.Node
	for _, run := range Split(target.Data, m) {
		if !run.Highlighted {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: run.Text}, target)
			continue
		}
		mark = &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Mark,
			Data:     "mark",
			Attr: []html.Attribute{
				{Key: "class", Val: MarkClass},
				{Key: MarkerAttr, Val: passID},
			},
		}
		mark.AppendChild(&html.Node{Type: html.TextNode, Data: run.Text})
		parent.InsertBefore(mark, target)
	}
	parent.RemoveChild(target)
	return mark, true
}

// Clear unwraps every highlight element under root and merges the text
// nodes left behind. It returns the number of elements removed.
func Clear(root *html.Node) int {
	return unwrap(root, "["+MarkerAttr+"]")
}

// ClearPass unwraps only the highlight elements created by passID.
func ClearPass(root *html.Node, passID string) int {
	return unwrap(root, "["+MarkerAttr+`="`+passID+`"]`)
}

// SetFading adds the fading class to the highlight elements of passID.
func SetFading(root *html.Node, passID string) int {
	sel := goquery.NewDocumentFromNode(root).Find("[" + MarkerAttr + `="` + passID + `"]`)
	sel.AddClass(FadingClass)
	return sel.Length()
}

// Count returns the number of highlight elements under root.
func Count(root *html.Node) int {
	return goquery.NewDocumentFromNode(root).Find("[" + MarkerAttr + "]").Length()
}

func unwrap(root *html.Node, selector string) int {
	marks := goquery.NewDocumentFromNode(root).Find(selector).Nodes
	for _, mark := range marks {
		parent := mark.Parent
		if parent == nil {
			continue
		}
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: textContent(mark)}, mark)
		parent.RemoveChild(mark)
		normalize(parent)
	}
	return len(marks)
}

// normalize merges adjacent text children and drops empty ones.
func normalize(parent *html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.TextNode {
			c = next
			continue
		}
		if next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			parent.RemoveChild(next)
			continue
		}
		if c.Data == "" {
			parent.RemoveChild(c)
		}
		c = next
	}
}

func textNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode && n.Data != "" {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
