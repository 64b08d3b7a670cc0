package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/docreader/internal/docstore"
)

// sidebarHTML renders the section-grouped navigation. The section holding
// activeID starts expanded and its link carries the active class.
func sidebarHTML(sections []docstore.Section, activeID string, l links) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, sec := range sections {
		expanded := ""
		for _, d := range sec.Documents {
			if d.ID == activeID {
				expanded = " expanded"
				break
			}
		}
		fmt.Fprintf(&b, `<li class="section%s"><span class="section-toggle">%s</span>`+"\n",
			expanded, template.HTMLEscapeString(sec.Name))
		b.WriteString("<ul>\n")
		for _, d := range sec.Documents {
			activeClass := ""
			if d.ID == activeID {
				activeClass = ` class="active"`
			}
			fmt.Fprintf(&b, `<li class="doc"><a href="%s"%s>%s</a></li>`+"\n",
				template.HTMLEscapeString(l.doc(d.ID)), activeClass, template.HTMLEscapeString(d.Title))
		}
		b.WriteString("</ul>\n</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
