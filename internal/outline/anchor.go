package outline

import (
	"fmt"
	"html"
	"html/template"
	"strings"
)

// anchorStrip holds the characters removed from heading text before it is
// turned into an anchor identifier.
var anchorStrip = strings.NewReplacer(
	".", "",
	",", "",
	"，", "",
	"、", "",
	"/", "",
	"'", "",
	"?", "",
	"？", "",
	"|", "",
	"｜", "",
)

// AnchorID derives the in-page anchor identifier for a heading text.
// Punctuation is stripped and each space becomes a hyphen. Distinct headings
// may map to the same identifier.
func AnchorID(value string) string {
	return strings.ReplaceAll(anchorStrip.Replace(value), " ", "-")
}

// Render renders the forest as nested anchor links for the "on this page"
// panel. The link whose identifier equals active carries the active class.
func Render(forest []*Node, active string) template.HTML {
	var b strings.Builder
	renderNodes(&b, forest, "parent-item", active)
	return template.HTML(b.String())
}

func renderNodes(b *strings.Builder, nodes []*Node, className, active string) {
	for _, n := range nodes {
		id := AnchorID(n.Value)
		text := html.EscapeString(n.Value)
		activeClass := ""
		if id == active {
			activeClass = "active"
		}
		fmt.Fprintf(b, `<div class="item %s"><a href="#%s" title="%s" data-anchor="%s" class="%s">%s</a>`,
			className, html.EscapeString(id), text, html.EscapeString(id), activeClass, text)
		if len(n.Children) > 0 {
			renderNodes(b, n.Children, "child-item", active)
		}
		b.WriteString("</div>\n")
	}
}
