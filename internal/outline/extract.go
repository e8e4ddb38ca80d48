package outline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromMarkdown walks a parsed goldmark document, returns its headings in
// document order and sets each heading's id attribute to its AnchorID so the
// rendered content matches the links in the anchor panel.
func FromMarkdown(doc ast.Node, src []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		value := strings.TrimSpace(inlineText(heading, src))
		if value == "" {
			return ast.WalkSkipChildren, nil
		}
		heading.SetAttributeString("id", []byte(AnchorID(value)))
		headings = append(headings, Heading{Value: value, Depth: heading.Level})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the text segments below n, dropping inline markup.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			v := t.Segment.Value(src)
			if !t.IsRaw() {
				v = util.UnescapePunctuations(util.ResolveEntityNames(util.ResolveNumericReferences(v)))
			}
			buf.Write(v)
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
			// Inline tags carry no display text.
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// FromHTML parses an HTML body fragment, collects its h1-h6 headings and
// sets every heading's id to the AnchorID of its text. The rewritten fragment
// is returned alongside the headings.
func FromHTML(fragment []byte) ([]byte, []Heading, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, nil, fmt.Errorf("parse html fragment: %w", err)
	}

	var headings []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.DataAtom); level > 0 {
				value := strings.Join(strings.Fields(textContent(n)), " ")
				if value != "" {
					setAttr(n, "id", AnchorID(value))
					headings = append(headings, Heading{Value: value, Depth: level})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var out bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&out, n); err != nil {
			return nil, nil, fmt.Errorf("render html fragment: %w", err)
		}
	}
	return out.Bytes(), headings, nil
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
