package layout

import (
	"fmt"
	"html"
	"path/filepath"
	"sort"
	"strings"
)

// Menu represents a node in the side navigation menu.
type Menu struct {
	Name     string
	Title    string // Human-readable display name (from the page's H1 or formatted from name).
	Path     string // For pages: relative source path. For dirs: directory path (e.g., "usage/pipelines").
	IsDir    bool
	Children []*Menu
}

// BuildMenu constructs a Menu from a list of relative page paths.
// titles is an optional map of relative path -> display title.
func BuildMenu(paths []string, titles map[string]string) *Menu {
	root := &Menu{Name: "docs", IsDir: true}

	for _, p := range paths {
		p = filepath.ToSlash(p)
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			found := false
			for _, child := range current.Children {
				if child.Name == part {
					current = child
					found = true
					break
				}
			}
			if found {
				continue
			}
			node := &Menu{
				Name:  part,
				IsDir: !isLast,
			}
			if isLast {
				node.Path = p
				node.Title = titles[p]
			} else {
				node.Path = strings.Join(parts[:i+1], "/")
				node.Title = formatDirName(part)
			}
			current.Children = append(current.Children, node)
			current = node
		}
	}

	sortMenu(root)
	return root
}

// sortMenu recursively sorts children: directories first, then pages, alphabetically.
func sortMenu(node *Menu) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortMenu(child)
		}
	}
}

// ToHTML renders the menu as nested <ul><li> HTML.
// basePath is the relative prefix back to the site root (e.g., "../" for a page one level deep).
func (m *Menu) ToHTML(activePath, basePath string) string {
	activeAncestors := computeActiveAncestors(activePath)

	var b strings.Builder
	homeActive := ""
	if IsIndex(activePath) && !strings.Contains(activePath, "/") {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file home-link"><a href="%sindex.html"%s>Home</a></li></ul>`+"\n", basePath, homeActive)

	renderChildren(&b, m, activePath, basePath, activeAncestors)
	return b.String()
}

// computeActiveAncestors returns the set of directory paths that are ancestors of activePath.
// For "usage/pipelines/nodes.md" it returns {"usage", "usage/pipelines"}.
func computeActiveAncestors(activePath string) map[string]bool {
	ancestors := make(map[string]bool)
	parts := strings.Split(filepath.ToSlash(activePath), "/")
	for i := 1; i < len(parts); i++ {
		ancestors[strings.Join(parts[:i], "/")] = true
	}
	return ancestors
}

func renderChildren(b *strings.Builder, node *Menu, activePath, basePath string, activeAncestors map[string]bool) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			expanded := ""
			if activeAncestors[child.Path] {
				expanded = "expanded"
			}
			label := child.Title
			if label == "" {
				label = child.Name
			}
			fmt.Fprintf(b, `<li class="dir %s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(label))
			renderChildren(b, child, activePath, basePath, activeAncestors)
			b.WriteString("</li>\n")
			continue
		}
		if child.Path == "index.md" || child.Path == "index.html" {
			continue
		}
		label := child.Title
		if label == "" {
			label = strings.TrimSuffix(strings.TrimSuffix(child.Name, ".md"), ".html")
		}
		activeClass := ""
		if child.Path == activePath {
			activeClass = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n",
			basePath, OutputPath(child.Path), activeClass, html.EscapeString(label))
	}
	b.WriteString("</ul>\n")
}

// OutputPath converts a page source path to the path of its rendered HTML file.
func OutputPath(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}

// IsIndex reports whether p names an index page.
func IsIndex(p string) bool {
	base := filepath.Base(p)
	return base == "index.md" || base == "index.html"
}

// formatDirName converts a directory slug to a human-readable display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
