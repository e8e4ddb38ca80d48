package outline

// Heading is one heading extracted from a rendered page.
// Value doubles as the heading's key, so it should be unique within a page.
type Heading struct {
	Value string `json:"value"`
	Depth int    `json:"depth"`
}

// Node is a heading together with the headings nested under it.
type Node struct {
	Value    string  `json:"value"`
	Depth    int     `json:"depth"`
	Children []*Node `json:"children"`
}

// Group converts a flat, depth-annotated heading list into a forest.
//
// A heading becomes a child of the most recently started root when that
// root is shallower than the heading; otherwise it starts a new root. Nesting
// therefore never goes deeper than two levels: a run such as 1,2,3 yields one
// root with two children, not a chain.
//
// The input slice is never modified. A nil or empty input yields a nil forest.
func Group(headings []Heading) []*Node {
	var forest []*Node
	for _, h := range headings {
		node := &Node{Value: h.Value, Depth: h.Depth, Children: []*Node{}}
		if n := len(forest); n > 0 && forest[n-1].Depth < h.Depth {
			forest[n-1].Children = append(forest[n-1].Children, node)
			continue
		}
		forest = append(forest, node)
	}
	return forest
}

// Count returns the number of nodes in the forest, descendants included.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}

// Flatten walks the forest depth-first and returns the headings in document order.
func Flatten(forest []*Node) []Heading {
	var out []Heading
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, Heading{Value: n.Value, Depth: n.Depth})
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}
