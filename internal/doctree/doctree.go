package doctree

// Root is the index of the implicit level-1 root node in every Tree.
const Root = 0

// Node is one heading in a page's table of contents.
type Node struct {
	Level    int    // Heading level, 2-6 for real headings, 1 for the root
	HTML     string // Rendered inner HTML of the heading
	Name     string // Anchor name, unique within the tree
	Parent   int    // Index of the parent node; -1 for the root
	Children []int  // Child indexes in document order
}

// Tree is an arena of heading nodes built during one render pass.
// It also tracks every anchor name handed out during that pass.
type Tree struct {
	nodes []Node
	names map[string]struct{}
	last  int
}

// New returns an empty tree containing only the root.
func New() *Tree {
	return &Tree{
		nodes: []Node{{Level: 1, Parent: -1}},
		names: make(map[string]struct{}),
	}
}

// Add attaches a heading below the nearest node on the current insertion
// path whose level is strictly lower, registers its name and returns its index.
func (t *Tree) Add(level int, html, name string) int {
	parent := t.last
	for parent != Root && level <= t.nodes[parent].Level {
		parent = t.nodes[parent].Parent
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Level:  level,
		HTML:   html,
		Name:   name,
		Parent: parent,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)

	t.Reserve(name)
	t.last = idx
	return idx
}

// Reserve marks name as taken without adding a node.
func (t *Tree) Reserve(name string) {
	t.names[name] = struct{}{}
}

// Taken reports whether name has already been handed out.
func (t *Tree) Taken(name string) bool {
	_, ok := t.names[name]
	return ok
}

// Node returns a copy of the node at idx.
func (t *Tree) Node(idx int) Node {
	return t.nodes[idx]
}

// Children returns the child indexes of the node at idx.
func (t *Tree) Children(idx int) []int {
	return t.nodes[idx].Children
}

// Len returns the number of headings in the tree, not counting the root.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Walk visits every heading depth-first in document order.
func (t *Tree) Walk(fn func(idx, depth int)) {
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		for _, c := range t.nodes[idx].Children {
			fn(c, depth)
			walk(c, depth+1)
		}
	}
	walk(Root, 0)
}
