package models

// CategoryTree is an index over a flat category list. Nodes live in a slice
// and relations are stored as indexes into it, so traversal never follows
// pointers and a corrupt parent chain cannot hang a walk.
//
// A category becomes a root when it has no parent, when its parent is not in
// the list, or when following its parent chain leads back to itself.
type CategoryTree struct {
	nodes    []Category
	index    map[uint]int
	parent   []int // -1 for roots
	children [][]int
	roots    []int
}

// CategoryNode is the nested JSON form of a category and its descendants
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}

// NewCategoryTree builds a tree from categories. Input order is kept for
// siblings.
func NewCategoryTree(categories []Category) *CategoryTree {
	t := &CategoryTree{
		nodes:    make([]Category, len(categories)),
		index:    make(map[uint]int, len(categories)),
		parent:   make([]int, len(categories)),
		children: make([][]int, len(categories)),
	}
	copy(t.nodes, categories)
	for i, c := range t.nodes {
		t.index[c.ID] = i
	}

	for i := range t.nodes {
		t.parent[i] = t.resolveParent(i)
		if t.parent[i] < 0 {
			t.roots = append(t.roots, i)
		} else {
			t.children[t.parent[i]] = append(t.children[t.parent[i]], i)
		}
	}
	return t
}

func (t *CategoryTree) rawParent(i int) int {
	pid := t.nodes[i].ParentID
	if pid == nil {
		return -1
	}
	p, ok := t.index[*pid]
	if !ok {
		return -1
	}
	return p
}

// resolveParent returns the parent index of node i, or -1 if i is a root
func (t *CategoryTree) resolveParent(i int) int {
	p := t.rawParent(i)
	if p < 0 {
		return -1
	}

	seen := map[int]bool{i: true}
	for cur := p; cur >= 0; cur = t.rawParent(cur) {
		if cur == i {
			return -1
		}
		if seen[cur] {
			// loop above us that does not include i
			break
		}
		seen[cur] = true
	}
	return p
}

// Roots returns the top-level categories
func (t *CategoryTree) Roots() []Category {
	return t.collect(t.roots)
}

// Children returns the direct children of the category with the given ID
func (t *CategoryTree) Children(id uint) []Category {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	return t.collect(t.children[i])
}

// Path returns the chain from the root down to the category with the given ID.
// Unknown IDs return nil.
func (t *CategoryTree) Path(id uint) []Category {
	i, ok := t.index[id]
	if !ok {
		return nil
	}

	var chain []int
	for cur := i; cur >= 0; cur = t.parent[cur] {
		chain = append(chain, cur)
	}

	path := make([]Category, 0, len(chain))
	for j := len(chain) - 1; j >= 0; j-- {
		path = append(path, t.nodes[chain[j]])
	}
	return path
}

// Nested returns the whole forest in nested form
func (t *CategoryTree) Nested() []CategoryNode {
	out := make([]CategoryNode, 0, len(t.roots))
	for _, r := range t.roots {
		out = append(out, t.nest(r))
	}
	return out
}

func (t *CategoryTree) nest(i int) CategoryNode {
	node := CategoryNode{Category: t.nodes[i], Children: make([]CategoryNode, 0, len(t.children[i]))}
	for _, c := range t.children[i] {
		node.Children = append(node.Children, t.nest(c))
	}
	return node
}

func (t *CategoryTree) collect(idx []int) []Category {
	out := make([]Category, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.nodes[i])
	}
	return out
}
