package goods

import (
	"sort"
)

// Tree is the arena shared by related nodes: nodes by id plus a parent to
// children index. A node belongs to exactly one tree.
type Tree struct {
	nodes    map[string]*Goods
	children map[string][]string
}

func NewTree(nodes ...*Goods) *Tree {
	t := &Tree{
		nodes:    make(map[string]*Goods),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		t.Add(n)
	}
	return t
}

// Add moves n into the tree, replacing a node with the same id.
func (t *Tree) Add(n *Goods) {
	if old, ok := t.nodes[n.id]; ok && old.parentID != nil {
		t.unlink(*old.parentID, n.id)
	}
	t.nodes[n.id] = n
	n.tree = t
	if n.parentID != nil {
		t.children[*n.parentID] = append(t.children[*n.parentID], n.id)
	}
}

func (t *Tree) unlink(parentID, childID string) {
	ids := t.children[parentID]
	for i, id := range ids {
		if id == childID {
			t.children[parentID] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// Remove drops a node and its link to its parent.
func (t *Tree) Remove(id string) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if n.parentID != nil {
		t.unlink(*n.parentID, id)
	}
	delete(t.nodes, id)
}

func (t *Tree) Get(id string) (*Goods, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Children returns the known children of id in listing order.
func (t *Tree) Children(id string) []*Goods {
	ids := t.children[id]
	out := make([]*Goods, 0, len(ids))
	for _, cid := range ids {
		if n, ok := t.nodes[cid]; ok {
			out = append(out, n)
		}
	}
	SortForListing(out)
	return out
}

// SortForListing orders folders before goods, then by name.
func SortForListing(items []*Goods) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsFolder() != items[j].IsFolder() {
			return items[i].IsFolder()
		}
		return items[i].name < items[j].name
	})
}
