// Package tree holds the expand/collapse presentation state for a JSON
// document and renders it as an indented, collapsible tree.
package tree

import (
	"strconv"

	"github.com/mcncl/jsonview/internal/classify"
	"github.com/mcncl/jsonview/internal/models"
)

// RootLabel is the label given to the node wrapping the document root.
const RootLabel = "root"

// DefaultExpandDepth opens the root and its direct children.
const DefaultExpandDepth = 2

// Node wraps one JSON value with its label, depth and local expand state.
// Nodes never copy or modify the value they wrap.
type Node struct {
	Value    *models.Value
	Label    string
	Depth    int
	Expanded bool

	kind        models.Kind
	expandDepth int
	parent      *Node
	children    []*Node
}

// New wraps the document root using the default expand depth.
func New(root *models.Value) *Node {
	return NewWithOptions(root, DefaultExpandDepth)
}

// NewWithOptions wraps the document root. Nodes shallower than
// expandDepth start expanded.
func NewWithOptions(root *models.Value, expandDepth int) *Node {
	return newNode(root, RootLabel, 0, expandDepth, nil)
}

func newNode(v *models.Value, label string, depth, expandDepth int, parent *Node) *Node {
	return &Node{
		Value:       v,
		Label:       label,
		Depth:       depth,
		Expanded:    depth < expandDepth,
		kind:        classify.Classify(v),
		expandDepth: expandDepth,
		parent:      parent,
	}
}

// Kind returns the kind of the wrapped value.
func (n *Node) Kind() models.Kind {
	return n.kind
}

// IsContainer reports whether the node wraps an array or object.
func (n *Node) IsContainer() bool {
	return n.kind.IsContainer()
}

// Open reports whether the node's children are shown. Scalars are never open.
func (n *Node) Open() bool {
	return n.Expanded && n.IsContainer()
}

// Summary returns the short display form of the wrapped value.
func (n *Node) Summary() string {
	return classify.Summarize(n.Value, n.kind)
}

// Toggle flips the expand state of a container and returns the new state.
// It is a no-op for scalars.
func (n *Node) Toggle() bool {
	if !n.IsContainer() {
		return false
	}
	n.Expanded = !n.Expanded
	return n.Expanded
}

// SetExpanded sets the expand state of a container.
func (n *Node) SetExpanded(expanded bool) {
	if n.IsContainer() {
		n.Expanded = expanded
	}
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes in iteration order, creating them on
// first use. Created children are kept so their state survives the
// parent being collapsed and re-expanded.
func (n *Node) Children() []*Node {
	if n.children != nil || !n.IsContainer() {
		return n.children
	}

	depth := n.Depth + 1
	switch n.kind {
	case models.KindArray:
		items := n.Value.Items()
		n.children = make([]*Node, len(items))
		for i, item := range items {
			n.children[i] = newNode(item, strconv.Itoa(i), depth, n.expandDepth, n)
		}
	case models.KindObject:
		members := n.Value.Members()
		n.children = make([]*Node, len(members))
		for i, m := range members {
			n.children[i] = newNode(m.Value, m.Key, depth, n.expandDepth, n)
		}
	}
	return n.children
}

// Path returns the labels from the root's first child down to n.
// The root's path is empty.
func (n *Node) Path() []string {
	var path []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.Label)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Find resolves a path of labels below n.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, label := range path {
		var next *Node
		for _, child := range cur.Children() {
			if child.Label == label {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Visible returns n and every descendant currently shown, in display order.
func (n *Node) Visible() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		out = append(out, cur)
		if !cur.Open() {
			return
		}
		for _, child := range cur.Children() {
			walk(child)
		}
	}
	walk(n)
	return out
}

// ExpandAll opens n and every container below it.
func (n *Node) ExpandAll() {
	n.SetExpanded(true)
	for _, child := range n.Children() {
		child.ExpandAll()
	}
}

// CollapseAll closes n and every container below it that has been
// created so far.
func (n *Node) CollapseAll() {
	n.SetExpanded(false)
	for _, child := range n.children {
		child.CollapseAll()
	}
}
