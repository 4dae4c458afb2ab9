// Package uitree is a minimal retained visual tree with ambient fonts: a node
// without its own font uses its parent's.
package uitree

import (
	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

// DefaultFontSize is the ambient font size of a root without its own font.
const DefaultFontSize = 9.0

// Node is a visual element with bounds relative to its parent.
type Node struct {
	Name   string
	Bounds platform.Rect

	font     float64 // 0 = inherit
	parent   *Node
	children []*Node
}

var _ dpi.Node = (*Node)(nil)

// New creates a detached node.
func New(name string, bounds platform.Rect) *Node {
	return &Node{Name: name, Bounds: bounds}
}

// Add appends child and returns it.
func (n *Node) Add(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Parent returns the containing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Nodes returns the direct children.
func (n *Node) Nodes() []*Node { return n.children }

// Children implements dpi.Node.
func (n *Node) Children() []dpi.Node {
	out := make([]dpi.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// FontSize returns the node's own font size or the one it inherits.
func (n *Node) FontSize() float64 {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.font > 0 {
			return cur.font
		}
	}
	return DefaultFontSize
}

// SetFontSize gives the node its own font size. Zero reverts to inheriting.
func (n *Node) SetFontSize(size float64) {
	if size < 0 {
		size = 0
	}
	n.font = size
}

// InheritsFont reports whether the node takes its font from its parent.
func (n *Node) InheritsFont() bool { return n.font == 0 }

// Walk visits n and its descendants in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in pre-order with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(cur *Node) bool {
		if cur.Name == name {
			found = cur
			return false
		}
		return true
	})
	return found
}
