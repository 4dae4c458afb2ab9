package dpi

import "fmt"

// Node is one element of a window's visual tree. Implementations must be
// comparable (typically pointers) since nodes key the font snapshot.
type Node interface {
	Children() []Node
	FontSize() float64
	SetFontSize(size float64)
}

// TreeScaler is the toolkit's own scale primitive. It rescales geometry for
// the whole subtree and the fonts that are inherited from a parent.
type TreeScaler interface {
	ScaleTree(root Node, fx, fy float64) error
}

// FontSizeSnapshot records font sizes of a tree in pre-order.
type FontSizeSnapshot struct {
	order []Node
	sizes map[Node]float64
}

// SnapshotFontSizes captures the font size of root and every descendant.
func SnapshotFontSizes(root Node) *FontSizeSnapshot {
	s := &FontSizeSnapshot{sizes: make(map[Node]float64)}
	if root != nil {
		s.fill(root)
	}
	return s
}

func (s *FontSizeSnapshot) fill(n Node) {
	if _, seen := s.sizes[n]; seen {
		return
	}
	s.order = append(s.order, n)
	s.sizes[n] = n.FontSize()
	for _, child := range n.Children() {
		s.fill(child)
	}
}

// Len returns the number of captured nodes.
func (s *FontSizeSnapshot) Len() int { return len(s.order) }

// Size returns the captured font size of n.
func (s *FontSizeSnapshot) Size(n Node) (float64, bool) {
	size, ok := s.sizes[n]
	return size, ok
}

// Scaler rescales a visual tree's geometry and fonts by a linear factor.
type Scaler struct {
	toolkit TreeScaler
}

// NewScaler creates a scaler on top of the toolkit's scale primitive.
func NewScaler(toolkit TreeScaler) *Scaler {
	return &Scaler{toolkit: toolkit}
}

// Scale multiplies every node's geometry and font size by factor. Nodes whose
// font the toolkit left untouched had it set explicitly, so they are scaled
// here. It returns the number of nodes scaled explicitly.
func (s *Scaler) Scale(root Node, factor float64) (int, error) {
	if root == nil {
		return 0, nil
	}

	snapshot := SnapshotFontSizes(root)

	if err := s.toolkit.ScaleTree(root, factor, factor); err != nil {
		return 0, fmt.Errorf("toolkit scale failed: %w", err)
	}

	// Pre-order: fixing an explicit parent first lets inheriting children
	// pick up the new size, so they compare unequal below.
	explicit := 0
	for _, n := range snapshot.order {
		before := snapshot.sizes[n]
		if n.FontSize() == before {
			n.SetFontSize(before * factor)
			explicit++
		}
	}
	return explicit, nil
}
