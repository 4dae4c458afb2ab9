package uitree

import (
	"fmt"
	"math"

	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

// Toolkit is the tree's own scale primitive. It scales every node's bounds
// and the root's ambient font; fonts set on descendants are left alone.
type Toolkit struct{}

var _ dpi.TreeScaler = Toolkit{}

// ScaleTree implements dpi.TreeScaler. The root keeps its position, since
// placing the top-level window is the caller's job.
func (Toolkit) ScaleTree(root dpi.Node, fx, fy float64) error {
	n, ok := root.(*Node)
	if !ok {
		return fmt.Errorf("uitree: cannot scale %T", root)
	}
	if fx <= 0 || fy <= 0 {
		return fmt.Errorf("uitree: invalid scale factor %gx%g", fx, fy)
	}

	n.Bounds = platform.RectFromXYWH(
		n.Bounds.Left,
		n.Bounds.Top,
		scaleInt(n.Bounds.Width(), fx),
		scaleInt(n.Bounds.Height(), fy),
	)
	for _, c := range n.children {
		scaleSubtree(c, fx, fy)
	}

	n.font = n.FontSize() * fy
	return nil
}

func scaleSubtree(n *Node, fx, fy float64) {
	n.Bounds = platform.Rect{
		Left:   scaleInt(n.Bounds.Left, fx),
		Top:    scaleInt(n.Bounds.Top, fy),
		Right:  scaleInt(n.Bounds.Right, fx),
		Bottom: scaleInt(n.Bounds.Bottom, fy),
	}
	for _, c := range n.children {
		scaleSubtree(c, fx, fy)
	}
}

func scaleInt(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}
