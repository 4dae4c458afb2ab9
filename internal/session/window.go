package session

import (
	"math"

	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/platform"
	"github.com/1broseidon/dpiwatch/internal/uitree"
)

// Window adapts a window-system window and its visual tree to dpi.Window.
type Window struct {
	backend  platform.Backend
	id       platform.WindowID
	root     *uitree.Node
	baseline float64
}

var _ dpi.Window = (*Window)(nil)

// NewWindow creates a window adapter. baseline is the DPI the tree was laid
// out at.
func NewWindow(backend platform.Backend, id platform.WindowID, root *uitree.Node, baseline float64) *Window {
	return &Window{backend: backend, id: id, root: root, baseline: baseline}
}

func (w *Window) ID() platform.WindowID { return w.id }

func (w *Window) Bounds() (platform.Rect, error) {
	info, err := w.backend.WindowInfo(w.id)
	if err != nil {
		return platform.Rect{}, err
	}
	return info.Bounds, nil
}

func (w *Window) ClientSize() (platform.Size, error) {
	info, err := w.backend.WindowInfo(w.id)
	if err != nil {
		return platform.Size{}, err
	}
	return info.Client, nil
}

func (w *Window) MoveTo(p platform.Point) error {
	return w.backend.MoveWindow(w.id, p)
}

func (w *Window) BaselineDPI() float64 { return w.baseline }

func (w *Window) Root() dpi.Node { return w.root }

// Tree returns the window's visual tree.
func (w *Window) Tree() *uitree.Node { return w.root }

// clientToolkit resizes the real client area before rescaling the tree, so
// the window and its root node stay the same size.
type clientToolkit struct {
	backend platform.Backend
	id      platform.WindowID
	tree    uitree.Toolkit
}

func (t clientToolkit) ScaleTree(root dpi.Node, fx, fy float64) error {
	info, err := t.backend.WindowInfo(t.id)
	if err != nil {
		return err
	}
	size := platform.Size{
		Width:  int(math.Round(float64(info.Client.Width) * fx)),
		Height: int(math.Round(float64(info.Client.Height) * fy)),
	}
	if err := t.backend.ResizeClient(t.id, size); err != nil {
		return err
	}
	return t.tree.ScaleTree(root, fx, fy)
}
