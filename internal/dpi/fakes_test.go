package dpi_test

import (
	"errors"
	"fmt"

	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/platform"
	"github.com/1broseidon/dpiwatch/internal/uitree"
)

// fakeDisplay is an in-memory monitor layout.
type fakeDisplay struct {
	displays  []platform.Display
	window    *fakeWindow
	supported bool
	gateErr   error
	dpiErr    error
	primary   float64
	gateCalls int
	dpiCalls  int
}

var _ dpi.Display = (*fakeDisplay)(nil)

func newFakeDisplay(displays ...platform.Display) *fakeDisplay {
	return &fakeDisplay{displays: displays, supported: true, primary: 96}
}

func monitor(handle uint32, bounds platform.Rect, dpiValue float64) platform.Display {
	return platform.Display{
		Handle: platform.MonitorHandle(handle),
		Name:   fmt.Sprintf("MON-%d", handle),
		Bounds: bounds,
		DPI:    dpiValue,
	}
}

func (d *fakeDisplay) MonitorFromRect(r platform.Rect) (platform.MonitorHandle, bool) {
	m, ok := platform.DisplayFromRect(d.displays, r)
	return m.Handle, ok
}

func (d *fakeDisplay) MonitorFromPoint(p platform.Point) (platform.MonitorHandle, bool) {
	m, ok := platform.DisplayFromPoint(d.displays, p)
	return m.Handle, ok
}

func (d *fakeDisplay) MonitorFromWindow(platform.WindowID) (platform.MonitorHandle, bool) {
	if d.window == nil {
		return 0, false
	}
	m, ok := platform.NearestDisplay(d.displays, d.window.root.Bounds)
	return m.Handle, ok
}

func (d *fakeDisplay) MonitorDPI(handle platform.MonitorHandle) (float64, error) {
	d.dpiCalls++
	if d.dpiErr != nil {
		return 0, d.dpiErr
	}
	m, ok := platform.FindDisplay(d.displays, handle)
	if !ok {
		return 0, errors.New("invalid monitor handle")
	}
	return m.DPI, nil
}

func (d *fakeDisplay) PrimaryDeviceDPI() (float64, error) {
	return d.primary, nil
}

func (d *fakeDisplay) PerMonitorDPISupported() (bool, error) {
	d.gateCalls++
	return d.supported, d.gateErr
}

// fakeWindow is a top-level window whose bounds are its root node's bounds.
type fakeWindow struct {
	root     *uitree.Node
	baseline float64
	moveErr  error
	moves    []platform.Point
}

var _ dpi.Window = (*fakeWindow)(nil)

func newFakeWindow(bounds platform.Rect, fontSize float64) *fakeWindow {
	root := uitree.New("form", bounds)
	root.SetFontSize(fontSize)
	return &fakeWindow{root: root, baseline: dpi.DesignDPI}
}

func (w *fakeWindow) ID() platform.WindowID { return 42 }

func (w *fakeWindow) Bounds() (platform.Rect, error) { return w.root.Bounds, nil }

func (w *fakeWindow) ClientSize() (platform.Size, error) {
	return platform.Size{Width: w.root.Bounds.Width(), Height: w.root.Bounds.Height()}, nil
}

func (w *fakeWindow) MoveTo(p platform.Point) error {
	if w.moveErr != nil {
		return w.moveErr
	}
	w.moves = append(w.moves, p)
	w.place(p)
	return nil
}

// place moves the window without recording a controller-initiated move.
func (w *fakeWindow) place(p platform.Point) {
	b := w.root.Bounds
	w.root.Bounds = platform.RectFromXYWH(p.X, p.Y, b.Width(), b.Height())
}

func (w *fakeWindow) BaselineDPI() float64 { return w.baseline }

func (w *fakeWindow) Root() dpi.Node { return w.root }

// failingToolkit always fails to scale.
type failingToolkit struct{}

func (failingToolkit) ScaleTree(dpi.Node, float64, float64) error {
	return errors.New("layout suspended")
}

// fontSizes returns every node's font size in pre-order.
func fontSizes(root *uitree.Node) map[string]float64 {
	out := make(map[string]float64)
	root.Walk(func(n *uitree.Node) bool {
		out[n.Name] = n.FontSize()
		return true
	})
	return out
}

// Two side-by-side 1920x1080 monitors.
var (
	leftBounds  = platform.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	rightBounds = platform.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}
)
