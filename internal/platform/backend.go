package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// MonitorHandle identifies a physical monitor. Handles are owned by the
// display server; zero is never a valid handle.
type MonitorHandle uint32

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region in screen coordinates. Right and Bottom
// are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectFromXYWH builds a Rect from an origin and a size.
func RectFromXYWH(x, y, width, height int) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// TopLeft returns the rectangle origin.
func (r Rect) TopLeft() Point { return Point{X: r.Left, Y: r.Top} }

// TopRight returns the top-right corner point.
func (r Rect) TopRight() Point { return Point{X: r.Right, Y: r.Top} }

// Center returns the rectangle centre, rounded towards the origin.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersect returns the overlap of r and o, or the zero Rect when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	isect := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if isect.Empty() {
		return Rect{}
	}
	return isect
}

// Area returns width*height, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Display describes a physical display and its effective DPI.
type Display struct {
	Handle MonitorHandle
	Name   string
	Bounds Rect
	// WidthMM is the physical width reported by the display server (0 if unknown).
	WidthMM int
	DPI     float64
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	Title  string
	Bounds Rect
	Client Size
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	MonitorFromRect(r Rect) (MonitorHandle, bool)
	MonitorFromPoint(p Point) (MonitorHandle, bool)
	MonitorFromWindow(windowID WindowID) (MonitorHandle, bool)
	MonitorDPI(handle MonitorHandle) (float64, error)
	PrimaryDeviceDPI() (float64, error)
	PerMonitorDPISupported() (bool, error)

	ActiveWindow() (WindowID, error)
	FindWindowByTitle(substring string) (WindowID, error)
	WindowInfo(windowID WindowID) (Window, error)
	MoveWindow(windowID WindowID, to Point) error
	ResizeClient(windowID WindowID, size Size) error
}
