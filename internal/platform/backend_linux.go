//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/dpiwatch/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// fallbackDPI is used when the server reports no physical size at all.
const fallbackDPI = 96.0

// LinuxOptions tunes how physical monitor sizes become DPI values.
type LinuxOptions struct {
	// Display is the X display name; empty uses $DISPLAY.
	Display string
	// DPISnap rounds computed DPI to a multiple of this step.
	DPISnap float64
	// Overrides maps RandR output names to a fixed DPI.
	Overrides map[string]float64
}

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
	opts LinuxOptions
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, opts LinuxOptions) *LinuxBackend {
	return &LinuxBackend{conn: conn, opts: opts}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(opts LinuxOptions) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn, opts: opts}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// WatchWindow calls onConfigure when the window moves or resizes.
func (b *LinuxBackend) WatchWindow(windowID WindowID, onConfigure func()) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WatchWindow(xproto.Window(windowID), onConfigure)
}

// WatchScreenChanges calls onChange when the monitor layout changes.
func (b *LinuxBackend) WatchScreenChanges(onChange func()) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WatchScreenChanges(onChange)
}

// PrimaryButtonDown reports whether the first pointer button is held, which
// is how a window-manager drag shows up to clients.
func (b *LinuxBackend) PrimaryButtonDown() (bool, error) {
	conn, err := b.connection()
	if err != nil {
		return false, err
	}
	_, _, held, err := conn.PointerState()
	return held, err
}

// Displays returns all active displays sorted by position.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	primary, err := b.PrimaryDeviceDPI()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, b.displayFromMonitor(m, primary))
	}

	sort.SliceStable(displays, func(i, j int) bool {
		if displays[i].Bounds.Left != displays[j].Bounds.Left {
			return displays[i].Bounds.Left < displays[j].Bounds.Left
		}
		return displays[i].Bounds.Top < displays[j].Bounds.Top
	})

	return displays, nil
}

// MonitorFromRect returns the monitor with the largest intersection with r.
func (b *LinuxBackend) MonitorFromRect(r Rect) (MonitorHandle, bool) {
	displays, err := b.Displays()
	if err != nil {
		return 0, false
	}
	d, ok := DisplayFromRect(displays, r)
	return d.Handle, ok
}

// MonitorFromPoint returns the monitor containing p.
func (b *LinuxBackend) MonitorFromPoint(p Point) (MonitorHandle, bool) {
	displays, err := b.Displays()
	if err != nil {
		return 0, false
	}
	d, ok := DisplayFromPoint(displays, p)
	return d.Handle, ok
}

// MonitorFromWindow returns the monitor containing or nearest to a window.
func (b *LinuxBackend) MonitorFromWindow(windowID WindowID) (MonitorHandle, bool) {
	info, err := b.WindowInfo(windowID)
	if err != nil {
		return 0, false
	}
	displays, err := b.Displays()
	if err != nil {
		return 0, false
	}
	d, ok := NearestDisplay(displays, info.Bounds)
	return d.Handle, ok
}

// MonitorDPI returns the effective DPI of a monitor.
func (b *LinuxBackend) MonitorDPI(handle MonitorHandle) (float64, error) {
	displays, err := b.Displays()
	if err != nil {
		return 0, err
	}
	d, ok := FindDisplay(displays, handle)
	if !ok {
		return 0, fmt.Errorf("monitor %d not found", handle)
	}
	return d.DPI, nil
}

// PrimaryDeviceDPI returns the DPI of the core X screen.
func (b *LinuxBackend) PrimaryDeviceDPI() (float64, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	px, mm := conn.ScreenSize()
	if dpi := SnapDPI(PhysicalDPI(px, mm), b.opts.DPISnap); dpi > 0 {
		return dpi, nil
	}
	return fallbackDPI, nil
}

// PerMonitorDPISupported reports whether RandR 1.2 or later is available.
func (b *LinuxBackend) PerMonitorDPISupported() (bool, error) {
	conn, err := b.connection()
	if err != nil {
		return false, err
	}
	return conn.SupportsPerMonitorDPI()
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	if wid == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return WindowID(wid), nil
}

// FindWindowByTitle returns the first normal window whose title contains substring.
func (b *LinuxBackend) FindWindowByTitle(substring string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	wid, err := conn.FindWindowByTitle(substring)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// WindowInfo returns the frame-inclusive bounds and client size of a window.
func (b *LinuxBackend) WindowInfo(windowID WindowID) (Window, error) {
	conn, err := b.connection()
	if err != nil {
		return Window{}, err
	}

	g, err := conn.WindowGeometry(xproto.Window(windowID))
	if err != nil {
		return Window{}, err
	}

	return Window{
		ID:     windowID,
		Title:  conn.WindowTitle(xproto.Window(windowID)),
		Bounds: frameBounds(g),
		Client: Size{Width: g.Width, Height: g.Height},
	}, nil
}

// MoveWindow moves the window frame's top-left corner to the given point.
func (b *LinuxBackend) MoveWindow(windowID WindowID, to Point) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveWindow(xproto.Window(windowID), to.X, to.Y)
}

// ResizeClient resizes the client area of a window.
func (b *LinuxBackend) ResizeClient(windowID WindowID, size Size) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ResizeClient(xproto.Window(windowID), size.Width, size.Height)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) displayFromMonitor(m x11.Monitor, primary float64) Display {
	d := Display{
		Handle:  MonitorHandle(m.ID),
		Name:    m.Name,
		Bounds:  RectFromXYWH(m.X, m.Y, m.Width, m.Height),
		WidthMM: m.WidthMM,
	}
	if override, ok := b.opts.Overrides[m.Name]; ok && override > 0 {
		d.DPI = override
		return d
	}
	d.DPI = SnapDPI(PhysicalDPI(m.Width, m.WidthMM), b.opts.DPISnap)
	if d.DPI == 0 {
		d.DPI = primary
	}
	return d
}

func frameBounds(g x11.Geometry) Rect {
	return Rect{
		Left:   g.X - g.FrameLeft,
		Top:    g.Y - g.FrameTop,
		Right:  g.X + g.Width + g.FrameRight,
		Bottom: g.Y + g.Height + g.FrameBottom,
	}
}
