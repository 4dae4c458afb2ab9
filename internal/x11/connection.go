package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// RandR 1.2 introduced per-output physical sizes.
const (
	randrMinMajor = 1
	randrMinMinor = 2
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server. An empty display
// name uses $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// RandRVersion returns the RandR version negotiated with the server.
func (c *Connection) RandRVersion() (major, minor uint32, err error) {
	reply, err := randr.QueryVersion(c.XUtil.Conn(), 1, 5).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("randr query version failed: %w", err)
	}
	return reply.MajorVersion, reply.MinorVersion, nil
}

// SupportsPerMonitorDPI reports whether the server can report per-output
// physical sizes.
func (c *Connection) SupportsPerMonitorDPI() (bool, error) {
	major, minor, err := c.RandRVersion()
	if err != nil {
		return false, err
	}
	if major != randrMinMajor {
		return major > randrMinMajor, nil
	}
	return minor >= randrMinMinor, nil
}

// ScreenSize returns the core screen width in pixels and millimetres.
func (c *Connection) ScreenSize() (widthPx, widthMM int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.WidthInMillimeters)
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
