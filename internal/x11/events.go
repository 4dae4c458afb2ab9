package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WatchWindow calls onConfigure whenever the window is moved or resized.
// Callbacks run on the EventLoop goroutine.
func (c *Connection) WatchWindow(windowID xproto.Window, onConfigure func()) error {
	win := xwindow.New(c.XUtil, windowID)
	if err := win.Listen(xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on window 0x%x: %w", windowID, err)
	}

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		onConfigure()
	}).Connect(c.XUtil, windowID)
	return nil
}

// WatchScreenChanges calls onChange when the monitor layout or a mode
// changes. Callbacks run on the EventLoop goroutine.
func (c *Connection) WatchScreenChanges(onChange func()) error {
	mask := uint16(randr.NotifyMaskScreenChange | randr.NotifyMaskCrtcChange | randr.NotifyMaskOutputChange)
	if err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, mask).Check(); err != nil {
		return fmt.Errorf("failed to select randr events: %w", err)
	}

	// xevent has no typed callbacks for extension events.
	xevent.HookFun(func(_ *xgbutil.XUtil, ev interface{}) bool {
		switch ev.(type) {
		case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
			onChange()
		}
		return true
	}).Connect(c.XUtil)
	return nil
}
