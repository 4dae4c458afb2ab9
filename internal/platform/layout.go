package platform

import "fmt"

// Layout is a fixed snapshot of the monitor layout. It answers the same
// monitor and DPI queries as a live backend, without a display server.
type Layout []Display

func (l Layout) MonitorFromRect(r Rect) (MonitorHandle, bool) {
	d, ok := DisplayFromRect(l, r)
	return d.Handle, ok
}

func (l Layout) MonitorFromPoint(p Point) (MonitorHandle, bool) {
	d, ok := DisplayFromPoint(l, p)
	return d.Handle, ok
}

// MonitorFromWindow always fails: a snapshot knows no windows.
func (l Layout) MonitorFromWindow(WindowID) (MonitorHandle, bool) {
	return 0, false
}

func (l Layout) MonitorDPI(handle MonitorHandle) (float64, error) {
	d, ok := FindDisplay(l, handle)
	if !ok {
		return 0, fmt.Errorf("monitor %d not found", handle)
	}
	return d.DPI, nil
}

// PrimaryDeviceDPI returns the DPI of the first display.
func (l Layout) PrimaryDeviceDPI() (float64, error) {
	if len(l) == 0 {
		return 0, fmt.Errorf("no displays")
	}
	return l[0].DPI, nil
}

func (l Layout) PerMonitorDPISupported() (bool, error) { return true, nil }
