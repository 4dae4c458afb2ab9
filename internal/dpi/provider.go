package dpi

import (
	"fmt"

	"github.com/1broseidon/dpiwatch/internal/platform"
)

// MonitorLocator resolves monitors from screen geometry.
type MonitorLocator interface {
	// MonitorFromRect returns the monitor with the largest intersection with r.
	MonitorFromRect(r platform.Rect) (platform.MonitorHandle, bool)
	// MonitorFromPoint returns the monitor containing p.
	MonitorFromPoint(p platform.Point) (platform.MonitorHandle, bool)
	// MonitorFromWindow returns the monitor containing or nearest to a window.
	MonitorFromWindow(windowID platform.WindowID) (platform.MonitorHandle, bool)
}

// DPISource answers raw DPI queries against the display server.
type DPISource interface {
	MonitorDPI(handle platform.MonitorHandle) (float64, error)
	PrimaryDeviceDPI() (float64, error)
	PerMonitorDPISupported() (bool, error)
}

// Display is everything the engine needs to know about the monitors.
// platform.Backend satisfies it.
type Display interface {
	MonitorLocator
	DPISource
}

// Provider queries monitor DPI. Results are never cached because the user
// can change display settings at any time; only the version gate is.
type Provider struct {
	source DPISource
	locate MonitorLocator

	gateChecked bool
	supported   bool
	gateErr     error
}

// NewProvider creates a provider over a display.
func NewProvider(display Display) *Provider {
	return &Provider{source: display, locate: display}
}

// Supported reports whether per-monitor DPI queries are available. The
// display server is asked once.
func (p *Provider) Supported() bool {
	if !p.gateChecked {
		p.gateChecked = true
		p.supported, p.gateErr = p.source.PerMonitorDPISupported()
		if p.gateErr != nil {
			p.supported = false
		}
	}
	return p.supported
}

// QueryMonitorScale returns the DPI of a monitor.
func (p *Provider) QueryMonitorScale(handle platform.MonitorHandle) (float64, error) {
	if !p.Supported() {
		if p.gateErr != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, p.gateErr)
		}
		return 0, ErrUnsupportedPlatform
	}
	dpi, err := p.source.MonitorDPI(handle)
	if err != nil {
		return 0, fmt.Errorf("failed to query DPI of monitor %d: %w", handle, err)
	}
	return dpi, nil
}

// QueryWindowMonitorScale returns the DPI of the monitor containing (or
// nearest to) a window. When no monitor can be resolved it falls back to
// the primary device DPI.
func (p *Provider) QueryWindowMonitorScale(windowID platform.WindowID) (float64, error) {
	handle, ok := p.locate.MonitorFromWindow(windowID)
	if !ok {
		return p.QueryPrimaryDeviceScale()
	}
	return p.QueryMonitorScale(handle)
}

// QueryPrimaryDeviceScale returns the coarse DPI of the primary display device.
func (p *Provider) QueryPrimaryDeviceScale() (float64, error) {
	dpi, err := p.source.PrimaryDeviceDPI()
	if err != nil {
		return 0, fmt.Errorf("failed to query primary device DPI: %w", err)
	}
	return dpi, nil
}
