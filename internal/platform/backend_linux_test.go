//go:build linux

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/dpiwatch/internal/x11"
)

func TestDisplayFromMonitor(t *testing.T) {
	b := NewLinuxBackend(nil, LinuxOptions{
		DPISnap:   24,
		Overrides: map[string]float64{"HDMI-1": 120},
	})

	// 3840px over 600mm is ~162.6 DPI, which snaps to 168.
	d := b.displayFromMonitor(x11.Monitor{ID: 63, Name: "DP-1", X: 1920, Width: 3840, Height: 2160, WidthMM: 600}, 96)
	assert.Equal(t, MonitorHandle(63), d.Handle)
	assert.Equal(t, Rect{Left: 1920, Top: 0, Right: 5760, Bottom: 2160}, d.Bounds)
	assert.Equal(t, 168.0, d.DPI)

	d = b.displayFromMonitor(x11.Monitor{ID: 64, Name: "HDMI-1", Width: 1920, Height: 1080, WidthMM: 510}, 96)
	assert.Equal(t, 120.0, d.DPI, "override wins")

	d = b.displayFromMonitor(x11.Monitor{ID: 65, Name: "VIRTUAL-1", Width: 1024, Height: 768}, 72)
	assert.Equal(t, 72.0, d.DPI, "unknown physical size uses the screen DPI")
}

func TestFrameBounds(t *testing.T) {
	g := x11.Geometry{X: 110, Y: 130, Width: 400, Height: 300, FrameLeft: 2, FrameRight: 2, FrameTop: 28, FrameBottom: 2}

	assert.Equal(t, Rect{Left: 108, Top: 102, Right: 512, Bottom: 432}, frameBounds(g))
}

func TestNilBackend(t *testing.T) {
	var b *LinuxBackend
	_, err := b.Displays()
	assert.Error(t, err)
	_, ok := b.MonitorFromPoint(Point{})
	assert.False(t, ok)
}
