package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhysicalDPI(t *testing.T) {
	// 1920px over 508mm is exactly 96 DPI.
	assert.InDelta(t, 96.0, PhysicalDPI(1920, 508), 1e-9)
	assert.InDelta(t, 144.0, PhysicalDPI(2880, 508), 1e-9)
	assert.Zero(t, PhysicalDPI(1920, 0))
	assert.Zero(t, PhysicalDPI(0, 508))
}

func TestSnapDPI(t *testing.T) {
	tests := []struct {
		dpi, step, want float64
	}{
		{93.4, 24, 96},
		{139.7, 24, 144},
		{108, 24, 120},
		{10, 24, 24},
		{101.6, 0, 102},
		{0, 24, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapDPI(tt.dpi, tt.step), "SnapDPI(%v, %v)", tt.dpi, tt.step)
	}
}

func TestDisplayFromRect(t *testing.T) {
	displays := []Display{
		{Handle: 1, Bounds: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
		{Handle: 2, Bounds: Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}},
	}

	tests := []struct {
		name   string
		rect   Rect
		want   MonitorHandle
		wantOK bool
	}{
		{"inside left", Rect{Left: 100, Top: 100, Right: 500, Bottom: 400}, 1, true},
		{"mostly right", Rect{Left: 1800, Top: 100, Right: 2400, Bottom: 400}, 2, true},
		{"tie keeps first", Rect{Left: 1820, Top: 0, Right: 2020, Bottom: 100}, 1, true},
		{"off screen", Rect{Left: -500, Top: -500, Right: -100, Bottom: -100}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DisplayFromRect(displays, tt.rect)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Handle)
		})
	}
}

func TestDisplayFromPoint_RightEdgeExclusive(t *testing.T) {
	displays := []Display{
		{Handle: 1, Bounds: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
		{Handle: 2, Bounds: Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}},
	}

	d, ok := DisplayFromPoint(displays, Point{X: 1920, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, MonitorHandle(2), d.Handle)

	_, ok = DisplayFromPoint(displays, Point{X: 3840, Y: 0})
	assert.False(t, ok)
}

func TestNearestDisplay(t *testing.T) {
	displays := []Display{
		{Handle: 1, Bounds: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
		{Handle: 2, Bounds: Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}},
	}

	d, ok := NearestDisplay(displays, Rect{Left: 4000, Top: 0, Right: 4200, Bottom: 200})
	assert.True(t, ok)
	assert.Equal(t, MonitorHandle(2), d.Handle)

	_, ok = NearestDisplay(nil, Rect{Right: 10, Bottom: 10})
	assert.False(t, ok)
}

func TestRectIntersect(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	b := Rect{Left: 50, Top: 50, Right: 150, Bottom: 150}

	assert.Equal(t, Rect{Left: 50, Top: 50, Right: 100, Bottom: 100}, a.Intersect(b))
	assert.Equal(t, 2500, a.Intersect(b).Area())
	assert.Equal(t, Rect{}, a.Intersect(Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}))
}
