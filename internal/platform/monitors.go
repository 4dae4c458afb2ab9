package platform

import "math"

// mmPerInch converts physical millimetres to inches.
const mmPerInch = 25.4

// PhysicalDPI computes dots per inch from a pixel width and a physical
// width in millimetres. It returns 0 when the physical size is unknown.
func PhysicalDPI(widthPx, widthMM int) float64 {
	if widthPx <= 0 || widthMM <= 0 {
		return 0
	}
	return float64(widthPx) * mmPerInch / float64(widthMM)
}

// SnapDPI rounds dpi to the nearest multiple of step. A non-positive step
// only rounds to a whole number.
func SnapDPI(dpi, step float64) float64 {
	if dpi <= 0 {
		return 0
	}
	if step <= 0 {
		return math.Round(dpi)
	}
	snapped := step * math.Round(dpi/step)
	if snapped < step {
		return step
	}
	return snapped
}

// FindDisplay returns the display with the given handle.
func FindDisplay(displays []Display, handle MonitorHandle) (Display, bool) {
	for _, d := range displays {
		if d.Handle == handle {
			return d, true
		}
	}
	return Display{}, false
}

// DisplayFromRect returns the display with the largest intersection with r.
// Ties keep the first display in list order. No display is returned when r
// overlaps none of them.
func DisplayFromRect(displays []Display, r Rect) (Display, bool) {
	best := -1
	bestArea := 0
	for i, d := range displays {
		area := d.Bounds.Intersect(r).Area()
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best < 0 {
		return Display{}, false
	}
	return displays[best], true
}

// DisplayFromPoint returns the display containing p.
func DisplayFromPoint(displays []Display, p Point) (Display, bool) {
	for _, d := range displays {
		if d.Bounds.Contains(p) {
			return d, true
		}
	}
	return Display{}, false
}

// NearestDisplay returns the display with the largest intersection with r,
// falling back to the display whose centre is closest to the centre of r.
// It only fails when displays is empty.
func NearestDisplay(displays []Display, r Rect) (Display, bool) {
	if d, ok := DisplayFromRect(displays, r); ok {
		return d, true
	}
	if len(displays) == 0 {
		return Display{}, false
	}

	c := r.Center()
	best := 0
	bestDist := math.MaxFloat64
	for i, d := range displays {
		dc := d.Bounds.Center()
		dx := float64(dc.X - c.X)
		dy := float64(dc.Y - c.Y)
		if dist := dx*dx + dy*dy; dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return displays[best], true
}
