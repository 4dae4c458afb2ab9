package dpi

import (
	"math"

	"github.com/1broseidon/dpiwatch/internal/platform"
)

// Corner is the corner of the window held fixed while it grows or shrinks.
type Corner int

const (
	AnchorLeftTop Corner = iota
	AnchorRightTop
	AnchorLeftBottom
	AnchorRightBottom
)

func (c Corner) String() string {
	switch c {
	case AnchorLeftTop:
		return "left-top"
	case AnchorRightTop:
		return "right-top"
	case AnchorLeftBottom:
		return "left-bottom"
	case AnchorRightBottom:
		return "right-bottom"
	default:
		return "unknown"
	}
}

// Candidate is one anchored guess at the window's rectangle after rescaling.
type Candidate struct {
	Anchor Corner
	Rect   platform.Rect
}

// Plan is an accepted candidate and the monitor it resolved to.
type Plan struct {
	Candidate
	Monitor platform.MonitorHandle
}

// Position returns the top-left point the window should move to.
func (p Plan) Position() platform.Point {
	return p.Rect.TopLeft()
}

// SizeDelta returns how much the client area grows (or shrinks) when going
// from oldDPI to newDPI.
func SizeDelta(oldDPI, newDPI float64, client platform.Size) (int, int) {
	factor := newDPI / oldDPI
	widthDiff := int(math.Round(float64(client.Width)*factor)) - client.Width
	heightDiff := int(math.Round(float64(client.Height)*factor)) - client.Height
	return widthDiff, heightDiff
}

// Candidates returns the four anchored rectangles in selection order.
func Candidates(bounds platform.Rect, widthDiff, heightDiff int) []Candidate {
	return []Candidate{
		{AnchorLeftTop, platform.Rect{
			Left: bounds.Left, Top: bounds.Top,
			Right: bounds.Right + widthDiff, Bottom: bounds.Bottom + heightDiff,
		}},
		{AnchorRightTop, platform.Rect{
			Left: bounds.Left - widthDiff, Top: bounds.Top,
			Right: bounds.Right, Bottom: bounds.Bottom + heightDiff,
		}},
		{AnchorLeftBottom, platform.Rect{
			Left: bounds.Left, Top: bounds.Top - heightDiff,
			Right: bounds.Right + widthDiff, Bottom: bounds.Bottom,
		}},
		{AnchorRightBottom, platform.Rect{
			Left: bounds.Left - widthDiff, Top: bounds.Top - heightDiff,
			Right: bounds.Right, Bottom: bounds.Bottom,
		}},
	}
}

// Planner computes where a window should land after a DPI change.
type Planner struct {
	monitors MonitorLocator
	scales   *Provider
}

// NewPlanner creates a planner. Monitor DPI is read through scales.
func NewPlanner(monitors MonitorLocator, scales *Provider) *Planner {
	return &Planner{monitors: monitors, scales: scales}
}

// Relocate picks the first anchored candidate, in left-top, right-top,
// left-bottom, right-bottom order, that lands on a monitor running at
// newDPI with at least one of its top corners on some monitor.
func (p *Planner) Relocate(oldDPI, newDPI float64, bounds platform.Rect, client platform.Size) (Plan, error) {
	if oldDPI == 0 || oldDPI == newDPI {
		return Plan{}, ErrNoChange
	}

	widthDiff, heightDiff := SizeDelta(oldDPI, newDPI, client)
	for _, c := range Candidates(bounds, widthDiff, heightDiff) {
		handle, ok := p.monitors.MonitorFromRect(c.Rect)
		if !ok {
			continue
		}

		// Reject rectangles that only clip a monitor with their lower half.
		_, leftTop := p.monitors.MonitorFromPoint(c.Rect.TopLeft())
		_, rightTop := p.monitors.MonitorFromPoint(c.Rect.TopRight())
		if !leftTop && !rightTop {
			continue
		}

		ok, err := p.matches(handle, newDPI)
		if err != nil {
			return Plan{}, err
		}
		if ok {
			return Plan{Candidate: c, Monitor: handle}, nil
		}
	}
	return Plan{}, ErrNoMatchingMonitor
}

// CheckLocation reports whether the window, grown from its left-top corner,
// now lies mostly on a monitor running at newDPI.
func (p *Planner) CheckLocation(oldDPI, newDPI float64, bounds platform.Rect, client platform.Size) (Plan, error) {
	if oldDPI == 0 || oldDPI == newDPI {
		return Plan{}, ErrNoChange
	}

	widthDiff, heightDiff := SizeDelta(oldDPI, newDPI, client)
	c := Candidates(bounds, widthDiff, heightDiff)[AnchorLeftTop]

	handle, ok := p.monitors.MonitorFromRect(c.Rect)
	if !ok {
		return Plan{}, ErrNoMatchingMonitor
	}
	ok, err := p.matches(handle, newDPI)
	if err != nil {
		return Plan{}, err
	}
	if !ok {
		return Plan{}, ErrNoMatchingMonitor
	}
	return Plan{Candidate: c, Monitor: handle}, nil
}

func (p *Planner) matches(handle platform.MonitorHandle, target float64) (bool, error) {
	dpi, err := p.scales.QueryMonitorScale(handle)
	if err != nil {
		return false, err
	}
	return dpi == target, nil
}
