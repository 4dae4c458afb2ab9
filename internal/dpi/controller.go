package dpi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/dpiwatch/internal/platform"
)

// Window is the top-level window a controller adapts.
type Window interface {
	ID() platform.WindowID
	// Bounds returns the outer window rectangle, decorations included.
	Bounds() (platform.Rect, error)
	ClientSize() (platform.Size, error)
	MoveTo(p platform.Point) error
	// BaselineDPI is the DPI the toolkit laid the window out at.
	BaselineDPI() float64
	// Root is the visual tree rescaled on every adjustment.
	Root() Node
}

// Options configures a Controller.
type Options struct {
	Method ResizeMethod
	// DesignMode makes the controller ignore every event (editor hosts).
	DesignMode bool
	Logger     *slog.Logger
	// OnFactorChanged is called after an adjustment changes Factor.
	OnFactorChanged func(factor float64)
}

// Controller is the DPI adaptation state machine for one window. All
// handlers must be called from the host's single event loop.
type Controller struct {
	method          ResizeMethod
	designMode      bool
	window          Window
	provider        *Provider
	planner         *Planner
	scaler          *Scaler
	logger          *slog.Logger
	onFactorChanged func(float64)

	scale       ScaleState
	move        MovementState
	factor      float64
	adjustments int
}

// NewController creates a controller in the Idle state with an uninitialized
// baseline. Call HandleLoad once the window has been laid out.
func NewController(window Window, display Display, toolkit TreeScaler, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	provider := NewProvider(display)
	return &Controller{
		method:          opts.Method,
		designMode:      opts.DesignMode,
		window:          window,
		provider:        provider,
		planner:         NewPlanner(display, provider),
		scaler:          NewScaler(toolkit),
		logger:          logger.With("window_id", uint32(window.ID())),
		onFactorChanged: opts.OnFactorChanged,
		factor:          1,
	}
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Method:      c.method,
		Scale:       c.scale,
		Movement:    c.move,
		Factor:      c.factor,
		Adjustments: c.adjustments,
	}
}

// Factor is the applied DPI relative to DesignDPI.
func (c *Controller) Factor() float64 { return c.factor }

// HandleLoad initializes the baseline from the toolkit and the current
// monitor, then runs one adjustment pass so windows created on a high-DPI
// monitor come up at the right size.
func (c *Controller) HandleLoad() {
	if c.designMode {
		return
	}

	baseline := c.window.BaselineDPI()
	current, err := c.windowDPI()
	if err != nil {
		c.logger.Warn("load: failed to query window DPI", "error", err)
		return
	}
	c.scale = ScaleState{Old: baseline, New: current}
	c.factor = baseline / DesignDPI
	c.logger.Debug("load", "old_dpi", c.scale.Old, "new_dpi", c.scale.New)

	c.adjust(false, "load")
}

// HandleDPIChanged processes a DPI-change notification. The suggested
// rectangle from the display server is not used; the controller plans its
// own geometry.
func (c *Controller) HandleDPIChanged(newDPI float64, suggested platform.Rect) {
	if c.designMode {
		return
	}
	if !c.provider.Supported() {
		c.logger.Debug("dpi change ignored: per-monitor DPI unsupported")
		return
	}

	c.scale.New = newDPI
	c.logger.Debug("dpi changed",
		"old_dpi", c.scale.Old,
		"new_dpi", newDPI,
		"phase", c.move.Phase().String(),
		"suggested", suggested)

	if newDPI == c.scale.Old {
		if c.move.PendingAdjustment {
			c.move.PendingAdjustment = false
			c.logger.Debug("pending adjustment cleared: dpi back to baseline")
		}
		return
	}

	switch c.method {
	case Immediate:
		c.adjust(true, "dpi-changed")
	case Delayed:
		if c.move.BeingMoved {
			c.move.PendingAdjustment = true
			c.logger.Debug("adjustment deferred until the window settles", "target_dpi", newDPI)
			return
		}
		c.adjust(false, "dpi-changed")
	}
}

// HandleMoveBegin records the start of a user move/resize.
func (c *Controller) HandleMoveBegin() {
	if c.designMode {
		return
	}
	c.move.BeingMoved = true
}

// HandleMoveEnd records the end of a user move/resize. A pending adjustment
// survives; a later move or DPI notification resolves it.
func (c *Controller) HandleMoveEnd() {
	if c.designMode {
		return
	}
	c.move.BeingMoved = false
}

// HandleMove applies a pending adjustment once the window sits on a monitor
// running at the pending DPI.
func (c *Controller) HandleMove() {
	if c.designMode || !c.move.PendingAdjustment {
		return
	}

	bounds, client, err := c.geometry()
	if err != nil {
		c.logger.Debug("move: failed to read window geometry", "error", err)
		return
	}
	plan, err := c.planner.CheckLocation(c.scale.Old, c.scale.New, bounds, client)
	if err != nil {
		if !errors.Is(err, ErrNoMatchingMonitor) && !errors.Is(err, ErrNoChange) {
			c.logger.Debug("move: location check failed", "error", err)
		}
		return
	}

	c.logger.Debug("deferred adjustment ready", "monitor", uint32(plan.Monitor))
	c.adjust(false, "deferred")
}

// adjust runs one adjustment pass and logs its outcome.
func (c *Controller) adjust(relocate bool, reason string) {
	before := c.scale
	err := c.adjustWindow(relocate)
	switch {
	case err == nil:
		c.logger.Info("window adjusted",
			"reason", reason,
			"old_dpi", before.Old,
			"new_dpi", before.New,
			"factor", c.factor)
	case errors.Is(err, ErrNoChange):
		c.logger.Debug("adjustment skipped", "reason", reason, "old_dpi", before.Old, "new_dpi", before.New)
	default:
		c.logger.Warn("adjustment abandoned", "reason", reason, "error", err)
	}
}

// adjustWindow relocates the window (when asked) and rescales its visual
// tree. ScaleState moves to the new DPI only when the whole pass succeeds.
func (c *Controller) adjustWindow(relocate bool) error {
	if c.scale.Old == 0 || c.scale.Old == c.scale.New {
		return ErrNoChange
	}
	factor := c.scale.New / c.scale.Old

	var (
		origin platform.Point
		moved  bool
	)
	if relocate {
		var err error
		if origin, moved, err = c.relocate(); err != nil {
			return err
		}
	}

	explicit, err := c.scaler.Scale(c.window.Root(), factor)
	if err != nil {
		if moved {
			c.restore(origin)
		}
		return err
	}
	c.logger.Debug("visual tree scaled", "factor", factor, "explicit_fonts", explicit)

	c.scale.Old = c.scale.New
	c.move.PendingAdjustment = false
	c.adjustments++
	c.setFactor(c.scale.New / DesignDPI)
	return nil
}

// relocate moves the window to the planned position and returns where it
// was. Not finding a target monitor is not an error: the window is then
// rescaled in place.
func (c *Controller) relocate() (platform.Point, bool, error) {
	bounds, client, err := c.geometry()
	if err != nil {
		return platform.Point{}, false, err
	}
	origin := bounds.TopLeft()

	plan, err := c.planner.Relocate(c.scale.Old, c.scale.New, bounds, client)
	if errors.Is(err, ErrNoMatchingMonitor) {
		c.logger.Debug("no relocation target, scaling in place", "bounds", bounds)
		return origin, false, nil
	}
	if err != nil {
		return origin, false, fmt.Errorf("relocation planning failed: %w", err)
	}

	to := plan.Position()
	if to == origin {
		return origin, false, nil
	}
	if err := c.window.MoveTo(to); err != nil {
		return origin, false, fmt.Errorf("failed to move window: %w", err)
	}
	c.logger.Debug("window relocated", "anchor", plan.Anchor.String(), "x", to.X, "y", to.Y)
	return origin, true, nil
}

// restore puts a relocated window back after the scale pass failed.
func (c *Controller) restore(origin platform.Point) {
	if err := c.window.MoveTo(origin); err != nil {
		c.logger.Warn("failed to restore window position", "x", origin.X, "y", origin.Y, "error", err)
	}
}

func (c *Controller) geometry() (platform.Rect, platform.Size, error) {
	bounds, err := c.window.Bounds()
	if err != nil {
		return platform.Rect{}, platform.Size{}, fmt.Errorf("failed to read window bounds: %w", err)
	}
	client, err := c.window.ClientSize()
	if err != nil {
		return platform.Rect{}, platform.Size{}, fmt.Errorf("failed to read client size: %w", err)
	}
	return bounds, client, nil
}

// windowDPI returns the DPI of the window's monitor, or the toolkit
// baseline when per-monitor DPI is unavailable.
func (c *Controller) windowDPI() (float64, error) {
	if !c.provider.Supported() {
		return c.window.BaselineDPI(), nil
	}
	return c.provider.QueryWindowMonitorScale(c.window.ID())
}

func (c *Controller) setFactor(factor float64) {
	if c.factor == factor {
		return
	}
	c.factor = factor
	if c.onFactorChanged != nil {
		c.onFactorChanged(factor)
	}
}
