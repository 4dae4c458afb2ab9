// Package dpi keeps a top-level window consistent when the DPI of the monitor
// it lives on changes. It decides when to rescale, where to put the window
// across monitor boundaries, and rescales the window's visual tree.
package dpi

import "fmt"

// DesignDPI is the DPI visual trees are laid out at.
const DesignDPI = 96.0

// ResizeMethod selects how the controller reacts to DPI-change notifications.
type ResizeMethod int

const (
	// Immediate relocates and rescales on every notification, even mid-drag.
	Immediate ResizeMethod = iota
	// Delayed defers the adjustment while the window is being dragged.
	Delayed
)

func (m ResizeMethod) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Delayed:
		return "delayed"
	default:
		return fmt.Sprintf("ResizeMethod(%d)", int(m))
	}
}

// ScaleState holds the last applied DPI and the most recently observed one.
// Old == 0 means the window has not been loaded yet.
type ScaleState struct {
	Old float64
	New float64
}

// Initialized reports whether a baseline DPI has been recorded.
func (s ScaleState) Initialized() bool { return s.Old != 0 }

// Pending reports whether the observed DPI differs from the applied one.
func (s ScaleState) Pending() bool { return s.Initialized() && s.Old != s.New }

// MovementState tracks user-driven move/resize.
type MovementState struct {
	// BeingMoved is true between move/resize begin and end.
	BeingMoved bool
	// PendingAdjustment is set when a DPI change arrived mid-drag under the
	// Delayed method and has not been applied yet.
	PendingAdjustment bool
}

// Phase names the controller state derived from MovementState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseDraggingPending
	// PhasePending is a deferred adjustment that outlived its drag.
	PhasePending
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseDraggingPending:
		return "dragging+pending"
	case PhasePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Phase returns the state machine phase.
func (m MovementState) Phase() Phase {
	switch {
	case m.BeingMoved && m.PendingAdjustment:
		return PhaseDraggingPending
	case m.BeingMoved:
		return PhaseDragging
	case m.PendingAdjustment:
		return PhasePending
	default:
		return PhaseIdle
	}
}

// State is a value snapshot of a Controller.
type State struct {
	Method      ResizeMethod
	Scale       ScaleState
	Movement    MovementState
	Factor      float64
	Adjustments int
}
