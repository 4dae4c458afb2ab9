package mcp

import "github.com/1broseidon/dpiwatch/internal/ipc"

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []ipc.MonitorInfo `json:"monitors"`
}

// PlanRelocationInput is the input for the plan_relocation tool.
type PlanRelocationInput struct {
	Left         int     `json:"left" jsonschema:"Left edge of the window frame in screen pixels"`
	Top          int     `json:"top" jsonschema:"Top edge of the window frame in screen pixels"`
	Right        int     `json:"right" jsonschema:"Right edge of the window frame (exclusive)"`
	Bottom       int     `json:"bottom" jsonschema:"Bottom edge of the window frame (exclusive)"`
	ClientWidth  int     `json:"client_width,omitempty" jsonschema:"Client area width; defaults to the frame width"`
	ClientHeight int     `json:"client_height,omitempty" jsonschema:"Client area height; defaults to the frame height"`
	OldDPI       float64 `json:"old_dpi" jsonschema:"DPI the window is currently laid out at"`
	NewDPI       float64 `json:"new_dpi" jsonschema:"DPI the window should be adapted to"`
}

// PlanRelocationOutput is the output for the plan_relocation tool.
type PlanRelocationOutput struct {
	// Found is false when no candidate lands on a monitor at new_dpi; the
	// window would then be rescaled in place.
	Found       bool    `json:"found"`
	Anchor      string  `json:"anchor,omitempty"`
	Left        int     `json:"left"`
	Top         int     `json:"top"`
	Right       int     `json:"right"`
	Bottom      int     `json:"bottom"`
	Monitor     uint32  `json:"monitor,omitempty"`
	WidthDelta  int     `json:"width_delta"`
	HeightDelta int     `json:"height_delta"`
	Factor      float64 `json:"factor"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}
