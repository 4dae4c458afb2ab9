package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dpiwatch/internal/dpi"
	"github.com/1broseidon/dpiwatch/internal/ipc"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

const (
	ServerName    = "dpiwatch"
	ServerVersion = "0.1.0"
)

// DisplayLister lists the connected monitors.
type DisplayLister interface {
	Displays() ([]platform.Display, error)
}

// StatusFetcher reads the state of a running watcher.
type StatusFetcher interface {
	GetStatus() (*ipc.StatusData, error)
}

// Server exposes monitor and relocation queries as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	displays  DisplayLister
	status    StatusFetcher
}

// NewServer creates an MCP server. status may be nil, in which case the
// get_status tool is not offered.
func NewServer(displays DisplayLister, status StatusFetcher) *Server {
	s := &Server{
		displays: displays,
		status:   status,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their bounds and effective DPI.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "plan_relocation",
		Description: "Compute where a window would be moved when its DPI changes from old_dpi to new_dpi, using the current monitor layout.",
	}, s.handlePlanRelocation)

	if s.status != nil {
		mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
			Name:        "get_status",
			Description: "Report the DPI state of the window watched by a running 'dpiwatch watch'.",
		}, s.handleGetStatus)
	}
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	displays, err := s.displays.Displays()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("failed to list monitors: %w", err)
	}
	return nil, ListMonitorsOutput{Monitors: ipc.MonitorInfos(displays)}, nil
}

func (s *Server) handlePlanRelocation(_ context.Context, _ *mcpsdk.CallToolRequest, in PlanRelocationInput) (*mcpsdk.CallToolResult, PlanRelocationOutput, error) {
	displays, err := s.displays.Displays()
	if err != nil {
		return nil, PlanRelocationOutput{}, fmt.Errorf("failed to list monitors: %w", err)
	}
	out, err := PlanRelocation(platform.Layout(displays), in)
	if err != nil {
		return nil, PlanRelocationOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, ipc.StatusData, error) {
	st, err := s.status.GetStatus()
	if err != nil {
		return nil, ipc.StatusData{}, err
	}
	return nil, *st, nil
}

// PlanRelocation runs the relocation planner against a monitor layout.
func PlanRelocation(layout platform.Layout, in PlanRelocationInput) (PlanRelocationOutput, error) {
	bounds := platform.Rect{Left: in.Left, Top: in.Top, Right: in.Right, Bottom: in.Bottom}
	if bounds.Empty() {
		return PlanRelocationOutput{}, fmt.Errorf("window rectangle %+v is empty", bounds)
	}
	if in.OldDPI <= 0 || in.NewDPI <= 0 {
		return PlanRelocationOutput{}, fmt.Errorf("old_dpi and new_dpi must be positive")
	}

	client := platform.Size{Width: in.ClientWidth, Height: in.ClientHeight}
	if client.Width <= 0 {
		client.Width = bounds.Width()
	}
	if client.Height <= 0 {
		client.Height = bounds.Height()
	}

	dw, dh := dpi.SizeDelta(in.OldDPI, in.NewDPI, client)
	out := PlanRelocationOutput{
		Left:        bounds.Left,
		Top:         bounds.Top,
		Right:       bounds.Right + dw,
		Bottom:      bounds.Bottom + dh,
		WidthDelta:  dw,
		HeightDelta: dh,
		Factor:      in.NewDPI / in.OldDPI,
	}

	planner := dpi.NewPlanner(layout, dpi.NewProvider(layout))
	plan, err := planner.Relocate(in.OldDPI, in.NewDPI, bounds, client)
	switch {
	case errors.Is(err, dpi.ErrNoMatchingMonitor), errors.Is(err, dpi.ErrNoChange):
		return out, nil
	case err != nil:
		return PlanRelocationOutput{}, err
	}

	out.Found = true
	out.Anchor = plan.Anchor.String()
	out.Left, out.Top = plan.Rect.Left, plan.Rect.Top
	out.Right, out.Bottom = plan.Rect.Right, plan.Rect.Bottom
	out.Monitor = uint32(plan.Monitor)
	return out, nil
}
