package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpiwatch/internal/ipc"
	"github.com/1broseidon/dpiwatch/internal/platform"
)

type staticDisplays struct {
	displays []platform.Display
	err      error
}

func (s staticDisplays) Displays() ([]platform.Display, error) { return s.displays, s.err }

type staticStatus struct {
	st  ipc.StatusData
	err error
}

func (s staticStatus) GetStatus() (*ipc.StatusData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.st, nil
}

// highLow puts a 144 DPI monitor left of a 96 DPI one.
var highLow = []platform.Display{
	{Handle: 1, Name: "eDP-1", Bounds: platform.Rect{Right: 1920, Bottom: 1080}, DPI: 144},
	{Handle: 2, Name: "HDMI-1", Bounds: platform.Rect{Left: 1920, Right: 3840, Bottom: 1080}, DPI: 96},
}

func TestPlanRelocation(t *testing.T) {
	tests := []struct {
		name string
		in   PlanRelocationInput
		want PlanRelocationOutput
	}{
		{
			name: "right-top anchor",
			in:   PlanRelocationInput{Left: 1700, Top: 100, Right: 2100, Bottom: 400, OldDPI: 96, NewDPI: 144},
			want: PlanRelocationOutput{
				Found: true, Anchor: "right-top",
				Left: 1500, Top: 100, Right: 2100, Bottom: 550,
				Monitor: 1, WidthDelta: 200, HeightDelta: 150, Factor: 1.5,
			},
		},
		{
			name: "no monitor at target",
			in:   PlanRelocationInput{Left: 2000, Top: 100, Right: 2400, Bottom: 400, OldDPI: 96, NewDPI: 192},
			want: PlanRelocationOutput{
				Left: 2000, Top: 100, Right: 2800, Bottom: 700,
				WidthDelta: 400, HeightDelta: 300, Factor: 2,
			},
		},
		{
			name: "explicit client size",
			in: PlanRelocationInput{
				Left: 100, Top: 100, Right: 504, Bottom: 430,
				ClientWidth: 400, ClientHeight: 300, OldDPI: 144, NewDPI: 96,
			},
			want: PlanRelocationOutput{
				Left: 100, Top: 100, Right: 371, Bottom: 330,
				WidthDelta: -133, HeightDelta: -100, Factor: 96.0 / 144.0,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanRelocation(platform.Layout(highLow), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanRelocationRejectsBadInput(t *testing.T) {
	_, err := PlanRelocation(platform.Layout(highLow), PlanRelocationInput{Left: 10, Right: 10, Bottom: 10, OldDPI: 96, NewDPI: 144})
	assert.Error(t, err)

	_, err = PlanRelocation(platform.Layout(highLow), PlanRelocationInput{Right: 10, Bottom: 10, NewDPI: 144})
	assert.Error(t, err)
}

func TestHandleListMonitors(t *testing.T) {
	s := NewServer(staticDisplays{displays: highLow}, nil)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	require.NoError(t, err)
	require.Len(t, out.Monitors, 2)
	assert.Equal(t, "HDMI-1", out.Monitors[1].Name)
	assert.Equal(t, 96.0, out.Monitors[1].DPI)

	s = NewServer(staticDisplays{err: errors.New("no display")}, nil)
	_, _, err = s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	assert.Error(t, err)
}

func TestHandlePlanRelocation(t *testing.T) {
	s := NewServer(staticDisplays{displays: highLow}, nil)

	_, out, err := s.handlePlanRelocation(context.Background(), nil, PlanRelocationInput{
		Left: 100, Top: 100, Right: 500, Bottom: 400, OldDPI: 96, NewDPI: 144,
	})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "left-top", out.Anchor)
}

func TestHandleGetStatus(t *testing.T) {
	s := NewServer(staticDisplays{}, staticStatus{st: ipc.StatusData{WindowID: 9, NewDPI: 144}})

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	require.NoError(t, err)
	assert.Equal(t, uint32(9), out.WindowID)

	s = NewServer(staticDisplays{}, staticStatus{err: errors.New("not running")})
	_, _, err = s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	assert.Error(t, err)
}
