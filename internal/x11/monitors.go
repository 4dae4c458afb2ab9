package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display driven by one CRTC
type Monitor struct {
	// ID is the CRTC resource id; never zero.
	ID       uint32
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	WidthMM  int
	HeightMM int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		m := Monitor{
			ID:     uint32(crtc),
			Name:   fmt.Sprintf("Monitor%d", i),
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}

		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			m.Name = string(outputInfo.Name)
			m.WidthMM, m.HeightMM = physicalSize(crtcInfo.Rotation, outputInfo.MmWidth, outputInfo.MmHeight)
		}

		monitors = append(monitors, m)
	}

	return monitors, nil
}

// physicalSize swaps the output's millimetre dimensions when the CRTC is
// rotated a quarter turn, so width always matches the horizontal pixels.
func physicalSize(rotation uint16, mmWidth, mmHeight uint32) (int, int) {
	if rotation&(randr.RotationRotate90|randr.RotationRotate270) != 0 {
		return int(mmHeight), int(mmWidth)
	}
	return int(mmWidth), int(mmHeight)
}

// PointerState reports the pointer position and whether the primary button
// is held.
func (c *Connection) PointerState() (x, y int, button1 bool, err error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to query pointer: %w", err)
	}
	held := pointer.Mask&xproto.KeyButMaskButton1 != 0
	return int(pointer.RootX), int(pointer.RootY), held, nil
}
