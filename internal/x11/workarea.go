package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// GetWorkArea returns the usable work area of the active monitor: the monitor
// geometry intersected with the EWMH work area for the current desktop, which
// excludes panels and docks.
func (c *Connection) GetWorkArea() (x, y, width, height int, err error) {
	mon, err := c.activeMonitor()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	x, y, width, height = mon.X, mon.Y, mon.Width, mon.Height

	workArea, waErr := ewmh.WorkareaGet(c.XUtil)
	if waErr != nil || len(workArea) == 0 {
		return x, y, width, height, nil
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	x1 := max(x, int(wa.X))
	y1 := max(y, int(wa.Y))
	x2 := min(x+width, int(wa.X)+int(wa.Width))
	y2 := min(y+height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		return x1, y1, x2 - x1, y2 - y1, nil
	}
	return x, y, width, height, nil
}

// activeMonitor picks the monitor containing the focused window, falling back
// to the monitor under the pointer, then the first monitor.
func (c *Connection) activeMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	if activeWin, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && activeWin != 0 {
		if rect, ok := c.windowRect(activeWin); ok {
			cx := rect.x + rect.width/2
			cy := rect.y + rect.height/2
			for _, mon := range monitors {
				if cx >= mon.X && cx < mon.X+mon.Width && cy >= mon.Y && cy < mon.Y+mon.Height {
					return mon, nil
				}
			}
		}
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		px, py := int(pointer.RootX), int(pointer.RootY)
		for _, mon := range monitors {
			if px >= mon.X && px < mon.X+mon.Width && py >= mon.Y && py < mon.Y+mon.Height {
				return mon, nil
			}
		}
	}

	return monitors[0], nil
}
