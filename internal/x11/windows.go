package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowInfo holds the raw per-window attributes the resolver needs.
type WindowInfo struct {
	ID        uint32
	Title     string
	Class     string
	X         int
	Y         int
	Width     int
	Height    int
	Moveable  bool
	Resizable bool
}

// ListWindows returns attributes for all normal windows on the current
// virtual desktop, in EWMH client-list order.
func (c *Connection) ListWindows() ([]WindowInfo, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(c.XUtil)
	hasCurrentDesktop := desktopErr == nil

	windows := make([]WindowInfo, 0, len(clients))
	for _, windowID := range clients {
		if !c.IsNormalWindow(windowID) {
			continue
		}

		if hasCurrentDesktop {
			desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
			if err == nil && desktop != uint(0xFFFFFFFF) && desktop != currentDesktop {
				continue
			}
		}

		if c.isHiddenOrFullscreen(windowID) {
			continue
		}

		rect, ok := c.windowRect(windowID)
		if !ok {
			continue
		}

		moveable, resizable := c.allowedActions(windowID)

		windows = append(windows, WindowInfo{
			ID:        uint32(windowID),
			Title:     c.windowTitle(windowID),
			Class:     c.windowClass(windowID),
			X:         rect.x,
			Y:         rect.y,
			Width:     rect.width,
			Height:    rect.height,
			Moveable:  moveable,
			Resizable: resizable,
		})
	}

	return windows, nil
}

// GetWindow returns attributes for a single window.
func (c *Connection) GetWindow(windowID uint32) (WindowInfo, bool) {
	rect, ok := c.windowRect(xproto.Window(windowID))
	if !ok {
		return WindowInfo{}, false
	}
	moveable, resizable := c.allowedActions(xproto.Window(windowID))
	return WindowInfo{
		ID:        windowID,
		Title:     c.windowTitle(xproto.Window(windowID)),
		Class:     c.windowClass(xproto.Window(windowID)),
		X:         rect.x,
		Y:         rect.y,
		Width:     rect.width,
		Height:    rect.height,
		Moveable:  moveable,
		Resizable: resizable,
	}, true
}

// GetActiveWindow returns the focused window ID.
func (c *Connection) GetActiveWindow() (uint32, error) {
	wid, err := ewmh.ActiveWindowGet(c.XUtil)
	return uint32(wid), err
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID uint32, x, y, width, height int) error {
	// Maximized windows ignore move requests; drop the state first.
	c.unmaximizeWindow(xproto.Window(windowID))

	err := ewmh.MoveresizeWindow(c.XUtil, xproto.Window(windowID), x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation
		win := xwindow.New(c.XUtil, xproto.Window(windowID))
		win.MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, 0, state)
		}
	}
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	return len(types) == 0
}

// allowedActions reads _NET_WM_ALLOWED_ACTIONS. Windows without the property
// are assumed moveable and resizable.
func (c *Connection) allowedActions(windowID xproto.Window) (moveable, resizable bool) {
	actions, err := ewmh.WmAllowedActionsGet(c.XUtil, windowID)
	if err != nil || len(actions) == 0 {
		return true, true
	}
	for _, a := range actions {
		switch a {
		case "_NET_WM_ACTION_MOVE":
			moveable = true
		case "_NET_WM_ACTION_RESIZE":
			resizable = true
		}
	}
	return moveable, resizable
}

func (c *Connection) isHiddenOrFullscreen(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" || state == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

type rawRect struct {
	x      int
	y      int
	width  int
	height int
}

func (c *Connection) windowRect(windowID xproto.Window) (rawRect, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return rawRect{}, false
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return rawRect{}, false
	}

	return rawRect{
		x:      int(translate.DstX),
		y:      int(translate.DstY),
		width:  int(geom.Width),
		height: int(geom.Height),
	}, true
}

func (c *Connection) windowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
