//go:build linux

package platform

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/x11"
)

// LinuxBackend implements Backend over an X11 connection.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// ListWindows returns all normal windows on the current virtual desktop.
func (b *LinuxBackend) ListWindows() ([]inventory.Window, error) {
	infos, err := b.conn.ListWindows()
	if err != nil {
		return nil, err
	}

	windows := make([]inventory.Window, 0, len(infos))
	for _, info := range infos {
		windows = append(windows, windowFromInfo(info))
	}
	return windows, nil
}

// ActiveWindow returns the focused window, or nil when none is focused.
func (b *LinuxBackend) ActiveWindow() (*inventory.Window, error) {
	wid, err := b.conn.GetActiveWindow()
	if err != nil || wid == 0 {
		return nil, err
	}

	info, ok := b.conn.GetWindow(wid)
	if !ok {
		return nil, nil
	}
	win := windowFromInfo(info)
	return &win, nil
}

// WorkArea returns the usable work area of the active display.
func (b *LinuxBackend) WorkArea() (geometry.Area, error) {
	x, y, width, height, err := b.conn.GetWorkArea()
	if err != nil {
		return geometry.Area{}, err
	}
	return geometry.Area{Left: x, Top: y, Width: width, Height: height}, nil
}

// DisplayMetrics returns the root window geometry.
func (b *LinuxBackend) DisplayMetrics() (geometry.Area, error) {
	x, y, width, height, err := b.conn.RootGeometry()
	if err != nil {
		return geometry.Area{}, err
	}
	return geometry.Area{Left: x, Top: y, Width: width, Height: height}, nil
}

// MoveResize applies target bounds to one window.
func (b *LinuxBackend) MoveResize(id string, bounds geometry.Rect) error {
	wid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid window id %q: %w", id, err)
	}
	return b.conn.MoveResizeWindow(uint32(wid), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func windowFromInfo(info x11.WindowInfo) inventory.Window {
	return inventory.Window{
		ID:           strconv.FormatUint(uint64(info.ID), 10),
		Title:        info.Title,
		AppName:      info.Class,
		Bounds:       geometry.Rect{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height},
		Positionable: info.Moveable,
		Resizable:    info.Resizable,
	}
}
