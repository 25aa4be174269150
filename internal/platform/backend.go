package platform

import (
	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
)

// Backend abstracts the window-system operations the engine consumes: window
// enumeration, active-window lookup, work-area metrics, and window movement.
type Backend interface {
	// ListWindows returns all windows on the active virtual desktop.
	ListWindows() ([]inventory.Window, error)
	// ActiveWindow returns the focused window, or nil when none is focused.
	ActiveWindow() (*inventory.Window, error)
	// WorkArea returns the usable work area of the active display.
	WorkArea() (geometry.Area, error)
	// DisplayMetrics returns the raw display geometry, the fallback when no
	// work area is resolvable.
	DisplayMetrics() (geometry.Area, error)
	// MoveResize applies target bounds to one window.
	MoveResize(id string, bounds geometry.Rect) error
}
