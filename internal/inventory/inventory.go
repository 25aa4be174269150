// Package inventory filters, sorts, and classifies windows for layout
// operations. It owns no window state: everything operates on snapshots
// handed in by an enumeration provider.
package inventory

import (
	"sort"

	"github.com/snapdeck/snapdeck/internal/geometry"
)

// Window is a snapshot of one OS window: identity, geometry, and eligibility
// flags. Owned and mutated externally; this engine only reads it.
type Window struct {
	ID           string
	Title        string
	Bounds       geometry.Rect
	AppName      string
	AppPath      string
	Positionable bool
	Resizable    bool
}

// SelfIdentifier reports whether a window belongs to the host application
// itself. The test is host-identity-specific (name/path/title matching), so
// the host injects it rather than the resolver guessing.
type SelfIdentifier func(appName, appPath, title string) bool

// Overlap membership thresholds for IsOnScreenArea.
const (
	minOverlapPixels   = 64
	minOverlapFraction = 0.2
)

// IsManageable reports whether a window is eligible for layout operations:
// it has an identity, it is not the host's own window, it meets the minimum
// size floors, and it can be both positioned and resized.
func IsManageable(win Window, isSelf SelfIdentifier) bool {
	if win.ID == "" {
		return false
	}
	if isSelf != nil && isSelf(win.AppName, win.AppPath, win.Title) {
		return false
	}
	if win.Bounds.Width < geometry.MinWindowWidth || win.Bounds.Height < geometry.MinWindowHeight {
		return false
	}
	return win.Positionable && win.Resizable
}

// IsOnScreenArea reports whether a window belongs to the given work area.
// Membership is overlap-based: the intersection of the window bounds and the
// area must cover at least 64 square pixels and at least 20% of the window's
// own area. Both boundary conditions are inclusive.
func IsOnScreenArea(win Window, area geometry.Area) bool {
	isect, ok := geometry.Intersection(win.Bounds, area.Rect())
	if !ok {
		return false
	}

	overlap := isect.Width * isect.Height
	if overlap < minOverlapPixels {
		return false
	}

	own := win.Bounds.Width * win.Bounds.Height
	return float64(overlap) >= minOverlapFraction*float64(own)
}

// SortForLayout orders windows top-left to bottom-right: y ascending, then x
// ascending, then application name. The sort is stable so equal windows keep
// their enumeration order. Returns the same slice for convenience.
func SortForLayout(windows []Window) []Window {
	sort.SliceStable(windows, func(i, j int) bool {
		wi, wj := windows[i], windows[j]
		if wi.Bounds.Y != wj.Bounds.Y {
			return wi.Bounds.Y < wj.Bounds.Y
		}
		if wi.Bounds.X != wj.Bounds.X {
			return wi.Bounds.X < wj.Bounds.X
		}
		return wi.AppName < wj.AppName
	})
	return windows
}

// FilterManageable returns the windows passing IsManageable, preserving order.
func FilterManageable(windows []Window, isSelf SelfIdentifier) []Window {
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		if IsManageable(w, isSelf) {
			out = append(out, w)
		}
	}
	return out
}

// FilterOnArea returns the windows belonging to the area, preserving order.
func FilterOnArea(windows []Window, area geometry.Area) []Window {
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		if IsOnScreenArea(w, area) {
			out = append(out, w)
		}
	}
	return out
}

// BestTargetForArea picks the manageable window overlapping the area whose
// center is nearest the area's center. Used as a last-resort target when no
// explicit active-window signal is available. Returns nil when no window
// qualifies.
func BestTargetForArea(windows []Window, area geometry.Area, isSelf SelfIdentifier) *Window {
	var best *Window
	bestDist := 0

	for i := range windows {
		w := &windows[i]
		if !IsManageable(*w, isSelf) || !IsOnScreenArea(*w, area) {
			continue
		}
		dist := geometry.CenterDistanceSq(w.Bounds, area)
		if best == nil || dist < bestDist {
			best = w
			bestDist = dist
		}
	}

	if best == nil {
		return nil
	}
	out := *best
	return &out
}
