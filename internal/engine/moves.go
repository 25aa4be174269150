package engine

import (
	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/preset"
)

// computeMoves turns a preset and an ordered window set into a move batch.
// The batch never contains two moves for the same window id, and every rect
// is post-processed so it cannot overflow the work area.
func computeMoves(id preset.ID, windows []inventory.Window, area geometry.Area, gap, padding int) []Move {
	if len(windows) == 0 {
		return nil
	}

	padded := paddedArea(area, padding)
	region := padded.Rect()

	var rects []geometry.Rect

	switch {
	case id.FineTune():
		r := geometry.ApplyFineTunePreset(id, windows[0].Bounds, padded)
		if r == nil {
			return nil
		}
		rects = []geometry.Rect{*r}

	case id == preset.AutoOrganize:
		rects = geometry.BuildAutoOrganizeLayout(bounds(windows), padded, gap)

	case id.MultiWindow():
		rects = geometry.ComputeGridRects(len(windows), region, geometry.GridOptions{
			Gap:  gap,
			Cols: id.GridCols(),
		})

	default:
		r, ok := geometry.RectForSinglePreset(id, windows[0].Bounds, region, gap)
		if !ok {
			return nil
		}
		rects = []geometry.Rect{r}
	}

	if len(rects) < len(windows) {
		windows = windows[:len(rects)]
	}

	moves := make([]Move, 0, len(windows))
	seen := make(map[string]bool, len(windows))
	for i, w := range windows {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		target := geometry.FitRectWithinArea(rects[i], w.Bounds.Width, w.Bounds.Height, padded)
		moves = append(moves, Move{ID: w.ID, Bounds: target})
	}
	return moves
}

func bounds(windows []inventory.Window) []geometry.Rect {
	out := make([]geometry.Rect, len(windows))
	for i, w := range windows {
		out[i] = w.Bounds
	}
	return out
}

func paddedArea(area geometry.Area, padding int) geometry.Area {
	if padding <= 0 {
		return area
	}
	inner := geometry.Shrink(area.Rect(), padding)
	return geometry.Area{Left: inner.X, Top: inner.Y, Width: inner.Width, Height: inner.Height}
}
