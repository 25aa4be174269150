package geometry

import (
	"math"

	"github.com/snapdeck/snapdeck/internal/preset"
)

// fineTuneFraction is the share of the window's own dimension moved or
// resized by one fine-tune step.
const fineTuneFraction = 0.1

// RectForSinglePreset computes the target rect for a single-window
// directional preset within the given region. win is the window's current
// bounds, used by presets that preserve size. Returns false for presets that
// are not single-window directional kinds.
func RectForSinglePreset(id preset.ID, win Rect, region Rect, gap int) (Rect, bool) {
	switch id {
	case preset.Fill:
		return region, true

	case preset.LeftHalf:
		left, _ := SplitVertical(region, gap)
		return left, true
	case preset.RightHalf:
		_, right := SplitVertical(region, gap)
		return right, true
	case preset.TopHalf:
		top, _ := SplitHorizontal(region, gap)
		return top, true
	case preset.BottomHalf:
		_, bottom := SplitHorizontal(region, gap)
		return bottom, true

	case preset.TopLeft:
		return SplitQuadrants(region, gap)[0], true
	case preset.TopRight:
		return SplitQuadrants(region, gap)[1], true
	case preset.BottomLeft:
		return SplitQuadrants(region, gap)[2], true
	case preset.BottomRight:
		return SplitQuadrants(region, gap)[3], true

	case preset.Center:
		return centerRect(win.Width, win.Height, region), true
	case preset.Center80:
		return centerRect(region.Width*80/100, region.Height*80/100, region), true
	}

	return Rect{}, false
}

// ApplyFineTunePreset computes a new rect for a fine-tune preset by extending
// or shrinking exactly one edge, or moving the window, by 10% of the window's
// own dimension. The opposite edge stays anchored. Results honor the minimum
// window floors and are clamped fully inside the area. Returns nil for
// presets that are not fine-tune kinds.
func ApplyFineTunePreset(id preset.ID, win Rect, area Area) *Rect {
	hStep := step(win.Width)
	vStep := step(win.Height)

	r := win

	switch id {
	case preset.GrowLeft:
		r.X -= hStep
		r.Width += hStep
	case preset.GrowRight:
		r.Width += hStep
	case preset.GrowUp:
		r.Y -= vStep
		r.Height += vStep
	case preset.GrowDown:
		r.Height += vStep

	case preset.ShrinkLeft:
		r.X += hStep
		r.Width -= hStep
	case preset.ShrinkRight:
		r.Width -= hStep
	case preset.ShrinkUp:
		r.Y += vStep
		r.Height -= vStep
	case preset.ShrinkDown:
		r.Height -= vStep

	case preset.MoveLeft10:
		r.X -= hStep
	case preset.MoveRight10:
		r.X += hStep
	case preset.MoveUp10:
		r.Y -= vStep
	case preset.MoveDown10:
		r.Y += vStep

	default:
		return nil
	}

	// Shrinks stop at the minimum floors; the anchored edge stays put.
	if r.Width < MinWindowWidth {
		if id == preset.ShrinkLeft {
			r.X -= MinWindowWidth - r.Width
		}
		r.Width = MinWindowWidth
	}
	if r.Height < MinWindowHeight {
		if id == preset.ShrinkUp {
			r.Y -= MinWindowHeight - r.Height
		}
		r.Height = MinWindowHeight
	}

	if r.Width > area.Width {
		r.Width = area.Width
	}
	if r.Height > area.Height {
		r.Height = area.Height
	}

	// Clamp fully inside the area.
	if r.X < area.Left {
		r.X = area.Left
	}
	if r.X+r.Width > area.Right() {
		r.X = area.Right() - r.Width
	}
	if r.Y < area.Top {
		r.Y = area.Top
	}
	if r.Y+r.Height > area.Bottom() {
		r.Y = area.Bottom() - r.Height
	}

	r = clampSize(r)
	return &r
}

func step(dimension int) int {
	return int(math.Round(float64(dimension) * fineTuneFraction))
}

func centerRect(width, height int, region Rect) Rect {
	if width > region.Width {
		width = region.Width
	}
	if height > region.Height {
		height = region.Height
	}
	return clampSize(Rect{
		X:      region.X + (region.Width-width)/2,
		Y:      region.Y + (region.Height-height)/2,
		Width:  width,
		Height: height,
	})
}
