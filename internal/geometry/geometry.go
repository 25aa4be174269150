package geometry

// Rect represents a window position and size in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area is the usable work-area rectangle of a display, excluding
// OS-reserved regions like panels and docks.
type Area struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Minimum dimensions for a window this engine will manage or produce.
// Shared with the inventory eligibility filter.
const (
	MinWindowWidth  = 120
	MinWindowHeight = 60
)

// Rect returns the area as a Rect.
func (a Area) Rect() Rect {
	return Rect{X: a.Left, Y: a.Top, Width: a.Width, Height: a.Height}
}

// Right returns the exclusive right edge of the area.
func (a Area) Right() int { return a.Left + a.Width }

// Bottom returns the exclusive bottom edge of the area.
func (a Area) Bottom() int { return a.Top + a.Height }

// Shrink insets a rect by padding on all sides, clamping to 1x1.
func Shrink(r Rect, padding int) Rect {
	if padding <= 0 {
		return r
	}
	out := Rect{
		X:      r.X + padding,
		Y:      r.Y + padding,
		Width:  r.Width - 2*padding,
		Height: r.Height - 2*padding,
	}
	return clampSize(out)
}

// SplitVertical divides a region into left and right halves separated by gap.
// The right half absorbs any rounding remainder.
func SplitVertical(region Rect, gap int) (left, right Rect) {
	leftWidth := (region.Width - gap) / 2
	left = clampSize(Rect{
		X:      region.X,
		Y:      region.Y,
		Width:  leftWidth,
		Height: region.Height,
	})
	right = clampSize(Rect{
		X:      region.X + leftWidth + gap,
		Y:      region.Y,
		Width:  region.Width - leftWidth - gap,
		Height: region.Height,
	})
	return left, right
}

// SplitHorizontal divides a region into top and bottom halves separated by gap.
// The bottom half absorbs any rounding remainder.
func SplitHorizontal(region Rect, gap int) (top, bottom Rect) {
	topHeight := (region.Height - gap) / 2
	top = clampSize(Rect{
		X:      region.X,
		Y:      region.Y,
		Width:  region.Width,
		Height: topHeight,
	})
	bottom = clampSize(Rect{
		X:      region.X,
		Y:      region.Y + topHeight + gap,
		Width:  region.Width,
		Height: region.Height - topHeight - gap,
	})
	return top, bottom
}

// SplitQuadrants divides a region into four quarters in the order
// top-left, top-right, bottom-left, bottom-right.
func SplitQuadrants(region Rect, gap int) [4]Rect {
	top, bottom := SplitHorizontal(region, gap)
	tl, tr := SplitVertical(top, gap)
	bl, br := SplitVertical(bottom, gap)
	return [4]Rect{tl, tr, bl, br}
}

// SplitVerticalSmart divides a region into a left and right pane, sizing the
// left pane to leftDesired when a hint is given. The split is clamped so the
// right pane never shrinks below rightDesired, and falls back to an even
// half-split when no hints exist or the hints cannot both be satisfied.
func SplitVerticalSmart(region Rect, leftDesired, rightDesired, gap int) (left, right Rect) {
	avail := region.Width - gap
	leftWidth := avail / 2

	if leftDesired > 0 || rightDesired > 0 {
		if leftDesired > 0 && rightDesired > 0 && leftDesired+rightDesired > avail {
			// Conflicting minimums: even split.
			leftWidth = avail / 2
		} else if leftDesired > 0 {
			leftWidth = leftDesired
			minRight := rightDesired
			if minRight <= 0 {
				minRight = avail / 2
			}
			if avail-leftWidth < minRight {
				leftWidth = avail - minRight
			}
		} else {
			leftWidth = avail - rightDesired
		}
	}

	if leftWidth < 1 {
		leftWidth = 1
	}
	if leftWidth > avail-1 {
		leftWidth = avail - 1
	}

	left = clampSize(Rect{X: region.X, Y: region.Y, Width: leftWidth, Height: region.Height})
	right = clampSize(Rect{
		X:      region.X + leftWidth + gap,
		Y:      region.Y,
		Width:  region.Width - leftWidth - gap,
		Height: region.Height,
	})
	return left, right
}

// SplitHorizontalSmart is the vertical-axis analogue of SplitVerticalSmart.
func SplitHorizontalSmart(region Rect, topDesired, bottomDesired, gap int) (top, bottom Rect) {
	avail := region.Height - gap
	topHeight := avail / 2

	if topDesired > 0 || bottomDesired > 0 {
		if topDesired > 0 && bottomDesired > 0 && topDesired+bottomDesired > avail {
			topHeight = avail / 2
		} else if topDesired > 0 {
			topHeight = topDesired
			minBottom := bottomDesired
			if minBottom <= 0 {
				minBottom = avail / 2
			}
			if avail-topHeight < minBottom {
				topHeight = avail - minBottom
			}
		} else {
			topHeight = avail - bottomDesired
		}
	}

	if topHeight < 1 {
		topHeight = 1
	}
	if topHeight > avail-1 {
		topHeight = avail - 1
	}

	top = clampSize(Rect{X: region.X, Y: region.Y, Width: region.Width, Height: topHeight})
	bottom = clampSize(Rect{
		X:      region.X,
		Y:      region.Y + topHeight + gap,
		Width:  region.Width,
		Height: region.Height - topHeight - gap,
	})
	return top, bottom
}

// PushUpIfOverflow shifts a rect upward so it does not extend past the bottom
// of the area. currentHeight is the window's actual height; the larger of it
// and the requested height is used, since a requested shrink may not yet be
// reflected by the OS.
func PushUpIfOverflow(r Rect, currentHeight int, area Area) Rect {
	effective := r.Height
	if currentHeight > effective {
		effective = currentHeight
	}
	if r.Y+effective > area.Bottom() {
		r.Y = area.Bottom() - effective
	}
	if r.Y < area.Top {
		r.Y = area.Top
	}
	return r
}

// PushLeftIfOverflow shifts a rect leftward so it does not extend past the
// right edge of the area, using the window's actual width as the effective
// width when it is larger than the requested width.
func PushLeftIfOverflow(r Rect, currentWidth int, area Area) Rect {
	effective := r.Width
	if currentWidth > effective {
		effective = currentWidth
	}
	if r.X+effective > area.Right() {
		r.X = area.Right() - effective
	}
	if r.X < area.Left {
		r.X = area.Left
	}
	return r
}

// FitRectWithinArea clamps a rect so it lies fully inside the area, shrinking
// it if it is larger than the area itself. currentWidth/currentHeight are the
// window's actual dimensions used for overflow pushing.
func FitRectWithinArea(r Rect, currentWidth, currentHeight int, area Area) Rect {
	if r.Width > area.Width {
		r.Width = area.Width
	}
	if r.Height > area.Height {
		r.Height = area.Height
	}
	r = clampSize(r)
	r = PushLeftIfOverflow(r, currentWidth, area)
	r = PushUpIfOverflow(r, currentHeight, area)
	return r
}

// Intersection returns the overlap of two rects and true when they overlap.
func Intersection(a, b Rect) (Rect, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// CenterDistanceSq returns the squared Euclidean distance between the centers
// of a rect and an area.
func CenterDistanceSq(r Rect, area Area) int {
	dx := (r.X + r.Width/2) - (area.Left + area.Width/2)
	dy := (r.Y + r.Height/2) - (area.Top + area.Height/2)
	return dx*dx + dy*dy
}

func clampSize(r Rect) Rect {
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	return r
}
