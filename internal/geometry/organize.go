package geometry

// BuildAutoOrganizeLayout computes bespoke layouts for one to four windows.
// Small counts read better with asymmetric layouts than with a uniform grid:
// one window fills the area, two get vertical halves, three get a full-height
// column plus a stacked pair, four get quadrants. current holds each window's
// present bounds in layout order; counts above four fall back to a grid.
func BuildAutoOrganizeLayout(current []Rect, area Area, gap int) []Rect {
	region := area.Rect()

	switch len(current) {
	case 0:
		return nil
	case 1:
		return []Rect{region}
	case 2:
		left, right := SplitVertical(region, gap)
		return []Rect{left, right}
	case 3:
		return BuildAutoFill3Layout(current, area, gap)
	case 4:
		return BuildAutoFill4Layout(current, area, gap)
	default:
		return ComputeGridRects(len(current), region, GridOptions{Gap: gap})
	}
}

// BuildAutoFill3Layout arranges three windows as one full-height left column
// plus two stacked cells on the right. Each window's current dimension acts
// as a soft minimum; conflicting minimums fall back to even splits.
func BuildAutoFill3Layout(current []Rect, area Area, gap int) []Rect {
	if len(current) != 3 {
		return nil
	}

	region := area.Rect()

	rightDesired := max(current[1].Width, current[2].Width)
	column, right := SplitVerticalSmart(region, current[0].Width, rightDesired, gap)
	topCell, bottomCell := SplitHorizontalSmart(right, current[1].Height, current[2].Height, gap)

	return []Rect{column, topCell, bottomCell}
}

// BuildAutoFill4Layout arranges four windows in a 2x2 grid. The column and row
// boundaries are placed to respect each window's current dimension as a soft
// minimum, falling back to even splits when minimums conflict. Order is
// top-left, top-right, bottom-left, bottom-right.
func BuildAutoFill4Layout(current []Rect, area Area, gap int) []Rect {
	if len(current) != 4 {
		return nil
	}

	region := area.Rect()

	leftDesired := max(current[0].Width, current[2].Width)
	rightDesired := max(current[1].Width, current[3].Width)
	topDesired := max(current[0].Height, current[1].Height)
	bottomDesired := max(current[2].Height, current[3].Height)

	top, bottom := SplitHorizontalSmart(region, topDesired, bottomDesired, gap)
	tl, tr := SplitVerticalSmart(top, leftDesired, rightDesired, gap)
	bl, br := SplitVerticalSmart(bottom, leftDesired, rightDesired, gap)

	return []Rect{tl, tr, bl, br}
}
