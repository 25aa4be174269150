package geometry

import "math"

// emptySlotPenalty biases grid selection toward shapes that waste fewer cells.
const emptySlotPenalty = 0.08

// GridOptions configures ComputeGridRects.
type GridOptions struct {
	Gap     int
	Padding int
	Cols    int // 0 = choose automatically via ComputeGridDimensions
}

// ComputeGridDimensions determines the grid shape for count windows in the
// given region. Candidate column counts from 1 to count are scored by how far
// the cell aspect ratio diverges from the region's aspect ratio, plus a small
// penalty per empty slot. The lowest-scoring shape wins; ties go to fewer
// columns.
func ComputeGridDimensions(count int, region Rect) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}

	regionRatio := float64(region.Width) / float64(region.Height)
	if region.Height <= 0 {
		regionRatio = 1
	}

	bestCols, bestRows := 1, count
	bestScore := math.Inf(1)

	for c := 1; c <= count; c++ {
		r := (count + c - 1) / c
		score := math.Abs(float64(c)/float64(r)-regionRatio) +
			emptySlotPenalty*float64(c*r-count)
		if score < bestScore {
			bestScore = score
			bestCols, bestRows = c, r
		}
	}

	return bestCols, bestRows
}

// ComputeGridRects divides a region into a grid of count cells with fixed gaps.
// The region is first shrunk by opts.Padding. The last row and last column in
// each row absorb rounding remainders so the union of all cells exactly covers
// the padded region. Rows with fewer windows than columns expand their cells
// to fill the full row width.
func ComputeGridRects(count int, region Rect, opts GridOptions) []Rect {
	if count <= 0 {
		return nil
	}

	inner := Shrink(region, opts.Padding)
	gap := opts.Gap
	if gap < 0 {
		gap = 0
	}

	cols := opts.Cols
	if cols <= 0 {
		cols, _ = ComputeGridDimensions(count, inner)
	}
	if cols > count {
		cols = count
	}
	if cols < 1 {
		cols = 1
	}
	rows := (count + cols - 1) / cols

	baseHeight := (inner.Height - (rows-1)*gap) / rows

	rects := make([]Rect, 0, count)
	for row := 0; row < rows; row++ {
		y := inner.Y + row*(baseHeight+gap)
		height := baseHeight
		if row == rows-1 {
			// Last row absorbs vertical rounding remainder.
			height = inner.Y + inner.Height - y
		}

		inRow := cols
		if remaining := count - row*cols; remaining < cols {
			inRow = remaining
		}

		baseWidth := (inner.Width - (inRow-1)*gap) / inRow
		for col := 0; col < inRow; col++ {
			x := inner.X + col*(baseWidth+gap)
			width := baseWidth
			if col == inRow-1 {
				// Last column absorbs horizontal rounding remainder.
				width = inner.X + inner.Width - x
			}
			rects = append(rects, clampSize(Rect{X: x, Y: y, Width: width, Height: height}))
		}
	}

	return rects
}
