package geometry

import "testing"

var organizeArea = Area{Left: 0, Top: 0, Width: 1920, Height: 1080}

func TestBuildAutoOrganizeLayout_OneWindowFills(t *testing.T) {
	rects := BuildAutoOrganizeLayout([]Rect{{X: 5, Y: 5, Width: 100, Height: 100}}, organizeArea, 10)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	if rects[0] != organizeArea.Rect() {
		t.Fatalf("expected full-area rect, got %+v", rects[0])
	}
}

func TestBuildAutoOrganizeLayout_TwoWindowsVerticalHalves(t *testing.T) {
	current := []Rect{
		{X: 0, Y: 0, Width: 500, Height: 500},
		{X: 600, Y: 0, Width: 500, Height: 500},
	}

	rects := BuildAutoOrganizeLayout(current, organizeArea, 0)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	if rects[0].Width != 960 || rects[1].Width != 960 {
		t.Fatalf("expected 960/960 halves, got %d/%d", rects[0].Width, rects[1].Width)
	}
	if rects[0].Height != 1080 || rects[1].Height != 1080 {
		t.Fatalf("expected full-height halves, got %d/%d", rects[0].Height, rects[1].Height)
	}
}

func TestBuildAutoFill3Layout_RespectsCurrentSizes(t *testing.T) {
	current := []Rect{
		{X: 0, Y: 0, Width: 960, Height: 1080},
		{X: 960, Y: 0, Width: 960, Height: 540},
		{X: 960, Y: 540, Width: 960, Height: 540},
	}

	rects := BuildAutoFill3Layout(current, organizeArea, 0)
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}

	column, top, bottom := rects[0], rects[1], rects[2]
	if column.Width != 960 || column.Height != 1080 {
		t.Fatalf("expected 960x1080 column, got %dx%d", column.Width, column.Height)
	}
	if top != (Rect{X: 960, Y: 0, Width: 960, Height: 540}) {
		t.Fatalf("unexpected top cell: %+v", top)
	}
	if bottom != (Rect{X: 960, Y: 540, Width: 960, Height: 540}) {
		t.Fatalf("unexpected bottom cell: %+v", bottom)
	}
}

func TestBuildAutoFill3Layout_ConflictingWidthsFallBackEven(t *testing.T) {
	current := []Rect{
		{X: 0, Y: 0, Width: 1500, Height: 1080},
		{X: 0, Y: 0, Width: 1500, Height: 540},
		{X: 0, Y: 0, Width: 1500, Height: 540},
	}

	rects := BuildAutoFill3Layout(current, organizeArea, 0)
	if rects[0].Width != 960 {
		t.Fatalf("expected even-split column width 960, got %d", rects[0].Width)
	}
}

func TestBuildAutoFill4Layout_EvenQuadrants(t *testing.T) {
	current := []Rect{
		{Width: 960, Height: 540}, {Width: 960, Height: 540},
		{Width: 960, Height: 540}, {Width: 960, Height: 540},
	}

	rects := BuildAutoFill4Layout(current, organizeArea, 0)
	if len(rects) != 4 {
		t.Fatalf("expected 4 rects, got %d", len(rects))
	}

	want := [4]Rect{
		{X: 0, Y: 0, Width: 960, Height: 540},
		{X: 960, Y: 0, Width: 960, Height: 540},
		{X: 0, Y: 540, Width: 960, Height: 540},
		{X: 960, Y: 540, Width: 960, Height: 540},
	}
	for i, w := range want {
		if rects[i] != w {
			t.Fatalf("quadrant %d: expected %+v, got %+v", i, w, rects[i])
		}
	}
}

func TestBuildAutoOrganizeLayout_FiveWindowsFallBackToGrid(t *testing.T) {
	current := make([]Rect, 5)
	for i := range current {
		current[i] = Rect{Width: 400, Height: 300}
	}

	rects := BuildAutoOrganizeLayout(current, organizeArea, 8)
	if len(rects) != 5 {
		t.Fatalf("expected 5 grid cells, got %d", len(rects))
	}
}
