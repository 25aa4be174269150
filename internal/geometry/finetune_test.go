package geometry

import (
	"testing"

	"github.com/snapdeck/snapdeck/internal/preset"
)

var fineTuneArea = Area{Left: 0, Top: 0, Width: 1920, Height: 1080}

func TestApplyFineTunePreset_MoveSteps(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	tests := []struct {
		id    preset.ID
		wantX int
		wantY int
	}{
		{preset.MoveRight10, 140, 100}, // 10% of 400
		{preset.MoveLeft10, 60, 100},
		{preset.MoveDown10, 100, 130}, // 10% of 300
		{preset.MoveUp10, 100, 70},
	}

	for _, tt := range tests {
		r := ApplyFineTunePreset(tt.id, win, fineTuneArea)
		if r == nil {
			t.Fatalf("%s: expected result", tt.id)
		}
		if r.X != tt.wantX || r.Y != tt.wantY {
			t.Errorf("%s: expected position %d,%d, got %d,%d",
				tt.id, tt.wantX, tt.wantY, r.X, r.Y)
		}
		if r.Width != win.Width || r.Height != win.Height {
			t.Errorf("%s: move must not resize, got %dx%d", tt.id, r.Width, r.Height)
		}
	}
}

// A move in one direction followed by its opposite returns to the start,
// because the step is derived from the unchanged window dimension.
func TestApplyFineTunePreset_OppositeMovesCancel(t *testing.T) {
	win := Rect{X: 500, Y: 400, Width: 437, Height: 291}

	right := ApplyFineTunePreset(preset.MoveRight10, win, fineTuneArea)
	back := ApplyFineTunePreset(preset.MoveLeft10, *right, fineTuneArea)

	if back.X != win.X || back.Y != win.Y {
		t.Fatalf("expected return to %d,%d, got %d,%d", win.X, win.Y, back.X, back.Y)
	}
}

func TestApplyFineTunePreset_GrowAnchorsOppositeEdge(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	r := ApplyFineTunePreset(preset.GrowRight, win, fineTuneArea)
	if r.X != 100 || r.Width != 440 {
		t.Fatalf("grow-right: expected X 100 width 440, got X %d width %d", r.X, r.Width)
	}

	r = ApplyFineTunePreset(preset.GrowLeft, win, fineTuneArea)
	if r.X != 60 || r.Width != 440 {
		t.Fatalf("grow-left: expected X 60 width 440, got X %d width %d", r.X, r.Width)
	}
	if r.X+r.Width != win.X+win.Width {
		t.Fatalf("grow-left must anchor the right edge")
	}

	r = ApplyFineTunePreset(preset.GrowUp, win, fineTuneArea)
	if r.Y != 70 || r.Height != 330 {
		t.Fatalf("grow-up: expected Y 70 height 330, got Y %d height %d", r.Y, r.Height)
	}
}

func TestApplyFineTunePreset_ShrinkStopsAtMinimum(t *testing.T) {
	// 10% of 125 rounds to 13; 125-13=112 is below the 120 floor.
	win := Rect{X: 100, Y: 100, Width: 125, Height: 300}

	r := ApplyFineTunePreset(preset.ShrinkRight, win, fineTuneArea)
	if r.Width != MinWindowWidth {
		t.Fatalf("expected width floor %d, got %d", MinWindowWidth, r.Width)
	}
	if r.X != 100 {
		t.Fatalf("shrink-right must anchor the left edge, got X %d", r.X)
	}

	r = ApplyFineTunePreset(preset.ShrinkLeft, win, fineTuneArea)
	if r.Width != MinWindowWidth {
		t.Fatalf("expected width floor %d, got %d", MinWindowWidth, r.Width)
	}
	if r.X+r.Width != win.X+win.Width {
		t.Fatalf("shrink-left must anchor the right edge: expected %d, got %d",
			win.X+win.Width, r.X+r.Width)
	}
}

func TestApplyFineTunePreset_ShrinkUpAnchorsBottomAtFloor(t *testing.T) {
	// 10% of 65 rounds to 7; 65-7=58 is below the 60 floor.
	win := Rect{X: 100, Y: 500, Width: 400, Height: 65}

	r := ApplyFineTunePreset(preset.ShrinkUp, win, fineTuneArea)
	if r.Height != MinWindowHeight {
		t.Fatalf("expected height floor %d, got %d", MinWindowHeight, r.Height)
	}
	if r.Y+r.Height != win.Y+win.Height {
		t.Fatalf("shrink-up must anchor the bottom edge")
	}
}

func TestApplyFineTunePreset_ClampsInsideArea(t *testing.T) {
	// Moving left at the edge pins to the area boundary.
	win := Rect{X: 10, Y: 10, Width: 400, Height: 300}
	r := ApplyFineTunePreset(preset.MoveLeft10, win, fineTuneArea)
	if r.X != 0 || r.Y != 10 {
		t.Fatalf("expected clamp to left edge, got %d,%d", r.X, r.Y)
	}

	// Growing past the right edge keeps the new size and slides left.
	win = Rect{X: 1600, Y: 0, Width: 400, Height: 300}
	r = ApplyFineTunePreset(preset.GrowRight, win, fineTuneArea)
	if r.Width != 440 {
		t.Fatalf("expected width 440, got %d", r.Width)
	}
	if r.X+r.Width != fineTuneArea.Right() {
		t.Fatalf("expected rect pinned to right edge, got right %d", r.X+r.Width)
	}
}

func TestApplyFineTunePreset_NonFineTuneReturnsNil(t *testing.T) {
	if r := ApplyFineTunePreset(preset.LeftHalf, Rect{Width: 400, Height: 300}, fineTuneArea); r != nil {
		t.Fatalf("expected nil for non-fine-tune preset, got %+v", r)
	}
}

func TestRectForSinglePreset(t *testing.T) {
	region := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	win := Rect{X: 50, Y: 50, Width: 400, Height: 300}

	tests := []struct {
		id   preset.ID
		want Rect
	}{
		{preset.Fill, region},
		{preset.LeftHalf, Rect{X: 0, Y: 0, Width: 960, Height: 1080}},
		{preset.RightHalf, Rect{X: 960, Y: 0, Width: 960, Height: 1080}},
		{preset.TopHalf, Rect{X: 0, Y: 0, Width: 1920, Height: 540}},
		{preset.BottomRight, Rect{X: 960, Y: 540, Width: 960, Height: 540}},
		{preset.Center, Rect{X: 760, Y: 390, Width: 400, Height: 300}},
		{preset.Center80, Rect{X: 192, Y: 108, Width: 1536, Height: 864}},
	}

	for _, tt := range tests {
		got, ok := RectForSinglePreset(tt.id, win, region, 0)
		if !ok {
			t.Fatalf("%s: expected a rect", tt.id)
		}
		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.id, tt.want, got)
		}
	}
}

func TestRectForSinglePreset_RejectsMultiWindowPresets(t *testing.T) {
	region := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if _, ok := RectForSinglePreset(preset.AutoOrganize, Rect{}, region, 0); ok {
		t.Fatal("expected false for multi-window preset")
	}
}

func TestRectForSinglePreset_CenterLargerThanRegionShrinks(t *testing.T) {
	region := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	win := Rect{X: 0, Y: 0, Width: 1000, Height: 700}

	got, ok := RectForSinglePreset(preset.Center, win, region, 0)
	if !ok {
		t.Fatal("expected a rect")
	}
	if got.Width != 800 || got.Height != 600 {
		t.Fatalf("expected clamp to region size, got %dx%d", got.Width, got.Height)
	}
}
