package inventory

import (
	"strings"
	"testing"

	"github.com/snapdeck/snapdeck/internal/geometry"
)

var testArea = geometry.Area{Left: 0, Top: 0, Width: 1920, Height: 1080}

func isSnapdeck(appName, appPath, title string) bool {
	return strings.Contains(strings.ToLower(appName), "snapdeck")
}

func win(id string, x, y, w, h int) Window {
	return Window{
		ID:           id,
		AppName:      "editor",
		Bounds:       geometry.Rect{X: x, Y: y, Width: w, Height: h},
		Positionable: true,
		Resizable:    true,
	}
}

func TestIsManageable(t *testing.T) {
	base := win("w1", 0, 0, 800, 600)

	if !IsManageable(base, isSnapdeck) {
		t.Fatal("expected baseline window to be manageable")
	}

	noID := base
	noID.ID = ""
	if IsManageable(noID, isSnapdeck) {
		t.Fatal("window without identity must not be manageable")
	}

	self := base
	self.AppName = "Snapdeck Panel"
	if IsManageable(self, isSnapdeck) {
		t.Fatal("host's own window must not be manageable")
	}

	narrow := base
	narrow.Bounds.Width = 100
	if IsManageable(narrow, isSnapdeck) {
		t.Fatal("window below the width floor must not be manageable")
	}

	short := base
	short.Bounds.Height = 59
	if IsManageable(short, isSnapdeck) {
		t.Fatal("window below the height floor must not be manageable")
	}

	fixed := base
	fixed.Resizable = false
	if IsManageable(fixed, isSnapdeck) {
		t.Fatal("non-resizable window must not be manageable")
	}

	pinned := base
	pinned.Positionable = false
	if IsManageable(pinned, isSnapdeck) {
		t.Fatal("non-positionable window must not be manageable")
	}
}

func TestIsManageable_NilIdentifier(t *testing.T) {
	w := win("w1", 0, 0, 800, 600)
	w.AppName = "snapdeck"
	if !IsManageable(w, nil) {
		t.Fatal("nil identifier must not exclude anything")
	}
}

func TestIsOnScreenArea_PixelFloorInclusive(t *testing.T) {
	// 8x8 = exactly 64 overlapping pixels, and 100% of the window's area.
	tiny := win("w1", 0, 0, 8, 8)
	if !IsOnScreenArea(tiny, testArea) {
		t.Fatal("64 overlapping pixels must qualify")
	}

	// 7x9 = 63 pixels, one short of the floor.
	smaller := win("w2", 0, 0, 7, 9)
	if IsOnScreenArea(smaller, testArea) {
		t.Fatal("63 overlapping pixels must not qualify")
	}
}

func TestIsOnScreenArea_FractionBoundaryInclusive(t *testing.T) {
	// 100x100 window hanging off the left edge with exactly 20 columns
	// visible: overlap is exactly 20% of the window's own area.
	edge := win("w1", -80, 0, 100, 100)
	if !IsOnScreenArea(edge, testArea) {
		t.Fatal("exactly 20% overlap must qualify")
	}

	further := win("w2", -81, 0, 100, 100)
	if IsOnScreenArea(further, testArea) {
		t.Fatal("19% overlap must not qualify")
	}
}

func TestIsOnScreenArea_Disjoint(t *testing.T) {
	offscreen := win("w1", -500, -500, 400, 400)
	if IsOnScreenArea(offscreen, testArea) {
		t.Fatal("disjoint window must not qualify")
	}
}

func TestSortForLayout(t *testing.T) {
	c := win("c", 100, 500, 300, 300)
	a := win("a", 0, 0, 300, 300)
	b := win("b", 600, 0, 300, 300)

	sorted := SortForLayout([]Window{c, b, a})

	if sorted[0].ID != "a" || sorted[1].ID != "b" || sorted[2].ID != "c" {
		t.Fatalf("expected order a,b,c, got %s,%s,%s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestSortForLayout_TieBreaksOnAppName(t *testing.T) {
	x := win("x", 100, 100, 300, 300)
	x.AppName = "zim"
	y := win("y", 100, 100, 300, 300)
	y.AppName = "abiword"

	sorted := SortForLayout([]Window{x, y})
	if sorted[0].ID != "y" {
		t.Fatalf("expected app-name tie break to put y first, got %s", sorted[0].ID)
	}
}

func TestFilterManageable(t *testing.T) {
	good := win("good", 0, 0, 800, 600)
	tiny := win("tiny", 0, 0, 50, 50)
	self := win("self", 0, 0, 800, 600)
	self.AppName = "snapdeck"

	out := FilterManageable([]Window{good, tiny, self}, isSnapdeck)
	if len(out) != 1 || out[0].ID != "good" {
		t.Fatalf("expected only the good window, got %+v", out)
	}
}

func TestFilterOnArea(t *testing.T) {
	on := win("on", 100, 100, 400, 300)
	off := win("off", -2000, 0, 400, 300)

	out := FilterOnArea([]Window{on, off}, testArea)
	if len(out) != 1 || out[0].ID != "on" {
		t.Fatalf("expected only the on-screen window, got %+v", out)
	}
}

func TestBestTargetForArea(t *testing.T) {
	center := win("center", 760, 390, 400, 300)
	corner := win("corner", 0, 0, 400, 300)

	got := BestTargetForArea([]Window{corner, center}, testArea, isSnapdeck)
	if got == nil || got.ID != "center" {
		t.Fatalf("expected the centered window, got %+v", got)
	}
}

func TestBestTargetForArea_ReturnsCopy(t *testing.T) {
	windows := []Window{win("w1", 100, 100, 400, 300)}

	got := BestTargetForArea(windows, testArea, isSnapdeck)
	got.Bounds.X = 999

	if windows[0].Bounds.X != 100 {
		t.Fatal("mutating the result must not affect the input slice")
	}
}

func TestBestTargetForArea_NoneQualify(t *testing.T) {
	off := win("off", -2000, 0, 400, 300)
	tiny := win("tiny", 0, 0, 50, 50)

	if got := BestTargetForArea([]Window{off, tiny}, testArea, isSnapdeck); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
