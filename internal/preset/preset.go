package preset

// ID names a target window arrangement. The set is closed: every value an
// external caller can submit is declared here.
type ID string

// Single-window directional presets.
const (
	LeftHalf    ID = "left-half"
	RightHalf   ID = "right-half"
	TopHalf     ID = "top-half"
	BottomHalf  ID = "bottom-half"
	TopLeft     ID = "top-left"
	TopRight    ID = "top-right"
	BottomLeft  ID = "bottom-left"
	BottomRight ID = "bottom-right"
	Center      ID = "center"
	Center80    ID = "center-80"
	Fill        ID = "fill"
)

// Multi-window presets.
const (
	AutoOrganize ID = "auto-organize"
	Grid2x2      ID = "grid-2x2"
	Grid3x3      ID = "grid-3x3"
)

// Fine-tune presets adjust a single edge or position by 10% of the window's
// own dimension.
const (
	GrowLeft    ID = "grow-left"
	GrowRight   ID = "grow-right"
	GrowUp      ID = "grow-up"
	GrowDown    ID = "grow-down"
	ShrinkLeft  ID = "shrink-left"
	ShrinkRight ID = "shrink-right"
	ShrinkUp    ID = "shrink-up"
	ShrinkDown  ID = "shrink-down"
	MoveLeft10  ID = "move-left-10"
	MoveRight10 ID = "move-right-10"
	MoveUp10    ID = "move-up-10"
	MoveDown10  ID = "move-down-10"
)

var all = []ID{
	LeftHalf, RightHalf, TopHalf, BottomHalf,
	TopLeft, TopRight, BottomLeft, BottomRight,
	Center, Center80, Fill,
	AutoOrganize, Grid2x2, Grid3x3,
	GrowLeft, GrowRight, GrowUp, GrowDown,
	ShrinkLeft, ShrinkRight, ShrinkUp, ShrinkDown,
	MoveLeft10, MoveRight10, MoveUp10, MoveDown10,
}

var valid = func() map[ID]bool {
	m := make(map[ID]bool, len(all))
	for _, id := range all {
		m[id] = true
	}
	return m
}()

// All returns every preset ID in declaration order.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Valid reports whether the ID is a known preset.
func (id ID) Valid() bool {
	return valid[id]
}

// MultiWindow reports whether the preset arranges multiple windows and
// therefore needs the full window inventory.
func (id ID) MultiWindow() bool {
	switch id {
	case AutoOrganize, Grid2x2, Grid3x3:
		return true
	}
	return false
}

// FineTune reports whether the preset is an incremental resize/move of the
// target window.
func (id ID) FineTune() bool {
	switch id {
	case GrowLeft, GrowRight, GrowUp, GrowDown,
		ShrinkLeft, ShrinkRight, ShrinkUp, ShrinkDown,
		MoveLeft10, MoveRight10, MoveUp10, MoveDown10:
		return true
	}
	return false
}

// GridCols returns the fixed column count for fixed-grid presets, or 0 when
// the preset has no fixed shape.
func (id ID) GridCols() int {
	switch id {
	case Grid2x2:
		return 2
	case Grid3x3:
		return 3
	}
	return 0
}
