package preset

// Triggers is the fixed mapping from external command identifiers (hotkey
// binding names, IPC command arguments) to preset IDs. Consumed by the
// non-interactive execution path.
var triggers = map[string]ID{
	"window-left-half":    LeftHalf,
	"window-right-half":   RightHalf,
	"window-top-half":     TopHalf,
	"window-bottom-half":  BottomHalf,
	"window-top-left":     TopLeft,
	"window-top-right":    TopRight,
	"window-bottom-left":  BottomLeft,
	"window-bottom-right": BottomRight,
	"window-center":       Center,
	"window-center-80":    Center80,
	"window-fill":         Fill,
	"windows-organize":    AutoOrganize,
	"windows-grid-2x2":    Grid2x2,
	"windows-grid-3x3":    Grid3x3,
	"window-grow-left":    GrowLeft,
	"window-grow-right":   GrowRight,
	"window-grow-up":      GrowUp,
	"window-grow-down":    GrowDown,
	"window-shrink-left":  ShrinkLeft,
	"window-shrink-right": ShrinkRight,
	"window-shrink-up":    ShrinkUp,
	"window-shrink-down":  ShrinkDown,
	"window-move-left":    MoveLeft10,
	"window-move-right":   MoveRight10,
	"window-move-up":      MoveUp10,
	"window-move-down":    MoveDown10,
}

// FromTrigger resolves an external command identifier to a preset ID.
// Bare preset IDs are accepted as well, so IPC callers can use either form.
func FromTrigger(command string) (ID, bool) {
	if id, ok := triggers[command]; ok {
		return id, true
	}
	id := ID(command)
	if id.Valid() {
		return id, true
	}
	return "", false
}

// TriggerCommands returns all known command identifiers. Used for CLI help
// and hotkey binding validation.
func TriggerCommands() []string {
	out := make([]string, 0, len(triggers))
	for cmd := range triggers {
		out = append(out, cmd)
	}
	return out
}
