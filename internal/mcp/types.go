package mcp

// ApplyPresetInput is the input for the apply_preset tool.
type ApplyPresetInput struct {
	Command string `json:"command" jsonschema:"required,Preset ID (e.g. left-half, grid-2x2) or trigger command (e.g. window-left-half, windows-organize)"`
}

// ApplyPresetOutput is the output for the apply_preset tool.
type ApplyPresetOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ListPresetsInput is the input for the list_presets tool.
type ListPresetsInput struct{}

// ListPresetsOutput is the output for the list_presets tool.
type ListPresetsOutput struct {
	Presets  []string `json:"presets"`
	Commands []string `json:"commands"`
}

// WindowDetail describes a single managed window.
type WindowDetail struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	AppName string `json:"app_name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowDetail `json:"windows"`
}

// UndoInput is the input for the undo_layout tool.
type UndoInput struct{}

// UndoOutput is the output for the undo_layout tool.
type UndoOutput struct {
	Restored bool `json:"restored"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning bool   `json:"daemon_running"`
	WindowCount   int    `json:"window_count"`
	LastPreset    string `json:"last_preset,omitempty"`
	LastState     string `json:"last_state,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
