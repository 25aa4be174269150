package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandApplyPreset    CommandType = "APPLY_PRESET"
	CommandPreviewPreset  CommandType = "PREVIEW_PRESET"
	CommandListPresets    CommandType = "LIST_PRESETS"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandGetWindows     CommandType = "GET_WINDOWS"
	CommandUndo           CommandType = "UNDO"
	CommandOpenSession    CommandType = "OPEN_SESSION"
	CommandRestoreSession CommandType = "RESTORE_SESSION"
	CommandReload         CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ApplyPresetPayload carries an APPLY_PRESET command: either a bare preset ID
// or a trigger-table command identifier.
type ApplyPresetPayload struct {
	Command string `json:"command"`
}

// ApplyPresetData is the structured result of an APPLY_PRESET command.
type ApplyPresetData struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount   int    `json:"window_count"`
	LastPreset    string `json:"last_preset"`
	LastState     string `json:"last_state"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// PresetsData represents the data returned by LIST_PRESETS
type PresetsData struct {
	Presets  []string `json:"presets"`
	Commands []string `json:"commands"`
}

// WindowInfo describes one manageable window for GET_WINDOWS.
type WindowInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	App    string `json:"app,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
