package mcp

import (
	"context"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleApplyPreset(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyPresetInput) (*mcpsdk.CallToolResult, ApplyPresetOutput, error) {
	result, err := s.client.ApplyPreset(args.Command)
	if err != nil {
		return nil, ApplyPresetOutput{}, err
	}

	log.Printf("MCP: apply_preset %q success=%v", args.Command, result.Success)
	return nil, ApplyPresetOutput{Success: result.Success, Error: result.Error}, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListPresetsInput) (*mcpsdk.CallToolResult, ListPresetsOutput, error) {
	data, err := s.client.ListPresets()
	if err != nil {
		return nil, ListPresetsOutput{}, err
	}
	return nil, ListPresetsOutput{Presets: data.Presets, Commands: data.Commands}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := make([]WindowDetail, 0, len(data.Windows))
	for _, w := range data.Windows {
		windows = append(windows, WindowDetail{
			ID:      w.ID,
			Title:   w.Title,
			AppName: w.App,
			X:       w.X,
			Y:       w.Y,
			Width:   w.Width,
			Height:  w.Height,
		})
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleUndo(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndoInput) (*mcpsdk.CallToolResult, UndoOutput, error) {
	if err := s.client.Undo(); err != nil {
		return nil, UndoOutput{}, err
	}
	return nil, UndoOutput{Restored: true}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		DaemonRunning: status.DaemonRunning,
		WindowCount:   status.WindowCount,
		LastPreset:    status.LastPreset,
		LastState:     status.LastState,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}
