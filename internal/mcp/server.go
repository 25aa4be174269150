// Package mcp exposes window layout control as MCP tools over stdio.
// The server proxies every tool call to the running daemon through the
// unix socket, so previews, dedup and throttling behave the same as
// hotkey and CLI invocations.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snapdeck/snapdeck/internal/ipc"
)

const (
	ServerName    = "snapdeck"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for layout control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server backed by the daemon socket.
func NewServer() (*Server, error) {
	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("daemon not running: %w", err)
	}

	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_preset",
		Description: "Apply a window layout preset. Accepts a preset ID (left-half, right-half, top-half, bottom-half, quadrants, center, center-80, fill, auto-organize, grid-2x2, grid-3x3, fine-tune nudges) or a trigger command (window-left-half, windows-organize, ...). The layout lands on the active display's work area.",
	}, s.handleApplyPreset)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_presets",
		Description: "List all preset IDs and trigger command identifiers the daemon accepts.",
	}, s.handleListPresets)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows currently eligible for layout: visible, positionable and resizable, in the top-left to bottom-right order presets assign slots in.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo_layout",
		Description: "Restore the windows touched by the most recent preset to the positions they had before it was applied.",
	}, s.handleUndo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report daemon status: uptime, manageable window count and the outcome of the last preset application.",
	}, s.handleGetStatus)
}
