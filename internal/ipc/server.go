package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/snapdeck/snapdeck/internal/engine"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/platform"
	"github.com/snapdeck/snapdeck/internal/preset"
	"github.com/snapdeck/snapdeck/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	listener   net.Listener
	queue      *engine.Queue
	dispatcher *engine.Dispatcher
	backend    platform.Backend
	isSelf     inventory.SelfIdentifier
	startTime  time.Time
	reloadChan chan struct{}

	mu           sync.Mutex
	lastStatus   engine.Status
	shuttingDown bool
}

// NewServer creates a new IPC server
func NewServer(queue *engine.Queue, dispatcher *engine.Dispatcher, backend platform.Backend, isSelf inventory.SelfIdentifier, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		queue:      queue,
		dispatcher: dispatcher,
		backend:    backend,
		isSelf:     isSelf,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// RecordStatus stores the most recent engine status for GET_STATUS. Wired as
// the queue's status callback.
func (s *Server) RecordStatus(st engine.Status) {
	s.mu.Lock()
	s.lastStatus = st
	s.mu.Unlock()
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Stop shuts the listener down and removes the socket.
func (s *Server) Stop() {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			down := s.shuttingDown
			s.mu.Unlock()
			if down {
				return
			}
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandApplyPreset:
		return s.handleApplyPreset(req.Payload)
	case CommandPreviewPreset:
		return s.handlePreviewPreset(req.Payload)
	case CommandListPresets:
		return s.handleListPresets()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandUndo:
		return s.handleUndo()
	case CommandOpenSession:
		return s.handleOpenSession()
	case CommandRestoreSession:
		return s.handleRestoreSession()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleApplyPreset runs a preset through the non-interactive dispatcher.
func (s *Server) handleApplyPreset(payload json.RawMessage) *Response {
	var applyReq ApplyPresetPayload
	if err := json.Unmarshal(payload, &applyReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid apply payload: %v", err))
	}

	log.Printf("IPC: Apply preset %q", applyReq.Command)

	result := s.dispatcher.ExecuteCommand(applyReq.Command)
	resp, err := NewOKResponse(ApplyPresetData{Success: result.Success, Error: result.Error})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handlePreviewPreset enqueues a preset without waiting for the result.
// Rapid successive previews coalesce: only the latest pending one is applied.
func (s *Server) handlePreviewPreset(payload json.RawMessage) *Response {
	var previewReq ApplyPresetPayload
	if err := json.Unmarshal(payload, &previewReq); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid preview payload: %v", err))
	}

	id, ok := preset.FromTrigger(previewReq.Command)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", previewReq.Command))
	}

	s.queue.QueuePreview(id, false)
	resp, _ := NewOKResponse(ApplyPresetData{Success: true})
	return resp
}

func (s *Server) handleListPresets() *Response {
	presets := make([]string, 0)
	for _, id := range preset.All() {
		presets = append(presets, string(id))
	}

	commands := preset.TriggerCommands()
	sort.Strings(commands)

	resp, _ := NewOKResponse(PresetsData{Presets: presets, Commands: commands})
	return resp
}

func (s *Server) handleGetStatus() *Response {
	windowCount := 0
	if windows, err := s.backend.ListWindows(); err == nil {
		windowCount = len(inventory.FilterManageable(windows, s.isSelf))
	}

	s.mu.Lock()
	last := s.lastStatus
	s.mu.Unlock()

	status := StatusData{
		WindowCount:   windowCount,
		LastPreset:    string(last.Preset),
		LastState:     string(last.State),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetWindows() *Response {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}

	manageable := inventory.FilterManageable(windows, s.isSelf)
	infos := make([]WindowInfo, len(manageable))
	for i, w := range manageable {
		infos[i] = WindowInfo{
			ID:     w.ID,
			Title:  w.Title,
			App:    w.AppName,
			X:      w.Bounds.X,
			Y:      w.Bounds.Y,
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		}
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

func (s *Server) handleUndo() *Response {
	log.Println("IPC: Received UNDO command")
	if err := s.queue.Undo(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Undo failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// handleOpenSession wipes the session caches. Interactive frontends call this
// when they open so no stale context leaks across sessions.
func (s *Server) handleOpenSession() *Response {
	s.queue.OpenSession()
	resp, _ := NewOKResponse(nil)
	return resp
}

// handleRestoreSession rolls every window touched during the session back to
// its bounds at OPEN_SESSION time. The panel's escape path.
func (s *Server) handleRestoreSession() *Response {
	if err := s.queue.RestoreSession(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Restore failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	data, err := resp.Marshal()
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
