package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/snapdeck/snapdeck/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// ApplyPreset asks the daemon to apply a preset by command identifier or
// bare preset ID.
func (c *Client) ApplyPreset(command string) (*ApplyPresetData, error) {
	payload, err := json.Marshal(ApplyPresetPayload{Command: command})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal apply payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandApplyPreset, Payload: payload})
	if err != nil {
		return nil, err
	}

	var data ApplyPresetData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse apply result: %w", err)
	}
	return &data, nil
}

// PreviewPreset enqueues a preset on the daemon without waiting for the
// layout to land. Successive calls coalesce on the daemon side.
func (c *Client) PreviewPreset(command string) error {
	payload, err := json.Marshal(ApplyPresetPayload{Command: command})
	if err != nil {
		return fmt.Errorf("failed to marshal preview payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandPreviewPreset, Payload: payload})
	return err
}

// ListPresets retrieves all preset IDs and trigger commands.
func (c *Client) ListPresets() (*PresetsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListPresets})
	if err != nil {
		return nil, err
	}

	var data PresetsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse presets data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// GetWindows retrieves the current manageable window list.
func (c *Client) GetWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// Undo sends an UNDO command to the daemon.
func (c *Client) Undo() error {
	_, err := c.sendRequest(&Request{Command: CommandUndo})
	return err
}

// OpenSession tells the daemon a new interactive session has opened.
func (c *Client) OpenSession() error {
	_, err := c.sendRequest(&Request{Command: CommandOpenSession})
	return err
}

// RestoreSession rolls the session's windows back to their bounds at
// OpenSession time.
func (c *Client) RestoreSession() error {
	_, err := c.sendRequest(&Request{Command: CommandRestoreSession})
	return err
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
