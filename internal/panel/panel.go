// Package panel implements the interactive preset picker. Moving the
// cursor previews the highlighted preset live through the daemon's
// preview lane; Enter keeps the current layout, Esc restores the
// windows to where they were when the panel opened.
package panel

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/snapdeck/snapdeck/internal/ipc"
	"github.com/snapdeck/snapdeck/internal/preset"
)

// presetItem implements list.Item for the preset picker.
type presetItem struct {
	id preset.ID
}

func (i presetItem) Title() string {
	return strings.ReplaceAll(string(i.id), "-", " ")
}

func (i presetItem) Description() string { return "" }
func (i presetItem) FilterValue() string { return string(i.id) }

// statusMsg is sent after an IPC action completes.
type statusMsg struct {
	text string
}

// clearStatusMsg clears the status message after a delay.
type clearStatusMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// model is the root bubbletea model for the panel.
type model struct {
	list   list.Model
	client *ipc.Client

	// ID of the last preset we sent as a preview. Cursor movement that
	// lands on the same item again does not re-send.
	previewed preset.ID

	statusText string
	statusErr  bool

	width  int
	height int
}

func newModel(client *ipc.Client) model {
	ids := pickerPresets()
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, presetItem{id: id})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Presets"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{
		list:   l,
		client: client,
	}
}

// pickerPresets returns the presets shown in the panel. Fine-tune
// nudges are hotkey-only; previewing them from a picker would stack
// repeated deltas while the user scrolls past.
func pickerPresets() []preset.ID {
	var ids []preset.ID
	for _, id := range preset.All() {
		if id.FineTune() {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateListSize()
		return m, nil

	case statusMsg:
		m.statusText = msg.text
		m.statusErr = strings.HasPrefix(msg.text, "error")
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusText = ""
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.commitSelected()
		case "esc":
			return m.restoreAndQuit()
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	before := m.selectedID()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if after := m.selectedID(); after != "" && after != before && after != m.previewed {
		m.previewed = after
		return m, tea.Batch(cmd, m.previewCmd(after))
	}
	return m, cmd
}

func (m *model) updateListSize() {
	// Reserve one line each for the title bar, status line and help line
	listHeight := m.height - 3
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width, listHeight)
}

func (m model) selectedID() preset.ID {
	item, ok := m.list.SelectedItem().(presetItem)
	if !ok {
		return ""
	}
	return item.id
}

// previewCmd sends a fire-and-forget preview. The daemon's queue
// coalesces rapid cursor movement down to the latest preset.
func (m model) previewCmd(id preset.ID) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.PreviewPreset(string(id)); err != nil {
			return statusMsg{text: fmt.Sprintf("error: %v", err)}
		}
		return statusMsg{text: fmt.Sprintf("preview: %s", id)}
	}
}

// commitSelected applies the highlighted preset for real and exits.
func (m model) commitSelected() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, tea.Quit
	}
	result, err := m.client.ApplyPreset(string(id))
	if err != nil {
		m.statusText = fmt.Sprintf("error: %v", err)
		m.statusErr = true
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	if !result.Success {
		m.statusText = fmt.Sprintf("error: %s", result.Error)
		m.statusErr = true
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	return m, tea.Quit
}

// restoreAndQuit puts the windows back where they were when the panel
// opened and exits. The daemon holds the baseline, so any number of
// previews roll back in one step.
func (m model) restoreAndQuit() (tea.Model, tea.Cmd) {
	if m.previewed != "" {
		_ = m.client.RestoreSession()
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := m.statusText
	if status == "" {
		status = " "
	}
	statusLine := statusStyle.Render(status)
	if m.statusErr {
		statusLine = errorStyle.Render(status)
	}

	help := helpStyle.Render("↑/↓ preview · enter keep · esc restore · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("snapdeck"),
		m.list.View(),
		statusLine,
		help,
	)
}

// Run opens the preset panel. It requires a running daemon and an
// interactive terminal.
func Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("panel requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		return fmt.Errorf("daemon not running: %w", err)
	}

	// Fresh baseline so the first preview resolves current windows
	if err := client.OpenSession(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	p := tea.NewProgram(newModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("panel error: %w", err)
	}
	return nil
}
