package engine

import (
	"sync"
	"time"

	"github.com/snapdeck/snapdeck/internal/preset"
)

// minDispatchSpacing is the minimum time between consecutive non-interactive
// dispatches. A held repeat-trigger would otherwise flood the OS-level move
// calls.
const minDispatchSpacing = 14 * time.Millisecond

// Result is the structured outcome of a non-interactive execution. It is
// returned, never thrown: the hotkey path has no one to catch.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher is the non-interactive (hotkey) execution path: a globally
// serialized queue that enforces minimum spacing between dispatches.
type Dispatcher struct {
	queue *Queue

	mu      sync.Mutex
	last    time.Time
	spacing time.Duration
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewDispatcher creates a dispatcher over the queue.
func NewDispatcher(queue *Queue) *Dispatcher {
	return &Dispatcher{
		queue:   queue,
		spacing: minDispatchSpacing,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// ExecuteCommand resolves an external command identifier through the trigger
// table and applies the preset. Calls are serialized and spaced at least
// minDispatchSpacing apart.
func (d *Dispatcher) ExecuteCommand(command string) Result {
	id, ok := preset.FromTrigger(command)
	if !ok {
		return Result{Success: false, Error: "unknown command: " + command}
	}
	return d.ExecutePreset(id)
}

// ExecutePreset applies a preset on the non-interactive path.
func (d *Dispatcher) ExecutePreset(id preset.ID) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if wait := d.spacing - d.now().Sub(d.last); wait > 0 {
		d.sleep(wait)
	}
	d.last = d.now()

	st := d.queue.ApplyNow(id, Options{})
	switch st.State {
	case StateApplied, StateSkipped, StateSuperseded:
		return Result{Success: true}
	default:
		return Result{Success: false, Error: st.Message}
	}
}
