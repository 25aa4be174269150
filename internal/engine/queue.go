// Package engine orchestrates preset application: it resolves context,
// computes geometry, and drives the layout executor through a single-lane
// queue with staleness rejection.
package engine

import (
	"log"
	"strings"
	"sync"

	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/preset"
	"github.com/snapdeck/snapdeck/internal/session"
)

// Move is the atomic unit sent to the executor: one window id and its target
// bounds. A batch contains at most one move per window id.
type Move struct {
	ID     string
	Bounds geometry.Rect
}

// Executor applies an ordered batch of moves as a single logical operation.
// A permission problem at the OS level is an ordinary error here, not a
// special case.
type Executor interface {
	Apply(moves []Move) error
}

// State is the terminal outcome of one apply invocation.
type State string

const (
	StateApplied    State = "applied"
	StateSkipped    State = "skipped-duplicate"
	StateFailed     State = "failed"
	StateSuperseded State = "superseded"
)

// Status messages surfaced on the failed path.
const (
	msgNoWindows  = "no windows"
	msgPermission = "failed, check permissions"
)

// Status is delivered on every terminal state change, fully decoupled from
// any rendering layer.
type Status struct {
	Preset  preset.ID
	State   State
	Message string
}

// maxAutoOrganize caps the window count for auto-organize; beyond four the
// bespoke layouts stop reading better than a plain grid.
const maxAutoOrganize = 4

// Options adjusts a single apply invocation.
type Options struct {
	// Force bypasses the context cache and the duplicate-key skip.
	Force bool
}

// Queue serializes preset application. It holds exactly one pending intent:
// a newer request overwrites an older one that has not started, and a
// monotonic sequence counter discards results of superseded applies. One
// Queue exists per application session; it is passed by reference, never
// copied.
type Queue struct {
	resolver *session.Resolver
	executor Executor
	onStatus func(Status)

	gap     int
	padding int

	mu       sync.Mutex
	pending  *intent
	draining bool
	seq      uint64
	lastKey  string
	lastUndo []Move

	// Session baseline: the earliest captured bounds of every window touched
	// since OpenSession. Restored wholesale by RestoreSession so an
	// interactive session can back out of any number of previews. Capture is
	// armed only while baselineSeen is non-nil.
	baseline     []Move
	baselineSeen map[string]bool
}

type intent struct {
	preset preset.ID
	force  bool
}

// New creates a queue over the given resolver and executor. onStatus may be
// nil; gap and padding are applied to every computed layout.
func New(resolver *session.Resolver, executor Executor, gap, padding int, onStatus func(Status)) *Queue {
	if onStatus == nil {
		onStatus = func(Status) {}
	}
	return &Queue{
		resolver: resolver,
		executor: executor,
		onStatus: onStatus,
		gap:      gap,
		padding:  padding,
	}
}

// UpdateLayoutSettings swaps the gap and padding applied to subsequent
// layouts. Used on config reload.
func (q *Queue) UpdateLayoutSettings(gap, padding int) {
	q.mu.Lock()
	q.gap = gap
	q.padding = padding
	q.mu.Unlock()
}

// OpenSession wipes the cached context, inventory, and preview key, and
// starts a fresh session baseline. Called whenever a new interactive session
// opens.
func (q *Queue) OpenSession() {
	q.resolver.Reset()
	q.mu.Lock()
	q.lastKey = ""
	q.baseline = nil
	q.baselineSeen = make(map[string]bool)
	q.mu.Unlock()
}

// QueuePreview submits a preset for application. Rapid successive calls
// coalesce: an intent that has not started is overwritten by the newest
// request, so the queue always converges on the most recent preset and never
// dispatches an intermediate stale one.
func (q *Queue) QueuePreview(id preset.ID, force bool) {
	q.mu.Lock()
	q.pending = &intent{preset: id, force: force}
	start := !q.draining
	if start {
		q.draining = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}
}

// drain pops and fully applies pending intents one at a time. At most one
// apply is ever in flight.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		it := q.pending
		q.pending = nil
		if it == nil {
			q.draining = false
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()

		q.ApplyNow(it.preset, Options{Force: it.force})
	}
}

// ApplyNow resolves context and inventory, computes the move batch, and
// dispatches it. All failures are local: the outcome is reported through the
// status callback and returned, never panicked or propagated.
func (q *Queue) ApplyNow(id preset.ID, opts Options) Status {
	st := q.apply(id, opts)
	q.onStatus(st)
	return st
}

func (q *Queue) apply(id preset.ID, opts Options) Status {
	if !id.Valid() {
		return Status{Preset: id, State: StateFailed, Message: "unknown preset"}
	}

	// Fine-tune presets recompute from the window's present bounds, so a
	// cached context from before the previous step would double-apply it.
	force := opts.Force || id.FineTune()

	ctx, err := q.resolver.ResolveContext(force)
	if err != nil {
		log.Printf("context resolution failed: %v", err)
		return Status{Preset: id, State: StateFailed, Message: msgNoWindows}
	}

	windows, status := q.orderedWindows(id, ctx, opts.Force)
	if status != nil {
		return *status
	}

	key := previewKey(id, windows)
	if !opts.Force && !id.FineTune() && q.sameAsLast(key) {
		return Status{Preset: id, State: StateSkipped}
	}

	q.mu.Lock()
	gap, padding := q.gap, q.padding
	q.mu.Unlock()

	moves := computeMoves(id, windows, ctx.Area, gap, padding)
	if len(moves) == 0 {
		return Status{Preset: id, State: StateFailed, Message: msgNoWindows}
	}

	undo := make([]Move, len(windows))
	for i, w := range windows {
		undo[i] = Move{ID: w.ID, Bounds: w.Bounds}
	}

	q.mu.Lock()
	q.seq++
	stamped := q.seq
	q.mu.Unlock()

	execErr := q.executor.Apply(moves)

	q.mu.Lock()
	defer q.mu.Unlock()
	if stamped != q.seq {
		// A newer apply was dispatched while this one was in flight; its
		// result owns the state now.
		return Status{Preset: id, State: StateSuperseded}
	}
	if execErr != nil {
		log.Printf("executor failed for preset %s: %v", id, execErr)
		return Status{Preset: id, State: StateFailed, Message: msgPermission}
	}
	q.lastKey = key
	q.lastUndo = undo
	if q.baselineSeen != nil {
		// Keep the earliest captured bounds per window: later batches must
		// not overwrite where the window stood when the session opened.
		for _, m := range undo {
			if !q.baselineSeen[m.ID] {
				q.baselineSeen[m.ID] = true
				q.baseline = append(q.baseline, m)
			}
		}
	}
	return Status{Preset: id, State: StateApplied}
}

// Undo reapplies the geometry captured before the last successful batch.
func (q *Queue) Undo() error {
	q.mu.Lock()
	undo := q.lastUndo
	q.lastUndo = nil
	q.lastKey = ""
	q.mu.Unlock()

	if len(undo) == 0 {
		return nil
	}
	return q.executor.Apply(undo)
}

// RestoreSession puts every window touched since OpenSession back to the
// bounds it had when the session opened, regardless of how many batches ran
// in between. A no-op when nothing was applied during the session.
func (q *Queue) RestoreSession() error {
	q.mu.Lock()
	moves := q.baseline
	q.baseline = nil
	if q.baselineSeen != nil {
		q.baselineSeen = make(map[string]bool)
	}
	q.lastUndo = nil
	q.lastKey = ""
	q.mu.Unlock()

	if len(moves) == 0 {
		return nil
	}
	return q.executor.Apply(moves)
}

// orderedWindows builds the window set an apply operates on: the single
// resolved target, or the sorted multi-window inventory.
func (q *Queue) orderedWindows(id preset.ID, ctx session.Context, force bool) ([]inventory.Window, *Status) {
	if !id.MultiWindow() {
		if ctx.Target == nil {
			return nil, &Status{Preset: id, State: StateFailed, Message: msgNoWindows}
		}
		return []inventory.Window{*ctx.Target}, nil
	}

	all, err := q.resolver.LoadWindows(force)
	if err != nil {
		log.Printf("window enumeration failed: %v", err)
		return nil, &Status{Preset: id, State: StateFailed, Message: msgNoWindows}
	}

	windows := inventory.FilterManageable(all, q.resolver.IsSelf())
	windows = inventory.FilterOnArea(windows, ctx.Area)
	inventory.SortForLayout(windows)

	if id == preset.AutoOrganize && len(windows) > maxAutoOrganize {
		windows = windows[:maxAutoOrganize]
	}

	if len(windows) == 0 {
		return nil, &Status{Preset: id, State: StateFailed, Message: msgNoWindows}
	}
	return windows, nil
}

func (q *Queue) sameAsLast(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return key == q.lastKey
}

// previewKey identifies one concrete arrangement: the preset plus the ordered
// window-id list it applies to.
func previewKey(id preset.ID, windows []inventory.Window) string {
	var b strings.Builder
	b.WriteString(string(id))
	for _, w := range windows {
		b.WriteString("|")
		b.WriteString(w.ID)
	}
	return b.String()
}
