package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
	"github.com/snapdeck/snapdeck/internal/preset"
	"github.com/snapdeck/snapdeck/internal/session"
)

var testArea = geometry.Area{Left: 0, Top: 0, Width: 1920, Height: 1080}

// fakeWorld is a one-window world: the resolver reads the window's bounds
// from it and the executor writes them back, so fine-tune chains see their
// own previous result.
type fakeWorld struct {
	mu       sync.Mutex
	win      inventory.Window
	resolves int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		win: inventory.Window{
			ID:           "w1",
			AppName:      "editor",
			Bounds:       geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300},
			Positionable: true,
			Resizable:    true,
		},
	}
}

func (f *fakeWorld) providers() session.Providers {
	return session.Providers{
		ManagementContext: func() (*inventory.Window, *geometry.Area, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.resolves++
			win := f.win
			area := testArea
			return &win, &area, nil
		},
	}
}

func (f *fakeWorld) bounds() geometry.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.win.Bounds
}

func (f *fakeWorld) resolveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolves
}

// recordingExecutor captures every batch and feeds single-window moves back
// into the world.
type recordingExecutor struct {
	mu      sync.Mutex
	world   *fakeWorld
	batches [][]Move
	err     error
	// blockFirst makes the first Apply wait until release is closed.
	blockFirst bool
	entered    chan struct{}
	release    chan struct{}
	calls      int
}

func newRecordingExecutor(world *fakeWorld) *recordingExecutor {
	return &recordingExecutor{
		world:   world,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (e *recordingExecutor) Apply(moves []Move) error {
	e.mu.Lock()
	e.calls++
	first := e.calls == 1
	e.batches = append(e.batches, moves)
	err := e.err
	e.mu.Unlock()

	if first && e.blockFirst {
		close(e.entered)
		<-e.release
	}
	if err != nil {
		return err
	}

	if e.world != nil {
		e.world.mu.Lock()
		for _, m := range moves {
			if m.ID == e.world.win.ID {
				e.world.win.Bounds = m.Bounds
			}
		}
		e.world.mu.Unlock()
	}
	return nil
}

func (e *recordingExecutor) batchCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.batches)
}

func (e *recordingExecutor) lastBatch() []Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.batches) == 0 {
		return nil
	}
	return e.batches[len(e.batches)-1]
}

func newTestQueue(world *fakeWorld, exec Executor) *Queue {
	resolver := session.NewResolver(world.providers(), nil)
	return New(resolver, exec, 0, 0, nil)
}

func TestApplyNow_SingleWindowPreset(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	st := q.ApplyNow(preset.LeftHalf, Options{})
	if st.State != StateApplied {
		t.Fatalf("expected applied, got %s (%s)", st.State, st.Message)
	}

	batch := exec.lastBatch()
	if len(batch) != 1 || batch[0].ID != "w1" {
		t.Fatalf("expected one move for w1, got %+v", batch)
	}
	want := geometry.Rect{X: 0, Y: 0, Width: 960, Height: 1080}
	if batch[0].Bounds != want {
		t.Fatalf("expected left half %+v, got %+v", want, batch[0].Bounds)
	}
}

func TestApplyNow_SkipsDuplicate(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	if st := q.ApplyNow(preset.LeftHalf, Options{}); st.State != StateApplied {
		t.Fatalf("expected first apply to land, got %s", st.State)
	}
	if st := q.ApplyNow(preset.LeftHalf, Options{}); st.State != StateSkipped {
		t.Fatalf("expected duplicate to be skipped, got %s", st.State)
	}
	if exec.batchCount() != 1 {
		t.Fatalf("expected 1 executor batch, got %d", exec.batchCount())
	}

	// A different preset is not a duplicate.
	if st := q.ApplyNow(preset.RightHalf, Options{}); st.State != StateApplied {
		t.Fatalf("expected different preset to apply, got %s", st.State)
	}
}

func TestApplyNow_ForceReappliesDuplicate(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	q.ApplyNow(preset.LeftHalf, Options{})
	if st := q.ApplyNow(preset.LeftHalf, Options{Force: true}); st.State != StateApplied {
		t.Fatalf("expected forced reapply, got %s", st.State)
	}
	if exec.batchCount() != 2 {
		t.Fatalf("expected 2 executor batches, got %d", exec.batchCount())
	}
}

// Fine-tune presets recompute from current bounds, so each step must resolve
// fresh and a left-right pair must cancel out.
func TestApplyNow_FineTuneChain(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	if st := q.ApplyNow(preset.MoveRight10, Options{}); st.State != StateApplied {
		t.Fatalf("expected move-right to apply, got %s", st.State)
	}
	if got := world.bounds().X; got != 140 {
		t.Fatalf("expected X 140 after one step, got %d", got)
	}

	if st := q.ApplyNow(preset.MoveRight10, Options{}); st.State != StateApplied {
		t.Fatalf("expected repeated fine-tune to apply, not dedup, got %s", st.State)
	}
	if got := world.bounds().X; got != 180 {
		t.Fatalf("expected X 180 after two steps, got %d", got)
	}

	q.ApplyNow(preset.MoveLeft10, Options{})
	q.ApplyNow(preset.MoveLeft10, Options{})
	if got := world.bounds().X; got != 100 {
		t.Fatalf("expected return to X 100, got %d", got)
	}

	// Every fine-tune step bypassed the cache.
	if world.resolveCount() != 4 {
		t.Fatalf("expected 4 fresh resolutions, got %d", world.resolveCount())
	}
}

func TestApplyNow_NoTarget(t *testing.T) {
	resolver := session.NewResolver(session.Providers{
		ManagementContext: func() (*inventory.Window, *geometry.Area, error) {
			area := testArea
			return nil, &area, nil
		},
	}, nil)
	exec := newRecordingExecutor(nil)
	q := New(resolver, exec, 0, 0, nil)

	st := q.ApplyNow(preset.LeftHalf, Options{})
	if st.State != StateFailed || st.Message != "no windows" {
		t.Fatalf("expected failed with %q, got %s (%q)", "no windows", st.State, st.Message)
	}
	if exec.batchCount() != 0 {
		t.Fatal("executor must not run without a target")
	}
}

func TestApplyNow_ExecutorFailure(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	exec.err = errors.New("denied")
	q := newTestQueue(world, exec)

	st := q.ApplyNow(preset.LeftHalf, Options{})
	if st.State != StateFailed || st.Message != "failed, check permissions" {
		t.Fatalf("expected permission failure message, got %s (%q)", st.State, st.Message)
	}

	// The failed apply must not arm the duplicate skip.
	exec.mu.Lock()
	exec.err = nil
	exec.mu.Unlock()
	if st := q.ApplyNow(preset.LeftHalf, Options{}); st.State != StateApplied {
		t.Fatalf("expected retry to apply, got %s", st.State)
	}
}

func TestApplyNow_UnknownPreset(t *testing.T) {
	world := newFakeWorld()
	q := newTestQueue(world, newRecordingExecutor(world))

	if st := q.ApplyNow(preset.ID("bogus"), Options{}); st.State != StateFailed {
		t.Fatalf("expected failure for unknown preset, got %s", st.State)
	}
}

func TestApplyNow_AutoOrganizeCapsAtFour(t *testing.T) {
	windows := make([]inventory.Window, 6)
	for i := range windows {
		windows[i] = inventory.Window{
			ID:           string(rune('a' + i)),
			AppName:      "editor",
			Bounds:       geometry.Rect{X: i * 200, Y: 0, Width: 400, Height: 300},
			Positionable: true,
			Resizable:    true,
		}
	}

	resolver := session.NewResolver(session.Providers{
		ManagementContext: func() (*inventory.Window, *geometry.Area, error) {
			area := testArea
			return nil, &area, nil
		},
		Windows: func() ([]inventory.Window, error) {
			return windows, nil
		},
	}, nil)
	exec := newRecordingExecutor(nil)
	q := New(resolver, exec, 0, 0, nil)

	st := q.ApplyNow(preset.AutoOrganize, Options{})
	if st.State != StateApplied {
		t.Fatalf("expected applied, got %s (%s)", st.State, st.Message)
	}
	if got := len(exec.lastBatch()); got != 4 {
		t.Fatalf("expected auto-organize capped at 4 moves, got %d", got)
	}
}

func TestUndo_RestoresPreviousBounds(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	original := world.bounds()
	q.ApplyNow(preset.Fill, Options{})
	if world.bounds() == original {
		t.Fatal("expected fill to move the window")
	}

	if err := q.Undo(); err != nil {
		t.Fatalf("unexpected undo error: %v", err)
	}
	if world.bounds() != original {
		t.Fatalf("expected bounds restored to %+v, got %+v", original, world.bounds())
	}
}

func TestUndo_NothingToRestore(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	if err := q.Undo(); err != nil {
		t.Fatalf("undo with no history must be a no-op, got %v", err)
	}
	if exec.batchCount() != 0 {
		t.Fatal("executor must not run with no undo history")
	}
}

// Esc in an interactive session must land on the pre-session layout, not an
// intermediate one, no matter how many previews ran with fresh resolutions
// in between.
func TestRestoreSession_ReturnsToSessionBaseline(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	original := world.bounds()
	q.OpenSession()

	q.ApplyNow(preset.LeftHalf, Options{})
	// Force makes the second preview resolve the window's moved bounds, so
	// its own undo snapshot is the left-half layout, not the original.
	q.ApplyNow(preset.TopHalf, Options{Force: true})
	if world.bounds() == original {
		t.Fatal("expected previews to move the window")
	}

	if err := q.RestoreSession(); err != nil {
		t.Fatalf("unexpected restore error: %v", err)
	}
	if world.bounds() != original {
		t.Fatalf("expected bounds restored to %+v, got %+v", original, world.bounds())
	}

	// The baseline is consumed; restoring again dispatches nothing.
	batches := exec.batchCount()
	if err := q.RestoreSession(); err != nil {
		t.Fatalf("unexpected second restore error: %v", err)
	}
	if exec.batchCount() != batches {
		t.Fatal("second restore must not dispatch another batch")
	}
}

func TestRestoreSession_NoopWhenNothingApplied(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	q.OpenSession()
	if err := q.RestoreSession(); err != nil {
		t.Fatalf("restore with no applies must be a no-op, got %v", err)
	}
	if exec.batchCount() != 0 {
		t.Fatal("executor must not run with an empty baseline")
	}
}

func TestOpenSession_ClearsDuplicateSkip(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	q := newTestQueue(world, exec)

	q.ApplyNow(preset.LeftHalf, Options{})
	q.OpenSession()

	if st := q.ApplyNow(preset.LeftHalf, Options{}); st.State != StateApplied {
		t.Fatalf("expected reapply after new session, got %s", st.State)
	}
}

// While one apply is executing, newer previews overwrite each other: only
// the latest pending preset runs once the executor frees up.
func TestQueuePreview_CoalescesPending(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	exec.blockFirst = true

	resolver := session.NewResolver(world.providers(), nil)
	statuses := make(chan Status, 8)
	q := New(resolver, exec, 0, 0, func(st Status) { statuses <- st })

	q.QueuePreview(preset.LeftHalf, false)
	<-exec.entered

	q.QueuePreview(preset.TopHalf, false)
	q.QueuePreview(preset.BottomHalf, false)
	close(exec.release)

	var seen []Status
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case st := <-statuses:
			seen = append(seen, st)
		case <-timeout:
			t.Fatalf("timed out waiting for statuses, saw %+v", seen)
		}
	}

	if seen[0].Preset != preset.LeftHalf {
		t.Fatalf("expected first status for left-half, got %s", seen[0].Preset)
	}
	if seen[1].Preset != preset.BottomHalf {
		t.Fatalf("expected coalesced second status for bottom-half, got %s", seen[1].Preset)
	}
	if exec.batchCount() != 2 {
		t.Fatalf("expected intermediate preset never dispatched, got %d batches", exec.batchCount())
	}
}

func TestApplyNow_SupersededByNewerDispatch(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	exec.blockFirst = true
	q := newTestQueue(world, exec)

	firstDone := make(chan Status, 1)
	go func() {
		firstDone <- q.ApplyNow(preset.LeftHalf, Options{})
	}()
	<-exec.entered

	// A second apply runs to completion while the first is stuck in its
	// executor call.
	if st := q.ApplyNow(preset.TopHalf, Options{}); st.State != StateApplied {
		t.Fatalf("expected second apply to land, got %s", st.State)
	}

	close(exec.release)
	st := <-firstDone
	if st.State != StateSuperseded {
		t.Fatalf("expected first apply superseded, got %s", st.State)
	}
}
