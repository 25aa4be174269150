package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/snapdeck/snapdeck/internal/preset"
)

func newTestDispatcher(world *fakeWorld, exec Executor) (*Dispatcher, *[]time.Duration) {
	d := NewDispatcher(newTestQueue(world, exec))

	cur := time.Unix(2000, 0)
	slept := &[]time.Duration{}
	d.now = func() time.Time { return cur }
	d.sleep = func(dd time.Duration) {
		*slept = append(*slept, dd)
		cur = cur.Add(dd)
	}
	return d, slept
}

func TestExecuteCommand_TriggerTable(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	d, _ := newTestDispatcher(world, exec)

	if res := d.ExecuteCommand("window-left-half"); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if exec.batchCount() != 1 {
		t.Fatalf("expected one dispatch, got %d", exec.batchCount())
	}

	// Bare preset IDs work too.
	if res := d.ExecuteCommand("right-half"); !res.Success {
		t.Fatalf("expected success for bare ID, got %+v", res)
	}
}

func TestExecuteCommand_Unknown(t *testing.T) {
	world := newFakeWorld()
	d, _ := newTestDispatcher(world, newRecordingExecutor(world))

	res := d.ExecuteCommand("bogus")
	if res.Success {
		t.Fatal("expected failure for unknown command")
	}
	if res.Error != "unknown command: bogus" {
		t.Fatalf("unexpected error string: %q", res.Error)
	}
}

func TestExecutePreset_EnforcesSpacing(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	d, slept := newTestDispatcher(world, exec)

	d.ExecutePreset(preset.LeftHalf)
	if len(*slept) != 0 {
		t.Fatalf("first dispatch must not wait, slept %+v", *slept)
	}

	// Immediate second dispatch waits out the full spacing window.
	d.ExecutePreset(preset.RightHalf)
	if len(*slept) != 1 || (*slept)[0] != minDispatchSpacing {
		t.Fatalf("expected one %v sleep, got %+v", minDispatchSpacing, *slept)
	}
}

func TestExecutePreset_NoWaitAfterGap(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	d := NewDispatcher(newTestQueue(world, exec))

	cur := time.Unix(2000, 0)
	var slept []time.Duration
	d.now = func() time.Time { return cur }
	d.sleep = func(dd time.Duration) { slept = append(slept, dd) }

	d.ExecutePreset(preset.LeftHalf)
	cur = cur.Add(20 * time.Millisecond)
	d.ExecutePreset(preset.RightHalf)

	if len(slept) != 0 {
		t.Fatalf("expected no sleeps with 20ms between dispatches, got %+v", slept)
	}
}

// A duplicate that the queue skips still reports success on the hotkey path:
// the desired arrangement is in place.
func TestExecutePreset_SkippedDuplicateIsSuccess(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	d, _ := newTestDispatcher(world, exec)

	if res := d.ExecutePreset(preset.LeftHalf); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res := d.ExecutePreset(preset.LeftHalf); !res.Success {
		t.Fatalf("expected skipped duplicate to report success, got %+v", res)
	}
	if exec.batchCount() != 1 {
		t.Fatalf("expected one executor batch, got %d", exec.batchCount())
	}
}

func TestExecutePreset_FailureCarriesMessage(t *testing.T) {
	world := newFakeWorld()
	exec := newRecordingExecutor(world)
	exec.err = errors.New("denied")
	d, _ := newTestDispatcher(world, exec)

	res := d.ExecutePreset(preset.LeftHalf)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "failed, check permissions" {
		t.Fatalf("unexpected error message: %q", res.Error)
	}
}
