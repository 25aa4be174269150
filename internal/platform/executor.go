package platform

import (
	"errors"
	"fmt"

	"github.com/snapdeck/snapdeck/internal/engine"
)

// BatchExecutor applies move batches through a Backend. The batch is one
// logical operation from the caller's perspective: every move is attempted,
// and any per-window failures are joined into a single error.
type BatchExecutor struct {
	backend Backend
}

var _ engine.Executor = (*BatchExecutor)(nil)

// NewBatchExecutor creates an executor over the backend.
func NewBatchExecutor(backend Backend) *BatchExecutor {
	return &BatchExecutor{backend: backend}
}

// Apply moves every window in the batch. Failures on one window do not stop
// the rest of the batch.
func (e *BatchExecutor) Apply(moves []engine.Move) error {
	var errs []error
	for _, m := range moves {
		if err := e.backend.MoveResize(m.ID, m.Bounds); err != nil {
			errs = append(errs, fmt.Errorf("move window %s: %w", m.ID, err))
		}
	}
	return errors.Join(errs...)
}
