package mdpdf

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Trigger is the export control. It stays disabled until a preview
// succeeds and runs at most one export at a time.
type Trigger struct {
	readyLabel string
	enabled    atomic.Bool
	running    atomic.Bool

	mu    sync.Mutex
	label string
}

// NewTrigger returns a disabled trigger showing readyLabel.
func NewTrigger(readyLabel string) *Trigger {
	return &Trigger{readyLabel: readyLabel, label: readyLabel}
}

// Enabled reports whether an export can start now.
func (t *Trigger) Enabled() bool {
	return t.enabled.Load() && !t.running.Load()
}

// Label returns the text currently shown on the control.
func (t *Trigger) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.label
}

// Enable allows exports. It never disables again.
func (t *Trigger) Enable() {
	t.enabled.Store(true)
}

// Run claims the control, shows busyLabel while fn runs, then restores the
// ready label. A panic in fn is returned as an error.
// Returns ErrExportBusy if the control is disabled or already claimed.
func (t *Trigger) Run(ctx context.Context, busyLabel string, fn func(context.Context) error) (err error) {
	if !t.enabled.Load() || !t.running.CompareAndSwap(false, true) {
		return ErrExportBusy
	}
	t.setLabel(busyLabel)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export panicked: %v", r)
		}
		t.setLabel(t.readyLabel)
		t.running.Store(false)
	}()

	return fn(ctx)
}

func (t *Trigger) setLabel(label string) {
	t.mu.Lock()
	t.label = label
	t.mu.Unlock()
}
