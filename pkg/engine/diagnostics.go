package engine

import (
	"sync"

	"github.com/loomui/loom/pkg/errors"
)

// diagnosticsCapacity bounds the retained record ring.
const diagnosticsCapacity = 128

// Diagnostics is the structured error channel surfaced to tooling: it
// retains the most recent framework error records and fans them out to
// subscribers, while forwarding every report to the handler it wrapped.
type Diagnostics struct {
	mu          sync.Mutex
	records     []*errors.FrameworkError
	subscribers map[int64]func(*errors.FrameworkError)
	nextSub     int64
	wrapped     errors.Handler
}

// InstallDiagnostics wraps the current global error handler with a
// Diagnostics collector and returns it. Errors keep flowing to the
// original handler.
func InstallDiagnostics() *Diagnostics {
	d := &Diagnostics{subscribers: make(map[int64]func(*errors.FrameworkError))}
	d.wrapped = errors.SetHandler(d)
	return d
}

// HandleError implements errors.Handler.
func (d *Diagnostics) HandleError(err *errors.FrameworkError) {
	d.mu.Lock()
	d.records = append(d.records, err)
	if len(d.records) > diagnosticsCapacity {
		d.records = d.records[len(d.records)-diagnosticsCapacity:]
	}
	subscribers := make([]func(*errors.FrameworkError), 0, len(d.subscribers))
	for _, fn := range d.subscribers {
		subscribers = append(subscribers, fn)
	}
	wrapped := d.wrapped
	d.mu.Unlock()

	for _, fn := range subscribers {
		fn(err)
	}
	if wrapped != nil {
		wrapped.HandleError(err)
	}
}

// Records returns a snapshot of the retained error records.
func (d *Diagnostics) Records() []*errors.FrameworkError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*errors.FrameworkError(nil), d.records...)
}

// Subscribe registers fn for every future record and returns an
// unsubscribe function.
func (d *Diagnostics) Subscribe(fn func(*errors.FrameworkError)) func() {
	d.mu.Lock()
	d.nextSub++
	handle := d.nextSub
	d.subscribers[handle] = fn
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		delete(d.subscribers, handle)
		d.mu.Unlock()
	}
}
