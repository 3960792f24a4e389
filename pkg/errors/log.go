package errors

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LogHandler writes structured error lines to a writer, os.Stderr by
// default. With Verbose set it appends the captured stack trace.
type LogHandler struct {
	Writer  io.Writer
	Verbose bool

	mu sync.Mutex
}

func (h *LogHandler) HandleError(err *FrameworkError) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[loom] %s kind=%s phase=%s op=%s err=%v\n",
		err.Timestamp.Format("15:04:05.000"), err.Kind, err.Phase, err.Op, err.Err)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintln(w, err.StackTrace)
	}
}

// CollectingHandler buffers reported errors for inspection, primarily in
// tests and by the diagnostics channel.
type CollectingHandler struct {
	mu     sync.Mutex
	errors []*FrameworkError
}

func (h *CollectingHandler) HandleError(err *FrameworkError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err)
}

// Errors returns a copy of the collected errors.
func (h *CollectingHandler) Errors() []*FrameworkError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*FrameworkError(nil), h.errors...)
}

// Clear discards the collected errors.
func (h *CollectingHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = nil
}
