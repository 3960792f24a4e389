package errors

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Handler receives every reported framework error. Implementations must
// be safe for concurrent use; reports can originate from the embedder's
// event delivery as well as the UI thread.
type Handler interface {
	HandleError(err *FrameworkError)
}

var (
	handlerMu sync.RWMutex
	handler   Handler = &LogHandler{}

	// strict turns protocol violations into panics, the behavior wanted
	// in development and tests that assert on contract breakage.
	strict atomic.Bool
)

// SetHandler installs a global handler and returns the previous one.
func SetHandler(h Handler) Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	previous := handler
	if h == nil {
		h = &LogHandler{}
	}
	handler = h
	return previous
}

// CurrentHandler returns the installed handler.
func CurrentHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// SetStrict toggles fatal treatment of protocol violations and returns
// the previous setting.
func SetStrict(enabled bool) bool {
	return strict.Swap(enabled)
}

// Strict reports whether protocol violations are fatal.
func Strict() bool { return strict.Load() }

// Report dispatches err to the global handler, stamping a timestamp if
// the caller left it zero.
func Report(err *FrameworkError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(err)
}

// ReportProtocol records a pipeline contract violation. In strict mode it
// panics so the offending call site fails loudly; otherwise the error
// goes to the handler and the caller recovers best-effort.
func ReportProtocol(phase, message string) {
	err := &FrameworkError{
		Op:         "pipeline",
		Kind:       KindProtocol,
		Phase:      phase,
		Err:        errors.New(message),
		StackTrace: CaptureStack(),
	}
	if Strict() {
		panic(err)
	}
	Report(err)
}

// ReportBoundaryError forwards a captured build failure to the handler as
// a transient error.
func ReportBoundaryError(b *BoundaryError) {
	if b == nil {
		return
	}
	Report(&FrameworkError{
		Op:         "build",
		Kind:       KindTransient,
		Phase:      b.Phase,
		Err:        fmt.Errorf("build of %s failed: %v", b.View, b.Recovered),
		StackTrace: b.StackTrace,
		Timestamp:  b.Timestamp,
	})
}

// Recover converts a panic in the surrounding function into a reported
// KindPanic error. Use in a defer:
//
//	defer errors.Recover("engine.DrawFrame")
func Recover(op string) {
	if r := recover(); r != nil {
		reportPanic(op, r)
	}
}

// RecoverWithCallback is Recover plus a callback observing the wrapped
// panic, letting callers preserve state or finalize a frame.
func RecoverWithCallback(op string, callback func(*PanicError)) {
	if r := recover(); r != nil {
		perr := reportPanic(op, r)
		if callback != nil {
			callback(perr)
		}
	}
}

func reportPanic(op string, value any) *PanicError {
	perr := &PanicError{Op: op, Value: value, StackTrace: CaptureStack()}
	Report(&FrameworkError{
		Op:         op,
		Kind:       KindPanic,
		Err:        perr,
		StackTrace: perr.StackTrace,
	})
	return perr
}
