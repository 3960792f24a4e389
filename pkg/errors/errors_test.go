package errors

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func withCollector(t *testing.T) *CollectingHandler {
	t.Helper()
	collector := &CollectingHandler{}
	previous := SetHandler(collector)
	t.Cleanup(func() { SetHandler(previous) })
	return collector
}

func TestFrameworkErrorFormatting(t *testing.T) {
	err := &FrameworkError{
		Op:    "pipeline",
		Kind:  KindProtocol,
		Phase: "layout",
		Err:   errors.New("size violates constraints"),
	}
	msg := err.Error()
	for _, want := range []string{"pipeline", "protocol", "layout", "size violates"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap broken")
	}
}

func TestReportStampsTimestamp(t *testing.T) {
	collector := withCollector(t)
	Report(&FrameworkError{Op: "x", Kind: KindResource, Err: errors.New("gone")})
	got := collector.Errors()
	if len(got) != 1 {
		t.Fatalf("reports = %d, want 1", len(got))
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}
}

func TestReportProtocolNonStrict(t *testing.T) {
	collector := withCollector(t)
	SetStrict(false)
	ReportProtocol("paint", "unbalanced push")
	got := collector.Errors()
	if len(got) != 1 || got[0].Kind != KindProtocol {
		t.Fatalf("reports = %+v, want one protocol error", got)
	}
	if got[0].StackTrace == "" {
		t.Error("protocol report missing stack trace")
	}
}

func TestReportProtocolStrictPanics(t *testing.T) {
	withCollector(t)
	previous := SetStrict(true)
	defer SetStrict(previous)
	defer func() {
		if recover() == nil {
			t.Fatal("strict protocol violation did not panic")
		}
	}()
	ReportProtocol("layout", "arity mismatch")
}

func TestRecoverReportsPanic(t *testing.T) {
	collector := withCollector(t)
	func() {
		defer Recover("test.op")
		panic("boom")
	}()
	got := collector.Errors()
	if len(got) != 1 || got[0].Kind != KindPanic {
		t.Fatalf("reports = %+v, want one panic record", got)
	}
	var perr *PanicError
	if !errors.As(got[0].Err, &perr) || perr.Value != "boom" {
		t.Fatalf("wrapped err = %v, want PanicError(boom)", got[0].Err)
	}
}

func TestRecoverWithCallbackObservesPanic(t *testing.T) {
	withCollector(t)
	var observed *PanicError
	func() {
		defer RecoverWithCallback("test.op", func(p *PanicError) { observed = p })
		panic(42)
	}()
	if observed == nil || observed.Value != 42 {
		t.Fatalf("observed = %+v, want panic value 42", observed)
	}
}

func TestRecoverNoPanicIsSilent(t *testing.T) {
	collector := withCollector(t)
	func() {
		defer Recover("quiet")
	}()
	if len(collector.Errors()) != 0 {
		t.Fatal("Recover reported without a panic")
	}
}

func TestBoundaryErrorReportedAsTransient(t *testing.T) {
	collector := withCollector(t)
	ReportBoundaryError(&BoundaryError{Phase: "build", View: "badView", Recovered: "nope"})
	got := collector.Errors()
	if len(got) != 1 || got[0].Kind != KindTransient {
		t.Fatalf("reports = %+v, want one transient record", got)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Writer: &buf, Verbose: true}
	h.HandleError(&FrameworkError{
		Op:         "assets.Load",
		Kind:       KindResource,
		Err:        errors.New("missing"),
		StackTrace: "stack-here",
	})
	out := buf.String()
	for _, want := range []string{"kind=resource", "op=assets.Load", "missing", "stack-here"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestCaptureStackMentionsCaller(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "TestCaptureStackMentionsCaller") {
		t.Errorf("stack does not mention the caller:\n%s", stack)
	}
}
