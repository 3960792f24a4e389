package layout

import (
	"testing"

	"github.com/loomui/loom/pkg/errors"
)

// collectingProtocolHandler records the kinds of reported errors so tests
// can assert on protocol violations without strict-mode panics.
type collectingProtocolHandler struct {
	kinds []errors.ErrorKind
}

func (h *collectingProtocolHandler) HandleError(err *errors.FrameworkError) {
	h.kinds = append(h.kinds, err.Kind)
}

func swapHandler(t *testing.T, h errors.Handler) func() {
	t.Helper()
	previous := errors.SetHandler(h)
	return func() { errors.SetHandler(previous) }
}
