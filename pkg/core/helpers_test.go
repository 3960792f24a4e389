package core

import (
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
)

// recordingHandler captures reported framework errors for assertions.
type recordingHandler struct {
	errors []*errors.FrameworkError
}

func (h *recordingHandler) HandleError(err *errors.FrameworkError) {
	h.errors = append(h.errors, err)
}

func swapErrorHandler(h errors.Handler) func() {
	previous := errors.SetHandler(h)
	return func() { errors.SetHandler(previous) }
}

// themeView is a provider publishing a color to its subtree.
type themeView struct {
	ViewBase
	Color graphics.Color
	Child View
}

func (v themeView) CreateElement() Element { return NewProviderElement() }

func (v themeView) ChildView() View { return v.Child }

func (v themeView) UpdateShouldNotify(previous ProviderView) bool {
	return v.Color != previous.(themeView).Color
}
