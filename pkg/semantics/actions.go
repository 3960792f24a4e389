package semantics

// SemanticsAction identifies an accessibility action a platform assistive
// technology can request of a node (activate, long-press, scroll, adjust
// a value, dismiss, or invoke a named custom action).
type SemanticsAction int

const (
	SemanticsActionTap SemanticsAction = iota
	SemanticsActionLongPress
	SemanticsActionScrollLeft
	SemanticsActionScrollRight
	SemanticsActionScrollUp
	SemanticsActionScrollDown
	SemanticsActionIncrease
	SemanticsActionDecrease
	SemanticsActionDismiss
	SemanticsActionFocus
	SemanticsActionCustomAction
)

func (a SemanticsAction) String() string {
	switch a {
	case SemanticsActionTap:
		return "tap"
	case SemanticsActionLongPress:
		return "longPress"
	case SemanticsActionScrollLeft:
		return "scrollLeft"
	case SemanticsActionScrollRight:
		return "scrollRight"
	case SemanticsActionScrollUp:
		return "scrollUp"
	case SemanticsActionScrollDown:
		return "scrollDown"
	case SemanticsActionIncrease:
		return "increase"
	case SemanticsActionDecrease:
		return "decrease"
	case SemanticsActionDismiss:
		return "dismiss"
	case SemanticsActionFocus:
		return "focus"
	case SemanticsActionCustomAction:
		return "customAction"
	default:
		return "unknown"
	}
}

// CustomSemanticsAction names an action beyond the built-in set, exposed
// to the platform with an application-chosen label (e.g. "Archive").
type CustomSemanticsAction struct {
	ID    int64
	Label string
}

// SemanticsActions holds the action handlers attached to a node's
// configuration. Handlers are invoked with a platform-supplied argument,
// which is nil for actions that take none.
type SemanticsActions struct {
	handlers map[SemanticsAction]func(args any)
}

// NewSemanticsActions creates an empty action set.
func NewSemanticsActions() *SemanticsActions {
	return &SemanticsActions{handlers: make(map[SemanticsAction]func(args any))}
}

// SetHandler registers fn to run when action is requested.
func (a *SemanticsActions) SetHandler(action SemanticsAction, fn func(args any)) {
	a.handlers[action] = fn
}

// Has reports whether a handler is registered for action.
func (a *SemanticsActions) Has(action SemanticsAction) bool {
	if a == nil {
		return false
	}
	_, ok := a.handlers[action]
	return ok
}

// Invoke runs the handler registered for action, if any, and reports
// whether one was found.
func (a *SemanticsActions) Invoke(action SemanticsAction, args any) bool {
	if a == nil {
		return false
	}
	fn, ok := a.handlers[action]
	if !ok {
		return false
	}
	fn(args)
	return true
}

// IsEmpty reports whether no handlers are registered.
func (a *SemanticsActions) IsEmpty() bool {
	return a == nil || len(a.handlers) == 0
}

// Merge copies every handler from other into a, overwriting a's existing
// handler for any action both define.
func (a *SemanticsActions) Merge(other *SemanticsActions) {
	if other == nil {
		return
	}
	for action, fn := range other.handlers {
		a.handlers[action] = fn
	}
}
