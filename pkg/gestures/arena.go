package gestures

import "sync"

// GestureArenaMember is implemented by recognizers that enter a gesture
// arena. The arena calls AcceptGesture on the member that wins (so it can
// start firing its callbacks) and RejectGesture on every member that
// loses (so it can reset and stop watching the pointer).
type GestureArenaMember interface {
	AcceptGesture(pointerID int64)
	RejectGesture(pointerID int64)
}

// arenaEntry tracks one member's state within a single pointer's arena.
type arenaEntry struct {
	member GestureArenaMember
	// held is true while the member has asked to delay resolution (Hold),
	// e.g. because it needs to observe a few more move events before
	// deciding whether to accept or reject.
	held bool
}

// pointerArena holds the competing members for one in-flight pointer.
type pointerArena struct {
	pointerID int64
	entries   []*arenaEntry
	resolved  bool
	// closed is set once the routing down event has been fully dispatched;
	// an arena with exactly one member resolves automatically at that point.
	closed bool
}

// GestureArena disambiguates between multiple recognizers that are watching
// the same pointer. Recognizers call Add when they start watching a
// pointer, then Resolve (to claim victory), Reject (to concede), or Hold
// (to ask for more time) as they interpret subsequent move events. When a
// single member remains, or when an explicit Resolve/Sweep occurs, the
// arena picks a winner: it calls AcceptGesture on the winner and
// RejectGesture on everyone else.
type GestureArena struct {
	mu     sync.Mutex
	arenas map[int64]*pointerArena
}

// DefaultArena is the package-level arena used when callers don't manage
// their own. Nearly all recognizers share this single instance, mirroring
// how a single input pipeline serves an entire render tree.
var DefaultArena = NewGestureArena()

// NewGestureArena creates an empty arena.
func NewGestureArena() *GestureArena {
	return &GestureArena{arenas: make(map[int64]*pointerArena)}
}

func (a *GestureArena) arenaFor(pointerID int64) *pointerArena {
	arena := a.arenas[pointerID]
	if arena == nil {
		arena = &pointerArena{pointerID: pointerID}
		a.arenas[pointerID] = arena
	}
	return arena
}

// Add registers member as a competitor for pointerID.
func (a *GestureArena) Add(pointerID int64, member GestureArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenaFor(pointerID)
	if arena.resolved {
		return
	}
	arena.entries = append(arena.entries, &arenaEntry{member: member})
}

// Hold asks the arena to delay automatic resolution for member even if it
// would otherwise be the last remaining competitor. Used by recognizers
// that need a few events before they can tell whether they should win.
func (a *GestureArena) Hold(pointerID int64, member GestureArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenas[pointerID]
	if arena == nil {
		return
	}
	for _, e := range arena.entries {
		if e.member == member {
			e.held = true
		}
	}
}

// Resolve declares member the winner of pointerID's arena. All other
// members are rejected immediately.
func (a *GestureArena) Resolve(pointerID int64, member GestureArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenas[pointerID]
	if arena == nil || arena.resolved {
		return
	}
	a.resolveLocked(arena, member)
}

// Reject removes member from pointerID's arena. If member was the last
// remaining competitor, it wins by default (unless it has asked to Hold).
func (a *GestureArena) Reject(pointerID int64, member GestureArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenas[pointerID]
	if arena == nil || arena.resolved {
		return
	}
	for i, e := range arena.entries {
		if e.member == member {
			arena.entries = append(arena.entries[:i], arena.entries[i+1:]...)
			break
		}
	}
	member.RejectGesture(pointerID)
	a.maybeResolveLastStandingLocked(arena)
}

// resolveLocked picks winner, notifies every competitor, and marks the
// arena resolved. Callers must hold a.mu.
func (a *GestureArena) resolveLocked(arena *pointerArena, winner GestureArenaMember) {
	arena.resolved = true
	for _, e := range arena.entries {
		if e.member == winner {
			continue
		}
		e.member.RejectGesture(arena.pointerID)
	}
	winner.AcceptGesture(arena.pointerID)
}

// maybeResolveLastStandingLocked resolves the arena automatically when
// exactly one unheld member remains and the down event routing has closed.
func (a *GestureArena) maybeResolveLastStandingLocked(arena *pointerArena) {
	if arena.resolved || !arena.closed {
		return
	}
	if len(arena.entries) != 1 {
		return
	}
	if arena.entries[0].held {
		return
	}
	a.resolveLocked(arena, arena.entries[0].member)
}

// Close marks that the initial down event has finished routing to every
// candidate member for pointerID. Until Close is called the arena never
// auto-resolves, since more members may still be about to Add themselves.
func (a *GestureArena) Close(pointerID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenas[pointerID]
	if arena == nil {
		return
	}
	arena.closed = true
	if len(arena.entries) == 1 && !arena.entries[0].held {
		a.resolveLocked(arena, arena.entries[0].member)
	}
}

// Sweep forces resolution of pointerID's arena (if still unresolved) using
// the first member added, and discards all bookkeeping for the pointer.
// Called when a pointer is released or cancelled, so that a recognizer
// that was holding indefinitely doesn't leak its entry forever.
func (a *GestureArena) Sweep(pointerID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	arena := a.arenas[pointerID]
	if arena == nil {
		return
	}
	if !arena.resolved && len(arena.entries) > 0 {
		a.resolveLocked(arena, arena.entries[0].member)
	}
	delete(a.arenas, pointerID)
}
