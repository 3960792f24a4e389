package gestures

import "testing"

// memberSpy records the arena verdicts a member receives.
type memberSpy struct {
	accepted []int64
	rejected []int64
	arena    *GestureArena
}

func (m *memberSpy) AcceptGesture(pointerID int64) { m.accepted = append(m.accepted, pointerID) }
func (m *memberSpy) RejectGesture(pointerID int64) { m.rejected = append(m.rejected, pointerID) }

func TestArenaExplicitResolve(t *testing.T) {
	arena := NewGestureArena()
	winner := &memberSpy{}
	loser := &memberSpy{}
	arena.Add(7, winner)
	arena.Add(7, loser)
	arena.Close(7)

	arena.Resolve(7, winner)

	if len(winner.accepted) != 1 || winner.accepted[0] != 7 {
		t.Fatalf("winner accepted = %v, want [7]", winner.accepted)
	}
	if len(loser.rejected) != 1 || len(loser.accepted) != 0 {
		t.Fatalf("loser verdicts = accept %v reject %v", loser.accepted, loser.rejected)
	}
	// A late resolve changes nothing.
	arena.Resolve(7, loser)
	if len(loser.accepted) != 0 {
		t.Fatal("resolved arena accepted a second winner")
	}
}

func TestArenaLastStandingWins(t *testing.T) {
	arena := NewGestureArena()
	a := &memberSpy{}
	b := &memberSpy{}
	arena.Add(1, a)
	arena.Add(1, b)
	arena.Close(1)

	arena.Reject(1, a)

	if len(b.accepted) != 1 {
		t.Fatalf("surviving member accepted = %v, want one win", b.accepted)
	}
	if len(a.rejected) != 1 {
		t.Fatalf("rejecting member rejected = %v, want its own rejection", a.rejected)
	}
}

func TestArenaSingleMemberWinsOnClose(t *testing.T) {
	arena := NewGestureArena()
	only := &memberSpy{}
	arena.Add(3, only)
	if len(only.accepted) != 0 {
		t.Fatal("member won before the down event finished routing")
	}
	arena.Close(3)
	if len(only.accepted) != 1 {
		t.Fatalf("sole member accepted = %v, want one win", only.accepted)
	}
}

func TestArenaSweepPicksFirstEligible(t *testing.T) {
	arena := NewGestureArena()
	first := &memberSpy{}
	second := &memberSpy{}
	arena.Add(9, first)
	arena.Add(9, second)
	arena.Close(9)

	arena.Sweep(9)

	if len(first.accepted) != 1 {
		t.Fatalf("first member accepted = %v, want one win", first.accepted)
	}
	if len(second.rejected) != 1 {
		t.Fatalf("second member rejected = %v, want one rejection", second.rejected)
	}
}

func TestArenaExactlyOneVerdictPerMember(t *testing.T) {
	arena := NewGestureArena()
	members := []*memberSpy{{}, {}, {}}
	for _, m := range members {
		arena.Add(4, m)
	}
	arena.Close(4)
	arena.Resolve(4, members[1])
	arena.Sweep(4)

	totalAccepts := 0
	for i, m := range members {
		verdicts := len(m.accepted) + len(m.rejected)
		if verdicts != 1 {
			t.Errorf("member %d received %d verdicts, want exactly 1", i, verdicts)
		}
		totalAccepts += len(m.accepted)
	}
	if totalAccepts != 1 {
		t.Fatalf("total accepts = %d, want exactly 1", totalAccepts)
	}
}

func TestArenaHoldDefersLastStanding(t *testing.T) {
	arena := NewGestureArena()
	holder := &memberSpy{}
	other := &memberSpy{}
	arena.Add(5, holder)
	arena.Add(5, other)
	arena.Hold(5, holder)
	arena.Close(5)

	arena.Reject(5, other)
	if len(holder.accepted) != 0 {
		t.Fatal("held member won before the sweep")
	}
	arena.Sweep(5)
	if len(holder.accepted) != 1 {
		t.Fatalf("held member accepted = %v after sweep, want one win", holder.accepted)
	}
}
