package game

import "testing"

func TestFingerGame_TargetInRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		g := NewFingerGame()
		target := g.Target()
		if target < MinTarget || target > MaxTarget {
			t.Fatalf("target = %d, want between %d and %d", target, MinTarget, MaxTarget)
		}
	}
}

func TestFingerGame_AdvanceOnMatch(t *testing.T) {
	g := NewFingerGame()
	target := g.Target()

	// A non-matching count does nothing.
	wrong := target%MaxTarget + 1 // always differs from target
	if _, ok := g.Advance(wrong); ok {
		t.Fatal("round advanced on a non-matching count")
	}
	if g.Score() != 0 {
		t.Fatalf("score = %d before any round was won, want 0", g.Score())
	}

	round, ok := g.Advance(target)
	if !ok {
		t.Fatal("round did not advance on a matching count")
	}
	if round.Target != target {
		t.Errorf("completed round target = %d, want %d", round.Target, target)
	}
	if round.CompletedAt.IsZero() {
		t.Error("completed round has no completion time")
	}
	if g.Score() != PointsPerRound {
		t.Errorf("score = %d after one round, want %d", g.Score(), PointsPerRound)
	}
	if g.RoundNumber() != 2 {
		t.Errorf("round number = %d after one win, want 2", g.RoundNumber())
	}
}

func TestFingerGame_NextTargetDiffers(t *testing.T) {
	g := NewFingerGame()

	for i := 0; i < 20; i++ {
		previous := g.Target()
		if _, ok := g.Advance(previous); !ok {
			t.Fatal("round did not advance on a matching count")
		}
		if g.Target() == previous {
			t.Fatalf("round %d reused target %d", i+2, previous)
		}
	}
}

func TestFingerGame_CompletedRounds(t *testing.T) {
	g := NewFingerGame()

	for i := 0; i < 3; i++ {
		g.Advance(g.Target())
	}

	rounds := g.CompletedRounds()
	if len(rounds) != 3 {
		t.Fatalf("completed rounds = %d, want 3", len(rounds))
	}
	for i, r := range rounds {
		if r.ID == "" {
			t.Errorf("round %d has no ID", i)
		}
	}
}

func TestFingerGame_SessionID(t *testing.T) {
	a := NewFingerGame()
	b := NewFingerGame()
	if a.SessionID() == "" {
		t.Fatal("session ID is empty")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("two games share a session ID")
	}
}
