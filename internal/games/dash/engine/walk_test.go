package engine

import (
	"testing"
	"time"
)

const ms = time.Millisecond

// newTestSession builds a session from literal rows with default pacing.
func newTestSession(t *testing.T, cfg Config, rows ...string) *Session {
	t.Helper()
	tpl := Template{ID: "test", Width: len(rows[0]), Height: len(rows), Rows: rows}
	s, err := New(tpl, cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func playerAt(t *testing.T, s *Session) int {
	t.Helper()
	snap := s.Snapshot()
	for i, c := range snap.Cells {
		if c == Player {
			return i
		}
	}
	t.Fatal("no player on the board")
	return -1
}

func TestWalkOntoSandThenBlockedByRock(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "O.@")

	if !s.MoveTo(1) {
		t.Fatal("MoveTo(1) should start a walk")
	}
	if got := s.Snapshot().String(); got != "O@ " {
		t.Errorf("board after first move = %q, expected %q", got, "O@ ")
	}
	if s.Snapshot().LastWalk != WalkArrived {
		t.Errorf("LastWalk = %v, expected arrived", s.Snapshot().LastWalk)
	}

	if !s.MoveTo(0) {
		t.Fatal("MoveTo(0) should start a walk")
	}
	s.Advance(time.Second)

	snap := s.Snapshot()
	if got := snap.String(); got != "O@ " {
		t.Errorf("board after blocked move = %q, expected %q", got, "O@ ")
	}
	if snap.LastWalk != WalkBlocked {
		t.Errorf("LastWalk = %v, expected blocked", snap.LastWalk)
	}
	if snap.Walking {
		t.Error("walk should have ended")
	}
}

func TestWalkToCurrentCellIsNoop(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@ #")
	before := s.Snapshot().String()

	if s.MoveTo(1) {
		t.Error("MoveTo(current cell) should be ignored")
	}
	if s.MoveTo(99) {
		t.Error("MoveTo(out of range) should be ignored")
	}
	if got := s.Snapshot().String(); got != before {
		t.Errorf("board changed from %q to %q", before, got)
	}
}

func TestWalkVerticalThenHorizontal(t *testing.T) {
	s := newTestSession(t, DefaultConfig(),
		"#####",
		"#@  #",
		"#   #",
		"#   #",
		"#####",
	)

	if !s.MoveTo(18) {
		t.Fatal("MoveTo(18) should start a walk")
	}
	if s.MoveTo(8) {
		t.Error("a second walk must not start while one is in flight")
	}

	// One cell per Step, rows first
	path := []int{11, 16, 17, 18}
	for i, want := range path {
		if i > 0 {
			s.Advance(200 * ms)
		}
		if got := playerAt(t, s); got != want {
			t.Fatalf("step %d: player at %d, expected %d", i, got, want)
		}
	}

	snap := s.Snapshot()
	if snap.Walking || snap.LastWalk != WalkArrived {
		t.Errorf("walk state = (%v, %v), expected finished and arrived", snap.Walking, snap.LastWalk)
	}
	if snap.Cell(6) != Empty {
		t.Errorf("start cell = %v, expected Empty", snap.Cell(6))
	}

	if !s.MoveTo(8) {
		t.Error("a new walk should start after the previous one arrived")
	}
}

func TestWalkCollectsGemsUntilBlocked(t *testing.T) {
	s := newTestSession(t, DefaultConfig(),
		"#######",
		"#@XXOX#",
		"#######",
	)

	s.MoveTo(12)
	s.Advance(2 * time.Second)

	snap := s.Snapshot()
	if snap.Gems != 2 {
		t.Errorf("Gems = %d, expected 2", snap.Gems)
	}
	if snap.GemsTotal != 3 {
		t.Errorf("GemsTotal = %d, expected 3", snap.GemsTotal)
	}
	if got := playerAt(t, s); got != 10 {
		t.Errorf("player at %d, expected 10", got)
	}
	if snap.Cell(11) != Rock || snap.Cell(12) != Gem {
		t.Errorf("cells beyond the block changed: %v %v", snap.Cell(11), snap.Cell(12))
	}
	if snap.LastWalk != WalkBlocked {
		t.Errorf("LastWalk = %v, expected blocked", snap.LastWalk)
	}
	if snap.Status != StatusPlaying {
		t.Errorf("Status = %v, expected playing", snap.Status)
	}
}

func TestWalkIntoEnemyCostsLife(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@!#")

	if !s.MoveTo(2) {
		t.Fatal("MoveTo(2) should start a walk")
	}

	snap := s.Snapshot()
	if snap.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", snap.Lives)
	}
	if snap.Status != StatusTryAgain {
		t.Errorf("Status = %v, expected try_again", snap.Status)
	}
	if snap.LastWalk != WalkInterrupted {
		t.Errorf("LastWalk = %v, expected interrupted", snap.LastWalk)
	}
	if got := snap.String(); got != "#@!#" {
		t.Errorf("board = %q, expected unchanged", got)
	}
}

func TestWalkIgnoredOutsidePlay(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@X #")

	s.MoveTo(2)
	if s.Status() != StatusCompleted {
		t.Fatalf("Status = %v, expected completed", s.Status())
	}
	if s.MoveTo(3) {
		t.Error("MoveTo should be ignored once completed")
	}
}

func TestWalkCutShortByFallHitStaysCancelled(t *testing.T) {
	s := newTestSession(t, DefaultConfig(),
		" O     ",
		" @     ",
		"       ",
	)

	// Stepping aside starts the rock's settle delay
	if !s.MoveTo(9) {
		t.Fatal("MoveTo(9) should start a walk")
	}

	// Walk back under the rock so its first drop lands on the player
	s.Advance(700 * ms)
	if !s.MoveTo(7) {
		t.Fatal("MoveTo(7) should start a walk")
	}
	if playerAt(t, s) != 8 {
		t.Fatal("player should stand under the rock")
	}
	s.Advance(100 * ms)

	snap := s.Snapshot()
	if snap.Status != StatusTryAgain || snap.Lives != 2 {
		t.Fatalf("status %v lives %d, expected try_again with 2", snap.Status, snap.Lives)
	}
	if snap.Walking || snap.LastWalk != WalkInterrupted {
		t.Fatalf("walk state = (%v, %v), expected stopped and interrupted", snap.Walking, snap.LastWalk)
	}

	// The spawn is under the rock, so the player comes back on the first free cell
	s.Tap(0)
	if s.Status() != StatusPlaying {
		t.Fatalf("Status = %v after accepting, expected playing", s.Status())
	}
	if playerAt(t, s) != 0 {
		t.Fatalf("player restored at %d, expected 0", playerAt(t, s))
	}
	if !s.MoveTo(14) {
		t.Fatal("MoveTo(14) should start a walk")
	}

	// The interrupted walk's pending step is due now and must not end the new walk
	s.Advance(100 * ms)
	if !s.Snapshot().Walking {
		t.Fatal("new walk should still be in flight")
	}
	if s.MoveTo(13) {
		t.Fatal("a second walk was accepted while one is in flight")
	}
	if playerAt(t, s) != 7 {
		t.Errorf("player at %d, the stale walk must not move it", playerAt(t, s))
	}

	s.Advance(time.Second)
	snap = s.Snapshot()
	if snap.Walking || snap.LastWalk != WalkArrived {
		t.Errorf("walk state = (%v, %v), expected finished and arrived", snap.Walking, snap.LastWalk)
	}
	if playerAt(t, s) != 14 {
		t.Errorf("player at %d, expected 14", playerAt(t, s))
	}
	if snap.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", snap.Lives)
	}
}
