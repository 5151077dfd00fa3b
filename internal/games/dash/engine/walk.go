package engine

import "fmt"

// WalkOutcome records how the most recent path-walk ended.
type WalkOutcome int

const (
	WalkNone        WalkOutcome = iota // no walk yet in this generation
	WalkActive                         // a walk is in flight
	WalkArrived                        // the target cell was reached
	WalkBlocked                        // a Wall, Rock or grid edge stopped the walk
	WalkInterrupted                    // the walk was cut short by a hit, a win or a lost player
)

// String returns a human-readable name for the outcome.
func (w WalkOutcome) String() string {
	switch w {
	case WalkNone:
		return "none"
	case WalkActive:
		return "active"
	case WalkArrived:
		return "arrived"
	case WalkBlocked:
		return "blocked"
	case WalkInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (w WalkOutcome) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText decodes an outcome name written by MarshalText.
func (w *WalkOutcome) UnmarshalText(text []byte) error {
	for o := WalkNone; o <= WalkInterrupted; o++ {
		if o.String() == string(text) {
			*w = o
			return nil
		}
	}
	return fmt.Errorf("engine: unknown walk outcome %q", text)
}

// walk is the state of one path-walk task.
type walk struct {
	id     uint64
	gen    uint64
	pos    int // current player index
	target int
}

// moveTo starts a path-walk. The first step is taken immediately, the rest
// one Timing.Step apart.
func (s *Session) moveTo(target int) bool {
	if s.status != StatusPlaying || s.walking || !s.grid.Valid(target) {
		return false
	}
	start, ok := s.grid.IndexOf(Player)
	if !ok || start == target {
		return false
	}

	s.walkID++
	s.walking = true
	s.lastWalk = WalkActive
	s.walkStep(&walk{id: s.walkID, gen: s.generation, pos: start, target: target})
	return true
}

// walkStep advances the player one cell: rows first until the target row is
// reached, then columns. Never diagonal. A walk superseded by a status
// change or a newer walk does nothing.
func (s *Session) walkStep(w *walk) {
	if w.gen != s.generation || w.id != s.walkID {
		return
	}
	if s.status != StatusPlaying || s.grid.Get(w.pos) != Player {
		s.endWalk(WalkInterrupted)
		return
	}

	dx, dy := s.stepToward(w.pos, w.target)
	if dx == 0 && dy == 0 {
		s.endWalk(WalkArrived)
		return
	}

	next, ok := s.grid.Neighbor(w.pos, dx, dy)
	if !ok {
		s.endWalk(WalkBlocked)
		return
	}

	switch s.grid.Get(next) {
	case Rock, Wall:
		s.endWalk(WalkBlocked)
		return
	case Enemy:
		s.endWalk(WalkInterrupted)
		s.registerHit(w.gen)
		return
	case Gem:
		s.collectGem(w.gen)
	}

	vacated := w.pos
	s.set(w.gen, vacated, Empty)
	s.set(w.gen, next, Player)
	w.pos = next
	s.triggerAbove(w.gen, vacated)

	switch {
	case w.pos == w.target:
		s.endWalk(WalkArrived)
	case s.status != StatusPlaying:
		s.endWalk(WalkInterrupted)
	default:
		s.sched.After(s.cfg.Timing.Step, w.gen, func() { s.walkStep(w) })
	}
}

func (s *Session) endWalk(outcome WalkOutcome) {
	s.walking = false
	s.lastWalk = outcome
}

// abandonWalk cuts the walk in flight short. Its pending step becomes a no-op.
func (s *Session) abandonWalk() {
	s.walkID++
	if s.walking {
		s.walking = false
		s.lastWalk = WalkInterrupted
	}
}

// stepToward returns the unit step from index toward target, vertical axis
// first.
func (s *Session) stepToward(index, target int) (dx, dy int) {
	row, targetRow := s.grid.RowOf(index), s.grid.RowOf(target)
	if row != targetRow {
		return 0, sign(targetRow - row)
	}
	col, targetCol := s.grid.ColumnOf(index), s.grid.ColumnOf(target)
	return sign(targetCol - col), 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
