package engine

import "time"

// fall is the state of one falling object.
type fall struct {
	gen  uint64
	pos  int
	kind Cell
	hit  bool // this fall already took a life
}

// triggerAbove schedules gravity checks for whatever rests on top of index,
// which just lost its support.
func (s *Session) triggerAbove(gen uint64, index int) {
	above, ok := s.grid.Above(index)
	if !ok {
		return
	}
	s.freeFall(gen, above, Rock, true, s.cfg.Timing.Settle)
	s.freeFall(gen, above, Gem, true, s.cfg.Timing.Settle)
}

// freeFall schedules a settle check for a kind object at origin. When chain is
// set the check also spawns falls for the stack resting on origin.
func (s *Session) freeFall(gen uint64, origin int, kind Cell, chain bool, delay time.Duration) {
	s.sched.After(delay, gen, func() {
		s.settle(gen, origin, kind, chain)
	})
}

// settle runs when the settle delay of an object has elapsed. If the object
// is still in place, the stack above it is scheduled to follow one settle
// delay per level and the object starts falling.
func (s *Session) settle(gen uint64, origin int, kind Cell, chain bool) {
	if s.grid.Get(origin) != kind {
		return
	}

	if chain {
		level := 1
		for idx, ok := s.grid.Above(origin); ok; idx, ok = s.grid.Above(idx) {
			c := s.grid.Get(idx)
			if c != Rock && c != Gem {
				break
			}
			s.freeFall(gen, idx, c, false, time.Duration(level)*s.cfg.Timing.Settle)
			level++
		}
	}

	s.fallStep(&fall{gen: gen, pos: origin, kind: kind})
}

// fallStep moves a falling object down one row, then reschedules itself until
// the object rests on something solid or the bottom row.
func (s *Session) fallStep(f *fall) {
	if f.gen != s.generation || s.grid.Get(f.pos) != f.kind {
		return
	}

	below, ok := s.grid.Below(f.pos)
	if !ok {
		return
	}
	target := s.grid.Get(below)
	if target.Solid() {
		return
	}
	if target == Player && !f.hit {
		f.hit = true
		s.registerHit(f.gen)
	}

	s.set(f.gen, f.pos, Empty)
	s.set(f.gen, below, f.kind)
	f.pos = below

	s.sched.After(s.cfg.Timing.Fall, f.gen, func() { s.fallStep(f) })
}
