package engine

// Spider is a patrolling enemy. DirX is -1, 0 or 1; DirY is -W, 0 or W.
// Both directions are sticky: once chosen they only change by bouncing.
type Spider struct {
	Pos  int `json:"pos"`
	DirX int `json:"dir_x"`
	DirY int `json:"dir_y"`
}

// startPatrol schedules the first patrol pass of generation gen.
// Levels without enemies run no patrol at all.
func (s *Session) startPatrol(gen uint64) {
	if len(s.enemies) == 0 {
		return
	}
	s.sched.After(s.cfg.Timing.Patrol, gen, func() { s.patrolEnemy(gen, 0) })
}

// patrolEnemy moves enemy i, then schedules the next enemy of the pass after
// EnemyGap, or the next pass after Patrol. A hit ends the pass and costs a life.
func (s *Session) patrolEnemy(gen uint64, i int) {
	if gen != s.generation {
		return
	}

	if s.status == StatusPlaying && s.moveEnemy(gen, &s.enemies[i]) {
		s.patrolHit(gen)
		return
	}

	if i+1 < len(s.enemies) {
		s.sched.After(s.cfg.Timing.EnemyGap, gen, func() { s.patrolEnemy(gen, i+1) })
		return
	}
	s.sched.After(s.cfg.Timing.Patrol, gen, func() { s.patrolEnemy(gen, 0) })
}

// patrolHit takes a life and lays the level out again. Enemies not yet
// processed in this pass never move.
func (s *Session) patrolHit(gen uint64) {
	if gen != s.generation || s.status != StatusPlaying {
		return
	}
	s.lives--
	s.emit(Event{Kind: EventLifeLost})
	s.reset()
	s.syncLives()
}

// moveEnemy performs one patrol step for e toward the player: a horizontal
// attempt, then a vertical attempt from wherever the first one left it.
// Returns true if either attempt ran into the player.
func (s *Session) moveEnemy(gen uint64, e *Spider) bool {
	if s.grid.Get(e.Pos) != Enemy {
		return false
	}
	player, ok := s.grid.IndexOf(Player)
	if !ok {
		return false
	}

	start := e.Pos
	pos := start
	hit := false

	if s.grid.ColumnOf(pos) != s.grid.ColumnOf(player) {
		if e.DirX == 0 {
			e.DirX = sign(s.grid.ColumnOf(player) - s.grid.ColumnOf(pos))
		}
		var touched bool
		pos, touched = s.tryEnemyStep(pos, &e.DirX, e.DirX, 0)
		hit = hit || touched
	}

	if s.grid.RowOf(pos) != s.grid.RowOf(player) {
		if e.DirY == 0 {
			e.DirY = sign(s.grid.RowOf(player)-s.grid.RowOf(pos)) * s.grid.W
		}
		rowStep := sign(e.DirY)
		var touched bool
		pos, touched = s.tryEnemyStep(pos, &e.DirY, 0, rowStep)
		hit = hit || touched
	}

	if pos != start {
		s.set(gen, start, Empty)
		s.set(gen, pos, Enemy)
		e.Pos = pos
		s.triggerAbove(gen, start)
	}
	return hit
}

// tryEnemyStep attempts one step of (dx, dy) from pos. Off-grid or occupied
// destinations reverse *dir and cancel the step; an occupying player is
// reported as a touch first.
func (s *Session) tryEnemyStep(pos int, dir *int, dx, dy int) (int, bool) {
	next, ok := s.grid.Neighbor(pos, dx, dy)
	if !ok {
		*dir = -*dir
		return pos, false
	}
	switch s.grid.Get(next) {
	case Empty:
		return next, false
	case Player:
		*dir = -*dir
		return pos, true
	default:
		*dir = -*dir
		return pos, false
	}
}
