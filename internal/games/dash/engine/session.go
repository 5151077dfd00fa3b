package engine

import (
	"fmt"
	"sync"
	"time"
)

// Status is the state of the game state controller.
type Status int

const (
	StatusPlaying   Status = iota // normal play
	StatusCompleted               // every gem collected, waiting for a tap
	StatusTryAgain                // a life was lost, waiting for a tap
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusCompleted:
		return "completed"
	case StatusTryAgain:
		return "try_again"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*s = StatusPlaying
	case "completed":
		*s = StatusCompleted
	case "try_again":
		*s = StatusTryAgain
	default:
		return fmt.Errorf("engine: unknown status %q", text)
	}
	return nil
}

// Session owns one game: the grid, its enemies, the counters and the
// scheduler every walk, fall and patrol task runs on. It is the only place
// lives are decremented and gems are counted.
//
// Public methods are safe for concurrent use. Tasks only run inside Advance,
// on the caller's goroutine, while the session is locked.
type Session struct {
	mu sync.Mutex

	tpl     Template
	cfg     Config
	initial *Layout
	lives0  int

	grid    *Grid
	enemies []Spider
	sched   *Scheduler

	generation uint64
	lives      int
	lastLives  int
	gems       int
	gemsTotal  int
	status     Status
	walking    bool
	walkID     uint64
	lastWalk   WalkOutcome

	observers []Observer
}

// New validates the template and lays out the first generation.
// It fails with ErrMalformedLevel if the template is malformed.
func New(tpl Template, cfg Config) (*Session, error) {
	layout, err := Load(tpl)
	if err != nil {
		return nil, err
	}

	cfg.Timing = cfg.Timing.withDefaults()
	lives := cfg.Lives
	if tpl.Lives > 0 {
		lives = tpl.Lives
	}
	if lives <= 0 {
		lives = DefaultLives
	}

	s := &Session{
		tpl:     tpl,
		cfg:     cfg,
		initial: layout,
		lives0:  lives,
		lives:   lives,
	}
	s.lastLives = lives
	s.sched = NewScheduler(func() uint64 { return s.generation })
	s.reset()
	return s, nil
}

// Subscribe registers an observer for every subsequent event.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Advance moves the virtual clock forward by d and runs every task that
// becomes due. Returns the number of tasks executed.
func (s *Session) Advance(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Advance(d)
}

// Tap is the single entry point for a tap on cell index: it moves the player
// while playing and acknowledges the Completed and TryAgain screens.
func (s *Session) Tap(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case StatusPlaying:
		s.moveTo(index)
	case StatusCompleted:
		s.restart()
	case StatusTryAgain:
		s.accept()
	}
}

// MoveTo starts a path-walk from the player's cell to index.
// Returns false if the request was ignored: not playing, a walk is already
// in flight, no player on the board, index out of range or already there.
func (s *Session) MoveTo(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveTo(index)
}

// Restart resets lives to the starting count and lays out a new generation.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restart()
}

// Accept acknowledges the TryAgain screen. With lives left the game
// continues on the current board; with none left the game restarts.
// Returns false if the session was not waiting for an acknowledgment.
func (s *Session) Accept() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accept()
}

// Status returns the controller state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lives
}

// Gems returns collected and total gems of the current generation.
func (s *Session) Gems() (collected, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gems, s.gemsTotal
}

// Generation returns the current generation counter.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Template returns the level the session was created from.
func (s *Session) Template() Template {
	return s.tpl
}

// restart is the manual restart transition.
func (s *Session) restart() {
	s.lives = s.lives0
	s.lastLives = s.lives
	s.reset()
}

func (s *Session) accept() bool {
	if s.status != StatusTryAgain {
		return false
	}
	if s.lives <= 0 {
		s.restart()
		return true
	}
	s.lastLives = s.lives
	s.restorePlayer()
	s.setStatus(StatusPlaying)
	return true
}

// reset bumps the generation and lays the level out again. Every task of the
// previous generation becomes stale. Lives are left untouched.
func (s *Session) reset() {
	s.generation++
	s.sched.Purge()

	s.grid = s.initial.Grid.Clone()
	s.enemies = make([]Spider, len(s.initial.Enemies))
	copy(s.enemies, s.initial.Enemies)
	s.gems = 0
	s.gemsTotal = s.initial.GemsTotal
	s.abandonWalk()
	s.lastWalk = WalkNone
	s.status = StatusPlaying

	s.emit(Event{Kind: EventReset})
	s.startPatrol(s.generation)
}

// set writes a cell on behalf of a task spawned under gen.
// Writes from stale generations are dropped.
func (s *Session) set(gen uint64, index int, c Cell) bool {
	if gen != s.generation || !s.grid.Valid(index) {
		return false
	}
	s.grid.Set(index, c)
	s.emit(Event{Kind: EventCellChanged, Index: index, Cell: c})
	return true
}

// collectGem counts a gem picked up by the player and checks for the win.
func (s *Session) collectGem(gen uint64) {
	if gen != s.generation {
		return
	}
	s.gems++
	s.emit(Event{Kind: EventGemCollected})
	if s.gems == s.gemsTotal && s.status == StatusPlaying {
		s.setStatus(StatusCompleted)
	}
}

// registerHit takes a life for a hit detected by a task of generation gen.
// Hits outside of play are ignored.
func (s *Session) registerHit(gen uint64) bool {
	if gen != s.generation || s.status != StatusPlaying {
		return false
	}
	s.lives--
	s.emit(Event{Kind: EventLifeLost})
	s.syncLives()
	return true
}

// syncLives enters TryAgain when the lives differ from what the player last
// acknowledged.
func (s *Session) syncLives() {
	if s.lives == s.lastLives {
		return
	}
	if s.lives <= 0 {
		s.emit(Event{Kind: EventGameOver})
	}
	s.setStatus(StatusTryAgain)
}

func (s *Session) setStatus(st Status) {
	if s.status == st {
		return
	}
	s.status = st
	if st != StatusPlaying {
		s.abandonWalk()
	}
	s.emit(Event{Kind: EventStatusChanged, Status: st})
}

// restorePlayer puts the player back after a fall crushed it: on the spawn
// cell if it is free, else on the first free cell in row-major order.
func (s *Session) restorePlayer() {
	if _, ok := s.grid.IndexOf(Player); ok {
		return
	}
	spawn := s.initial.Spawn
	if c := s.grid.Get(spawn); c == Empty || c == Sand {
		s.set(s.generation, spawn, Player)
		return
	}
	for i, c := range s.grid.Cells {
		if c == Empty || c == Sand {
			s.set(s.generation, i, Player)
			return
		}
	}
}

func (s *Session) emit(e Event) {
	if len(s.observers) == 0 {
		return
	}
	e.Generation = s.generation
	e.Lives = s.lives
	e.Gems = s.gems
	if e.Kind != EventStatusChanged {
		e.Status = s.status
	}
	for _, o := range s.observers {
		o.Notify(e)
	}
}
