package engine

import "time"

// Timing holds the virtual-time delays that pace the simulation.
type Timing struct {
	Step     time.Duration // between two player steps
	Settle   time.Duration // before an unsupported object starts falling
	Fall     time.Duration // between two rows of a fall
	Patrol   time.Duration // between two patrol passes
	EnemyGap time.Duration // between two enemies of the same pass
}

// DefaultTiming returns the standard animation pacing.
func DefaultTiming() Timing {
	return Timing{
		Step:     200 * time.Millisecond,
		Settle:   800 * time.Millisecond,
		Fall:     200 * time.Millisecond,
		Patrol:   200 * time.Millisecond,
		EnemyGap: 400 * time.Millisecond,
	}
}

// Scaled returns a copy with every delay multiplied by f.
// Non-positive factors leave the timing unchanged.
func (t Timing) Scaled(f float64) Timing {
	if f <= 0 {
		return t
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}
	return Timing{
		Step:     scale(t.Step),
		Settle:   scale(t.Settle),
		Fall:     scale(t.Fall),
		Patrol:   scale(t.Patrol),
		EnemyGap: scale(t.EnemyGap),
	}
}

// withDefaults fills zero delays from DefaultTiming.
func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.Step <= 0 {
		t.Step = def.Step
	}
	if t.Settle <= 0 {
		t.Settle = def.Settle
	}
	if t.Fall <= 0 {
		t.Fall = def.Fall
	}
	if t.Patrol <= 0 {
		t.Patrol = def.Patrol
	}
	if t.EnemyGap <= 0 {
		t.EnemyGap = def.EnemyGap
	}
	return t
}

// DefaultLives is the number of lives a session starts with.
const DefaultLives = 3

// Config contains the tunables of a session.
type Config struct {
	Timing Timing
	Lives  int // starting lives; a template's own Lives overrides it
}

// DefaultConfig returns a Config with standard pacing and lives.
func DefaultConfig() Config {
	return Config{
		Timing: DefaultTiming(),
		Lives:  DefaultLives,
	}
}
