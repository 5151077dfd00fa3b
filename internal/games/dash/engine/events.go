package engine

import "sync/atomic"

// EventKind identifies what changed in a session.
type EventKind int

const (
	EventCellChanged   EventKind = iota // a grid cell was written
	EventGemCollected                   // gemsCollected increased
	EventLifeLost                       // livesRemaining decreased
	EventStatusChanged                  // Playing/Completed/TryAgain transition
	EventReset                          // a new generation was laid out
	EventGameOver                       // the last life was lost
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCellChanged:
		return "cell_changed"
	case EventGemCollected:
		return "gem_collected"
	case EventLifeLost:
		return "life_lost"
	case EventStatusChanged:
		return "status_changed"
	case EventReset:
		return "reset"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event describes a single mutation of a session.
// Index and Cell are set for EventCellChanged; Status is set for
// EventStatusChanged. Lives and Gems always carry the values after the change.
type Event struct {
	Kind       EventKind
	Index      int
	Cell       Cell
	Status     Status
	Lives      int
	Gems       int
	Generation uint64
}

// Observer receives session events. Notify is called synchronously while the
// session is locked: implementations must not call back into the session.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) {
	f(e)
}

// ChanObserver forwards events to a buffered channel. Events are dropped
// when the buffer is full so a slow reader never stalls the simulation.
type ChanObserver struct {
	ch      chan Event
	dropped atomic.Int64
}

// NewChanObserver creates a channel observer with the given buffer size.
func NewChanObserver(size int) *ChanObserver {
	if size < 1 {
		size = 1
	}
	return &ChanObserver{ch: make(chan Event, size)}
}

// Notify forwards e without blocking.
func (o *ChanObserver) Notify(e Event) {
	select {
	case o.ch <- e:
	default:
		o.dropped.Add(1)
	}
}

// C returns the receive side of the channel.
func (o *ChanObserver) C() <-chan Event {
	return o.ch
}

// Dropped returns how many events were discarded because the buffer was full.
// It is safe to call from any goroutine.
func (o *ChanObserver) Dropped() int64 {
	return o.dropped.Load()
}
