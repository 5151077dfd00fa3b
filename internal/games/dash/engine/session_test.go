package engine

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestCompletedOncePerGeneration(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@X#")

	completed := 0
	s.Subscribe(ObserverFunc(func(e Event) {
		if e.Kind == EventStatusChanged && e.Status == StatusCompleted {
			completed++
		}
	}))

	s.MoveTo(2)
	s.Advance(time.Second)
	if s.Status() != StatusCompleted {
		t.Fatalf("Status = %v, expected completed", s.Status())
	}
	if completed != 1 {
		t.Errorf("completed %d times, expected once", completed)
	}

	// Tap on the completed screen restarts the level
	s.Tap(0)
	snap := s.Snapshot()
	if snap.Status != StatusPlaying || snap.Gems != 0 || snap.Generation != 2 {
		t.Errorf("after tap: status %v gems %d gen %d", snap.Status, snap.Gems, snap.Generation)
	}
	if snap.String() != "#@X#" {
		t.Errorf("board = %q, expected the initial layout", snap.String())
	}

	s.Tap(2)
	if completed != 2 {
		t.Errorf("completed %d times, expected once per generation", completed)
	}
}

func TestZeroGemLevelNeverCompletes(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@  #")
	s.MoveTo(3)
	s.Advance(time.Second)
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %v, expected playing", s.Status())
	}
}

func TestRestartRestoresLives(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@!#")

	s.MoveTo(2)
	if s.Lives() != 2 {
		t.Fatalf("Lives = %d, expected 2", s.Lives())
	}

	s.Restart()
	if s.Lives() != DefaultLives {
		t.Errorf("Lives = %d after restart, expected %d", s.Lives(), DefaultLives)
	}
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %v after restart, expected playing", s.Status())
	}
	if s.Generation() != 2 {
		t.Errorf("Generation = %d, expected 2", s.Generation())
	}
}

func TestAcceptWithoutLivesRestarts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lives = 1
	s := newTestSession(t, cfg, "#!@#")

	s.Advance(200 * ms)
	if s.Lives() != 0 || s.Status() != StatusTryAgain {
		t.Fatalf("lives %d status %v, expected 0 and try_again", s.Lives(), s.Status())
	}
	gen := s.Generation()

	s.Tap(0)
	if s.Lives() != 1 {
		t.Errorf("Lives = %d, expected a full restart with 1", s.Lives())
	}
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %v, expected playing", s.Status())
	}
	if s.Generation() != gen+1 {
		t.Errorf("Generation = %d, expected %d", s.Generation(), gen+1)
	}
}

func TestAcceptContinuesWithLives(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@! #")

	s.MoveTo(2)
	gen := s.Generation()
	if !s.Accept() {
		t.Fatal("Accept() should acknowledge try again")
	}
	if s.Accept() {
		t.Error("second Accept() should be ignored")
	}
	if s.Generation() != gen {
		t.Errorf("Generation = %d, continuing must not reset the board", s.Generation())
	}
	if s.Lives() != 2 || s.Status() != StatusPlaying {
		t.Errorf("lives %d status %v, expected 2 and playing", s.Lives(), s.Status())
	}
}

func TestTemplateLivesOverrideConfig(t *testing.T) {
	tpl := Template{ID: "t", Width: 3, Height: 1, Rows: []string{"@ X"}, Lives: 7}
	s, err := New(tpl, DefaultConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.Lives() != 7 {
		t.Errorf("Lives = %d, expected 7", s.Lives())
	}
	if _, total := s.Gems(); total != 1 {
		t.Errorf("GemsTotal = %d, expected 1", total)
	}
}

func TestObserverSeesCellChanges(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@ #")
	obs := NewChanObserver(16)
	s.Subscribe(obs)

	s.MoveTo(2)

	var changed []int
	for len(obs.C()) > 0 {
		e := <-obs.C()
		if e.Kind == EventCellChanged {
			changed = append(changed, e.Index)
		}
		if e.Generation != 1 || e.Lives != DefaultLives {
			t.Errorf("event %v carries gen %d lives %d", e.Kind, e.Generation, e.Lives)
		}
	}
	if len(changed) != 2 || changed[0] != 1 || changed[1] != 2 {
		t.Errorf("changed cells = %v, expected [1 2]", changed)
	}
}

func TestChanObserverDropsWhenFull(t *testing.T) {
	obs := NewChanObserver(1)
	obs.Notify(Event{Kind: EventReset})
	obs.Notify(Event{Kind: EventReset})
	if obs.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", obs.Dropped())
	}
}

func TestChanObserverDroppedFromAnotherGoroutine(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@    #")
	obs := NewChanObserver(1)
	s.Subscribe(obs)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.MoveTo(5)
		s.Advance(time.Second)
	}()
	for i := 0; i < 100; i++ {
		_ = obs.Dropped()
	}
	wg.Wait()

	// Four steps write eight cells and only the first event fits the buffer
	if obs.Dropped() != 7 {
		t.Errorf("Dropped() = %d, expected 7", obs.Dropped())
	}
}

func TestStatusNames(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPlaying, "playing"},
		{StatusCompleted, "completed"},
		{StatusTryAgain, "try_again"},
	}
	for _, tc := range tests {
		b, _ := tc.status.MarshalText()
		if string(b) != tc.want {
			t.Errorf("MarshalText(%d) = %q, expected %q", tc.status, b, tc.want)
		}
		var back Status
		if err := back.UnmarshalText(b); err != nil || back != tc.status {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("sleeping")); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestWalkOutcomeNames(t *testing.T) {
	tests := []struct {
		outcome WalkOutcome
		want    string
	}{
		{WalkNone, "none"},
		{WalkActive, "active"},
		{WalkArrived, "arrived"},
		{WalkBlocked, "blocked"},
		{WalkInterrupted, "interrupted"},
	}
	for _, tc := range tests {
		b, _ := tc.outcome.MarshalText()
		if string(b) != tc.want {
			t.Errorf("MarshalText(%d) = %q, expected %q", tc.outcome, b, tc.want)
		}
		var back WalkOutcome
		if err := back.UnmarshalText(b); err != nil || back != tc.outcome {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}

	var w WalkOutcome
	if err := w.UnmarshalText([]byte("unknown")); err == nil {
		t.Error("expected an error for an unknown outcome")
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), "#@X#")
	s.MoveTo(2)

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if back.Status != StatusCompleted || back.LastWalk != WalkArrived || back.Gems != 1 {
		t.Errorf("decoded status %v walk %v gems %d", back.Status, back.LastWalk, back.Gems)
	}
}

func TestGameOverBeforeTryAgain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lives = 1
	s := newTestSession(t, cfg, "#@!#")

	var kinds []EventKind
	s.Subscribe(ObserverFunc(func(e Event) { kinds = append(kinds, e.Kind) }))

	s.MoveTo(2)
	want := []EventKind{EventLifeLost, EventGameOver, EventStatusChanged}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, expected %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("events = %v, expected %v", kinds, want)
			break
		}
	}
}
