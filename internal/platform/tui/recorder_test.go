package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func playing(run int, elapsed time.Duration) core.GameState {
	return core.GameState{Run: run, Elapsed: elapsed, Lives: 3, Total: 16}
}

func TestRecorderSavesCompletionOnce(t *testing.T) {
	store := openStore(t)
	r := newRunRecorder(store, "classic", nil)

	r.observe(playing(1, time.Second))
	won := playing(1, 40*time.Second)
	won.Won, won.Score, won.Waiting = true, 16, true

	if got := r.observe(won); got != storage.OutcomeCompleted {
		t.Fatalf("observe(won) = %q, expected completed", got)
	}
	if got := r.observe(won); got != "" {
		t.Errorf("second observe(won) = %q, expected nothing", got)
	}

	// Tapping the overlay starts run 2; run 1 is already recorded
	if got := r.observe(playing(2, 0)); got != "" {
		t.Errorf("observe(new run) = %q, expected nothing", got)
	}
	if r.finish() {
		t.Error("finish() on an untouched run should not save")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0].Gems != 16 || runs[0].Duration != 40*time.Second {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestRecorderGameOverAndAbandon(t *testing.T) {
	store := openStore(t)
	r := newRunRecorder(store, "quarry", nil)

	over := playing(1, 12*time.Second)
	over.GameOver, over.Lives, over.Score = true, 0, 4
	if got := r.observe(over); got != storage.OutcomeGameOver {
		t.Fatalf("observe(game over) = %q, expected game_over", got)
	}

	// Run 2 gets restarted mid-way: it counts as abandoned
	r.observe(playing(2, 3*time.Second))
	if got := r.observe(playing(3, 0)); got != storage.OutcomeAbandoned {
		t.Errorf("observe(restart) = %q, expected abandoned", got)
	}

	// Run 3 is left by quitting
	r.observe(playing(3, 2*time.Second))
	if !r.finish() {
		t.Error("finish() should save the unfinished run")
	}
	if r.finish() {
		t.Error("finish() should save only once")
	}

	runs, err := store.BestRuns("quarry", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	r := newRunRecorder(nil, "classic", nil)

	won := playing(1, time.Second)
	won.Won = true
	if got := r.observe(won); got != storage.OutcomeCompleted {
		t.Errorf("observe() = %q, expected completed without a store", got)
	}
}
