package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// runRecorder saves one summary per run: when it is completed, when its last
// life is lost, or when it is left unfinished.
type runRecorder struct {
	store    *storage.Store
	levelID  string
	logger   *log.Logger
	last     core.GameState
	recorded int // run number of the last saved run
}

func newRunRecorder(store *storage.Store, levelID string, logger *log.Logger) *runRecorder {
	return &runRecorder{store: store, levelID: levelID, logger: logger}
}

// observe inspects the state after a step. It returns the outcome saved for
// this step, or "" when nothing was saved.
func (r *runRecorder) observe(st core.GameState) storage.Outcome {
	var saved storage.Outcome

	// A new run started before the previous one finished
	if r.last.Run != 0 && st.Run != r.last.Run && r.recorded != r.last.Run && r.last.Elapsed > 0 {
		r.save(r.last, storage.OutcomeAbandoned)
		saved = storage.OutcomeAbandoned
	}

	if r.recorded != st.Run {
		switch {
		case st.Won:
			r.save(st, storage.OutcomeCompleted)
			saved = storage.OutcomeCompleted
		case st.GameOver:
			r.save(st, storage.OutcomeGameOver)
			saved = storage.OutcomeGameOver
		}
	}

	r.last = st
	return saved
}

// finish records the current run as abandoned unless it already ended.
func (r *runRecorder) finish() bool {
	if r.last.Run == 0 || r.recorded == r.last.Run || r.last.Elapsed == 0 {
		return false
	}
	r.save(r.last, storage.OutcomeAbandoned)
	return true
}

func (r *runRecorder) save(st core.GameState, outcome storage.Outcome) {
	r.recorded = st.Run
	if r.store == nil {
		return
	}

	_, err := r.store.SaveRun(storage.Run{
		LevelID:   r.levelID,
		Outcome:   outcome,
		Gems:      st.Score,
		GemsTotal: st.Total,
		LivesLeft: st.Lives,
		Duration:  st.Elapsed,
	})
	if err != nil && r.logger != nil {
		r.logger.Warn("could not save run", "level_id", r.levelID, "error", err)
	}
}
