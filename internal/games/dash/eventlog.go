package dash

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

// EventLogger writes session events to a structured logger. Life loss,
// game over, status changes and resets are logged at Info; cell writes and
// gem pickups at Debug.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an event logger for the given level.
func NewEventLogger(logger *log.Logger, levelID string) *EventLogger {
	return &EventLogger{logger: logger.With("level_id", levelID)}
}

// Notify implements engine.Observer.
func (l *EventLogger) Notify(e engine.Event) {
	switch e.Kind {
	case engine.EventCellChanged:
		l.logger.Debug("cell changed", "index", e.Index, "cell", e.Cell.String(), "gen", e.Generation)
	case engine.EventGemCollected:
		l.logger.Debug("gem collected", "gems", e.Gems, "gen", e.Generation)
	case engine.EventLifeLost:
		l.logger.Info("life lost", "lives", e.Lives, "gen", e.Generation)
	case engine.EventGameOver:
		l.logger.Info("game over", "gems", e.Gems, "gen", e.Generation)
	case engine.EventStatusChanged:
		l.logger.Info("status changed", "status", e.Status, "lives", e.Lives, "gems", e.Gems)
	case engine.EventReset:
		l.logger.Info("reset", "gen", e.Generation, "lives", e.Lives)
	}
}
