package dash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

func TestEventLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	g, err := New(tinyLevel(), engine.DefaultConfig(), NewEventLogger(logger, "tiny"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Session().Tap(7)

	out := buf.String()
	if !strings.Contains(out, "status changed") || !strings.Contains(out, "level_id=tiny") {
		t.Errorf("expected the completion at info level, got:\n%s", out)
	}
	if strings.Contains(out, "cell changed") {
		t.Errorf("cell writes should only be logged at debug level:\n%s", out)
	}

	buf.Reset()
	g.Session().Restart()
	if !strings.Contains(buf.String(), "reset") {
		t.Errorf("expected the reset at info level, got:\n%s", buf.String())
	}
}

func TestEventLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g, err := New(tinyLevel(), engine.DefaultConfig(), NewEventLogger(logger, "tiny"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Session().Tap(7)

	for _, want := range []string{"cell changed", "gem collected"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("debug output missing %q:\n%s", want, buf.String())
		}
	}
}
