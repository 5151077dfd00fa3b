// Package dash adapts the grid simulation engine to the platform. It keeps a
// cursor on the board, turns key presses and mouse clicks into engine taps and
// advances the engine clock by one tick per Step.
package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// Game implements core.Game for one level.
type Game struct {
	level   levels.Level
	session *engine.Session
	fresh   bool // session not yet reset by the platform

	tick   time.Duration
	clock  time.Duration // virtual time since New
	cursor int
	paused bool

	// Run bookkeeping: a run starts with full lives.
	fullLives int
	run       int
	runStart  time.Duration

	// Board placement of the last Render, used to map clicks to cells.
	board    core.Rect
	tooSmall bool
}

// New creates a game for level. Extra observers are subscribed to the
// session for its whole lifetime.
func New(level levels.Level, cfg engine.Config, observers ...engine.Observer) (*Game, error) {
	session, err := engine.New(level.Template, cfg)
	if err != nil {
		return nil, fmt.Errorf("dash: level %s: %w", level.ID, err)
	}

	g := &Game{
		level:     level,
		session:   session,
		fresh:     true,
		tick:      core.DefaultConfig().TickDuration(),
		fullLives: session.Lives(),
		run:       1,
	}
	session.Subscribe(g)
	for _, o := range observers {
		session.Subscribe(o)
	}
	g.cursor = g.playerIndex()
	return g, nil
}

// ID returns the level ID, which is what runs are stored under.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Session exposes the engine session, e.g. for spectators.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Reset prepares the game for the platform's tick rate. Every call after the
// first restarts the level with full lives.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = cfg.TickDuration()
	g.paused = false
	if g.fresh {
		g.fresh = false
		return
	}
	g.session.Restart()
	g.cursor = g.playerIndex()
}

// Notify tracks run boundaries. It runs under the session lock.
func (g *Game) Notify(e engine.Event) {
	if e.Kind == engine.EventReset && e.Lives == g.fullLives {
		g.run++
		g.runStart = g.clock
	}
}

// Step processes input and advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.session.Restart()
		g.cursor = g.playerIndex()
		g.paused = false
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionConfirm) {
		g.tap(g.cursor)
	}
	for _, p := range in.Taps {
		if idx, ok := g.BoardIndexAt(p.X, p.Y); ok {
			g.cursor = idx
			g.tap(idx)
		} else if g.session.Status() != engine.StatusPlaying {
			// Any click acknowledges an overlay
			g.tap(g.cursor)
		}
	}

	g.session.Advance(g.tick)
	g.clock += g.tick

	return core.StepResult{State: g.State()}
}

// tap forwards a tap and re-centers the cursor when the tap started a new
// round.
func (g *Game) tap(index int) {
	before := g.session.Status()
	g.session.Tap(index)
	if before != engine.StatusPlaying && g.session.Status() == engine.StatusPlaying {
		g.cursor = g.playerIndex()
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	w, h := g.level.Template.Width, g.level.Template.Height
	x, y := g.cursor%w, g.cursor/w
	if in.Has(core.ActionLeft) {
		x--
	}
	if in.Has(core.ActionRight) {
		x++
	}
	if in.Has(core.ActionUp) {
		y--
	}
	if in.Has(core.ActionDown) {
		y++
	}
	g.cursor = core.Clamp(y, 0, h-1)*w + core.Clamp(x, 0, w-1)
}

// Cursor returns the board index under the cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// BoardIndexAt maps a screen position from the last Render to a board index.
func (g *Game) BoardIndexAt(x, y int) (int, bool) {
	if g.tooSmall || !g.board.Contains(x, y) {
		return -1, false
	}
	return (y-g.board.Y)*g.level.Template.Width + (x - g.board.X), true
}

func (g *Game) playerIndex() int {
	snap := g.session.Snapshot()
	for i, c := range snap.Cells {
		if c == engine.Player {
			return i
		}
	}
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Gems,
		Total:    snap.GemsTotal,
		Lives:    snap.Lives,
		Round:    snap.Generation,
		Run:      g.run,
		Elapsed:  g.clock - g.runStart,
		Won:      snap.Status == engine.StatusCompleted,
		GameOver: snap.Status == engine.StatusTryAgain && snap.Lives <= 0,
		Waiting:  snap.Status != engine.StatusPlaying,
		Paused:   g.paused,
	}
}

// Board returns the board as template rows, e.g. for the clipboard.
func (g *Game) Board() string {
	return g.session.Snapshot().String()
}

// Render draws the HUD, the board, the cursor and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()

	g.renderHUD(dst, snap)

	w, h := snap.Width, snap.Height
	g.tooSmall = dst.Width() < w || dst.Height() < hudHeight+h
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, hudHeight+h))
		return
	}

	top := hudHeight + (dst.Height()-hudHeight-h)/2
	g.board = core.NewRect((dst.Width()-w)/2, top, w, h)
	g.renderBoard(dst, snap)

	switch {
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case snap.Status == engine.StatusCompleted:
		g.renderOverlay(dst, "Well done!", "Tap to play again")
	case snap.Status == engine.StatusTryAgain && snap.Lives <= 0:
		g.renderOverlay(dst, "Game over", "Tap to start over")
	case snap.Status == engine.StatusTryAgain:
		g.renderOverlay(dst, "Try again", "Tap to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawTextColored(1, 0, "DASH", core.ColorBrightCyan)
	dst.DrawTextColored(6, 0, g.level.Name, core.ColorWhite)

	lives := strings.Repeat("♥", max(snap.Lives, 0))
	gems := fmt.Sprintf("◆ %d/%d", snap.Gems, snap.GemsTotal)
	elapsed := g.clock - g.runStart
	clock := fmt.Sprintf("%d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60)

	right := dst.Width() - 1
	right -= len(clock)
	dst.DrawTextColored(right, 0, clock, core.ColorGray)
	right -= 2 + len([]rune(gems))
	dst.DrawTextColored(right, 0, gems, core.ColorBrightCyan)
	right -= 2 + len([]rune(lives))
	dst.DrawTextColored(right, 0, lives, core.ColorBrightRed)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderBoard draws every cell and highlights the cursor.
func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			r, c := CellGlyph(snap.CellAt(x, y))
			dst.SetColored(g.board.X+x, g.board.Y+y, r, c)
		}
	}

	if snap.Status == engine.StatusPlaying {
		cx, cy := g.cursor%snap.Width, g.cursor/snap.Width
		r, _ := CellGlyph(snap.CellAt(cx, cy))
		if r == ' ' {
			r = '+'
		}
		dst.SetColored(g.board.X+cx, g.board.Y+cy, r, core.ColorBrightMagenta)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}

// CellGlyph returns the screen rune and color used for a board cell.
func CellGlyph(c engine.Cell) (rune, core.Color) {
	switch c {
	case engine.Wall:
		return '▓', core.ColorGray
	case engine.Sand:
		return '░', core.ColorOrange
	case engine.Gem:
		return '◆', core.ColorBrightCyan
	case engine.Rock:
		return '●', core.ColorWhite
	case engine.Player:
		return '@', core.ColorBrightGreen
	case engine.Enemy:
		return '¤', core.ColorBrightRed
	default:
		return ' ', core.ColorDefault
	}
}
