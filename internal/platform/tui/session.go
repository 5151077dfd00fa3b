package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
)

// GameFactory builds a playable game for a level.
type GameFactory func(levels.Level) (core.Game, error)

// SessionModel manages the full flow: menu -> game -> menu, plus the run
// history. It is used for local play and for every SSH session.
type SessionModel struct {
	levels    []levels.Level
	newGame   GameFactory
	opts      Options
	config    core.RuntimeConfig
	menu      MenuModel
	history   *HistoryModel
	gameModel *Model
	err       string
	quitting  bool
}

// NewSessionModel creates a session that starts in the level menu.
func NewSessionModel(lvls []levels.Level, newGame GameFactory, cfg core.RuntimeConfig, opts Options) SessionModel {
	opts.AllowBack = true
	return SessionModel{
		levels:  lvls,
		newGame: newGame,
		opts:    opts,
		config:  cfg,
		menu:    NewMenuModel(lvls, opts.Store, cfg.ScreenW, cfg.ScreenH),
	}
}

// StartWith opens the given level right away instead of the menu.
func (m SessionModel) StartWith(lvl levels.Level) (SessionModel, error) {
	game, err := m.newGame(lvl)
	if err != nil {
		return m, err
	}
	gm := NewModel(game, m.config, m.opts)
	m.gameModel = &gm
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.opts.Store, m.levels, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		m.menu = m.freshMenu()
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu = m.freshMenu()
		next, err := m.StartWith(*selected)
		if err != nil {
			m.err = fmt.Sprintf("cannot start %s: %v", selected.ID, err)
			return m, nil
		}
		m = next
		m.err = ""
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = m.freshMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}

	return m, cmd
}

// freshMenu rebuilds the menu so completion marks are current.
func (m SessionModel) freshMenu() MenuModel {
	menu := NewMenuModel(m.levels, m.opts.Store, m.config.ScreenW, m.config.ScreenH)
	menu.cursor = m.menu.cursor
	return menu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.history != nil:
		return m.history.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(theme.OutcomeLost.Render(m.err), m.config.ScreenW)
	}
	return view
}

// RunSession starts the Bubble Tea program with the level menu. When start is
// not nil that level is opened first.
func RunSession(lvls []levels.Level, newGame GameFactory, start *levels.Level, cfg core.RuntimeConfig, opts Options) error {
	model := NewSessionModel(lvls, newGame, cfg, opts)
	if start != nil {
		var err error
		if model, err = model.StartWith(*start); err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
