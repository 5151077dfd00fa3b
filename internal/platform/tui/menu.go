package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels       []levels.Level
	stats        map[string]*storage.LevelStats
	cursor       int
	width        int
	height       int
	quitting     bool
	selected     *levels.Level
	wantsHistory bool
}

// NewMenuModel creates a level picker. Completion marks are read from store
// when it is not nil.
func NewMenuModel(lvls []levels.Level, store *storage.Store, width, height int) MenuModel {
	m := MenuModel{
		levels: lvls,
		width:  width,
		height: height,
	}
	if store != nil {
		if stats, err := store.AllLevelStats(); err == nil {
			m.stats = stats
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			selected := m.levels[m.cursor]
			m.selected = &selected
		}

	case MenuActionHistory:
		m.wantsHistory = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("D A S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Subtitle.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, lvl := range m.levels {
		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}

		mark := " "
		if st := m.stats[lvl.ID]; st != nil && st.Completions > 0 {
			mark = theme.ItemDone.Render("✓")
		}

		line := fmt.Sprintf("%s%-16s ◆%-3d ¤%d", cursor, lvl.Name, lvl.Gems(), lvl.Enemies())
		list.WriteString(style.Render(line) + " " + mark + "\n")
	}
	b.WriteString(centerBlock(strings.TrimRight(list.String(), "\n"), m.width))
	b.WriteString("\n")

	if len(m.levels) > 0 {
		desc := m.levels[m.cursor].Description
		if desc != "" {
			b.WriteString("\n")
			b.WriteString(centerText(theme.Description.Render(desc), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "↑/↓: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(theme.Help.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.wantsHistory
}

// centerText centers a single line within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block as a whole, keeping its lines aligned.
func centerBlock(block string, width int) string {
	w := lipgloss.Width(block)
	if w >= width {
		return block
	}
	return lipgloss.NewStyle().MarginLeft((width - w) / 2).Render(block)
}
