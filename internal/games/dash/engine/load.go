package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Default board dimensions.
const (
	DefaultWidth  = 40
	DefaultHeight = 14
)

// ErrMalformedLevel is returned when a level template does not match the
// expected dimensions or contains glyphs the loader does not understand.
// It is fatal: a session is never started from a malformed template.
var ErrMalformedLevel = errors.New("malformed level")

// Template is an immutable textual level description.
type Template struct {
	ID     string
	Name   string
	Width  int
	Height int
	Rows   []string
	Lives  int // 0 means use the configured default
}

// ParseTemplate splits a text block into rows and validates it against w x h.
// Leading and trailing blank lines are ignored so that raw string literals
// can be used directly.
func ParseTemplate(text string, w, h int) (Template, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")

	tpl := Template{
		Width:  w,
		Height: h,
		Rows:   strings.Split(text, "\n"),
	}
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Validate checks dimensions, glyphs and the single player start.
func (t Template) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrMalformedLevel, t.Width, t.Height)
	}
	if len(t.Rows) != t.Height {
		return fmt.Errorf("%w: number of rows is %d, want %d", ErrMalformedLevel, len(t.Rows), t.Height)
	}

	players := 0
	for y, row := range t.Rows {
		if len(row) != t.Width {
			return fmt.Errorf("%w: length of row %d is %d, want %d", ErrMalformedLevel, y, len(row), t.Width)
		}
		for x := 0; x < len(row); x++ {
			cell, ok := cellForGlyph(row[x])
			if !ok {
				return fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrMalformedLevel, row[x], x, y)
			}
			if cell == Player {
				players++
			}
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: found %d player starts, want 1", ErrMalformedLevel, players)
	}
	return nil
}

// Layout is the initial state produced from a template.
type Layout struct {
	Grid      *Grid
	Enemies   []Spider
	GemsTotal int
	Spawn     int // player start index
}

// Load builds the initial grid and enemy list from a template.
// Enemy spawn glyphs become Enemy cells tracked as spiders.
func Load(t Template) (*Layout, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	grid := NewGrid(t.Width, t.Height)
	layout := &Layout{Grid: grid}

	for y, row := range t.Rows {
		for x := 0; x < len(row); x++ {
			cell, _ := cellForGlyph(row[x])
			index := y*t.Width + x
			grid.Cells[index] = cell

			switch cell {
			case Player:
				layout.Spawn = index
			case Enemy:
				layout.Enemies = append(layout.Enemies, Spider{Pos: index})
			}
		}
	}

	layout.GemsTotal = grid.Count(Gem)
	return layout, nil
}

// cellForGlyph maps a template character to a cell kind.
func cellForGlyph(b byte) (Cell, bool) {
	switch b {
	case '#':
		return Wall, true
	case '.':
		return Sand, true
	case 'X':
		return Gem, true
	case 'O':
		return Rock, true
	case '@':
		return Player, true
	case '!':
		return Enemy, true
	case ' ':
		return Empty, true
	default:
		return Empty, false
	}
}
