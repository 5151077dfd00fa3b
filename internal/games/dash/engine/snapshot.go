package engine

import (
	"strings"
	"time"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	LevelID    string        `json:"level_id"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Cells      []Cell        `json:"-"`
	Enemies    []Spider      `json:"enemies"`
	Lives      int           `json:"lives"`
	Gems       int           `json:"gems"`
	GemsTotal  int           `json:"gems_total"`
	Generation uint64        `json:"generation"`
	Status     Status        `json:"status"`
	Walking    bool          `json:"walking"`
	LastWalk   WalkOutcome   `json:"last_walk"`
	Now        time.Duration `json:"now"`
}

// Snapshot copies the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]Cell, len(s.grid.Cells))
	copy(cells, s.grid.Cells)
	enemies := make([]Spider, len(s.enemies))
	copy(enemies, s.enemies)

	return Snapshot{
		LevelID:    s.tpl.ID,
		Width:      s.grid.W,
		Height:     s.grid.H,
		Cells:      cells,
		Enemies:    enemies,
		Lives:      s.lives,
		Gems:       s.gems,
		GemsTotal:  s.gemsTotal,
		Generation: s.generation,
		Status:     s.status,
		Walking:    s.walking,
		LastWalk:   s.lastWalk,
		Now:        s.sched.Now(),
	}
}

// Cell returns the cell at index, or Wall when out of range.
func (sn Snapshot) Cell(index int) Cell {
	if index < 0 || index >= len(sn.Cells) {
		return Wall
	}
	return sn.Cells[index]
}

// CellAt returns the cell at column x, row y, or Wall when out of range.
func (sn Snapshot) CellAt(x, y int) Cell {
	if x < 0 || x >= sn.Width || y < 0 || y >= sn.Height {
		return Wall
	}
	return sn.Cells[y*sn.Width+x]
}

// Grid returns a grid view over the snapshot cells.
func (sn Snapshot) Grid() *Grid {
	return &Grid{W: sn.Width, H: sn.Height, Cells: sn.Cells}
}

// Rows renders the board as template rows.
func (sn Snapshot) Rows() []string {
	return sn.Grid().Rows()
}

// String renders the board as newline-separated template rows.
func (sn Snapshot) String() string {
	return strings.Join(sn.Rows(), "\n")
}
