// Package engine implements the Dash grid simulation: tile buffer, level loading,
// player pathing, gravity, enemy patrols and the game state controller.
// The package is UI-agnostic and fully deterministic: all timing runs on a
// virtual clock that the host advances explicitly.
package engine

// Cell is the kind of tile stored at one grid position.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	Sand
	Gem
	Rock
	Player
	Enemy
)

// String returns the name of the cell kind.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Sand:
		return "Sand"
	case Gem:
		return "Gem"
	case Rock:
		return "Rock"
	case Player:
		return "Player"
	case Enemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Glyph returns the template character for the cell kind.
func (c Cell) Glyph() byte {
	switch c {
	case Wall:
		return '#'
	case Sand:
		return '.'
	case Gem:
		return 'X'
	case Rock:
		return 'O'
	case Player:
		return '@'
	case Enemy:
		return '!'
	default:
		return ' '
	}
}

// Solid reports whether a falling object comes to rest on top of this cell.
func (c Cell) Solid() bool {
	return c == Wall || c == Rock || c == Gem || c == Enemy
}

// Grid is a fixed-size tile buffer stored in row-major order: index = row*W + col.
type Grid struct {
	W     int
	H     int
	Cells []Cell
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Valid returns true if index addresses a cell of the grid.
func (g *Grid) Valid(index int) bool {
	return index >= 0 && index < len(g.Cells)
}

// Get returns the cell at index. Out-of-range indices read as Wall so that
// callers treating the result as an obstacle stay safe.
func (g *Grid) Get(index int) Cell {
	if !g.Valid(index) {
		return Wall
	}
	return g.Cells[index]
}

// Set stores a cell at index. Out-of-range indices are ignored.
func (g *Grid) Set(index int, c Cell) {
	if g.Valid(index) {
		g.Cells[index] = c
	}
}

// IndexOf returns the first index holding c, scanning in row-major order.
func (g *Grid) IndexOf(c Cell) (int, bool) {
	for i, cell := range g.Cells {
		if cell == c {
			return i, true
		}
	}
	return -1, false
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// ColumnOf returns the column of index.
func (g *Grid) ColumnOf(index int) int {
	return index % g.W
}

// RowOf returns the row of index.
func (g *Grid) RowOf(index int) int {
	return index / g.W
}

// IndexAt converts a column/row pair to an index.
// The second result is false when the position lies outside the grid.
func (g *Grid) IndexAt(col, row int) (int, bool) {
	if col < 0 || col >= g.W || row < 0 || row >= g.H {
		return -1, false
	}
	return row*g.W + col, true
}

// Neighbor returns the index one step of (dx, dy) away from index.
// Steps that leave the grid, including a column wrap into the adjacent row,
// report false and must be treated as blocked.
func (g *Grid) Neighbor(index, dx, dy int) (int, bool) {
	if !g.Valid(index) {
		return -1, false
	}
	return g.IndexAt(g.ColumnOf(index)+dx, g.RowOf(index)+dy)
}

// Above returns the index directly above index.
func (g *Grid) Above(index int) (int, bool) {
	return g.Neighbor(index, 0, -1)
}

// Below returns the index directly below index.
func (g *Grid) Below(index int) (int, bool) {
	return g.Neighbor(index, 0, 1)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Rows renders the grid as template rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]byte, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf[x] = g.Cells[y*g.W+x].Glyph()
		}
		rows[y] = string(buf)
	}
	return rows
}
