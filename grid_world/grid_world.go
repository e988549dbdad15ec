package grid_world

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the ground-truth content of a single room of the world.
type Cell rune

// Cell types, as written in layouts.
const (
	EMPTY   Cell = '.'
	WALL    Cell = '#'
	PIT     Cell = 'P'
	MONSTER Cell = 'W'
)

func (c Cell) String() string {
	switch c {
	case EMPTY:
		return "empty"
	case WALL:
		return "wall"
	case PIT:
		return "pit"
	case MONSTER:
		return "monster"
	}
	return fmt.Sprintf("cell(%q)", rune(c))
}

// IsValid reports whether c is one of the four known cell types.
func (c Cell) IsValid() bool {
	switch c {
	case EMPTY, WALL, PIT, MONSTER:
		return true
	}
	return false
}

// IsDeadly reports whether stepping into the cell kills a character.
func (c Cell) IsDeadly() bool {
	return c == PIT || c == MONSTER
}

// The fixture world: a 5x5 board with a single monster at (3,0).
var DefaultLayout []string = []string{
	"#.P#.",
	"..#..",
	"P...P",
	"W....",
	"..P.#",
}

// ErrBadLayout is returned when a layout cannot be converted to a grid.
var ErrBadLayout = errors.New("bad layout")

// Grid is a fixed NxN toroidal board. All coordinates passed to it are wrapped,
// so there is no out-of-bounds position.
type Grid struct {
	n     int
	cells [][]Cell
}

// Convert parses a layout into a grid. Rows are read top to bottom, so
// layout[r][c] becomes the cell at (r,c). The layout must be square.
func Convert(layout []string) (*Grid, error) {
	n := len(layout)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadLayout)
	}

	cells := make([][]Cell, n)
	for r, row := range layout {
		runes := []rune(strings.TrimSpace(row))
		if len(runes) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, r, len(runes), n)
		}
		cells[r] = make([]Cell, n)
		for c, ch := range runes {
			cell := Cell(ch)
			if !cell.IsValid() {
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrBadLayout, ch, r, c)
			}
			cells[r][c] = cell
		}
	}

	return &Grid{n: n, cells: cells}, nil
}

// MustConvert is Convert for layouts known to be valid, such as fixtures.
func MustConvert(layout []string) *Grid {
	grid, err := Convert(layout)
	if err != nil {
		panic(err)
	}
	return grid
}

// Size returns N.
func (g *Grid) Size() int {
	return g.n
}

// CellAt returns the cell at pos, wrapped onto the torus.
func (g *Grid) CellAt(pos Position) Cell {
	p := pos.Wrap(g.n)
	return g.cells[p.Row][p.Col]
}

func (g *Grid) set(pos Position, cell Cell) {
	p := pos.Wrap(g.n)
	g.cells[p.Row][p.Col] = cell
}

// Count returns the number of cells of the passed type.
func (g *Grid) Count(cell Cell) (count int) {
	g.Visit(func(_ Position, c Cell) {
		if c == cell {
			count++
		}
	})
	return
}

// Visit visits every cell using the passed function, row by row.
func (g *Grid) Visit(fn func(pos Position, cell Cell)) {
	for r := range g.cells {
		for c := range g.cells[r] {
			fn(Position{Row: r, Col: c}, g.cells[r][c])
		}
	}
}

// Layout returns the grid in the same string form Convert accepts.
func (g *Grid) Layout() []string {
	rows := make([]string, g.n)
	for r := range g.cells {
		var sb strings.Builder
		for _, cell := range g.cells[r] {
			sb.WriteRune(rune(cell))
		}
		rows[r] = sb.String()
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.n)
	for r := range g.cells {
		cells[r] = append([]Cell(nil), g.cells[r]...)
	}
	return &Grid{n: g.n, cells: cells}
}
