// cell_views contains views derived from the Board view-model.
package cell_views

import (
	"fmt"
	"strings"

	"wumpus/agents"
	"wumpus/game"
	"wumpus/grid_world"
)

// Cell is one square of a displayed grid, with fields immediately usable as
// view parameters: [r][c] is the square printed at row r, column c of the
// console dump.
type Cell struct {
	Row, Col int
	Fill     string
	// Label is the cell content: a cell symbol or the agent's notes.
	Label string
	// Glyph marks the characters standing in the cell, e.g. "X>" or "D".
	Glyph string
}

// Board is the view-model of a game snapshot: the ground truth, the hero's
// private map in its own frame, and the status line.
type Board struct {
	RunID     string
	Tick      int
	Status    string
	Monsters  int
	Arrows    int
	World     [][]Cell
	Knowledge [][]Cell
}

// Convert transforms a snapshot into a Board.
func Convert(snap game.Snapshot) Board {
	return Board{
		RunID:     snap.RunID,
		Tick:      snap.Tick,
		Status:    snap.Status.String(),
		Monsters:  snap.Monsters,
		Arrows:    snap.Hero.Arrows,
		World:     worldCells(snap),
		Knowledge: knowledgeCells(snap),
	}
}

func newCells(n int) [][]Cell {
	cells := make([][]Cell, n)
	for r := range cells {
		cells[r] = make([]Cell, n)
		for c := range cells[r] {
			cells[r][c] = Cell{Row: r, Col: c}
		}
	}
	return cells
}

func worldCells(snap game.Snapshot) [][]Cell {
	cells := newCells(snap.Size)
	for r, row := range snap.Layout {
		for c, ch := range []rune(row) {
			cell := grid_world.Cell(ch)
			cells[r][c].Fill = cellFill(cell)
			if cell != grid_world.EMPTY {
				cells[r][c].Label = string(cell)
			}
		}
	}

	hero := snap.Hero.Pos.Wrap(snap.Size)
	cells[hero.Row][hero.Col].Glyph = grid_world.HeroGlyph(snap.Hero.Ori)
	if !snap.Hero.Alive {
		cells[hero.Row][hero.Col].Glyph = "X!"
	}
	if snap.Wanderer != nil {
		w := snap.Wanderer.Pos.Wrap(snap.Size)
		cells[w.Row][w.Col].Glyph += "D"
	}
	return cells
}

func knowledgeCells(snap game.Snapshot) [][]Cell {
	cells := newCells(len(snap.Knowledge))
	for r, row := range snap.Knowledge {
		for c, tags := range row {
			labels := make([]string, len(tags))
			for i, tag := range tags {
				labels[i] = string(tag)
			}
			cells[r][c].Label = strings.Join(labels, " ")
			cells[r][c].Fill = tagsFill(tags)
		}
	}
	if n := len(cells); n > 0 {
		self := snap.Believed.Pos.Wrap(n)
		cells[self.Row][self.Col].Glyph = grid_world.HeroGlyph(snap.Believed.Ori)
	}
	return cells
}

func cellFill(cell grid_world.Cell) (fill string) {
	switch cell {
	case grid_world.WALL:
		fill = "lightgreen"
	case grid_world.PIT:
		fill = "lightblue"
	case grid_world.MONSTER:
		fill = "salmon"
	default:
		fill = "lightgray"
	}
	return
}

// tagsFill shades a noted cell by the most alarming thing known about it.
func tagsFill(tags []agents.Tag) string {
	has := map[agents.Tag]bool{}
	for _, tag := range tags {
		has[tag] = true
	}
	switch {
	case has[agents.WALL]:
		return "lightgreen"
	case has[agents.PIT] || has[agents.MONSTER]:
		return "salmon"
	case has[agents.POSSIBLE_PIT] || has[agents.POSSIBLE_MONSTER]:
		return "khaki"
	case has[agents.VISITED]:
		return "lightgray"
	case has[agents.SAFE]:
		return "white"
	}
	return "darkgray"
}

func cellId(view string, cell Cell, part string) string {
	return fmt.Sprintf("%s-%d-%d-%s", view, cell.Row, cell.Col, part)
}
