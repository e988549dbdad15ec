package grid_world

import (
	"errors"
	"fmt"
)

// ErrNoMonster is returned when clearing a cell that holds no monster.
var ErrNoMonster = errors.New("no monster at position")

// World owns the single ground-truth grid of a game and the monster count.
// The only mutation during play is the removal of a monster.
type World struct {
	grid     *Grid
	monsters int
	screamed bool
}

// NewWorld wraps the grid; the monster count is taken from its contents.
func NewWorld(grid *Grid) *World {
	return &World{
		grid:     grid,
		monsters: grid.Count(MONSTER),
	}
}

// Size returns N.
func (w *World) Size() int {
	return w.grid.Size()
}

// CellAt returns the cell at pos, wrapped onto the torus.
func (w *World) CellAt(pos Position) Cell {
	return w.grid.CellAt(pos)
}

// Monsters returns the number of monsters left alive.
func (w *World) Monsters() int {
	return w.monsters
}

// Grid returns a copy of the current grid, for presentation.
func (w *World) Grid() *Grid {
	return w.grid.Clone()
}

// ClearMonster kills the monster at pos, which must hold one. The scream is
// heard by every character on the next percept.
func (w *World) ClearMonster(pos Position) error {
	if w.grid.CellAt(pos) != MONSTER {
		return fmt.Errorf("clear %v: %w", pos.Wrap(w.Size()), ErrNoMonster)
	}
	w.grid.set(pos, EMPTY)
	w.monsters--
	w.screamed = true
	return nil
}

// Screamed reports whether a monster died since the last Hush.
func (w *World) Screamed() bool {
	return w.screamed
}

// Hush clears the scream once it has been delivered in a percept.
func (w *World) Hush() {
	w.screamed = false
}

// Character is the world-side body of an agent: its absolute pose and the
// facts only the world may change (life, arrows, bumps).
type Character struct {
	ID     string
	Pos    Position
	Ori    Orientation
	Alive  bool
	Arrows int
	// Bumped is set by a move blocked by a wall and cleared once perceived.
	Bumped bool
	// Immune characters walk through walls, pits and monsters unharmed.
	Immune bool
	// Frame is fixed at creation: the pose the character calls (0,0) south.
	Frame Frame
}

// NewCharacter places a live character at an absolute pose, which also
// becomes the origin of its private frame.
func NewCharacter(id string, pos Position, ori Orientation, arrows int) *Character {
	return &Character{
		ID:     id,
		Pos:    pos,
		Ori:    ori,
		Alive:  true,
		Arrows: arrows,
		Frame:  Frame{Origin: pos, Heading: ori},
	}
}

// TurnRight rotates the character clockwise. Always feasible.
func (c *Character) TurnRight() bool {
	c.Ori = c.Ori.Right()
	return true
}

// TurnLeft rotates the character counter-clockwise. Always feasible.
func (c *Character) TurnLeft() bool {
	c.Ori = c.Ori.Left()
	return true
}

// Ahead is the absolute cell the character faces.
func (c *Character) Ahead(n int) Position {
	return c.Pos.Add(c.Ori).Wrap(n)
}

// Move steps c one cell along its heading. A wall blocks the step and sets the
// bump flag; stepping into a pit or monster kills a non-immune character.
// Trying to move is always feasible.
func (w *World) Move(c *Character) bool {
	target := c.Ahead(w.Size())
	if w.CellAt(target) == WALL && !c.Immune {
		c.Bumped = true
		return true
	}
	c.Pos = target
	if w.CellAt(target).IsDeadly() && !c.Immune {
		c.Alive = false
	}
	return true
}

// Step moves c one cell in the given direction regardless of its contents.
// Only immune characters should be stepped.
func (w *World) Step(c *Character, dir Orientation) {
	c.Pos = c.Pos.Add(dir).Wrap(w.Size())
}

// Shoot fires c's arrow at the cell it faces. Without arrows the shot is
// infeasible and nothing changes. hit reports a killed monster.
func (w *World) Shoot(c *Character) (feasible, hit bool) {
	if c.Arrows <= 0 {
		return false, false
	}
	c.Arrows--
	target := c.Ahead(w.Size())
	if w.CellAt(target) == MONSTER {
		// The precondition was just checked, so this cannot fail.
		_ = w.ClearMonster(target)
		hit = true
	}
	return true, hit
}

// Colocated reports whether both characters occupy the same absolute cell.
func (w *World) Colocated(a, b *Character) bool {
	return a.Pos.Wrap(w.Size()) == b.Pos.Wrap(w.Size())
}
