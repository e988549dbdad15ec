package agents

import (
	"math/rand"

	"wumpus/grid_world"
)

// Wanderer is the non-reasoning companion. It plans nothing, roams at random
// unharmed by anything, and logs the true content of every cell it enters,
// in its own frame, so the log can be shared.
type Wanderer struct {
	rng *rand.Rand
}

// NewWanderer returns a wanderer drawing its steps from rng.
func NewWanderer(rng *rand.Rand) *Wanderer {
	return &Wanderer{rng: rng}
}

// Plan does nothing: the wanderer does not reason.
func (w *Wanderer) Plan(*State, grid_world.Percept) {}

// Next returns the absolute direction of the wanderer's next step. When the
// hero is one step away the wanderer joins it; otherwise it picks one of the
// four directions uniformly.
func (w *Wanderer) Next(self, hero grid_world.Position, n int) grid_world.Orientation {
	if grid_world.ManhattanDistance(self, hero, n) == 1 {
		for _, o := range grid_world.Orientations {
			if self.Add(o).Wrap(n) == hero.Wrap(n) {
				return o
			}
		}
	}
	return grid_world.Orientations[w.rng.Intn(len(grid_world.Orientations))]
}

// Observe logs the true content of the cell at rel, replacing older notes.
func (w *Wanderer) Observe(state *State, rel grid_world.Position, cell grid_world.Cell) {
	state.Map.Set(rel, TruthTag(cell))
}
