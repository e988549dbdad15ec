package agents

import (
	"wumpus/grid_world"
)

// State is everything an agent believes about itself, in its own frame: it
// always starts at (0,0) facing south, whatever its real pose. The turn loop
// owns one State per agent and hands it to the strategy's Plan and Act.
type State struct {
	Name string
	Pos  grid_world.Position
	Ori  grid_world.Orientation
	// Alive and Arrows mirror the world's copy after every action; writing
	// them has no effect on the game.
	Alive  bool
	Arrows int
	Map    *KnowledgeMap

	// LastStep is the heading of the last believed move, undone on a bump.
	LastStep *grid_world.Orientation
	// LastShot is the believed target of the last arrow, until perceived.
	LastShot *grid_world.Position
}

// NewState returns the initial belief of an agent on an NxN world.
func NewState(name string, n, arrows int) *State {
	return &State{
		Name:   name,
		Pos:    grid_world.Position{},
		Ori:    grid_world.SOUTH,
		Alive:  true,
		Arrows: arrows,
		Map:    NewKnowledgeMap(n),
	}
}

// Ahead is the believed cell in front of the agent.
func (s *State) Ahead() grid_world.Position {
	return s.Pos.Add(s.Ori).Wrap(s.Map.Size())
}

// Believe updates the believed pose as if the action succeeds, and returns
// the action. A blocked move is undone by Plan when the bump is perceived.
func (s *State) Believe(action Action) Action {
	switch action {
	case MOVE:
		step := s.Ori
		s.LastStep = &step
		s.Pos = s.Ahead()
	case TURN_RIGHT:
		s.Ori = s.Ori.Right()
	case TURN_LEFT:
		s.Ori = s.Ori.Left()
	case SHOOT:
		target := s.Ahead()
		s.LastShot = &target
	}
	return action
}

// UndoStep reverts the last believed move by stepping back against it.
func (s *State) UndoStep() {
	if s.LastStep == nil {
		return
	}
	s.Pos = s.Pos.Sub(*s.LastStep).Wrap(s.Map.Size())
	s.LastStep = nil
}
