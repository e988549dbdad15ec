package agents

import (
	"wumpus/grid_world"

	"github.com/zyedidia/generic/mapset"
)

// Explorer is the reference reasoning policy. Plan folds each percept into the
// private map and propagates what it implies for the four neighbors; Act is a
// pure function of that map plus two counters:
//   - share whenever the other character is met, a bounded number of times
//   - shoot a known monster when holding an arrow
//   - walk to the nearest safe cell not yet visited
//   - with nothing safe left, spin for a few turns hoping for news, then take
//     the least risky chance available
type Explorer struct {
	tuning  Tuning
	retries int
	shares  int
}

// NewExplorer returns the reference policy.
func NewExplorer(tuning Tuning) *Explorer {
	return &Explorer{tuning: tuning}
}

var _ Strategy = (*Explorer)(nil)

// Plan updates the private map from the percept.
func (e *Explorer) Plan(state *State, percept grid_world.Percept) {
	m := state.Map
	n := m.Size()

	// A bump means the believed move never happened: the cell ahead is a wall.
	if percept.Has(grid_world.Bump) && state.LastStep != nil {
		m.Set(state.Pos, WALL)
		state.UndoStep()
	}
	state.LastStep = nil

	// Whether or not it screamed, nothing lives where the arrow landed.
	if state.LastShot != nil {
		target := *state.LastShot
		m.Remove(target, MONSTER, POSSIBLE_MONSTER)
		if !m.HasAny(target, PIT, POSSIBLE_PIT, WALL) {
			m.Add(target, SAFE)
		}
		if percept.Has(grid_world.Scream) {
			for _, nb := range target.Neighbors(n) {
				m.Remove(nb, STENCH)
			}
		}
		state.LastShot = nil
	}

	here := state.Pos
	m.Remove(here, POSSIBLE_PIT, POSSIBLE_MONSTER, PIT, MONSTER, ENCOUNTERED)
	m.Add(here, VISITED, SAFE)

	breeze := percept.Has(grid_world.Breeze)
	stench := percept.Has(grid_world.Stench)
	if breeze {
		m.Add(here, BREEZE)
	}
	if stench {
		m.Add(here, STENCH)
	}
	if len(percept.Encounters()) > 0 {
		m.Add(here, ENCOUNTERED)
	}

	for _, nb := range here.Neighbors(n) {
		if m.HasAny(nb, VISITED, WALL) {
			continue
		}
		if breeze {
			if !m.Has(nb, SAFE) {
				m.Add(nb, POSSIBLE_PIT)
			}
		} else {
			m.Remove(nb, POSSIBLE_PIT, PIT)
		}
		if stench {
			if !m.Has(nb, SAFE) {
				m.Add(nb, POSSIBLE_MONSTER)
			}
		} else {
			m.Remove(nb, POSSIBLE_MONSTER, MONSTER)
		}
		if !m.HasAny(nb, POSSIBLE_PIT, POSSIBLE_MONSTER, PIT, MONSTER) {
			m.Add(nb, SAFE)
		}
	}

	infer(m)
}

// infer pins a pit or monster on the only unresolved neighbor of a visited
// cell with a breeze or stench.
func infer(m *KnowledgeMap) {
	n := m.Size()
	clues := []struct{ sign, culprit Tag }{
		{BREEZE, PIT},
		{STENCH, MONSTER},
	}
	m.Visit(func(pos grid_world.Position, tags []Tag) {
		if !m.Has(pos, VISITED) {
			return
		}
		for _, clue := range clues {
			if !m.Has(pos, clue.sign) {
				continue
			}
			candidates := []grid_world.Position{}
			for _, nb := range pos.Neighbors(n) {
				if !m.HasAny(nb, VISITED, SAFE, WALL) {
					candidates = append(candidates, nb)
				}
			}
			if len(candidates) == 1 {
				m.Add(candidates[0], clue.culprit)
			}
		}
	})
}

// Act chooses the next action from the private map.
func (e *Explorer) Act(state *State) Action {
	m := state.Map

	if m.Has(state.Pos, ENCOUNTERED) && e.shares < e.tuning.MaxShares {
		m.Remove(state.Pos, ENCOUNTERED)
		e.shares++
		return SHARE
	}

	if state.Arrows > 0 {
		isMonster := func(p grid_world.Position) bool { return m.Has(p, MONSTER) }
		if action, ok := e.approach(state, isMonster, SHOOT); ok {
			return action
		}
	}

	isFrontier := func(p grid_world.Position) bool {
		return isSafe(m, p) && !m.Has(p, VISITED)
	}
	if stand, first, ok := search(state, isFrontier); ok && stand != state.Pos {
		return e.commit(state, steer(state.Ori, first))
	}

	if e.retries < e.tuning.MaxRetries {
		e.retries++
		return e.commit(state, TURN_RIGHT)
	}

	for _, g := range e.gambles(state) {
		if action, ok := e.approach(state, g.target, g.final); ok {
			return action
		}
	}
	e.retries++
	return e.commit(state, TURN_RIGHT)
}

type gamble struct {
	target func(grid_world.Position) bool
	final  Action
}

// gambles lists the risky targets in order of preference once nothing safe is
// left to explore.
func (e *Explorer) gambles(state *State) (gs []gamble) {
	m := state.Map
	uncertain := func(p grid_world.Position) bool {
		return !m.HasAny(p, VISITED, SAFE, WALL, PIT, MONSTER)
	}
	if state.Arrows > 0 {
		gs = append(gs, gamble{
			target: func(p grid_world.Position) bool {
				return uncertain(p) && m.Has(p, POSSIBLE_MONSTER) && !m.Has(p, POSSIBLE_PIT)
			},
			final: SHOOT,
		})
	}
	gs = append(gs,
		gamble{
			target: func(p grid_world.Position) bool {
				return uncertain(p) && !m.HasAny(p, POSSIBLE_PIT, POSSIBLE_MONSTER)
			},
			final: MOVE,
		},
		gamble{
			target: func(p grid_world.Position) bool {
				return uncertain(p) && !m.Has(p, POSSIBLE_PIT)
			},
			final: MOVE,
		},
		gamble{target: uncertain, final: MOVE},
	)
	return
}

// approach walks to the nearest safe cell next to a target cell, faces the
// target, and then performs final. ok is false when no target is reachable.
func (e *Explorer) approach(
	state *State,
	target func(grid_world.Position) bool,
	final Action,
) (Action, bool) {
	n := state.Map.Size()
	var aim grid_world.Orientation
	dirs := []grid_world.Orientation{state.Ori, state.Ori.Right(), state.Ori.Left(), state.Ori.Reverse()}
	nextToTarget := func(p grid_world.Position) bool {
		for _, o := range dirs {
			if t := p.Add(o).Wrap(n); t != p && target(t) {
				aim = o
				return true
			}
		}
		return false
	}

	stand, first, ok := search(state, nextToTarget)
	if !ok {
		return 0, false
	}
	if stand != state.Pos {
		return e.commit(state, steer(state.Ori, first)), true
	}
	if state.Ori != aim {
		return e.commit(state, steer(state.Ori, aim)), true
	}
	return e.commit(state, final), true
}

// commit records the action in the believed pose and counters.
func (e *Explorer) commit(state *State, action Action) Action {
	if action == MOVE {
		e.retries = 0
		e.shares = 0
	}
	return state.Believe(action)
}

// steer returns the action that heads toward dir: a move if already facing
// it, else the turn that gets closest.
func steer(ori, dir grid_world.Orientation) Action {
	switch dir {
	case ori:
		return MOVE
	case ori.Right():
		return TURN_RIGHT
	}
	return TURN_LEFT
}

// isSafe reports a cell known to hold neither wall, pit nor monster.
func isSafe(m *KnowledgeMap, p grid_world.Position) bool {
	return m.HasAny(p, SAFE, VISITED) && !m.HasAny(p, WALL, PIT, MONSTER)
}

// search runs a breadth first search over safe cells from the agent's cell,
// trying straight ahead before turning. It returns the nearest cell
// satisfying goal (possibly the agent's own) and the first step toward it.
func search(
	state *State,
	goal func(grid_world.Position) bool,
) (found grid_world.Position, first grid_world.Orientation, ok bool) {
	m := state.Map
	n := m.Size()
	dirs := []grid_world.Orientation{state.Ori, state.Ori.Right(), state.Ori.Left(), state.Ori.Reverse()}

	type hop struct {
		pos   grid_world.Position
		first grid_world.Orientation
	}
	start := state.Pos.Wrap(n)
	visited := mapset.New[grid_world.Position]()
	visited.Put(start)
	queue := []hop{{pos: start}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if goal(current.pos) {
			return current.pos, current.first, true
		}
		if current.pos != start && !isSafe(m, current.pos) {
			continue
		}

		for _, d := range dirs {
			next := current.pos.Add(d).Wrap(n)
			if visited.Has(next) || !isSafe(m, next) {
				continue
			}
			visited.Put(next)
			f := current.first
			if current.pos == start {
				f = d
			}
			queue = append(queue, hop{pos: next, first: f})
		}
	}
	return grid_world.Position{}, grid_world.Orientation{}, false
}
