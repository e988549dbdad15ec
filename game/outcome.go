package game

import (
	"fmt"

	"wumpus/agents"
	"wumpus/grid_world"
)

// Outcome is the user-facing result of a game.
type Outcome struct {
	Status Status
	Ticks  int
	// Cause is the cell that killed the agent when Status is Lost.
	Cause   grid_world.Cell
	Message string
}

// Outcome reports the game result so far.
func (g *Game) Outcome() Outcome {
	name := g.hero.ID
	out := Outcome{Status: g.status, Ticks: g.ticks, Cause: g.cause}
	switch g.status {
	case Won:
		out.Message = fmt.Sprintf("Congratulations, %s, you survived the Wumpus world!", name)
	case Lost:
		switch g.cause {
		case grid_world.MONSTER:
			out.Message = fmt.Sprintf("My condolences, %s, you became Wumpus food...", name)
		case grid_world.PIT:
			out.Message = fmt.Sprintf("My condolences, %s, you fell into a pit...", name)
		default:
			out.Message = fmt.Sprintf("My condolences, %s, you died.", name)
		}
	case Abandoned:
		out.Message = fmt.Sprintf("%s gave up after %d ticks.", name, g.ticks)
	default:
		out.Message = fmt.Sprintf("%s is still exploring.", name)
	}
	return out
}

// CharacterView is a read-only copy of a character's absolute pose.
type CharacterView struct {
	ID     string
	Pos    grid_world.Position
	Ori    grid_world.Orientation
	Alive  bool
	Arrows int
}

func viewOf(c *grid_world.Character) CharacterView {
	return CharacterView{
		ID:     c.ID,
		Pos:    c.Pos,
		Ori:    c.Ori,
		Alive:  c.Alive,
		Arrows: c.Arrows,
	}
}

// Snapshot is a deep copy of everything a spectator may see. Nothing in it
// aliases game state.
type Snapshot struct {
	RunID    string
	Tick     int
	Status   Status
	Size     int
	Monsters int
	// Layout is the ground truth, one string per row.
	Layout   []string
	Hero     CharacterView
	Wanderer *CharacterView
	// Believed is the hero's pose in its own frame, and Knowledge its map in
	// that frame, indexed [row][col].
	Believed  CharacterView
	Knowledge [][][]agents.Tag
}

// Snapshot copies the current game state for viewers.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:    g.runID.String(),
		Tick:     g.ticks,
		Status:   g.status,
		Size:     g.world.Size(),
		Monsters: g.world.Monsters(),
		Layout:   g.world.Grid().Layout(),
		Hero:     viewOf(g.hero),
		Believed: CharacterView{
			ID:     g.heroState.Name,
			Pos:    g.heroState.Pos,
			Ori:    g.heroState.Ori,
			Alive:  g.heroState.Alive,
			Arrows: g.heroState.Arrows,
		},
		Knowledge: g.heroState.Map.Snapshot(),
	}
	if g.wanderer != nil {
		w := viewOf(g.wanderer)
		snap.Wanderer = &w
	}
	return snap
}
