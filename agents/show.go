package agents

import (
	"fmt"
	"io"
	"strings"

	"wumpus/grid_world"
)

// ShowKnowledge prints the agent's private map with its believed pose, in the
// agent's own frame.
func ShowKnowledge(w io.Writer, state *State) {
	m := state.Map
	fmt.Fprintf(w, "Map known by %s (arrows: %d):\n", state.Name, state.Arrows)
	for r := 0; r < m.Size(); r++ {
		for c := 0; c < m.Size(); c++ {
			pos := grid_world.Position{Row: r, Col: c}
			if state.Pos == pos {
				fmt.Fprint(w, grid_world.HeroGlyph(state.Ori))
			}
			tags := []string{}
			for _, tag := range m.Tags(pos) {
				tags = append(tags, string(tag))
			}
			fmt.Fprint(w, strings.Join(tags, ""), "\t| ")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("-", 8*m.Size()+1))
	}
}
