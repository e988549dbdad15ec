package grid_world

import (
	"fmt"
	"io"
	"strings"
)

// ShowWorld prints the ground truth, which no character can see, for
// debugging. The hero is drawn as X with its heading arrow; every other
// character is drawn as D.
func ShowWorld(w io.Writer, world *World, hero *Character, others ...*Character) {
	n := world.Size()
	fmt.Fprintf(w, "World (monsters left: %d):\n", world.Monsters())
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			pos := Position{Row: r, Col: c}
			if hero != nil && hero.Pos == pos {
				fmt.Fprint(w, HeroGlyph(hero.Ori))
			}
			for _, o := range others {
				if o.Pos == pos {
					fmt.Fprint(w, "D")
				}
			}
			fmt.Fprintf(w, "%c\t| ", world.CellAt(pos))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("-", 8*n+1))
	}
}

// HeroGlyph draws the hero facing ori: <X, X>, Xv or X^.
func HeroGlyph(ori Orientation) string {
	if ori == WEST {
		return "<X"
	}
	return "X" + string(ori.Glyph())
}
