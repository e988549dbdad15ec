package agents

import (
	"errors"
	"math/rand"
	"testing"

	"wumpus/grid_world"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBelieve(t *testing.T) {
	Convey("When the agent believes its actions", t, func() {
		state := NewState("hero", 5, 1)

		Convey("A move advances along the heading and can be undone", func() {
			state.Believe(MOVE)
			So(state.Pos, ShouldResemble, pos(1, 0))
			So(*state.LastStep, ShouldResemble, grid_world.SOUTH)
			state.UndoStep()
			So(state.Pos, ShouldResemble, pos(0, 0))
			So(state.LastStep, ShouldBeNil)
		})

		Convey("Moves wrap on the private torus too", func() {
			state.Ori = grid_world.NORTH
			state.Believe(MOVE)
			So(state.Pos, ShouldResemble, pos(4, 0))
		})

		Convey("Turns rotate the heading, four of them restore it", func() {
			for i := 0; i < 4; i++ {
				state.Believe(TURN_RIGHT)
			}
			So(state.Ori, ShouldResemble, grid_world.SOUTH)
			state.Believe(TURN_LEFT)
			So(state.Ori, ShouldResemble, grid_world.EAST)
		})

		Convey("A shot remembers its target", func() {
			state.Believe(SHOOT)
			So(*state.LastShot, ShouldResemble, pos(1, 0))
		})
	})
}

func TestActionValid(t *testing.T) {
	Convey("Only the five symbols are legal actions", t, func() {
		for _, a := range Actions {
			So(a.Valid(), ShouldBeTrue)
		}
		So(Action('X').Valid(), ShouldBeFalse)
		So(Action('X').String(), ShouldEqual, `invalid('X')`)
	})
}

func TestRegistry(t *testing.T) {
	Convey("When strategies are looked up by name", t, func() {
		Convey("The explorer is registered", func() {
			s, err := New("explorer", DefaultTuning())
			So(err, ShouldBeNil)
			So(s, ShouldHaveSameTypeAs, &Explorer{})
			So(Registered(), ShouldContain, "explorer")
		})

		Convey("Unknown names fail", func() {
			_, err := New("nobody", DefaultTuning())
			So(errors.Is(err, ErrUnknownStrategy), ShouldBeTrue)
		})
	})
}

func TestExplorerPlan(t *testing.T) {
	Convey("When the explorer plans", t, func() {
		e := NewExplorer(DefaultTuning())
		state := NewState("hero", 5, 1)
		m := state.Map

		Convey("A quiet cell makes every neighbor safe", func() {
			e.Plan(state, grid_world.NewPercept())
			So(m.Has(pos(0, 0), VISITED), ShouldBeTrue)
			for _, nb := range pos(0, 0).Neighbors(5) {
				So(m.Has(nb, SAFE), ShouldBeTrue)
			}
		})

		Convey("A breeze makes unknown neighbors possible pits", func() {
			e.Plan(state, grid_world.NewPercept(grid_world.Breeze))
			So(m.Has(pos(0, 0), BREEZE), ShouldBeTrue)
			for _, nb := range pos(0, 0).Neighbors(5) {
				So(m.Has(nb, POSSIBLE_PIT), ShouldBeTrue)
				So(m.Has(nb, SAFE), ShouldBeFalse)
			}

			Convey("A later quiet neighbor clears the suspicion it can see", func() {
				m.Add(pos(1, 1), SAFE)
				state.Pos = pos(1, 1)
				e.Plan(state, grid_world.NewPercept())
				So(m.Has(pos(1, 0), POSSIBLE_PIT), ShouldBeFalse)
				So(m.Has(pos(1, 0), SAFE), ShouldBeTrue)
				So(m.Has(pos(0, 1), SAFE), ShouldBeTrue)
			})
		})

		Convey("A bump marks the wall and steps back against the last move", func() {
			e.Plan(state, grid_world.NewPercept())
			So(e.Act(state), ShouldEqual, MOVE)
			So(state.Pos, ShouldResemble, pos(1, 0))
			e.Plan(state, grid_world.NewPercept(grid_world.Bump))
			So(state.Pos, ShouldResemble, pos(0, 0))
			So(m.Tags(pos(1, 0)), ShouldResemble, []Tag{WALL})
		})

		Convey("A stench with a single unresolved neighbor pins the monster", func() {
			m.Add(pos(1, 0), SAFE)
			m.Add(pos(0, 1), SAFE)
			m.Add(pos(4, 0), SAFE)
			e.Plan(state, grid_world.NewPercept(grid_world.Stench))
			So(m.Has(pos(0, 4), MONSTER), ShouldBeTrue)

			Convey("It turns to face the monster, then shoots", func() {
				So(e.Act(state), ShouldEqual, TURN_RIGHT)
				So(state.Ori, ShouldResemble, grid_world.WEST)
				So(e.Act(state), ShouldEqual, SHOOT)

				Convey("The scream clears the monster and its stench", func() {
					state.Arrows = 0
					e.Plan(state, grid_world.NewPercept(grid_world.Scream))
					So(m.Has(pos(0, 4), MONSTER), ShouldBeFalse)
					So(m.Has(pos(0, 4), SAFE), ShouldBeTrue)
					So(m.Has(pos(0, 0), STENCH), ShouldBeFalse)
					So(state.LastShot, ShouldBeNil)
				})
			})
		})

		Convey("An encounter is noted on the current cell only for this turn", func() {
			e.Plan(state, grid_world.NewPercept(grid_world.Encounter("dummy")))
			So(m.Has(pos(0, 0), ENCOUNTERED), ShouldBeTrue)
			e.Plan(state, grid_world.NewPercept())
			So(m.Has(pos(0, 0), ENCOUNTERED), ShouldBeFalse)
		})
	})
}

func TestExplorerAct(t *testing.T) {
	Convey("When the explorer acts", t, func() {
		state := NewState("hero", 5, 1)

		Convey("It shares once when it meets the other character", func() {
			e := NewExplorer(DefaultTuning())
			e.Plan(state, grid_world.NewPercept(grid_world.Encounter("dummy")))
			So(e.Act(state), ShouldEqual, SHARE)
			So(e.Act(state), ShouldNotEqual, SHARE)
		})

		Convey("It never shares past the bound", func() {
			e := NewExplorer(Tuning{MaxRetries: 5, MaxShares: 0})
			e.Plan(state, grid_world.NewPercept(grid_world.Encounter("dummy")))
			So(e.Act(state), ShouldNotEqual, SHARE)
		})

		Convey("It walks straight into safe unvisited cells first", func() {
			e := NewExplorer(DefaultTuning())
			e.Plan(state, grid_world.NewPercept())
			So(e.Act(state), ShouldEqual, MOVE)
		})

		Convey("It turns toward a safe cell that is not ahead", func() {
			e := NewExplorer(DefaultTuning())
			state.Map.Add(pos(1, 0), WALL)
			state.Map.Add(pos(0, 4), WALL)
			e.Plan(state, grid_world.NewPercept())
			So(e.Act(state), ShouldEqual, TURN_LEFT)
			So(state.Ori, ShouldResemble, grid_world.EAST)
			So(e.Act(state), ShouldEqual, MOVE)
		})

		Convey("With nothing safe it spins, then takes a chance", func() {
			e := NewExplorer(Tuning{MaxRetries: 2, MaxShares: 5})
			e.Plan(state, grid_world.NewPercept(grid_world.Breeze))
			So(e.Act(state), ShouldEqual, TURN_RIGHT)
			So(e.Act(state), ShouldEqual, TURN_RIGHT)

			moved := false
			for i := 0; i < 4 && !moved; i++ {
				moved = e.Act(state) == MOVE
			}
			So(moved, ShouldBeTrue)
		})

		Convey("With a suspected monster and an arrow, the chance it takes is a shot", func() {
			e := NewExplorer(Tuning{MaxRetries: 0, MaxShares: 5})
			e.Plan(state, grid_world.NewPercept(grid_world.Stench))
			So(e.Act(state), ShouldEqual, SHOOT)
		})

		Convey("It never proposes an illegal action", func() {
			e := NewExplorer(DefaultTuning())
			rng := rand.New(rand.NewSource(7))
			senses := []grid_world.Sense{grid_world.Breeze, grid_world.Stench, grid_world.Bump}
			for i := 0; i < 200; i++ {
				e.Plan(state, grid_world.NewPercept(senses[rng.Intn(len(senses))]))
				So(e.Act(state).Valid(), ShouldBeTrue)
			}
		})
	})
}

func TestWanderer(t *testing.T) {
	Convey("When the wanderer steps", t, func() {
		w := NewWanderer(rand.New(rand.NewSource(1)))

		Convey("It joins the hero when one step away, across the edge too", func() {
			So(w.Next(pos(0, 0), pos(0, 1), 5), ShouldResemble, grid_world.EAST)
			So(w.Next(pos(0, 0), pos(4, 0), 5), ShouldResemble, grid_world.NORTH)
		})

		Convey("Otherwise it eventually tries all four directions", func() {
			seen := map[grid_world.Orientation]bool{}
			for i := 0; i < 200; i++ {
				seen[w.Next(pos(0, 0), pos(2, 2), 5)] = true
			}
			So(len(seen), ShouldEqual, 4)
		})

		Convey("It logs the truth of the cells it enters", func() {
			state := NewState("dummy", 5, 0)
			state.Map.Add(pos(1, 1), POSSIBLE_PIT)
			w.Observe(state, pos(1, 1), grid_world.PIT)
			So(state.Map.Tags(pos(1, 1)), ShouldResemble, []Tag{PIT})
			w.Observe(state, pos(0, 0), grid_world.EMPTY)
			So(state.Map.Tags(pos(0, 0)), ShouldResemble, []Tag{SAFE})
		})
	})
}
