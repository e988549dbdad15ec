package agents

import (
	"bytes"
	"testing"

	"wumpus/grid_world"

	. "github.com/smartystreets/goconvey/convey"
)

func pos(r, c int) grid_world.Position {
	return grid_world.Position{Row: r, Col: c}
}

func TestKnowledgeMap(t *testing.T) {
	Convey("When notes are taken", t, func() {
		km := NewKnowledgeMap(5)

		Convey("Tags are a set per cell, and positions wrap", func() {
			km.Add(pos(1, 1), VISITED, SAFE, VISITED)
			So(km.Tags(pos(6, 6)), ShouldResemble, []Tag{SAFE, VISITED})
			So(km.Has(pos(1, 1), SAFE), ShouldBeTrue)
			So(km.HasAny(pos(1, 1), WALL, SAFE), ShouldBeTrue)
			So(km.HasAny(pos(1, 1), WALL, PIT), ShouldBeFalse)
		})

		Convey("Remove and Set edit a single cell", func() {
			km.Add(pos(0, 0), POSSIBLE_PIT, POSSIBLE_MONSTER)
			km.Remove(pos(0, 0), POSSIBLE_PIT)
			So(km.Tags(pos(0, 0)), ShouldResemble, []Tag{POSSIBLE_MONSTER})
			km.Set(pos(0, 0), WALL)
			So(km.Tags(pos(0, 0)), ShouldResemble, []Tag{WALL})
			So(km.IsEmpty(pos(0, 1)), ShouldBeTrue)
		})

		Convey("A clone shares nothing with its source", func() {
			km.Add(pos(2, 2), VISITED)
			clone := km.Clone()
			km.Add(pos(2, 2), STENCH)
			So(clone.Tags(pos(2, 2)), ShouldResemble, []Tag{VISITED})
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("When one map is merged into another", t, func() {
		src := NewKnowledgeMap(5)
		src.Add(pos(0, 0), SAFE)
		src.Add(pos(3, 0), MONSTER)
		dst := NewKnowledgeMap(5)
		dst.Add(pos(2, 2), VISITED)

		hero := grid_world.Frame{Origin: pos(2, 2), Heading: grid_world.EAST}
		absolute := grid_world.Frame{Origin: pos(0, 0), Heading: grid_world.SOUTH}
		into := absolute.Into(hero, 5)

		added := dst.Merge(src, into)
		So(added, ShouldEqual, 2)

		Convey("Notes land on the transformed cells", func() {
			So(dst.Has(into(pos(3, 0)), MONSTER), ShouldBeTrue)
			So(into(pos(3, 0)), ShouldResemble, pos(3, 4))
			So(dst.Has(into(pos(0, 0)), SAFE), ShouldBeTrue)
			So(dst.Has(pos(2, 2), VISITED), ShouldBeTrue)
		})

		Convey("Merging the same snapshot again adds nothing", func() {
			before := dst.Snapshot()
			So(dst.Merge(src, into), ShouldEqual, 0)
			So(dst.Snapshot(), ShouldResemble, before)
		})

		Convey("Later notes of the source are not reflected", func() {
			src.Add(pos(1, 1), PIT)
			So(dst.Has(into(pos(1, 1)), PIT), ShouldBeFalse)
		})
	})
}

func TestShowKnowledge(t *testing.T) {
	Convey("ShowKnowledge prints the believed pose and the notes", t, func() {
		state := NewState("hero", 3, 1)
		state.Map.Add(pos(0, 0), VISITED)
		state.Map.Add(pos(0, 1), POSSIBLE_PIT)

		var buf bytes.Buffer
		ShowKnowledge(&buf, state)
		So(buf.String(), ShouldContainSubstring, "Map known by hero")
		So(buf.String(), ShouldContainSubstring, "XvV\t| P?\t| ")
	})
}
