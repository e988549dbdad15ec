package grid_world

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOrientation(t *testing.T) {
	Convey("When turning", t, func() {
		Convey("Four right turns return every heading to itself", func() {
			for _, o := range Orientations {
				So(o.Right().Right().Right().Right(), ShouldResemble, o)
				So(o.Left().Left().Left().Left(), ShouldResemble, o)
			}
		})

		Convey("A right turn undoes a left turn", func() {
			for _, o := range Orientations {
				So(o.Left().Right(), ShouldResemble, o)
			}
		})

		Convey("Right turns follow south, west, north, east", func() {
			So(SOUTH.Right(), ShouldResemble, WEST)
			So(WEST.Right(), ShouldResemble, NORTH)
			So(NORTH.Right(), ShouldResemble, EAST)
			So(EAST.Right(), ShouldResemble, SOUTH)
		})

		Convey("Left turns follow south, east, north, west", func() {
			So(SOUTH.Left(), ShouldResemble, EAST)
			So(EAST.Left(), ShouldResemble, NORTH)
			So(NORTH.Left(), ShouldResemble, WEST)
			So(WEST.Left(), ShouldResemble, SOUTH)
		})

		Convey("Only the four axis vectors are headings", func() {
			So(SOUTH.IsUnit(), ShouldBeTrue)
			So(Orientation{1, 1}.IsUnit(), ShouldBeFalse)
			So(Orientation{}.IsUnit(), ShouldBeFalse)
		})
	})
}

func TestWrap(t *testing.T) {
	Convey("When stepping off the board", t, func() {
		Convey("Moving outward from the last row or column lands on index 0", func() {
			for n := 1; n <= 7; n++ {
				So(Position{n - 1, 0}.Add(SOUTH).Wrap(n), ShouldResemble, Position{0, 0})
				So(Position{0, n - 1}.Add(EAST).Wrap(n), ShouldResemble, Position{0, 0})
				So(Position{0, 0}.Add(NORTH).Wrap(n), ShouldResemble, Position{n - 1, 0})
				So(Position{0, 0}.Add(WEST).Wrap(n), ShouldResemble, Position{0, n - 1})
			}
		})

		Convey("Neighbors are the four orthogonal cells only", func() {
			ns := Position{0, 0}.Neighbors(5)
			So(ns[:], ShouldResemble, []Position{{1, 0}, {0, 1}, {4, 0}, {0, 4}})
		})

		Convey("Manhattan distance takes the short way around", func() {
			So(ManhattanDistance(Position{0, 0}, Position{4, 0}, 5), ShouldEqual, 1)
			So(ManhattanDistance(Position{0, 0}, Position{4, 4}, 5), ShouldEqual, 2)
			So(ManhattanDistance(Position{2, 2}, Position{2, 3}, 5), ShouldEqual, 1)
			So(ManhattanDistance(Position{1, 1}, Position{3, 3}, 5), ShouldEqual, 4)
		})
	})
}

func TestFrame(t *testing.T) {
	Convey("When mapping between frames", t, func() {
		n := 5

		Convey("A frame's origin is its (0,0) and its heading is its south", func() {
			f := Frame{Origin: Position{2, 2}, Heading: EAST}
			So(f.ToAbsolute(Position{0, 0}, n), ShouldResemble, Position{2, 2})
			So(f.ToAbsolute(Position{1, 0}, n), ShouldResemble, Position{2, 3})
			So(f.HeadingToAbsolute(SOUTH), ShouldResemble, EAST)
			So(f.HeadingToAbsolute(EAST), ShouldResemble, NORTH)
		})

		Convey("ToRelative inverts ToAbsolute for every heading and cell", func() {
			for _, h := range Orientations {
				f := Frame{Origin: Position{1, 3}, Heading: h}
				for r := 0; r < n; r++ {
					for c := 0; c < n; c++ {
						p := Position{r, c}
						So(f.ToRelative(f.ToAbsolute(p, n), n), ShouldResemble, p)
					}
				}
			}
		})

		Convey("A hero at (2,2) facing east sees absolute (i,j) at (j-2, 2-i)", func() {
			hero := Frame{Origin: Position{2, 2}, Heading: EAST}
			absolute := Frame{Origin: Position{0, 0}, Heading: SOUTH}
			into := absolute.Into(hero, n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					So(into(Position{i, j}), ShouldResemble, Position{j - 2, 2 - i}.Wrap(n))
				}
			}
		})

		Convey("Moving south in a frame moves along its heading in the world", func() {
			f := Frame{Origin: Position{0, 4}, Heading: WEST}
			rel := Position{0, 0}
			for i := 1; i < 8; i++ {
				rel = rel.Add(SOUTH)
				So(f.ToAbsolute(rel, n), ShouldResemble, Position{0, 4 - i}.Wrap(n))
			}
		})
	})
}
