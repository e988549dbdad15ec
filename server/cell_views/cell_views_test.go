package cell_views

import (
	"bytes"
	"html/template"
	"testing"

	"wumpus/game"

	. "github.com/smartystreets/goconvey/convey"
)

func fixtureBoard() Board {
	g, err := game.New(game.DefaultConfig())
	So(err, ShouldBeNil)
	return Convert(g.Snapshot())
}

func TestConvert(t *testing.T) {
	Convey("When a fixture snapshot is converted", t, func() {
		board := fixtureBoard()

		Convey("The world shows the ground truth and the characters", func() {
			So(len(board.World), ShouldEqual, 5)
			So(board.World[3][0].Label, ShouldEqual, "W")
			So(board.World[3][0].Fill, ShouldEqual, "salmon")
			So(board.World[2][0].Fill, ShouldEqual, "lightblue")
			So(board.World[1][2].Fill, ShouldEqual, "lightgreen")
			So(board.World[2][2].Glyph, ShouldEqual, "X>")
			So(board.World[0][0].Glyph, ShouldEqual, "D")
			So(board.World[4][3], ShouldResemble, Cell{Row: 4, Col: 3, Fill: "lightgray"})
		})

		Convey("The knowledge grid starts unknown, with the believed pose", func() {
			So(len(board.Knowledge), ShouldEqual, 5)
			So(board.Knowledge[0][0].Glyph, ShouldEqual, "Xv")
			So(board.Knowledge[1][1].Fill, ShouldEqual, "darkgray")
			So(board.Knowledge[1][1].Label, ShouldBeEmpty)
		})

		Convey("The status line summarizes the game", func() {
			So(statusLine(board), ShouldEqual, "tick 0: running, monsters left 1, arrows 1")
		})
	})
}

func TestGridView(t *testing.T) {
	Convey("When a grid view renders a board", t, func() {
		board := fixtureBoard()
		boards := make(chan Board)
		done := make(chan struct{})
		defer close(done)
		grid := NewWorldGrid(done, boards)

		Convey("Each cell gets a fill, a label and a glyph update", func() {
			ops := grid.onUpdate(board)
			So(len(ops), ShouldEqual, 3*5*5)
			So(ops[0].EleId, ShouldEqual, "worldgrid-0-0-rect")
			So(ops[0].Ops[0].Key, ShouldEqual, "fill")
			So(ops[2].Ops[0].Value, ShouldEqual, "D")
		})

		Convey("Its template renders every cell with matching ids", func() {
			t := template.New("test").Funcs(template.FuncMap{
				"add":  func(i, j int) int { return i + j },
				"sub":  func(i, j int) int { return i - j },
				"mult": func(i, j int) int { return i * j },
				"div":  func(i, j int) int { return i / j },
			})
			name, err := grid.Parse(t)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "worldgrid")

			var buf bytes.Buffer
			So(t.ExecuteTemplate(&buf, name, board), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `id="worldgrid-4-4-rect"`)
			So(buf.String(), ShouldContainSubstring, `id="worldgrid-2-2-glyph"`)
		})
	})
}
