package cell_views

import (
	"fmt"
	"html/template"

	"wumpus/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// cellDim is the height and width of a grid square in pixels.
const cellDim = 80

// Grid is an svg grid of cells taken from one field of the Board.
type Grid struct {
	id    string
	title string
	// field is the Board field rendered by the template, selected by cells.
	field   string
	cells   func(Board) [][]Cell
	updates <-chan []fastview.EleUpdate
}

// NewWorldGrid shows the ground truth with every character on it.
func NewWorldGrid(done <-chan struct{}, boards <-chan Board) *Grid {
	return newGrid(done, boards, "worldgrid", "World (nobody sees this)", "World",
		func(b Board) [][]Cell { return b.World })
}

// NewKnowledgeGrid shows the hero's private map in its own frame.
func NewKnowledgeGrid(done <-chan struct{}, boards <-chan Board) *Grid {
	return newGrid(done, boards, "knowledgegrid", "Map known by the hero", "Knowledge",
		func(b Board) [][]Cell { return b.Knowledge })
}

func newGrid(
	done <-chan struct{},
	boards <-chan Board,
	id, title, field string,
	cells func(Board) [][]Cell,
) (g *Grid) {
	g = &Grid{
		id:    template.HTMLEscapeString(id),
		title: template.HTMLEscapeString(title),
		field: field,
		cells: cells,
	}
	g.updates = channerics.Convert(done, boards, g.onUpdate)
	return
}

func (g *Grid) Updates() <-chan []fastview.EleUpdate {
	return g.updates
}

// onUpdate returns the updates needed for the view to reflect the board.
func (g *Grid) onUpdate(board Board) (ops []fastview.EleUpdate) {
	for _, row := range g.cells(board) {
		for _, cell := range row {
			ops = append(ops,
				fastview.EleUpdate{
					EleId: cellId(g.id, cell, "rect"),
					Ops:   []fastview.Op{{Key: "fill", Value: cell.Fill}},
				},
				fastview.EleUpdate{
					EleId: cellId(g.id, cell, "label"),
					Ops:   []fastview.Op{{Key: "textContent", Value: cell.Label}},
				},
				fastview.EleUpdate{
					EleId: cellId(g.id, cell, "glyph"),
					Ops:   []fastview.Op{{Key: "textContent", Value: cell.Glyph}},
				})
		}
	}
	return
}

// Parse defines the grid template: one rect per cell with the label above
// the center and the glyph below it.
func (g *Grid) Parse(t *template.Template) (name string, err error) {
	name = g.id
	_, err = t.Parse(
		`{{ define "` + name + `" }}
		<div style="padding:20px; display:inline-block; vertical-align:top;">
			<h3>` + g.title + `</h3>
			{{ $cells := .` + g.field + ` }}
			{{ $n := len $cells }}
			{{ $cell_width := ` + fmt.Sprintf("%d", cellDim) + ` }}
			{{ $half_width := div $cell_width 2 }}
			{{ $width := mult $cell_width $n }}
			<svg id="` + g.id + `"
				width="{{ add $width 1 }}px"
				height="{{ add $width 1 }}px"
				style="shape-rendering: crispEdges;">
				{{ range $row := $cells }}
					{{ range $cell := $row }}
					<g>
						<rect id="` + g.id + `-{{$cell.Row}}-{{$cell.Col}}-rect"
							x="{{ mult $cell.Col $cell_width }}"
							y="{{ mult $cell.Row $cell_width }}"
							width="{{ $cell_width }}"
							height="{{ $cell_width }}"
							fill="{{ $cell.Fill }}"
							stroke="black"
							stroke-width="1"/>
						<text id="` + g.id + `-{{$cell.Row}}-{{$cell.Col}}-label"
							x="{{ add (mult $cell.Col $cell_width) $half_width }}"
							y="{{ add (mult $cell.Row $cell_width) (sub $half_width 10) }}"
							dominant-baseline="text-top" text-anchor="middle"
							>{{ $cell.Label }}</text>
						<text id="` + g.id + `-{{$cell.Row}}-{{$cell.Col}}-glyph"
							x="{{ add (mult $cell.Col $cell_width) $half_width }}"
							y="{{ add (mult $cell.Row $cell_width) (add $half_width 20) }}"
							stroke="blue"
							dominant-baseline="central" text-anchor="middle"
							>{{ $cell.Glyph }}</text>
					</g>
					{{ end }}
				{{ end }}
			</svg>
		</div>
		{{ end }}`)
	return
}
