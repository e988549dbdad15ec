package cell_views

import (
	"fmt"
	"html/template"

	"wumpus/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// Status is a one-line summary of the game.
type Status struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewStatus(done <-chan struct{}, boards <-chan Board) (s *Status) {
	s = &Status{id: "status"}
	s.updates = channerics.Convert(done, boards, s.onUpdate)
	return
}

func (s *Status) Updates() <-chan []fastview.EleUpdate {
	return s.updates
}

func (s *Status) onUpdate(board Board) []fastview.EleUpdate {
	return []fastview.EleUpdate{
		{
			EleId: s.id + "-text",
			Ops:   []fastview.Op{{Key: "textContent", Value: statusLine(board)}},
		},
	}
}

func statusLine(board Board) string {
	return fmt.Sprintf("tick %d: %s, monsters left %d, arrows %d",
		board.Tick, board.Status, board.Monsters, board.Arrows)
}

func (s *Status) Parse(t *template.Template) (name string, err error) {
	name = s.id
	_, err = t.Funcs(template.FuncMap{"statusLine": statusLine}).Parse(
		`{{ define "` + name + `" }}
		<div style="padding:20px;">
			<h2 id="` + s.id + `-text">{{ statusLine . }}</h2>
			<small>run {{ .RunID }}</small>
		</div>
		{{ end }}`)
	return
}
