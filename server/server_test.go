package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wumpus/game"

	. "github.com/smartystreets/goconvey/convey"
)

func TestServer(t *testing.T) {
	Convey("Given a server over a running game", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		g, err := game.New(game.DefaultConfig())
		So(err, ShouldBeNil)
		snapshots := make(chan game.Snapshot)
		srv, err := NewServer(ctx, ":0", g.Snapshot(), snapshots, nil)
		So(err, ShouldBeNil)
		handler := srv.Handler()

		Convey("The index renders the page", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `id="worldgrid"`)
			So(rec.Body.String(), ShouldContainSubstring, "tick 0: running")
		})

		Convey("Only GET is allowed on the index", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Unknown paths are not found", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Snapshots never wait for a client, and the page shows the latest", func() {
			for i := 0; i < 3; i++ {
				_, err := g.Tick()
				So(err, ShouldBeNil)
				select {
				case snapshots <- g.Snapshot():
				case <-time.After(time.Second):
					So("snapshot blocked", ShouldBeEmpty)
				}
			}
			time.Sleep(50 * time.Millisecond)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			So(rec.Body.String(), ShouldContainSubstring, "tick 3:")
		})
	})
}
