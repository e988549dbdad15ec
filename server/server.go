package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"wumpus/game"
	"wumpus/server/cell_views"
	"wumpus/server/fastview"
	"wumpus/server/root_view"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server serves a single spectator page over a single websocket: the page
// shows the ground truth next to the hero's private map while a game runs.
// The element-update channel is consumed by one client at a time; a second
// tab waits for the first to leave.
type Server struct {
	addr     string
	rootView *root_view.RootView
	logger   *zap.Logger

	// last is the most recent board, used to render the page on load.
	mu   sync.Mutex
	last cell_views.Board
	// client serializes websocket clients.
	client sync.Mutex
}

// NewServer builds the views over the snapshot stream. initial is rendered
// until the first snapshot arrives.
func NewServer(
	ctx context.Context,
	addr string,
	initial game.Snapshot,
	snapshots <-chan game.Snapshot,
	logger *zap.Logger,
) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &Server{
		addr:   addr,
		logger: logger,
		last:   cell_views.Convert(initial),
	}

	// Keep the latest board for page loads and hand the views only the most
	// recent snapshot, so the game never waits on a slow or absent client.
	tracked := make(chan game.Snapshot, 1)
	go func() {
		defer close(tracked)
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				server.mu.Lock()
				server.last = cell_views.Convert(snap)
				server.mu.Unlock()
				select {
				case <-tracked:
				default:
				}
				// This goroutine is the only sender, so the buffer has room.
				tracked <- snap
			}
		}
	}()

	rootView, err := root_view.NewRootView(ctx, tracked)
	if err != nil {
		return nil, fmt.Errorf("build views: %w", err)
	}
	server.rootView = rootView
	return server, nil
}

// Handler returns the routes of the server.
func (server *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", server.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWebsocket)
	return router
}

// Serve listens until ctx is done, then shuts down gracefully.
func (server *Server) Serve(ctx context.Context) (err error) {
	srv := &http.Server{
		Addr:    server.addr,
		Handler: server.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	server.logger.Info("serving", zap.String("addr", server.addr))
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serveWebsocket publishes element updates to the client.
func (server *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	server.client.Lock()
	defer server.client.Unlock()

	cli, err := fastview.NewClient(server.rootView.Updates(), w, r, server.logger)
	if err != nil {
		server.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	if err := cli.Sync(); err != nil {
		server.logger.Warn("client sync failed", zap.Error(err))
	}
}

// serveIndex renders the page with the latest board.
func (server *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")

	server.mu.Lock()
	board := server.last
	server.mu.Unlock()

	if err := renderTemplate(w, server.rootView, board); err != nil {
		server.logger.Error("render failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderTemplate(
	w io.Writer,
	vc fastview.ViewComponent,
	data interface{},
) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}

	err = t.Execute(w, data)
	return
}
