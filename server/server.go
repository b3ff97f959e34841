// Package server hosts the planner's live-progress dashboard: a single page
// pushed updates over a websocket, plus a JSON status endpoint, both reading
// whatever the running search driver's ProgressFunc hands them. Nothing here
// is part of the planning API; the dashboard only ever observes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"

	"anyhop/server/fastview"
	"anyhop/server/root_view"
	"anyhop/server/searchviews"
	"anyhop/telemetry"

	"github.com/gorilla/mux"
)

// Server serves a single page, to a single client, over a single websocket,
// plus a JSON status endpoint. Intentionally minimal: one dashboard per
// planning run.
type Server struct {
	addr     string
	runID    string
	snapshot *telemetry.Snapshot
	rootView *root_view.RootView
}

// NewServer initializes the dashboard's views and returns a server. updates
// carries one searchviews.Update per emitted plan;
// snapshot holds the lock-free gauges the /api/status handler reads.
func NewServer(
	ctx context.Context,
	addr string,
	runID string,
	snapshot *telemetry.Snapshot,
	updates <-chan searchviews.Update,
) (*Server, error) {
	return &Server{
		addr:     addr,
		runID:    runID,
		snapshot: snapshot,
		rootView: root_view.NewRootView(ctx, updates),
	}, nil
}

// Serve starts the HTTP server and blocks until it exits or errors.
func (server *Server) Serve() (err error) {
	router := mux.NewRouter()
	router.HandleFunc("/", server.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWebsocket)
	router.HandleFunc("/api/status", server.serveStatus).Methods(http.MethodGet)

	if err = http.ListenAndServe(server.addr, router); err != nil {
		err = fmt.Errorf("serve: %w", err)
	}
	return
}

// statusPayload is the JSON body /api/status returns.
type statusPayload struct {
	RunID         string  `json:"runId"`
	BestCost      float64 `json:"bestCost"`
	NodesExpanded float64 `json:"nodesExpanded"`
	FrontierSize  float64 `json:"frontierSize"`
	ElapsedSecs   float64 `json:"elapsedSecs"`
}

func (server *Server) serveStatus(w http.ResponseWriter, r *http.Request) {
	payload := statusPayload{
		RunID:         server.runID,
		BestCost:      server.snapshot.BestCost.Read(),
		NodesExpanded: server.snapshot.NodesExpanded.Read(),
		FrontierSize:  server.snapshot.FrontierSize.Read(),
		ElapsedSecs:   server.snapshot.ElapsedSecs.Read(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// serveWebsocket upgrades the request and hands the connection to a
// fastview client, which owns the read/ping/publish routines for its
// lifetime. Assumes a single connected client; a second connection reads
// from the same update channel, so concurrent clients split the updates
// between them.
func (server *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := fastview.NewClient(server.rootView.Updates(), w, r)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	log.Printf("dashboard: run %s: client connected", server.runID)

	if err := cli.Sync(); err != nil {
		log.Printf("dashboard: run %s: %v", server.runID, err)
	}
}

// serveIndex serves the dashboard's single page.
func (server *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := renderTemplate(w, server.rootView); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

func renderTemplate(
	w io.Writer,
	vc fastview.ViewComponent,
) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}
	err = t.Execute(w, nil)
	return
}
