package httpview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	channerics "github.com/niceyeti/channerics/channels"

	"mdpenv/telemetry/stats"
)

// StepEvent is the telemetry unit broadcast to every connected viewer: one
// engine instance's outcome for one step, alongside the driver-wide running
// totals at that moment.
type StepEvent struct {
	InstanceID int             `json:"instance_id"`
	Step       int             `json:"step"`
	Reward     float64         `json:"reward"`
	Done       bool            `json:"done"`
	Obs        json.RawMessage `json:"obs"`
	Stats      stats.Snapshot  `json:"stats"`
}

// Server serves a status page at "/" and a live StepEvent feed at "/ws",
// the same two-route shape as the original server.Server, rebuilt on
// gorilla/mux (carried in go.mod but never imported by the original
// server.go, which relied on net/http's default mux instead) so the
// routing actually exercises that dependency.
type Server struct {
	addr   string
	router *mux.Router

	mu          sync.Mutex
	subscribers map[chan StepEvent]struct{}
}

// NewServer builds the server's routes and starts a single goroutine that
// drains events and fans it out to every connected websocket client. A
// client that falls behind has events dropped for it rather than stalling
// the others.
func NewServer(ctx context.Context, addr string, events <-chan StepEvent) *Server {
	s := &Server{
		addr:        addr,
		router:      mux.NewRouter(),
		subscribers: make(map[chan StepEvent]struct{}),
	}
	s.router.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWebsocket)
	go s.fanOut(ctx.Done(), events)
	return s
}

func (s *Server) fanOut(done <-chan struct{}, events <-chan StepEvent) {
	for ev := range channerics.OrDone(done, events) {
		s.mu.Lock()
		for sub := range s.subscribers {
			select {
			case sub <- ev:
			default:
			}
		}
		s.mu.Unlock()
	}
}

func (s *Server) subscribe() chan StepEvent {
	sub := make(chan StepEvent, 16)
	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

func (s *Server) unsubscribe(sub chan StepEvent) {
	s.mu.Lock()
	delete(s.subscribers, sub)
	s.mu.Unlock()
	close(sub)
}

// Serve blocks, serving until the listener fails.
func (s *Server) Serve() error {
	if err := http.ListenAndServe(s.addr, s.router); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>mdpenv telemetry</title></head>
<body>
<pre id="feed"></pre>
<script>
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = (ev) => {
    const pre = document.getElementById("feed");
    pre.textContent = ev.data + "\n" + pre.textContent;
  };
</script>
</body></html>`)
}

// serveWebsocket upgrades the request and streams StepEvents to it until
// the client disconnects. Each connection gets its own broadcast branch of
// the shared source channel, so one slow client cannot stall another.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	sub := s.subscribe()
	defer s.unsubscribe(sub)

	cli, err := newClient[StepEvent](sub, w, r)
	if err != nil {
		return
	}
	defer cli.ws.Close()
	_ = cli.sync()
}
