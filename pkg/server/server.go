// Package server exposes the session state over HTTP and WebSocket for
// headless operation. Read-only; governance actions stay in the dashboard.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"msigdash/pkg/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	session *session.Session
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
	mux     *http.ServeMux
}

func NewServer(s *session.Session) *Server {
	srv := &Server{
		session: s,
		clients: make(map[*websocket.Conn]bool),
		mux:     http.NewServeMux(),
	}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	s.mux.HandleFunc("/ws", s.handleWS)
}

func (s *Server) Start(port int) error {
	go s.listenToSession()

	fmt.Printf("API server listening on :%d\n", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.mux)
}

// Handler exposes the mux, used by tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	data := map[string]interface{}{
		"network":  s.session.Network(),
		"contract": s.session.Contract(),
		"working":  s.session.Working(),
		"snapshot": s.session.Snapshot(),
	}
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	initial := map[string]interface{}{
		"type": "initial",
		"data": map[string]interface{}{
			"network":  s.session.Network(),
			"contract": s.session.Contract(),
			"snapshot": s.session.Snapshot(),
		},
	}
	_ = conn.WriteJSON(initial)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) listenToSession() {
	sub := s.session.Subscribe()
	defer s.session.Unsubscribe(sub)

	for event := range sub {
		s.broadcast(event)
	}
}

func (s *Server) broadcast(event session.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients {
		if err := client.WriteJSON(event); err != nil {
			_ = client.Close()
			delete(s.clients, client)
		}
	}
}
