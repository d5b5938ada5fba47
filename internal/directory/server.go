// Package directory is the session/room directory: it binds connection
// tokens to rooms, routes parsed requests to the right one, creates rooms
// on demand, and tears down sockets that share a dead room's fate.
// Ported from original_source/server.rs, generalized to the net/http +
// gorilla/websocket connection layer in internal/ws.
package directory

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/protocol"
	"github.com/gelendir/codenames/internal/room"
	"github.com/gelendir/codenames/internal/ws"
)

// Server is the directory and orchestrator: it owns the shared board set,
// the token->room binding, and the room table, and is the sole consumer of
// the hub's event channel — the single goroutine that ever mutates room
// or game state.
type Server struct {
	hub    *ws.Hub
	boards *board.Set

	players map[int]uuid.UUID
	rooms   map[uuid.UUID]*room.Room

	stats chan chan stats
}

// stats is a point-in-time snapshot of the directory's bookkeeping,
// answered by Run so Healthz never reads the rooms/players maps from
// another goroutine.
type stats struct {
	rooms   int
	clients int
}

// New returns a directory that will route connections arriving on hub.
func New(hub *ws.Hub, boards *board.Set) *Server {
	return &Server{
		hub:     hub,
		boards:  boards,
		players: make(map[int]uuid.UUID),
		rooms:   make(map[uuid.UUID]*room.Room),
		stats:   make(chan chan stats),
	}
}

// Run consumes hub.Events() until the channel is closed, fully processing
// one event (including every broadcast it produces) before reading the
// next. This is the only goroutine that ever touches a Room or Game.
func (s *Server) Run() {
	for {
		select {
		case event, ok := <-s.hub.Events():
			if !ok {
				return
			}
			switch event.Kind {
			case ws.EventRequest:
				s.handleRequest(event.Token, event.Payload)
			case ws.EventClose:
				s.removePlayer(event.Token)
			}
		case reply := <-s.stats:
			reply <- stats{rooms: len(s.rooms), clients: s.hub.ClientCount()}
		}
	}
}

func (s *Server) handleRequest(token int, payload []byte) {
	req, err := protocol.Parse(payload)
	if err != nil {
		s.hub.Push(token, protocol.ErrorResponse(err.Error()))
		return
	}
	s.route(token, req)
}

// route implements the directory's routing rule: a token with a room dispatches
// to it; an unrouted token may only create a room or join an existing one.
func (s *Server) route(token int, req protocol.Request) {
	if roomID, ok := s.players[token]; ok {
		r, ok := s.rooms[roomID]
		if !ok {
			s.hub.Push(token, protocol.ErrorResponse(room.ErrUnhandled.Error()))
			return
		}
		s.dispatch(r, token, req)
		return
	}

	switch v := req.(type) {
	case protocol.Room:
		s.createRoom(token, v)
	case protocol.Join:
		s.joinRoom(token, v)
	default:
		s.hub.Push(token, protocol.ErrorResponse(room.ErrUnhandled.Error()))
	}
}

func (s *Server) dispatch(r *room.Room, token int, req protocol.Request) {
	responses, err := r.Handle(token, req)
	if err != nil {
		s.hub.Push(token, protocol.ErrorResponse(err.Error()))
		return
	}
	s.deliver(responses)
}

// createRoom implements room creation: a fresh UUID,
// the requester as admin, inserted into both maps, and the initial
// snapshot broadcast to the admin alone.
func (s *Server) createRoom(token int, req protocol.Room) {
	r, err := room.New(s.boards, token, req)
	if err != nil {
		s.hub.Push(token, protocol.ErrorResponse(err.Error()))
		return
	}

	s.players[token] = r.ID
	s.rooms[r.ID] = r
	log.Printf("directory: room %s created by token %d", r.ID, token)

	s.deliver(r.BroadcastRoom())
}

func (s *Server) joinRoom(token int, req protocol.Join) {
	r, ok := s.rooms[req.ID]
	if !ok {
		s.hub.Push(token, protocol.ErrorResponse("room not found"))
		return
	}

	s.players[token] = r.ID
	s.dispatch(r, token, req)
}

// removePlayer implements departure: drop the token's room
// binding, let the room react, and if the room is no longer alive, tear
// down every socket it still references along with the room itself.
func (s *Server) removePlayer(token int) {
	roomID, ok := s.players[token]
	delete(s.players, token)
	if !ok {
		return
	}

	r, ok := s.rooms[roomID]
	if !ok {
		return
	}

	responses := r.RemovePlayer(token)
	s.deliver(responses)

	if !r.IsAlive(token) {
		s.destroyRoom(r)
	}
}

func (s *Server) destroyRoom(r *room.Room) {
	log.Printf("directory: room %s closed", r.ID)
	for tok := range r.Players {
		delete(s.players, tok)
		s.hub.Remove(tok)
	}
	delete(s.rooms, r.ID)
}

func (s *Server) deliver(responses room.Responses) {
	for _, r := range responses {
		s.hub.Push(r.Token, r.Message)
	}
}

// Upgrade is the HTTP handler for the WebSocket endpoint: it hands the
// request to the hub and does nothing else, since every subsequent event
// on the new connection arrives through Run.
func (s *Server) Upgrade(w http.ResponseWriter, r *http.Request) {
	if _, err := s.hub.Connect(w, r); err != nil {
		log.Printf("directory: upgrade failed: %v", err)
	}
}

// Healthz reports liveness plus a couple of operational gauges.
// The gauges are fetched from Run's own goroutine via the
// stats channel, since rooms/players are not safe to read from here.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	reply := make(chan stats, 1)
	s.stats <- reply
	snap := <-reply

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Status  string `json:"status"`
		Rooms   int    `json:"rooms"`
		Clients int    `json:"clients"`
	}{
		Status:  "ok",
		Rooms:   snap.rooms,
		Clients: snap.clients,
	})
}
