// Package room aggregates a game with its room-level player roster and
// dispatches client requests to it, producing broadcast response vectors.
// Ported from original_source/room.rs.
package room

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/game"
	"github.com/gelendir/codenames/internal/protocol"
)

// Response is one message destined for one connection token.
type Response struct {
	Token   int
	Message []byte
}

// Responses is the vector of (token, message) pairs a Room mutation
// produces. The Room never performs I/O itself; the directory layer
// delivers these.
type Responses []Response

// Room is one room-level aggregate: an id, the game it hosts, a
// room-level player roster (distinct from team membership — a token is
// added here on join, team allocation is a later request), and the
// shared board set new games are dealt from.
type Room struct {
	ID      uuid.UUID
	Game    *game.Game
	Players map[int]string

	boards *board.Set
	admin  int
}

// New creates a room from a "room" request: the sender becomes admin and
// its sole initial player.
func New(boards *board.Set, admin int, req protocol.Room) (*Room, error) {
	b, err := boards.New(req.Language)
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:      uuid.New(),
		Game:    game.New(b, admin),
		Players: map[int]string{admin: req.Name},
		boards:  boards,
		admin:   admin,
	}, nil
}

// IsAlive expresses "the room dies when the admin leaves, regardless of
// who else remains": it is alive so long as token is not the admin and
// at least one player remains.
func (r *Room) IsAlive(token int) bool {
	return token != r.admin && len(r.Players) > 0
}

// BroadcastRoom returns the room snapshot addressed to the admin alone,
// used when the room is first created.
func (r *Room) BroadcastRoom() Responses {
	msg, err := protocol.RoomResponse(r)
	if err != nil {
		log.Printf("room %s: marshal snapshot: %v", r.ID, err)
		return nil
	}
	return Responses{{Token: r.admin, Message: msg}}
}

// RemovePlayer removes token from the room roster and the game, then
// broadcasts the resulting snapshot to whoever remains.
func (r *Room) RemovePlayer(token int) Responses {
	name, ok := r.Players[token]
	if !ok {
		return nil
	}

	log.Printf("room %s: removing player %s", r.ID, name)
	delete(r.Players, token)
	r.Game.RemovePlayer(token)

	return r.broadcast()
}

// Handle dispatches a parsed request from token to the matching handler.
func (r *Room) Handle(token int, req protocol.Request) (Responses, error) {
	switch v := req.(type) {
	case protocol.Join:
		return r.join(token, v)
	case protocol.Team:
		return r.team(token, v)
	case protocol.Start:
		return r.start(token, v)
	case protocol.Hint:
		return r.hint(token, v)
	case protocol.Guess:
		return r.guess(token, v)
	case protocol.Pass:
		return r.pass(token)
	case protocol.Reset:
		return r.reset(token, v)
	default:
		return nil, ErrUnhandled
	}
}

func (r *Room) broadcast() Responses {
	msg, err := protocol.RoomResponse(r)
	if err != nil {
		log.Printf("room %s: marshal snapshot: %v", r.ID, err)
		return nil
	}

	responses := make(Responses, 0, len(r.Players))
	for token := range r.Players {
		responses = append(responses, Response{Token: token, Message: msg})
	}
	return responses
}

func (r *Room) join(token int, j protocol.Join) (Responses, error) {
	log.Printf("room %s: %s has joined", r.ID, j.Name)
	r.Players[token] = j.Name
	return r.broadcast(), nil
}

func (r *Room) team(token int, t protocol.Team) (Responses, error) {
	name, ok := r.Players[token]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	log.Printf("room %s: player %s joined team %s", r.ID, name, t.Team)
	r.Game.AddPlayer(token, t.Team, name)
	return r.broadcast(), nil
}

func (r *Room) start(token int, s protocol.Start) (Responses, error) {
	if err := r.Game.Start(token, s.Blue, s.Red); err != nil {
		return nil, err
	}
	log.Printf("room %s: game started", r.ID)

	responses := r.broadcast()

	tiles, err := protocol.TilesResponse(r.Game.Board.Tiles())
	if err != nil {
		log.Printf("room %s: marshal tiles: %v", r.ID, err)
		return responses, nil
	}

	if master := r.Game.Red.Master; master != nil {
		responses = append(responses, Response{Token: *master, Message: tiles})
	}
	if master := r.Game.Blue.Master; master != nil {
		responses = append(responses, Response{Token: *master, Message: tiles})
	}

	return responses, nil
}

func (r *Room) hint(token int, h protocol.Hint) (Responses, error) {
	if err := r.Game.Hint(token, h.Hint, h.Guesses); err != nil {
		return nil, err
	}
	log.Printf("room %s: hint %q", r.ID, h.Hint)
	return r.broadcast(), nil
}

func (r *Room) guess(token int, g protocol.Guess) (Responses, error) {
	if err := r.Game.Guess(token, g.X, g.Y); err != nil {
		return nil, err
	}
	log.Printf("room %s: guess (%d,%d)", r.ID, g.X, g.Y)
	return r.broadcast(), nil
}

func (r *Room) pass(token int) (Responses, error) {
	if err := r.Game.Pass(token); err != nil {
		return nil, err
	}
	log.Printf("room %s: pass", r.ID)
	return r.broadcast(), nil
}

func (r *Room) reset(token int, req protocol.Reset) (Responses, error) {
	if token != r.admin {
		return nil, ErrNotAdmin
	}

	b, err := r.boards.New(req.Language)
	if err != nil {
		return nil, err
	}

	log.Printf("room %s: game reset", r.ID)
	r.Game = game.New(b, r.admin)
	return r.broadcast(), nil
}

// state derives the room snapshot's "state" field from the game's phase
// and current player count.
func (r *Room) state() string {
	switch r.Game.Phase() {
	case game.Play:
		return "play"
	case game.End:
		return "end"
	default:
		if len(r.Players) >= 4 {
			return "team"
		}
		return "join"
	}
}

// MarshalJSON emits the room snapshot shape clients expect. Grounded
// on original_source/room.rs's manual Serialize impl.
func (r *Room) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(r.Players))
	for _, name := range r.Players {
		names = append(names, name)
	}

	return json.Marshal(struct {
		ID      uuid.UUID  `json:"id"`
		Game    *game.Game `json:"game"`
		Players []string   `json:"players"`
		State   string     `json:"state"`
	}{
		ID:      r.ID,
		Game:    r.Game,
		Players: names,
		State:   r.state(),
	})
}
