// Package protocol parses the client request envelope and builds the
// server response envelope. Ported from original_source/request.rs and
// original_source/response.rs, generalized to Go's interface+type-switch
// idiom in place of Rust's enum match.
package protocol

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/gelendir/codenames/internal/team"
)

// Kind identifies a request's wire shape.
type Kind string

const (
	KindRoom  Kind = "room"
	KindJoin  Kind = "join"
	KindTeam  Kind = "team"
	KindStart Kind = "start"
	KindHint  Kind = "hint"
	KindGuess Kind = "guess"
	KindPass  Kind = "pass"
	KindReset Kind = "reset"
)

// Request is any parsed, validated client message.
type Request interface {
	Kind() Kind
}

// Room asks the directory to create a new room with the sender as admin.
type Room struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (Room) Kind() Kind { return KindRoom }

// Join asks the directory to add the sender to an existing room.
type Join struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (Join) Kind() Kind { return KindJoin }

// Team asks the room to assign the sender to a color.
type Team struct {
	Team team.Color `json:"team"`
}

func (Team) Kind() Kind { return KindTeam }

// Start asks the game to begin, naming each team's codemaster.
type Start struct {
	Blue string `json:"blue"`
	Red  string `json:"red"`
}

func (Start) Kind() Kind { return KindStart }

// Hint is a codemaster's clue and guess budget.
type Hint struct {
	Hint    string `json:"hint"`
	Guesses uint8  `json:"guesses"`
}

func (Hint) Kind() Kind { return KindHint }

// Guess reveals the board cell at (X, Y).
type Guess struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (Guess) Kind() Kind { return KindGuess }

// Pass ends the sender's team's turn without guessing.
type Pass struct{}

func (Pass) Kind() Kind { return KindPass }

// Reset asks the admin's room to deal a fresh board and restart the game.
type Reset struct {
	Language string `json:"language"`
}

func (Reset) Kind() Kind { return KindReset }

type kindEnvelope struct {
	Request string `json:"request"`
}

// Parse decodes a client message and validates it against each request
// kind's required fields. It never closes the
// connection on failure: callers
// respond to the offending token with the returned ParseError.
func Parse(data []byte) (Request, error) {
	var env kindEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if env.Request == "" {
		return nil, ParseError("field missing: request")
	}

	switch Kind(env.Request) {
	case KindRoom:
		return parseRoom(data)
	case KindJoin:
		return parseJoin(data)
	case KindTeam:
		return parseTeam(data)
	case KindStart:
		return parseStart(data)
	case KindHint:
		return parseHint(data)
	case KindGuess:
		return parseGuess(data)
	case KindPass:
		return Pass{}, nil
	case KindReset:
		return parseReset(data)
	default:
		return nil, ParseError("unknown request: " + env.Request)
	}
}

func parseRoom(data []byte) (Request, error) {
	var r Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if r.Name == "" {
		return nil, ParseError("field missing: name")
	}
	if r.Language == "" {
		return nil, ParseError("field missing: language")
	}
	return r, nil
}

func parseJoin(data []byte) (Request, error) {
	var j Join
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if j.ID == uuid.Nil {
		return nil, ParseError("field missing: id")
	}
	if j.Name == "" {
		return nil, ParseError("field missing: name")
	}
	return j, nil
}

func parseTeam(data []byte) (Request, error) {
	var t Team
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if !t.Team.Valid() {
		return nil, ParseError("invalid value: team")
	}
	return t, nil
}

func parseStart(data []byte) (Request, error) {
	var s Start
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if s.Blue == "" {
		return nil, ParseError("field missing: blue")
	}
	if s.Red == "" {
		return nil, ParseError("field missing: red")
	}
	return s, nil
}

func parseHint(data []byte) (Request, error) {
	var h Hint
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if h.Hint == "" {
		return nil, ParseError("field missing: hint")
	}
	if h.Guesses < 1 || h.Guesses > 9 {
		return nil, ParseError("invalid value: guesses must be between 1 and 9")
	}
	return h, nil
}

func parseGuess(data []byte) (Request, error) {
	var g Guess
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if g.X < 0 || g.X > 4 {
		return nil, ParseError("invalid value: x must be between 0 and 4")
	}
	if g.Y < 0 || g.Y > 4 {
		return nil, ParseError("invalid value: y must be between 0 and 4")
	}
	return g, nil
}

func parseReset(data []byte) (Request, error) {
	var r Reset
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, ParseError("parse error: " + err.Error())
	}
	if r.Language == "" {
		return nil, ParseError("field missing: language")
	}
	return r, nil
}
