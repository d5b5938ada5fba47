// Package gameteam implements the per-team sub-state machine: roster,
// codemaster identity, current hint, guess budget and the hint/guess
// phase toggle. Ported from original_source/gameteam.rs.
package gameteam

import (
	"encoding/json"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/team"
)

// Phase is the team's position within a turn: waiting for its master to
// give a hint, or actively guessing against one.
type Phase string

const (
	Hint  Phase = "hint"
	Guess Phase = "guess"
)

// State is one team's mutable sub-state for the duration of a game.
type State struct {
	Color    team.Color
	Players  map[int]string
	Master   *int
	Hint     string
	Previous *string
	Guesses  uint8
	Phase    Phase
}

// New returns a fresh team state in the Hint phase with no players.
func New(color team.Color) *State {
	return &State{
		Color:   color,
		Players: make(map[int]string),
		Phase:   Hint,
	}
}

// AddPlayer appends token to the roster under the given display name.
func (s *State) AddPlayer(token int, name string) {
	s.Players[token] = name
}

// RemovePlayer removes token from the roster, returning its name if it
// was present.
func (s *State) RemovePlayer(token int) (string, bool) {
	name, ok := s.Players[token]
	if ok {
		delete(s.Players, token)
		if s.Master != nil && *s.Master == token {
			s.Master = nil
		}
	}
	return name, ok
}

// NbPlayers returns the roster size.
func (s *State) NbPlayers() int {
	return len(s.Players)
}

// HasMaster reports whether a codemaster has been chosen.
func (s *State) HasMaster() bool {
	return s.Master != nil
}

// SetMaster looks up name in the roster and makes that token master.
func (s *State) SetMaster(name string) error {
	for token, playerName := range s.Players {
		if playerName == name {
			t := token
			s.Master = &t
			return nil
		}
	}
	return ErrMasterNotFound
}

// GiveHint records a new hint from the master. It enforces that the
// caller is the master and that the team is currently in the Hint phase.
//
// If the team still has guesses left (or a carried-over bonus guess)
// from the previous hint, that hint is stacked into Previous so
// decreaseGuess can keep granting the bonus guess once Guesses hits
// zero — see decreaseGuess below.
func (s *State) GiveHint(token int, hint string, guesses uint8) error {
	if s.Master == nil || *s.Master != token {
		return ErrNotMaster
	}
	if s.Phase != Hint {
		return ErrWrongPhase
	}

	if s.Guesses > 0 || s.Previous != nil {
		previous := s.Hint
		s.Previous = &previous
	}

	s.Hint = hint
	s.Guesses = guesses
	s.Phase = Guess
	return nil
}

// NextTeam is called after a guess reveals a non-death tile. It enforces
// that the caller is a non-master player currently in the Guess phase,
// then applies the guess outcome: a correctly-colored guess decrements
// the budget and may let the team continue; anything else ends the turn
// and forfeits any carried-over bonus guess.
func (s *State) NextTeam(token int, tile board.Tile) (team.Color, error) {
	if _, ok := s.Players[token]; !ok {
		return "", ErrPlayerNotFound
	}
	if s.Master != nil && *s.Master == token {
		return "", ErrPlayerNotFound
	}
	if s.Phase != Guess {
		return "", ErrWrongPhase
	}

	ownColor := (tile == board.Blue && s.Color == team.Blue) || (tile == board.Red && s.Color == team.Red)
	if ownColor {
		return s.decreaseGuess(), nil
	}

	s.Previous = nil
	s.Phase = Hint
	return s.Color.Opposite(), nil
}

// decreaseGuess consumes the current guess budget first, then the
// carried-over bonus guess, and returns which team plays next.
func (s *State) decreaseGuess() team.Color {
	if s.Guesses > 0 {
		s.Guesses--
	} else {
		s.Previous = nil
	}

	if s.Guesses > 0 || s.Previous != nil {
		return s.Color
	}

	s.Phase = Hint
	return s.Color.Opposite()
}

// Pass forces the team back into the Hint phase, ending its turn.
func (s *State) Pass(token int) error {
	if _, ok := s.Players[token]; !ok {
		return ErrPlayerNotFound
	}
	s.Phase = Hint
	return nil
}

// CanGuess reports whether token may currently submit a guess: it must
// be a non-master roster member, the team must be in the Guess phase,
// and a guess (budget or bonus) must remain.
func (s *State) CanGuess(token int) bool {
	if _, ok := s.Players[token]; !ok {
		return false
	}
	if s.Master != nil && *s.Master == token {
		return false
	}
	if s.Phase != Guess {
		return false
	}
	return s.Guesses > 0 || s.Previous != nil
}

// MarshalJSON emits the room-snapshot shape clients expect: the
// master's display name (not token), a flat name list, and the
// hint/guess bookkeeping fields. Grounded on original_source/gameteam.rs's
// hand-written Serialize impl.
func (s *State) MarshalJSON() ([]byte, error) {
	var master *string
	if s.Master != nil {
		if name, ok := s.Players[*s.Master]; ok {
			master = &name
		}
	}

	names := make([]string, 0, len(s.Players))
	for _, name := range s.Players {
		names = append(names, name)
	}

	return json.Marshal(struct {
		Master   *string  `json:"master"`
		Hint     string   `json:"hint"`
		Guesses  uint8    `json:"guesses"`
		Previous *string  `json:"previous"`
		Players  []string `json:"players"`
	}{
		Master:   master,
		Hint:     s.Hint,
		Guesses:  s.Guesses,
		Previous: s.Previous,
		Players:  names,
	})
}
