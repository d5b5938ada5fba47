// Package game composes a board and two gameteams into the turn/phase
// state machine for a single round of play. Ported from
// original_source/game.rs.
package game

import (
	"encoding/json"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/gameteam"
	"github.com/gelendir/codenames/internal/team"
)

// Phase is the game's position in its lifecycle: waiting for teams and a
// start request, an active turn held by one team, or finished.
type Phase string

const (
	Start Phase = "start"
	Play  Phase = "play"
	End   Phase = "end"
)

// state is the three-variant sum type from original_source/game.rs
// (Start, Play(team), End(team)), expressed as a tag plus payload since Go
// has no tagged unions.
type state struct {
	phase Phase
	team  team.Color
}

// Game is one room's in-progress round: the dealt board, the admin who may
// start it, and the two teams' sub-state.
type Game struct {
	Admin int
	Board *board.Board
	Red   *gameteam.State
	Blue  *gameteam.State
	state state
}

// New returns a fresh game in the Start phase for the given board, owned
// by admin.
func New(b *board.Board, admin int) *Game {
	return &Game{
		Admin: admin,
		Board: b,
		Red:   gameteam.New(team.Red),
		Blue:  gameteam.New(team.Blue),
		state: state{phase: Start},
	}
}

func (g *Game) team(c team.Color) *gameteam.State {
	if c == team.Red {
		return g.Red
	}
	return g.Blue
}

// AddPlayer adds a player to the named team.
func (g *Game) AddPlayer(token int, color team.Color, name string) {
	g.team(color).AddPlayer(token, name)
}

// RemovePlayer removes token from whichever team it belongs to. If the
// removal drops a team below two players or costs a team its master, the
// game is forced back to the Start phase; a removal that leaves both teams
// with a master and at least two players keeps the current phase.
func (g *Game) RemovePlayer(token int) (string, bool) {
	name, ok := g.Red.RemovePlayer(token)
	if !ok {
		name, ok = g.Blue.RemovePlayer(token)
	}
	if !ok {
		return "", false
	}

	for _, t := range []*gameteam.State{g.Red, g.Blue} {
		if !(t.HasMaster() && t.NbPlayers() >= 2) {
			g.state = state{phase: Start}
		}
	}

	return name, true
}

// NbPlayers returns the combined roster size of both teams.
func (g *Game) NbPlayers() int {
	return g.Red.NbPlayers() + g.Blue.NbPlayers()
}

// Tokens returns every player token currently seated on either team.
func (g *Game) Tokens() []int {
	tokens := make([]int, 0, g.NbPlayers())
	for token := range g.Red.Players {
		tokens = append(tokens, token)
	}
	for token := range g.Blue.Players {
		tokens = append(tokens, token)
	}
	return tokens
}

// Start begins the round: only the admin may call it, both teams must
// already have two players, and a master name is required for each.
func (g *Game) Start(token int, blueMaster, redMaster string) error {
	if token != g.Admin {
		return ErrNotAdmin
	}
	if g.Blue.NbPlayers() < 2 {
		return MissingPlayersError("blue")
	}
	if g.Red.NbPlayers() < 2 {
		return MissingPlayersError("red")
	}
	if g.state.phase != Start {
		return ErrAlreadyGame
	}

	if err := g.Red.SetMaster(redMaster); err != nil {
		return err
	}
	if err := g.Blue.SetMaster(blueMaster); err != nil {
		return err
	}

	g.state = state{phase: Play, team: g.Board.StartingTeam()}
	return nil
}

// Hint records a hint from the active team's master.
func (g *Game) Hint(token int, hint string, guesses uint8) error {
	if g.state.phase != Play {
		return TurnError("hint")
	}
	return g.team(g.state.team).GiveHint(token, hint, guesses)
}

// Guess reveals the tile at (x, y) on behalf of the active team and
// advances the turn according to what was underneath.
func (g *Game) Guess(token int, x, y int) error {
	if g.state.phase != Play {
		return ErrNotStarted
	}

	active := g.state.team
	activeTeam := g.team(active)
	if !activeTeam.CanGuess(token) {
		return TurnError("guess")
	}

	tile := g.Board.PutCard(x, y)
	switch tile {
	case board.Blue, board.Red, board.Neutral:
		next, err := activeTeam.NextTeam(token, tile)
		if err != nil {
			return err
		}
		g.state = state{phase: Play, team: next}
	case board.Death:
		g.state = state{phase: End, team: active.Opposite()}
	}

	if winner, ok := g.Board.Winner(); ok {
		g.state = state{phase: End, team: winner}
	}

	return nil
}

// Pass ends the active team's turn without a further guess.
func (g *Game) Pass(token int) error {
	if g.state.phase != Play {
		return ErrNotStarted
	}

	active := g.state.team
	if err := g.team(active).Pass(token); err != nil {
		return err
	}
	g.state = state{phase: Play, team: active.Opposite()}
	return nil
}

// Phase returns the game's current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.state.phase
}

// Turn returns the team whose turn it currently is: the board's starting
// team before play begins, the active team during Play, or the winner
// once the game has ended.
func (g *Game) Turn() team.Color {
	switch g.state.phase {
	case Start:
		return g.Board.StartingTeam()
	default:
		return g.state.team
	}
}

// MarshalJSON emits the room-snapshot shape clients expect: the
// board, both teams, whose turn it is, and whether that team is
// currently giving a hint or guessing. Grounded on original_source/game.rs's
// manual Serialize impl.
func (g *Game) MarshalJSON() ([]byte, error) {
	turn := g.Turn()

	return json.Marshal(struct {
		Board  *board.Board    `json:"board"`
		Red    *gameteam.State `json:"red"`
		Blue   *gameteam.State `json:"blue"`
		Turn   team.Color      `json:"turn"`
		Action gameteam.Phase  `json:"action"`
	}{
		Board:  g.Board,
		Red:    g.Red,
		Blue:   g.Blue,
		Turn:   turn,
		Action: g.team(turn).Phase,
	})
}
