package board

import (
	"encoding/json"
	"fmt"
)

// Tile is the color hidden underneath a board cell.
type Tile string

const (
	Neutral Tile = "neutral"
	Blue    Tile = "blue"
	Red     Tile = "red"
	Death   Tile = "death"
)

func (t Tile) valid() bool {
	switch t {
	case Neutral, Blue, Red, Death:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects tile strings outside the known vocabulary so a
// malformed board file fails at load time instead of at game time.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tile := Tile(s)
	if !tile.valid() {
		return fmt.Errorf("board: unknown tile %q", s)
	}
	*t = tile
	return nil
}
