// Package board generates and tracks the 5x5 word/tile grid for a single
// game, and loads the on-disk board set it is drawn from.
package board

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/gelendir/codenames/internal/team"
)

const size = 5

// WordGrid is the row-major 5x5 grid of words dealt for one game.
type WordGrid [size][size]string

// TileGrid is the row-major 5x5 grid of hidden tile colors for one game.
type TileGrid [size][size]Tile

// cardGrid is the reveal bitmap: true once a cell has been guessed.
type cardGrid [size][size]bool

// Set is the immutable, shared-read board set loaded once at startup: a
// per-language dictionary plus a list of curated tile layouts.
type Set struct {
	Words map[string][]string `json:"words"`
	Tiles []TileGrid          `json:"tiles"`
}

// Load reads and parses a board file from disk. It fails loudly at
// startup (not per-game) if the file is missing or malformed.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: read %s: %w", path, err)
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("board: parse %s: %w", path, err)
	}
	if len(set.Tiles) == 0 {
		return nil, fmt.Errorf("board: %s defines no tile maps", path)
	}
	for lang, words := range set.Words {
		if len(words) < size*size {
			return nil, fmt.Errorf("board: language %q has %d words, need at least %d", lang, len(words), size*size)
		}
	}

	return &set, nil
}

// Board is one game's dealt grid: the drawn words, the chosen tile
// layout, and the reveal bitmap. It is mutable only through PutCard.
type Board struct {
	words WordGrid
	tiles TileGrid
	cards cardGrid
}

// New deals a fresh board for the given language: words.rs shuffle +
// slice, tiles chosen uniformly from the set's curated layouts.
func (s *Set) New(language string) (*Board, error) {
	words, ok := s.Words[language]
	if !ok {
		return nil, LanguageNotFound(language)
	}

	shuffled := make([]string, len(words))
	copy(shuffled, words)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var grid WordGrid
	i := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			grid[x][y] = shuffled[i]
			i++
		}
	}

	tiles := s.Tiles[rand.IntN(len(s.Tiles))]

	return &Board{words: grid, tiles: tiles}, nil
}

// Words returns the dealt word grid.
func (b *Board) Words() WordGrid { return b.words }

// Tiles returns the chosen tile layout.
func (b *Board) Tiles() TileGrid { return b.tiles }

// PutCard reveals the cell at (x, y) and returns the tile underneath.
// Revealing an already-revealed cell is not forbidden: the reveal bitmap
// is idempotent and the tile is returned regardless of prior state (see
// DESIGN.md open-questions section).
func (b *Board) PutCard(x, y int) Tile {
	b.cards[x][y] = true
	return b.tiles[x][y]
}

// StartingTeam is whichever color holds more tiles on this board,
// Blue breaking ties.
func (b *Board) StartingTeam() team.Color {
	var blueCount, redCount int
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			switch b.tiles[x][y] {
			case Blue:
				blueCount++
			case Red:
				redCount++
			}
		}
	}
	if redCount > blueCount {
		return team.Red
	}
	return team.Blue
}

// Winner reports the team whose color has every tile revealed, checking
// Blue first (observable only if both hold simultaneously, which the
// invariants preclude).
func (b *Board) Winner() (team.Color, bool) {
	if blueTiles, blueCards := b.countCards(team.Blue); blueTiles == blueCards {
		return team.Blue, true
	}
	if redTiles, redCards := b.countCards(team.Red); redTiles == redCards {
		return team.Red, true
	}
	return "", false
}

func (b *Board) countCards(c team.Color) (tiles, cards int) {
	want := Neutral
	switch c {
	case team.Red:
		want = Red
	case team.Blue:
		want = Blue
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if b.tiles[x][y] == want {
				tiles++
				if b.cards[x][y] {
					cards++
				}
			}
		}
	}
	return tiles, cards
}

// MarshalJSON produces the wire shape the room snapshot requires: the
// word grid plus a cards grid whose entries are null until revealed, the
// tile color string once they are. Hand-written since the wire shape
// diverges from the Go struct, grounded on original_source/board.rs's
// manual Serialize impl.
func (b *Board) MarshalJSON() ([]byte, error) {
	cards := make([][]*Tile, size)
	for x := 0; x < size; x++ {
		row := make([]*Tile, size)
		for y := 0; y < size; y++ {
			if b.cards[x][y] {
				t := b.tiles[x][y]
				row[y] = &t
			}
		}
		cards[x] = row
	}

	return json.Marshal(struct {
		Words WordGrid  `json:"words"`
		Cards [][]*Tile `json:"cards"`
	}{
		Words: b.words,
		Cards: cards,
	})
}
