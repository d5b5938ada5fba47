package protocol

import (
	"testing"

	"github.com/google/uuid"

	"github.com/gelendir/codenames/internal/team"
)

func TestParse_MissingRequestField(t *testing.T) {
	if _, err := Parse([]byte(`{"name":"Alice"}`)); err == nil {
		t.Fatal("expected ParseError for missing request field")
	}
}

func TestParse_UnknownKind(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"nonsense"}`)); err == nil {
		t.Fatal("expected ParseError for unknown kind")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected ParseError for malformed JSON")
	}
}

func TestParse_Room(t *testing.T) {
	req, err := Parse([]byte(`{"request":"room","name":"Alice","language":"en"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	room, ok := req.(Room)
	if !ok {
		t.Fatalf("expected Room, got %T", req)
	}
	if room.Name != "Alice" || room.Language != "en" {
		t.Fatalf("unexpected fields: %+v", room)
	}
}

func TestParse_RoomRejectsEmptyName(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"room","name":"","language":"en"}`)); err == nil {
		t.Fatal("expected ParseError for empty name")
	}
}

func TestParse_Join(t *testing.T) {
	id := uuid.New()
	req, err := Parse([]byte(`{"request":"join","id":"` + id.String() + `","name":"Bob"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	join, ok := req.(Join)
	if !ok {
		t.Fatalf("expected Join, got %T", req)
	}
	if join.ID != id || join.Name != "Bob" {
		t.Fatalf("unexpected fields: %+v", join)
	}
}

func TestParse_JoinRejectsMissingID(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"join","name":"Bob"}`)); err == nil {
		t.Fatal("expected ParseError for missing id")
	}
}

func TestParse_Team(t *testing.T) {
	req, err := Parse([]byte(`{"request":"team","team":"blue"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tm, ok := req.(Team)
	if !ok {
		t.Fatalf("expected Team, got %T", req)
	}
	if tm.Team != team.Blue {
		t.Fatalf("expected blue, got %v", tm.Team)
	}
}

func TestParse_TeamRejectsInvalidColor(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"team","team":"green"}`)); err == nil {
		t.Fatal("expected ParseError for invalid team color")
	}
}

func TestParse_Start(t *testing.T) {
	req, err := Parse([]byte(`{"request":"start","blue":"Alice","red":"Carl"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	start, ok := req.(Start)
	if !ok {
		t.Fatalf("expected Start, got %T", req)
	}
	if start.Blue != "Alice" || start.Red != "Carl" {
		t.Fatalf("unexpected fields: %+v", start)
	}
}

func TestParse_HintValidatesGuessRange(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"hint","hint":"ocean","guesses":0}`)); err == nil {
		t.Fatal("expected ParseError for guesses below range")
	}
	if _, err := Parse([]byte(`{"request":"hint","hint":"ocean","guesses":10}`)); err == nil {
		t.Fatal("expected ParseError for guesses above range")
	}
	req, err := Parse([]byte(`{"request":"hint","hint":"ocean","guesses":3}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := req.(Hint); !ok {
		t.Fatalf("expected Hint, got %T", req)
	}
}

func TestParse_GuessValidatesCoordinates(t *testing.T) {
	if _, err := Parse([]byte(`{"request":"guess","x":5,"y":0}`)); err == nil {
		t.Fatal("expected ParseError for x out of range")
	}
	req, err := Parse([]byte(`{"request":"guess","x":4,"y":4}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, ok := req.(Guess)
	if !ok || g.X != 4 || g.Y != 4 {
		t.Fatalf("unexpected result: %+v, %T", req, req)
	}
}

func TestParse_Pass(t *testing.T) {
	req, err := Parse([]byte(`{"request":"pass"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := req.(Pass); !ok {
		t.Fatalf("expected Pass, got %T", req)
	}
}

func TestParse_Reset(t *testing.T) {
	req, err := Parse([]byte(`{"request":"reset","language":"fr"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reset, ok := req.(Reset)
	if !ok || reset.Language != "fr" {
		t.Fatalf("unexpected result: %+v", req)
	}
}
