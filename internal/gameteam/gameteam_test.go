package gameteam

import (
	"testing"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/team"
)

func newBlueTeamWithMaster(t *testing.T) (*State, int, int) {
	t.Helper()
	s := New(team.Blue)
	const master, operative = 1, 2
	s.AddPlayer(master, "Alice")
	s.AddPlayer(operative, "Bob")
	if err := s.SetMaster("Alice"); err != nil {
		t.Fatalf("SetMaster: %v", err)
	}
	return s, master, operative
}

func TestSetMaster_NotFound(t *testing.T) {
	s := New(team.Blue)
	s.AddPlayer(1, "Alice")
	if err := s.SetMaster("Nope"); err != ErrMasterNotFound {
		t.Fatalf("expected ErrMasterNotFound, got %v", err)
	}
}

func TestGiveHint_RequiresMasterAndHintPhase(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)

	if err := s.GiveHint(operative, "ocean", 2); err != ErrNotMaster {
		t.Fatalf("expected ErrNotMaster, got %v", err)
	}

	if err := s.GiveHint(master, "ocean", 2); err != nil {
		t.Fatalf("GiveHint: %v", err)
	}
	if s.Phase != Guess {
		t.Fatalf("expected Guess phase, got %v", s.Phase)
	}

	if err := s.GiveHint(master, "tree", 1); err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase giving hint mid-guess, got %v", err)
	}
}

func TestCanGuess_MasterNeverCanGuess(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)
	s.GiveHint(master, "ocean", 2)

	if s.CanGuess(master) {
		t.Fatal("master must never be able to guess")
	}
	if !s.CanGuess(operative) {
		t.Fatal("operative should be able to guess with budget remaining")
	}
}

func TestNextTeam_CorrectGuessConsumesBudgetAndStays(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)
	s.GiveHint(master, "ocean", 2)

	next, err := s.NextTeam(operative, board.Blue)
	if err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if next != team.Blue {
		t.Fatalf("expected team to keep turn, got %v", next)
	}
	if s.Guesses != 1 {
		t.Fatalf("expected 1 guess remaining, got %d", s.Guesses)
	}
	if s.Phase != Guess {
		t.Fatal("expected to remain in Guess phase")
	}
}

func TestNextTeam_WrongColorEndsTurn(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)
	s.GiveHint(master, "ocean", 3)

	next, err := s.NextTeam(operative, board.Neutral)
	if err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if next != team.Red {
		t.Fatalf("expected turn to flip to red, got %v", next)
	}
	if s.Phase != Hint {
		t.Fatal("expected phase to reset to Hint")
	}
}

func TestBonusGuess_NoCarryOverWhenBudgetExhaustedExactly(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)

	// First hint: exactly 1 guess, used correctly, exhausts to 0 with no
	// prior bonus, so the turn should end.
	if err := s.GiveHint(master, "ocean", 1); err != nil {
		t.Fatalf("GiveHint: %v", err)
	}
	next, err := s.NextTeam(operative, board.Blue)
	if err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if next != team.Red {
		t.Fatalf("expected turn to end with no carried bonus, got %v", next)
	}
	if s.Previous != nil {
		t.Fatal("expected no bonus stacked when guesses hit 0 with no remaining budget")
	}
}

func TestBonusGuess_StackedWhenHintReissuedWithRemainingBudget(t *testing.T) {
	s, master, operative := newBlueTeamWithMaster(t)

	if err := s.GiveHint(master, "ocean", 2); err != nil {
		t.Fatalf("GiveHint: %v", err)
	}
	// Consume 1 of 2 guesses correctly; 1 remains, still Guess phase.
	if _, err := s.NextTeam(operative, board.Blue); err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if s.Guesses != 1 {
		t.Fatalf("expected 1 guess left, got %d", s.Guesses)
	}

	// The master cannot give a new hint mid-guess (still Guess phase) —
	// exercise pass to return to Hint first, the only legal way back.
	if err := s.Pass(operative); err != nil {
		t.Fatalf("Pass: %v", err)
	}
	if s.Phase != Hint {
		t.Fatal("expected Hint phase after pass")
	}

	if err := s.GiveHint(master, "tree", 1); err != nil {
		t.Fatalf("GiveHint: %v", err)
	}
	if s.Previous == nil || *s.Previous != "ocean" {
		t.Fatalf("expected previous hint 'ocean' to be stacked, got %v", s.Previous)
	}

	// Consume the new guess; exhausts to 0 but previous bonus remains,
	// so the team should keep the turn.
	next, err := s.NextTeam(operative, board.Blue)
	if err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if next != team.Blue {
		t.Fatalf("expected team to keep turn via bonus guess, got %v", next)
	}
	if s.Guesses != 0 {
		t.Fatalf("expected guesses to hit 0, got %d", s.Guesses)
	}

	// Next incorrect guess consumes the bonus and ends the turn.
	next, err = s.NextTeam(operative, board.Neutral)
	if err != nil {
		t.Fatalf("NextTeam: %v", err)
	}
	if next != team.Red {
		t.Fatalf("expected turn to end after bonus consumed, got %v", next)
	}
	if s.Previous != nil {
		t.Fatal("expected bonus to be cleared")
	}
}

func TestRemovePlayer_ClearsMaster(t *testing.T) {
	s, master, _ := newBlueTeamWithMaster(t)

	name, ok := s.RemovePlayer(master)
	if !ok || name != "Alice" {
		t.Fatalf("expected to remove Alice, got %q/%v", name, ok)
	}
	if s.HasMaster() {
		t.Fatal("expected HasMaster to be false after master removed")
	}
}

func TestPass_RequiresRosterMembership(t *testing.T) {
	s, _, operative := newBlueTeamWithMaster(t)
	if err := s.Pass(999); err != ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := s.Pass(operative); err != nil {
		t.Fatalf("Pass: %v", err)
	}
}
