package gameteam

// Error is a plain string-backed sentinel error so callers can compare
// with == rather than via errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMasterNotFound Error = "master not found"
	ErrNotMaster      Error = "player is not a master"
	ErrWrongPhase     Error = "not time for that action"
	ErrPlayerNotFound Error = "player not found in team"
)
