package game

// ErrorKind classifies a rejection. Validation errors are safe to show the
// acting client verbatim; conflict errors mean refetch and resubmit;
// invariant violations mean a bug, and are rejected rather than applied.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindNotFound      ErrorKind = "not_found"
	KindInvariant     ErrorKind = "invariant"
)

type Error struct {
	Kind ErrorKind
	Code string
	Msg  string
}

func (e *Error) ErrorCode() string { return e.Code }
func (e *Error) Error() string     { return e.Msg }

var (
	// ErrSeatTaken means a player already holds that seat
	ErrSeatTaken = &Error{KindValidation, "SEATTAKEN", "seat is taken"}
	// ErrGameFull means no seats left
	ErrGameFull = &Error{KindValidation, "GAMEFULL", "game is full"}
	// ErrNotStarted means the game is still waiting for players
	ErrNotStarted = &Error{KindValidation, "NOTSTARTED", "game has not started"}
	// ErrGameOver means the game already completed
	ErrGameOver = &Error{KindValidation, "GAMEOVER", "game is over"}

	// ErrNotYourTurn means the acting seat does not own the current turn
	ErrNotYourTurn = &Error{KindAuthorization, "NOTYOURTURN", "it's not your turn"}
	// ErrWrongSeat means the move type is not for the acting seat at all
	ErrWrongSeat = &Error{KindAuthorization, "WRONGSEAT", "not your move to make"}
	// ErrWrongPhase is for maybe valid moves that are not allowed now
	ErrWrongPhase = &Error{KindAuthorization, "WRONGPHASE", "you cannot do that now"}

	// ErrStaleState means the stored game changed since it was read
	ErrStaleState = &Error{KindConflict, "STALESTATE", "game state changed, refetch and resubmit"}

	// ErrNoGame means no game with that id
	ErrNoGame = &Error{KindNotFound, "NOGAME", "game not found"}

	// ErrBadRequest is for unparseable or nonsense moves
	ErrBadRequest = &Error{KindValidation, "BADREQUEST", "bad request"}
)

// Invalid makes a one-off validation rejection with a display reason.
func Invalid(code, msg string) *Error {
	return &Error{KindValidation, code, msg}
}

// Corrupt marks a state that should be unreachable. Callers log these
// loudly and refuse the move.
func Corrupt(msg string) *Error {
	return &Error{KindInvariant, "CORRUPT", msg}
}

// KindOf extracts the kind from any error, defaulting unknown errors to
// invariant class so they are never silently treated as user mistakes.
func KindOf(err error) ErrorKind {
	if ge, ok := err.(*Error); ok {
		return ge.Kind
	}
	return KindInvariant
}
