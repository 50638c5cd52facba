package game

// Type tags which rule set a game runs.
type Type string

const (
	TypeDuet   Type = "codenames_duet"
	TypeTiles  Type = "tile_game"
	TypeClover Type = "clover_match"
)

// Valid reports whether t is a known game type.
func (t Type) Valid() bool {
	switch t {
	case TypeDuet, TypeTiles, TypeClover:
		return true
	}
	return false
}

// Status is the coarse lifecycle of a game. One-way except waiting<->playing.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Result is set exactly once, when a game completes.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// Phase is a game-specific sub-state, stored on the game record so clients
// never have to reconstruct it from the move log.
type Phase string

const (
	PhaseClue        Phase = "clue"
	PhaseGuess       Phase = "guess"
	PhasePlay        Phase = "play"
	PhaseClueWriting Phase = "clue_writing"
	PhaseResolution  Phase = "resolution"
	PhaseDone        Phase = "done"
)

// Turn is the part of the game record the engines read and write: whose
// turn it is and which sub-state the turn is in.
type Turn struct {
	Seat  int   `json:"seat"`
	Phase Phase `json:"phase"`
}

// PlayerState is a seat summary, shared across game types.
type PlayerState struct {
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

// Change is one line of news about a game, broadcast to connected clients
// after a move commits.
type Change struct {
	Who  string `json:"who,omitempty"`
	What string `json:"what"`
}

// Outcome is what an engine reports alongside the next state.
type Outcome struct {
	Ended  bool     `json:"ended"`
	Result Result   `json:"result,omitempty"`
	Winner int      `json:"winner,omitempty"`
	News   []Change `json:"news,omitempty"`

	// Detail is a per-move payload safe to return to the acting client,
	// e.g. the revealed card type or the words formed and their score.
	Detail interface{} `json:"detail,omitempty"`
}

// WithNews appends a news line and returns the outcome for chaining.
func (o Outcome) WithNews(who, what string) Outcome {
	o.News = append(o.News, Change{Who: who, What: what})
	return o
}
