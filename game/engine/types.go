package engine

import "errors"

// Kind identifies a game in the catalogue.
type Kind string

const (
	Hangman     Kind = "hangman"
	TicTacToe   Kind = "tictactoe"
	Checkers    Kind = "checkers"
	Snake       Kind = "snake"
	Blackjack   Kind = "blackjack"
	Minesweeper Kind = "minesweeper"
)

// Action types understood by the games. Not every game accepts every type.
const (
	ActionGuess    = "guess"
	ActionPlace    = "place"
	ActionClick    = "click"
	ActionMove     = "move"
	ActionStart    = "start"
	ActionTurn     = "turn"
	ActionBet      = "bet"
	ActionDeal     = "deal"
	ActionHit      = "hit"
	ActionStand    = "stand"
	ActionNewRound = "new_round"
	ActionReveal   = "reveal"
	ActionFlag     = "flag"
	ActionReset    = "reset"

	// Recorded for scheduled computer moves.
	ActionComputer = "computer_move"
	// Snake clock; never recorded in history.
	ActionTick = "tick"
)

const (
	SourcePlayer   = "player"
	SourceComputer = "computer"

	// MaxHistory caps the per-session action history.
	MaxHistory = 500
)

var (
	ErrUnknownGame    = errors.New("unknown game")
	ErrNoGameSelected = errors.New("no game selected")
	ErrUnknownAction  = errors.New("unknown action")
	ErrClosed         = errors.New("selector closed")
)

// GameInfo describes a catalogue entry.
type GameInfo struct {
	ID          Kind     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// Action is a player (or computer) input. Only the fields relevant to Type
// are read.
type Action struct {
	Type      string `json:"type"`
	Letter    string `json:"letter,omitempty"`
	Cell      int    `json:"cell"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	ToRow     int    `json:"to_row"`
	ToCol     int    `json:"to_col"`
	Direction string `json:"direction,omitempty"`
	Amount    int    `json:"amount,omitempty"`
}

// Snapshot is what a client sees: either the menu or the running game.
type Snapshot struct {
	Selected   Kind       `json:"selected,omitempty"`
	InstanceID string     `json:"instance_id,omitempty"`
	Menu       []GameInfo `json:"menu,omitempty"`
	State      any        `json:"state,omitempty"`
	Outcome    string     `json:"outcome,omitempty"`
	Version    uint64     `json:"version"`
}

// Result is returned by Selector.Apply. Applied is false when the game's
// rules rejected the action.
type Result struct {
	Applied  bool     `json:"applied"`
	Snapshot Snapshot `json:"snapshot"`
}

// HistoryEntry records one action taken in a session.
type HistoryEntry struct {
	Seq        int    `json:"seq"`
	Game       Kind   `json:"game"`
	InstanceID string `json:"instance_id"`
	Action     Action `json:"action"`
	Applied    bool   `json:"applied"`
	Source     string `json:"source"`
	Timestamp  int64  `json:"timestamp"`
}

// Observer receives selector events. Calls are made without the selector
// lock held, possibly from timer goroutines.
type Observer interface {
	StateChanged(snap Snapshot)
	GameFinished(kind Kind, outcome string)
}

// MoveObserver is an Observer that also hears about each computer move,
// before the state change it causes.
type MoveObserver interface {
	Observer
	ComputerMoved(kind Kind, a Action)
}
