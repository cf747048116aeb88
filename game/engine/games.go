package engine

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/arcade/game/blackjack"
	"github.com/wricardo/mcp-training/arcade/game/checkers"
	"github.com/wricardo/mcp-training/arcade/game/hangman"
	"github.com/wricardo/mcp-training/arcade/game/minesweeper"
	"github.com/wricardo/mcp-training/arcade/game/snake"
	"github.com/wricardo/mcp-training/arcade/game/tictactoe"
)

// Game is a running game instance as seen by the selector. Implementations
// are not safe for concurrent use; the selector serializes access.
type Game interface {
	// Apply routes a player action. It returns ErrUnknownAction for action
	// types the game does not understand and false when the rules reject it.
	Apply(a Action) (bool, error)
	// View is the JSON-ready client view.
	View() any
	// Outcome is empty while the game is still being played.
	Outcome() string
	// Pending reports scheduled work the game is waiting for.
	Pending() (time.Duration, bool)
	// Fire runs the scheduled work. The returned action describes what
	// happened; the bool is false when nothing changed.
	Fire() (Action, bool)
}

type entry struct {
	info GameInfo
	new  func(s Settings, rng *rand.Rand) Game
}

var catalog = []entry{
	{
		info: GameInfo{ID: Hangman, Name: "Hangman", Description: "Guess the word one letter at a time before you run out of guesses.",
			Actions: []string{ActionGuess, ActionReset}},
		new: newHangman,
	},
	{
		info: GameInfo{ID: TicTacToe, Name: "Tic-Tac-Toe", Description: "Play X against a computer O on a 3x3 board. Cells are numbered 0-8 row by row.",
			Actions: []string{ActionPlace, ActionReset}},
		new: newTicTacToe,
	},
	{
		info: GameInfo{ID: Checkers, Name: "Checkers", Description: "Move red pieces one diagonal step forward; black answers with a minimax search.",
			Actions: []string{ActionClick, ActionMove, ActionReset}},
		new: newCheckers,
	},
	{
		info: GameInfo{ID: Snake, Name: "Snake", Description: "Steer the snake to the food without hitting the walls or yourself.",
			Actions: []string{ActionStart, ActionTurn, ActionReset}},
		new: newSnake,
	},
	{
		info: GameInfo{ID: Blackjack, Name: "Blackjack", Description: "Beat the dealer without going over 21. The dealer stands on 17.",
			Actions: []string{ActionBet, ActionDeal, ActionHit, ActionStand, ActionNewRound}},
		new: newBlackjack,
	},
	{
		info: GameInfo{ID: Minesweeper, Name: "Minesweeper", Description: "Reveal every safe cell. Numbers count neighbouring mines.",
			Actions: []string{ActionReveal, ActionFlag, ActionReset}},
		new: newMinesweeper,
	},
}

// Games lists the catalogue in menu order.
func Games() []GameInfo {
	games := make([]GameInfo, len(catalog))
	for i, e := range catalog {
		games[i] = e.info
		games[i].Actions = append([]string(nil), e.info.Actions...)
	}
	return games
}

func lookup(kind Kind) (entry, bool) {
	for _, e := range catalog {
		if e.info.ID == kind {
			return e, true
		}
	}
	return entry{}, false
}

func unknownAction(kind Kind, a Action) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownAction, a.Type, kind)
}

// Hangman

type hangmanGame struct {
	settings HangmanSettings
	rng      *rand.Rand
	state    hangman.State
}

func newHangman(s Settings, rng *rand.Rand) Game {
	g := &hangmanGame{settings: s.Hangman, rng: rng}
	g.reset()
	return g
}

func (g *hangmanGame) reset() {
	g.state = hangman.New(hangman.Pick(g.settings.Words, g.rng), g.settings.MaxGuesses)
}

func (g *hangmanGame) Apply(a Action) (bool, error) {
	switch a.Type {
	case ActionGuess:
		r := []rune(a.Letter)
		if len(r) != 1 {
			return false, nil
		}
		var ok bool
		g.state, ok = g.state.Guess(r[0])
		return ok, nil
	case ActionReset:
		g.reset()
		return true, nil
	}
	return false, unknownAction(Hangman, a)
}

// HangmanView is the client view of a hangman game. Word is only set once
// the game is over.
type HangmanView struct {
	Masked     string         `json:"masked"`
	Guessed    string         `json:"guessed"`
	Remaining  int            `json:"remaining"`
	MaxGuesses int            `json:"max_guesses"`
	Status     hangman.Status `json:"status"`
	Word       string         `json:"word,omitempty"`
}

func (g *hangmanGame) View() any {
	v := HangmanView{
		Masked:     g.state.Masked(),
		Guessed:    g.state.GuessedLetters(),
		Remaining:  g.state.Remaining,
		MaxGuesses: g.settings.MaxGuesses,
		Status:     g.state.Status(),
	}
	if v.Status != hangman.Playing {
		v.Word = g.state.Word
	}
	return v
}

func (g *hangmanGame) Outcome() string {
	if st := g.state.Status(); st != hangman.Playing {
		return string(st)
	}
	return ""
}

func (g *hangmanGame) Pending() (time.Duration, bool) { return 0, false }
func (g *hangmanGame) Fire() (Action, bool)           { return Action{}, false }

// Tic-tac-toe

type ticTacToeGame struct {
	delay time.Duration
	rng   *rand.Rand
	state tictactoe.State
}

func newTicTacToe(s Settings, rng *rand.Rand) Game {
	return &ticTacToeGame{delay: ms(s.TicTacToe.ComputerDelayMS), rng: rng, state: tictactoe.New()}
}

func (g *ticTacToeGame) Apply(a Action) (bool, error) {
	switch a.Type {
	case ActionPlace:
		if g.state.Turn != tictactoe.X {
			return false, nil
		}
		var ok bool
		g.state, ok = g.state.Place(a.Cell)
		return ok, nil
	case ActionReset:
		g.state = tictactoe.New()
		return true, nil
	}
	return false, unknownAction(TicTacToe, a)
}

// TicTacToeView is the client view of a tic-tac-toe game. Empty cells are "".
type TicTacToeView struct {
	Board    [9]string `json:"board"`
	Turn     string    `json:"turn"`
	Winner   string    `json:"winner,omitempty"`
	Draw     bool      `json:"draw"`
	Thinking bool      `json:"thinking"`
}

func (g *ticTacToeGame) View() any {
	v := TicTacToeView{
		Turn:   g.state.Turn.String(),
		Winner: g.state.Winner.String(),
		Draw:   g.state.Draw(),
	}
	for i, m := range g.state.Board {
		v.Board[i] = m.String()
	}
	_, v.Thinking = g.Pending()
	return v
}

func (g *ticTacToeGame) Outcome() string {
	switch {
	case g.state.Winner == tictactoe.X:
		return "x_wins"
	case g.state.Winner == tictactoe.O:
		return "o_wins"
	case g.state.Draw():
		return "draw"
	}
	return ""
}

func (g *ticTacToeGame) Pending() (time.Duration, bool) {
	return g.delay, g.state.Turn == tictactoe.O && !g.state.Over()
}

func (g *ticTacToeGame) Fire() (Action, bool) {
	next, cell, ok := g.state.ComputerMove(g.rng)
	if !ok {
		return Action{}, false
	}
	g.state = next
	return Action{Type: ActionComputer, Cell: cell}, true
}

// Checkers

type checkersGame struct {
	depth int
	delay time.Duration
	state checkers.State
}

func newCheckers(s Settings, _ *rand.Rand) Game {
	return &checkersGame{
		depth: s.Checkers.SearchDepth,
		delay: ms(s.Checkers.ComputerDelayMS),
		state: checkers.New(),
	}
}

func (g *checkersGame) Apply(a Action) (bool, error) {
	var ok bool
	switch a.Type {
	case ActionClick:
		g.state, ok = g.state.Click(checkers.Pos{Row: a.Row, Col: a.Col})
	case ActionMove:
		g.state, ok = g.state.MoveTo(checkers.Move{
			From: checkers.Pos{Row: a.Row, Col: a.Col},
			To:   checkers.Pos{Row: a.ToRow, Col: a.ToCol},
		})
	case ActionReset:
		g.state, ok = checkers.New(), true
	default:
		return false, unknownAction(Checkers, a)
	}
	return ok, nil
}

// CheckersView is the client view of a checkers game. Board rows are
// strings of 'r', 'b' and '.' with row 0 at black's home.
type CheckersView struct {
	Board    []string        `json:"board"`
	Turn     string          `json:"turn"`
	Selected *checkers.Pos   `json:"selected,omitempty"`
	Red      int             `json:"red"`
	Black    int             `json:"black"`
	Blocked  bool            `json:"blocked"`
	Moves    []checkers.Move `json:"moves,omitempty"`
}

func (g *checkersGame) View() any {
	b := g.state.Board
	v := CheckersView{
		Board:   make([]string, checkers.Size),
		Turn:    g.state.Turn.String(),
		Red:     b.Count(checkers.Red),
		Black:   b.Count(checkers.Black),
		Blocked: g.state.Blocked(),
	}
	for r := range b {
		var row strings.Builder
		for _, p := range b[r] {
			switch p {
			case checkers.Red:
				row.WriteByte('r')
			case checkers.Black:
				row.WriteByte('b')
			default:
				row.WriteByte('.')
			}
		}
		v.Board[r] = row.String()
	}
	if g.state.HasSelection {
		sel := g.state.Selected
		v.Selected = &sel
	}
	if g.state.Turn == checkers.Red {
		v.Moves = b.Moves(checkers.Red)
	}
	return v
}

func (g *checkersGame) Outcome() string {
	if g.state.Blocked() {
		return g.state.Turn.String() + "_blocked"
	}
	return ""
}

func (g *checkersGame) Pending() (time.Duration, bool) {
	return g.delay, g.state.Turn == checkers.Black && !g.state.Blocked()
}

func (g *checkersGame) Fire() (Action, bool) {
	next, m, ok := g.state.ComputerMove(g.depth)
	if !ok {
		return Action{}, false
	}
	g.state = next
	return Action{Type: ActionComputer, Row: m.From.Row, Col: m.From.Col, ToRow: m.To.Row, ToCol: m.To.Col}, true
}

// Snake

type snakeGame struct {
	tick  time.Duration
	rng   *rand.Rand
	state snake.State
}

func newSnake(s Settings, rng *rand.Rand) Game {
	return &snakeGame{tick: ms(s.Snake.TickMS), rng: rng, state: snake.New(s.Snake.GridSize)}
}

func (g *snakeGame) Apply(a Action) (bool, error) {
	switch a.Type {
	case ActionStart:
		g.state = g.state.Start()
		return true, nil
	case ActionReset:
		g.state = snake.New(g.state.Size)
		return true, nil
	case ActionTurn:
		d, ok := snake.Direction(strings.ToLower(a.Direction))
		if !ok {
			return false, nil
		}
		g.state, ok = g.state.Turn(d)
		return ok, nil
	}
	return false, unknownAction(Snake, a)
}

// SnakeView is the client view of a snake game.
type SnakeView struct {
	Size    int           `json:"size"`
	Body    []snake.Point `json:"body"`
	Food    snake.Point   `json:"food"`
	Dir     snake.Point   `json:"direction"`
	Score   int           `json:"score"`
	Started bool          `json:"started"`
	Over    bool          `json:"over"`
	Won     bool          `json:"won"`
}

func (g *snakeGame) View() any {
	s := g.state
	return SnakeView{
		Size:    s.Size,
		Body:    append([]snake.Point(nil), s.Body...),
		Food:    s.Food,
		Dir:     s.Dir,
		Score:   s.Score,
		Started: s.Started,
		Over:    s.Over,
		Won:     s.Won,
	}
}

func (g *snakeGame) Outcome() string {
	switch {
	case g.state.Won:
		return "won"
	case g.state.Over:
		return "lost"
	}
	return ""
}

func (g *snakeGame) Pending() (time.Duration, bool) {
	return g.tick, g.state.Running()
}

func (g *snakeGame) Fire() (Action, bool) {
	var ok bool
	g.state, ok = g.state.Tick(g.rng)
	return Action{Type: ActionTick}, ok
}

// Blackjack

type blackjackGame struct {
	rng   *rand.Rand
	state blackjack.State
}

func newBlackjack(s Settings, rng *rand.Rand) Game {
	return &blackjackGame{rng: rng, state: blackjack.New(s.Blackjack.StartingBalance, s.Blackjack.Bet, rng)}
}

func (g *blackjackGame) Apply(a Action) (bool, error) {
	var ok bool
	switch a.Type {
	case ActionBet:
		g.state, ok = g.state.SetBet(a.Amount)
	case ActionDeal:
		g.state, ok = g.state.Deal(g.rng)
	case ActionHit:
		g.state, ok = g.state.Hit(g.rng)
	case ActionStand:
		g.state, ok = g.state.Stand(g.rng)
	case ActionNewRound:
		if g.state.Phase != blackjack.Finished {
			return false, nil
		}
		g.state, ok = g.state.NewRound(g.rng), true
	default:
		return false, unknownAction(Blackjack, a)
	}
	return ok, nil
}

// BlackjackView is the client view of a blackjack table. While the player
// is still playing the dealer's first card is "?" and its value is hidden.
type BlackjackView struct {
	Player      []string `json:"player"`
	Dealer      []string `json:"dealer"`
	PlayerValue int      `json:"player_value"`
	DealerValue *int     `json:"dealer_value,omitempty"`
	Bet         int      `json:"bet"`
	Balance     int      `json:"balance"`
	Phase       string   `json:"phase"`
	Outcome     string   `json:"outcome,omitempty"`
	Message     string   `json:"message,omitempty"`
	CanDeal     bool     `json:"can_deal"`
	CardsLeft   int      `json:"cards_left"`
}

func (g *blackjackGame) View() any {
	s := g.state
	v := BlackjackView{
		Player:      cardNames(s.Player),
		Dealer:      cardNames(s.Dealer),
		PlayerValue: blackjack.HandValue(s.Player),
		Bet:         s.Bet,
		Balance:     s.Balance,
		Phase:       string(s.Phase),
		Outcome:     string(s.Outcome),
		Message:     s.Message,
		CanDeal:     s.CanDeal(),
		CardsLeft:   len(s.Deck),
	}
	if s.Phase == blackjack.Playing && len(v.Dealer) > 0 {
		v.Dealer[0] = "?"
	} else if len(s.Dealer) > 0 {
		dv := blackjack.HandValue(s.Dealer)
		v.DealerValue = &dv
	}
	return v
}

func cardNames(cards []blackjack.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return names
}

func (g *blackjackGame) Outcome() string                 { return string(g.state.Outcome) }
func (g *blackjackGame) Pending() (time.Duration, bool) { return 0, false }
func (g *blackjackGame) Fire() (Action, bool)           { return Action{}, false }

// Minesweeper

type minesweeperGame struct {
	settings MinesweeperSettings
	rng      *rand.Rand
	state    minesweeper.State
}

func newMinesweeper(s Settings, rng *rand.Rand) Game {
	g := &minesweeperGame{settings: s.Minesweeper, rng: rng}
	g.reset()
	return g
}

func (g *minesweeperGame) reset() {
	g.state = minesweeper.New(g.settings.Rows, g.settings.Cols, g.settings.Mines, g.rng)
}

func (g *minesweeperGame) Apply(a Action) (bool, error) {
	var ok bool
	switch a.Type {
	case ActionReveal:
		g.state, ok = g.state.Reveal(a.Row, a.Col)
	case ActionFlag:
		g.state, ok = g.state.ToggleFlag(a.Row, a.Col)
	case ActionReset:
		g.reset()
		ok = true
	default:
		return false, unknownAction(Minesweeper, a)
	}
	return ok, nil
}

// MinesweeperView is the client view of a minesweeper grid. Each row is a
// string: '#' hidden, 'F' flagged, '*' mine, '0'-'8' neighbour counts.
type MinesweeperView struct {
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	Grid           []string `json:"grid"`
	Mines          int      `json:"mines"`
	FlagsRemaining int      `json:"flags_remaining"`
	Lost           bool     `json:"lost"`
	Won            bool     `json:"won"`
}

func (g *minesweeperGame) View() any {
	s := g.state
	v := MinesweeperView{
		Rows:           s.Rows,
		Cols:           s.Cols,
		Grid:           make([]string, s.Rows),
		Mines:          s.Mines,
		FlagsRemaining: s.FlagsRemaining(),
		Lost:           s.Lost,
		Won:            s.Won,
	}
	for r, row := range s.Cells {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.Flagged:
				b.WriteByte('F')
			case !c.Revealed:
				b.WriteByte('#')
			case c.Mine:
				b.WriteByte('*')
			default:
				b.WriteString(strconv.Itoa(c.Neighbors))
			}
		}
		v.Grid[r] = b.String()
	}
	return v
}

func (g *minesweeperGame) Outcome() string {
	switch {
	case g.state.Won:
		return "won"
	case g.state.Lost:
		return "lost"
	}
	return ""
}

func (g *minesweeperGame) Pending() (time.Duration, bool) { return 0, false }
func (g *minesweeperGame) Fire() (Action, bool)           { return Action{}, false }
