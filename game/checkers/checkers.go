// Package checkers implements a simplified draughts game: single diagonal
// forward steps only, no captures and no kings. Red is the human side and
// moves first; black is played by a fixed-depth minimax search.
package checkers

// Size is the board dimension.
const Size = 8

// DefaultDepth is the default search depth in plies.
const DefaultDepth = 3

// Inf is the score a side with no legal moves hands to its opponent.
const Inf = 1 << 30

// Piece is the content of a square.
type Piece int

const (
	None Piece = iota
	Red
	Black
)

func (p Piece) String() string {
	switch p {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return ""
	}
}

// Opponent returns the other side.
func (p Piece) Opponent() Piece {
	if p == Red {
		return Black
	}
	return Red
}

// Forward is the row delta of a single step for player.
func Forward(player Piece) int {
	if player == Red {
		return -1
	}
	return 1
}

// Pos is a square on the board.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) inBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Move relocates one piece.
type Move struct {
	From Pos `json:"from"`
	To   Pos `json:"to"`
}

// Board is indexed [row][col]; row 0 is black's home row.
type Board [Size][Size]Piece

// NewBoard returns the starting position: pieces on the dark squares
// ((row+col) odd), black on rows 0-2 and red on rows 5-7.
func NewBoard() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if (r+c)%2 == 0 {
				continue
			}
			switch {
			case r <= 2:
				b[r][c] = Black
			case r >= 5:
				b[r][c] = Red
			}
		}
	}
	return b
}

// At returns the piece at p, or None when p is off the board.
func (b Board) At(p Pos) Piece {
	if !p.inBounds() {
		return None
	}
	return b[p.Row][p.Col]
}

// Legal reports whether player may make m: the origin holds one of the
// player's pieces, the destination is an empty square one row forward and
// one column to either side.
func (b Board) Legal(player Piece, m Move) bool {
	if !m.From.inBounds() || !m.To.inBounds() {
		return false
	}
	if b.At(m.From) != player || b.At(m.To) != None {
		return false
	}
	if m.To.Row-m.From.Row != Forward(player) {
		return false
	}
	dc := m.To.Col - m.From.Col
	return dc == 1 || dc == -1
}

// Apply moves the piece without checking legality.
func (b Board) Apply(m Move) Board {
	b[m.To.Row][m.To.Col] = b[m.From.Row][m.From.Col]
	b[m.From.Row][m.From.Col] = None
	return b
}

// Moves enumerates player's legal moves in row-major order of origin, left
// step before right step.
func (b Board) Moves(player Piece) []Move {
	var moves []Move
	dr := Forward(player)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != player {
				continue
			}
			for _, dc := range [2]int{-1, 1} {
				m := Move{From: Pos{r, c}, To: Pos{r + dr, c + dc}}
				if b.Legal(player, m) {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}

// Count returns the number of pieces of one colour.
func (b Board) Count(p Piece) int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] == p {
				n++
			}
		}
	}
	return n
}

// Evaluate is the material balance from black's point of view.
func Evaluate(b Board) int {
	return b.Count(Black) - b.Count(Red)
}

// Search runs a depth-limited minimax with black maximizing. The bool is
// false when the side to move has no legal move, in which case the score is
// -Inf for black or +Inf for red. Ties keep the first move in Moves order.
func Search(b Board, depth int, maximizing bool) (int, Move, bool) {
	if depth <= 0 {
		return Evaluate(b), Move{}, false
	}
	player := Red
	if maximizing {
		player = Black
	}
	moves := b.Moves(player)
	if len(moves) == 0 {
		if maximizing {
			return -Inf, Move{}, false
		}
		return Inf, Move{}, false
	}

	best := moves[0]
	bestScore := Inf
	if maximizing {
		bestScore = -Inf
	}
	for i, m := range moves {
		score, _, _ := Search(b.Apply(m), depth-1, !maximizing)
		if i == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			best = m
		}
	}
	return bestScore, best, true
}

// State is a game in progress.
type State struct {
	Board        Board
	Turn         Piece
	Selected     Pos
	HasSelection bool
}

// New returns the starting position with red to move.
func New() State {
	return State{Board: NewBoard(), Turn: Red}
}

// Blocked reports whether the side to move has no legal move.
func (s State) Blocked() bool {
	return len(s.Board.Moves(s.Turn)) == 0
}

// Click handles a human click on p. Without a selection, clicking a red
// piece selects it. With a selection, the click is a move target: a legal
// target moves the piece, any other target just clears the selection. The
// bool reports whether the state changed.
func (s State) Click(p Pos) (State, bool) {
	if s.Turn != Red || !p.inBounds() {
		return s, false
	}
	if !s.HasSelection {
		if s.Board.At(p) != Red {
			return s, false
		}
		s.Selected, s.HasSelection = p, true
		return s, true
	}

	m := Move{From: s.Selected, To: p}
	s.Selected, s.HasSelection = Pos{}, false
	if s.Board.Legal(Red, m) {
		s.Board = s.Board.Apply(m)
		s.Turn = Black
	}
	return s, true
}

// MoveTo is a select-then-click in one step. It only reports success when
// the piece actually moved.
func (s State) MoveTo(m Move) (State, bool) {
	if s.Turn != Red || !s.Board.Legal(Red, m) {
		return s, false
	}
	s.Selected, s.HasSelection = Pos{}, false
	s.Board = s.Board.Apply(m)
	s.Turn = Black
	return s, true
}

// ComputerMove searches depth plies for black and plays the best move. It
// returns false when it is not black's turn or black has no move.
func (s State) ComputerMove(depth int) (State, Move, bool) {
	if s.Turn != Black {
		return s, Move{}, false
	}
	_, m, ok := Search(s.Board, depth, true)
	if !ok {
		return s, Move{}, false
	}
	s.Board = s.Board.Apply(m)
	s.Turn = Red
	return s, m, true
}
