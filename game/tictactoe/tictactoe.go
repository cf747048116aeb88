// Package tictactoe implements 3x3 tic-tac-toe with a random computer player.
package tictactoe

import "math/rand/v2"

// Mark is the content of a cell.
type Mark int

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board holds cells 0..8 in row-major order.
type Board [9]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the mark owning a complete line, or Empty.
func Winner(b Board) Mark {
	for _, l := range lines {
		if b[l[0]] != Empty && b[l[0]] == b[l[1]] && b[l[1]] == b[l[2]] {
			return b[l[0]]
		}
	}
	return Empty
}

// Full reports whether no cell is empty.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// State is a game in progress. The human plays X, the computer O.
type State struct {
	Board  Board
	Turn   Mark
	Winner Mark
}

// New returns an empty board with X to move.
func New() State {
	return State{Turn: X}
}

// Over reports whether the game has a winner or the board is full.
func (s State) Over() bool {
	return s.Winner != Empty || s.Board.Full()
}

// Draw reports a full board without a winner.
func (s State) Draw() bool {
	return s.Winner == Empty && s.Board.Full()
}

// Place puts the mark of the side to move on cell. The turn only flips when
// the move did not win.
func (s State) Place(cell int) (State, bool) {
	if cell < 0 || cell >= len(s.Board) || s.Board[cell] != Empty || s.Over() {
		return s, false
	}
	s.Board[cell] = s.Turn
	s.Winner = Winner(s.Board)
	if s.Winner == Empty {
		s.Turn = opponent(s.Turn)
	}
	return s, true
}

// EmptyCells lists the indices of empty cells in ascending order.
func (s State) EmptyCells() []int {
	var cells []int
	for i, m := range s.Board {
		if m == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// ComputerMove plays O on a uniformly random empty cell. It does nothing
// unless it is O's turn and the game is still open.
func (s State) ComputerMove(rng *rand.Rand) (State, int, bool) {
	if s.Turn != O || s.Over() {
		return s, -1, false
	}
	cells := s.EmptyCells()
	cell := cells[rng.IntN(len(cells))]
	next, ok := s.Place(cell)
	return next, cell, ok
}

func opponent(m Mark) Mark {
	if m == X {
		return O
	}
	return X
}
