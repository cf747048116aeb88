// Package minesweeper implements the mine-clearing grid game.
package minesweeper

import "math/rand/v2"

const (
	DefaultRows  = 10
	DefaultCols  = 10
	DefaultMines = 15
)

// Cell is one grid square. Neighbors is fixed when the grid is created.
type Cell struct {
	Mine      bool
	Revealed  bool
	Flagged   bool
	Neighbors int
}

// State is one game. Cells is indexed [row][col] and treated as immutable:
// updates copy the grid before changing it.
type State struct {
	Rows  int
	Cols  int
	Mines int
	Cells [][]Cell
	Lost  bool
	Won   bool
}

// New lays mines on distinct cells chosen uniformly at random and computes
// the neighbour counts. mines must not exceed rows*cols.
func New(rows, cols, mines int, rng *rand.Rand) State {
	s := State{Rows: rows, Cols: cols, Mines: mines, Cells: grid(rows, cols)}
	for _, i := range rng.Perm(rows * cols)[:mines] {
		s.Cells[i/cols][i%cols].Mine = true
	}
	s.countNeighbors()
	return s
}

// FromMines builds a game with mines at the given cells.
func FromMines(rows, cols int, mines [][2]int) State {
	s := State{Rows: rows, Cols: cols, Cells: grid(rows, cols)}
	for _, m := range mines {
		if !s.Cells[m[0]][m[1]].Mine {
			s.Cells[m[0]][m[1]].Mine = true
			s.Mines++
		}
	}
	s.countNeighbors()
	return s
}

func grid(rows, cols int) [][]Cell {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return cells
}

func (s State) countNeighbors() {
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			if s.Cells[r][c].Mine {
				continue
			}
			n := 0
			s.neighbors(r, c, func(nr, nc int) {
				if s.Cells[nr][nc].Mine {
					n++
				}
			})
			s.Cells[r][c].Neighbors = n
		}
	}
}

func (s State) neighbors(r, c int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			nr, nc := r+dr, c+dc
			if (dr != 0 || dc != 0) && s.inBounds(nr, nc) {
				fn(nr, nc)
			}
		}
	}
}

func (s State) inBounds(r, c int) bool {
	return r >= 0 && r < s.Rows && c >= 0 && c < s.Cols
}

// Over reports whether the game was lost or won.
func (s State) Over() bool {
	return s.Lost || s.Won
}

func (s State) clone() State {
	cells := make([][]Cell, len(s.Cells))
	for r := range s.Cells {
		cells[r] = append([]Cell(nil), s.Cells[r]...)
	}
	s.Cells = cells
	return s
}

// Reveal opens a cell. Opening a mine reveals every mine and loses the game;
// opening a cell with no neighbouring mines opens its whole zero region and
// the numbered border around it.
func (s State) Reveal(r, c int) (State, bool) {
	if s.Over() || !s.inBounds(r, c) {
		return s, false
	}
	if cell := s.Cells[r][c]; cell.Revealed || cell.Flagged {
		return s, false
	}

	s = s.clone()
	if s.Cells[r][c].Mine {
		for i := range s.Cells {
			for j := range s.Cells[i] {
				if s.Cells[i][j].Mine {
					s.Cells[i][j].Revealed = true
				}
			}
		}
		s.Lost = true
		return s, true
	}

	stack := [][2]int{{r, c}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cell := &s.Cells[p[0]][p[1]]
		if cell.Revealed {
			continue
		}
		cell.Revealed = true
		cell.Flagged = false
		if cell.Neighbors != 0 {
			continue
		}
		s.neighbors(p[0], p[1], func(nr, nc int) {
			if !s.Cells[nr][nc].Revealed {
				stack = append(stack, [2]int{nr, nc})
			}
		})
	}
	s.Won = s.cleared()
	return s, true
}

func (s State) cleared() bool {
	for _, row := range s.Cells {
		for _, cell := range row {
			if !cell.Mine && !cell.Revealed {
				return false
			}
		}
	}
	return true
}

// ToggleFlag flips the flag on an unrevealed cell.
func (s State) ToggleFlag(r, c int) (State, bool) {
	if s.Over() || !s.inBounds(r, c) || s.Cells[r][c].Revealed {
		return s, false
	}
	s = s.clone()
	s.Cells[r][c].Flagged = !s.Cells[r][c].Flagged
	return s, true
}

// Flags counts flagged cells.
func (s State) Flags() int {
	n := 0
	for _, row := range s.Cells {
		for _, cell := range row {
			if cell.Flagged {
				n++
			}
		}
	}
	return n
}

// FlagsRemaining is the mine count minus placed flags. It can go negative.
func (s State) FlagsRemaining() int {
	return s.Mines - s.Flags()
}
