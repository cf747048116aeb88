package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 12, b.Count(Red))
	assert.Equal(t, 12, b.Count(Black))
	assert.Equal(t, Black, b[0][1])
	assert.Equal(t, None, b[0][0])
	assert.Equal(t, Red, b[7][0])
	assert.Equal(t, Red, b[5][0])
	for c := 0; c < Size; c++ {
		assert.Equal(t, None, b[3][c])
		assert.Equal(t, None, b[4][c])
	}
}

func TestLegal(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name   string
		player Piece
		move   Move
		want   bool
	}{
		{"red forward left", Red, Move{Pos{5, 2}, Pos{4, 1}}, true},
		{"red forward right", Red, Move{Pos{5, 2}, Pos{4, 3}}, true},
		{"red backward", Red, Move{Pos{5, 2}, Pos{6, 1}}, false},
		{"red straight", Red, Move{Pos{5, 2}, Pos{4, 2}}, false},
		{"red two columns", Red, Move{Pos{5, 2}, Pos{4, 4}}, false},
		{"red onto occupied", Red, Move{Pos{6, 1}, Pos{5, 0}}, false},
		{"red moving black piece", Red, Move{Pos{2, 1}, Pos{3, 0}}, false},
		{"red from empty square", Red, Move{Pos{4, 1}, Pos{3, 0}}, false},
		{"black forward", Black, Move{Pos{2, 1}, Pos{3, 0}}, true},
		{"black backward", Black, Move{Pos{2, 1}, Pos{1, 0}}, false},
		{"off the board", Red, Move{Pos{5, 0}, Pos{4, -1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Legal(tt.player, tt.move))
		})
	}
}

func TestApplyRelocatesPiece(t *testing.T) {
	b := NewBoard()
	next := b.Apply(Move{Pos{5, 2}, Pos{4, 3}})
	assert.Equal(t, None, next[5][2])
	assert.Equal(t, Red, next[4][3])
	assert.Equal(t, Red, b[5][2], "original board is a value and stays untouched")
}

func TestMovesOpening(t *testing.T) {
	b := NewBoard()
	red := b.Moves(Red)
	assert.Len(t, red, 7)
	assert.Equal(t, Move{Pos{5, 0}, Pos{4, 1}}, red[0])

	black := b.Moves(Black)
	assert.Len(t, black, 7)
	assert.Equal(t, Move{Pos{2, 1}, Pos{3, 0}}, black[0])
}

func TestClickSelectThenMove(t *testing.T) {
	s := New()

	s, ok := s.Click(Pos{5, 2})
	require.True(t, ok)
	assert.True(t, s.HasSelection)
	assert.Equal(t, Pos{5, 2}, s.Selected)

	s, ok = s.Click(Pos{4, 3})
	require.True(t, ok)
	assert.False(t, s.HasSelection)
	assert.Equal(t, Red, s.Board[4][3])
	assert.Equal(t, None, s.Board[5][2])
	assert.Equal(t, Black, s.Turn)
}

func TestClickIllegalTargetClearsSelection(t *testing.T) {
	s := New()
	s, _ = s.Click(Pos{5, 2})

	next, ok := s.Click(Pos{3, 2})
	require.True(t, ok)
	assert.False(t, next.HasSelection)
	assert.Equal(t, s.Board, next.Board)
	assert.Equal(t, Red, next.Turn)
}

func TestClickIgnored(t *testing.T) {
	s := New()

	_, ok := s.Click(Pos{2, 1})
	assert.False(t, ok, "cannot select a black piece")

	_, ok = s.Click(Pos{4, 1})
	assert.False(t, ok, "empty square without a selection")

	_, ok = s.Click(Pos{9, 9})
	assert.False(t, ok)

	s.Turn = Black
	_, ok = s.Click(Pos{5, 2})
	assert.False(t, ok, "human only plays red")
}

func TestMoveTo(t *testing.T) {
	s := New()
	_, ok := s.MoveTo(Move{Pos{5, 2}, Pos{3, 2}})
	assert.False(t, ok)

	s, ok = s.MoveTo(Move{Pos{5, 2}, Pos{4, 1}})
	require.True(t, ok)
	assert.Equal(t, Red, s.Board[4][1])
	assert.Equal(t, Black, s.Turn)
}

func TestSearchNoMovesSentinel(t *testing.T) {
	var b Board
	b[7][0] = Black // black cannot move off the board
	b[0][1] = Red   // neither can red

	score, _, ok := Search(b, 3, true)
	assert.False(t, ok)
	assert.Equal(t, -Inf, score)

	score, _, ok = Search(b, 3, false)
	assert.False(t, ok)
	assert.Equal(t, Inf, score)
}

func TestSearchDepthZeroEvaluates(t *testing.T) {
	score, _, ok := Search(NewBoard(), 0, true)
	assert.False(t, ok)
	assert.Equal(t, 0, score)
}

func TestSearchPrefersBlockingOpponent(t *testing.T) {
	var b Board
	b[0][1] = Black
	b[1][4] = Black
	b[2][3] = Red

	// Black to move, red replies. Only (0,1)->(1,2) leaves red with no
	// reply, which scores +Inf; every other line evaluates to 1. This only
	// holds when each ply generates moves from the child board.
	score, m, ok := Search(b, 2, true)
	require.True(t, ok)
	assert.Equal(t, Inf, score)
	assert.Equal(t, Move{Pos{0, 1}, Pos{1, 2}}, m)
}

func TestSearchTieKeepsFirstMove(t *testing.T) {
	b := NewBoard()
	score, m, ok := Search(b, DefaultDepth, true)
	require.True(t, ok)
	assert.Equal(t, 0, score)
	assert.Equal(t, b.Moves(Black)[0], m)
}

func TestComputerMove(t *testing.T) {
	s := New()
	_, _, ok := s.ComputerMove(DefaultDepth)
	assert.False(t, ok, "not black's turn")

	s, _ = s.MoveTo(Move{Pos{5, 2}, Pos{4, 3}})
	next, m, ok := s.ComputerMove(DefaultDepth)
	require.True(t, ok)
	assert.Equal(t, Black, next.Board.At(m.To))
	assert.Equal(t, None, next.Board.At(m.From))
	assert.Equal(t, Red, next.Turn)
	assert.Equal(t, 12, next.Board.Count(Black))
}

func TestBlocked(t *testing.T) {
	assert.False(t, New().Blocked())

	var s State
	s.Turn = Red
	s.Board[0][1] = Red
	assert.True(t, s.Blocked())

	_, _, ok := State{Board: s.Board, Turn: Black}.ComputerMove(DefaultDepth)
	assert.False(t, ok, "black has no pieces and no move")
}
