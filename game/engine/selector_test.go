package engine

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	snaps    []Snapshot
	finished []string
	moves    []Action
}

func (o *recordingObserver) StateChanged(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snaps = append(o.snaps, s)
}

func (o *recordingObserver) GameFinished(kind Kind, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, string(kind)+":"+outcome)
}

func (o *recordingObserver) ComputerMoved(kind Kind, a Action) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moves = append(o.moves, a)
}

func newTestSelector(t *testing.T) (*Selector, *ManualScheduler, *recordingObserver) {
	t.Helper()
	settings := DefaultSettings()
	settings.Hangman.Words = []string{"go"}
	sched := &ManualScheduler{}
	sel := NewSelector(settings, WithScheduler(sched), WithRand(rand.New(rand.NewPCG(1, 2))))
	obs := &recordingObserver{}
	sel.SetObserver(obs)
	t.Cleanup(sel.Close)
	return sel, sched, obs
}

func TestSelectorStartsOnMenu(t *testing.T) {
	sel, _, _ := newTestSelector(t)

	snap := sel.Snapshot()
	assert.Empty(t, snap.Selected)
	assert.Nil(t, snap.State)
	require.Len(t, snap.Menu, 6)
	assert.Equal(t, Hangman, snap.Menu[0].ID)
	assert.Equal(t, Minesweeper, snap.Menu[5].ID)
}

func TestSelectorErrors(t *testing.T) {
	sel, _, _ := newTestSelector(t)

	_, err := sel.Apply(Action{Type: ActionGuess, Letter: "a"})
	assert.True(t, errors.Is(err, ErrNoGameSelected))

	_, err = sel.Select("pong")
	assert.True(t, errors.Is(err, ErrUnknownGame))

	_, err = sel.Select(Hangman)
	require.NoError(t, err)
	_, err = sel.Apply(Action{Type: ActionPlace, Cell: 1})
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Empty(t, sel.History(), "unknown actions are not recorded")
}

func TestSelectCreatesFreshInstance(t *testing.T) {
	sel, _, _ := newTestSelector(t)

	first, err := sel.Select(Hangman)
	require.NoError(t, err)
	_, err = sel.Apply(Action{Type: ActionGuess, Letter: "z"})
	require.NoError(t, err)

	second, err := sel.Select(Hangman)
	require.NoError(t, err)
	assert.NotEqual(t, first.InstanceID, second.InstanceID)
	assert.Equal(t, 6, second.State.(HangmanView).Remaining)
}

func TestRuleRejectionIsNotAnError(t *testing.T) {
	sel, _, obs := newTestSelector(t)
	_, _ = sel.Select(Hangman)

	res, err := sel.Apply(Action{Type: ActionGuess, Letter: "1"})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Len(t, obs.snaps, 1, "rejected actions do not notify")

	h := sel.History()
	require.Len(t, h, 1)
	assert.False(t, h[0].Applied)
	assert.Equal(t, SourcePlayer, h[0].Source)
}

func TestTicTacToeComputerMoveAfterDelay(t *testing.T) {
	sel, sched, obs := newTestSelector(t)
	_, _ = sel.Select(TicTacToe)
	assert.Empty(t, sched.Pending())

	res, err := sel.Apply(Action{Type: ActionPlace, Cell: 4})
	require.NoError(t, err)
	require.True(t, res.Applied)
	view := res.Snapshot.State.(TicTacToeView)
	assert.Equal(t, "O", view.Turn)
	assert.True(t, view.Thinking)

	pending := sched.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 500*time.Millisecond, pending[0].Delay)

	res, err = sel.Apply(Action{Type: ActionPlace, Cell: 0})
	require.NoError(t, err)
	assert.False(t, res.Applied, "human input is ignored while the computer thinks")

	require.True(t, sched.Step())
	view = sel.Snapshot().State.(TicTacToeView)
	assert.Equal(t, "X", view.Turn)
	assert.False(t, view.Thinking)
	marks := 0
	for _, c := range view.Board {
		if c != "" {
			marks++
		}
	}
	assert.Equal(t, 2, marks)
	assert.Empty(t, sched.Pending())

	h := sel.History()
	require.Len(t, h, 3)
	assert.Equal(t, SourceComputer, h[2].Source)
	assert.Equal(t, ActionComputer, h[2].Action.Type)
	assert.Len(t, obs.snaps, 3)
	require.Len(t, obs.moves, 1)
	assert.Equal(t, h[2].Action, obs.moves[0])
}

func TestBackCancelsPendingComputerMove(t *testing.T) {
	sel, sched, obs := newTestSelector(t)
	_, _ = sel.Select(TicTacToe)
	_, _ = sel.Apply(Action{Type: ActionPlace, Cell: 4})
	timer := sched.Pending()[0]

	snap := sel.Back()
	assert.Empty(t, snap.Selected)
	assert.Len(t, snap.Menu, 6)
	assert.Empty(t, sched.Pending())

	before := sel.Snapshot().Version
	sched.RunStale(timer)
	assert.Equal(t, before, sel.Snapshot().Version, "stale callback is ignored")
	assert.Len(t, obs.snaps, 3)
}

func TestSelectingAnotherGameDropsOldTimer(t *testing.T) {
	sel, sched, _ := newTestSelector(t)
	_, _ = sel.Select(Checkers)
	_, err := sel.Apply(Action{Type: ActionMove, Row: 5, Col: 2, ToRow: 4, ToCol: 3})
	require.NoError(t, err)
	timer := sched.Pending()[0]

	_, _ = sel.Select(Checkers)
	assert.Empty(t, sched.Pending())

	sched.RunStale(timer)
	view := sel.Snapshot().State.(CheckersView)
	assert.Equal(t, "red", view.Turn, "old instance's move never lands on the new one")
	assert.Equal(t, "........", view.Board[3])
}

func TestResetDropsPendingComputerMove(t *testing.T) {
	sel, sched, _ := newTestSelector(t)
	_, _ = sel.Select(TicTacToe)
	_, _ = sel.Apply(Action{Type: ActionPlace, Cell: 4})
	timer := sched.Pending()[0]

	res, err := sel.Apply(Action{Type: ActionReset})
	require.NoError(t, err)
	require.True(t, res.Applied)
	assert.Empty(t, sched.Pending())

	_, _ = sel.Apply(Action{Type: ActionPlace, Cell: 0})
	sched.RunStale(timer)
	assert.Len(t, sched.Pending(), 1, "only the timer for the new move is armed")
	assert.Equal(t, "O", sel.Snapshot().State.(TicTacToeView).Turn)
}

func TestCheckersComputerReply(t *testing.T) {
	sel, sched, _ := newTestSelector(t)
	_, _ = sel.Select(Checkers)

	res, _ := sel.Apply(Action{Type: ActionClick, Row: 5, Col: 2})
	require.True(t, res.Applied)
	selected := res.Snapshot.State.(CheckersView).Selected
	require.NotNil(t, selected)
	assert.Equal(t, 5, selected.Row)
	assert.Equal(t, 2, selected.Col)
	assert.Empty(t, sched.Pending())

	res, _ = sel.Apply(Action{Type: ActionClick, Row: 4, Col: 3})
	require.True(t, res.Applied)
	assert.Equal(t, "black", res.Snapshot.State.(CheckersView).Turn)

	require.True(t, sched.Step())
	view := sel.Snapshot().State.(CheckersView)
	assert.Equal(t, "red", view.Turn)
	assert.Equal(t, 12, view.Black)
	assert.NotEmpty(t, view.Moves)
}

func TestSnakeTicks(t *testing.T) {
	sel, sched, obs := newTestSelector(t)
	_, _ = sel.Select(Snake)
	assert.Empty(t, sched.Pending(), "snake waits for start")

	res, _ := sel.Apply(Action{Type: ActionTurn, Direction: "up"})
	assert.False(t, res.Applied)

	res, _ = sel.Apply(Action{Type: ActionStart})
	require.True(t, res.Applied)
	pending := sched.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 100*time.Millisecond, pending[0].Delay)

	for i := 0; i < 3; i++ {
		require.True(t, sched.Step())
	}
	view := sel.Snapshot().State.(SnakeView)
	assert.Equal(t, 13, view.Body[0].X)
	assert.Equal(t, 10, view.Body[0].Y)
	assert.Len(t, sched.Pending(), 1, "the clock keeps running")

	res, _ = sel.Apply(Action{Type: ActionTurn, Direction: "DOWN"})
	require.True(t, res.Applied)
	require.True(t, sched.Step())
	view = sel.Snapshot().State.(SnakeView)
	assert.Equal(t, 11, view.Body[0].Y)

	for _, e := range sel.History() {
		assert.NotEqual(t, ActionTick, e.Action.Type)
	}
	assert.Empty(t, obs.moves, "clock ticks are not computer moves")
}

func TestSnakeClockStopsWhenGameEnds(t *testing.T) {
	sel, sched, obs := newTestSelector(t)
	_, _ = sel.Select(Snake)
	_, _ = sel.Apply(Action{Type: ActionStart})

	steps := 0
	for sched.Step() {
		steps++
		require.Less(t, steps, 100)
	}
	// From x=10 heading right the snake leaves a 20 wide grid on tick 10.
	assert.Equal(t, 10, steps)
	snap := sel.Snapshot()
	assert.Equal(t, "lost", snap.Outcome)
	assert.Equal(t, []string{"snake:lost"}, obs.finished)
}

func TestSnakeResetStopsClock(t *testing.T) {
	sel, sched, _ := newTestSelector(t)
	_, _ = sel.Select(Snake)
	_, _ = sel.Apply(Action{Type: ActionStart})
	require.Len(t, sched.Pending(), 1)

	_, _ = sel.Apply(Action{Type: ActionReset})
	assert.Empty(t, sched.Pending())
	assert.False(t, sel.Snapshot().State.(SnakeView).Started)
}

func TestGameFinishedReportedOncePerOutcome(t *testing.T) {
	sel, _, obs := newTestSelector(t)
	_, _ = sel.Select(Hangman)

	_, _ = sel.Apply(Action{Type: ActionGuess, Letter: "g"})
	res, _ := sel.Apply(Action{Type: ActionGuess, Letter: "o"})
	assert.Equal(t, "won", res.Snapshot.Outcome)
	view := res.Snapshot.State.(HangmanView)
	assert.Equal(t, "go", view.Word)

	_, _ = sel.Apply(Action{Type: ActionGuess, Letter: "x"})
	assert.Equal(t, []string{"hangman:won"}, obs.finished)

	_, _ = sel.Apply(Action{Type: ActionReset})
	for _, l := range "abcdef" {
		_, _ = sel.Apply(Action{Type: ActionGuess, Letter: string(l)})
	}
	assert.Equal(t, []string{"hangman:won", "hangman:lost"}, obs.finished)
}

func TestVersionIncreasesOnEveryChange(t *testing.T) {
	sel, _, obs := newTestSelector(t)
	_, _ = sel.Select(Minesweeper)
	_, _ = sel.Apply(Action{Type: ActionFlag, Row: 0, Col: 0})
	sel.Back()

	require.Len(t, obs.snaps, 3)
	for i := 1; i < len(obs.snaps); i++ {
		assert.Greater(t, obs.snaps[i].Version, obs.snaps[i-1].Version)
	}
}

func TestHistoryIsCapped(t *testing.T) {
	sel, _, _ := newTestSelector(t)
	_, _ = sel.Select(Blackjack)
	for i := 0; i < MaxHistory+10; i++ {
		_, err := sel.Apply(Action{Type: ActionHit})
		require.NoError(t, err)
	}
	h := sel.History()
	require.Len(t, h, MaxHistory)
	assert.Equal(t, 11, h[0].Seq)
	assert.Equal(t, MaxHistory+10, h[len(h)-1].Seq)
}

func TestCloseStopsEverything(t *testing.T) {
	sel, sched, _ := newTestSelector(t)
	_, _ = sel.Select(Snake)
	_, _ = sel.Apply(Action{Type: ActionStart})
	timer := sched.Pending()[0]

	sel.Close()
	assert.Empty(t, sched.Pending())
	sched.RunStale(timer)

	_, err := sel.Select(Hangman)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = sel.Apply(Action{Type: ActionStart})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSelectorWithRealScheduler(t *testing.T) {
	settings := DefaultSettings()
	settings.TicTacToe.ComputerDelayMS = 1
	sel := NewSelector(settings)
	defer sel.Close()

	_, _ = sel.Select(TicTacToe)
	_, _ = sel.Apply(Action{Type: ActionPlace, Cell: 4})

	assert.Eventually(t, func() bool {
		return sel.Snapshot().State.(TicTacToeView).Turn == "X"
	}, time.Second, 5*time.Millisecond)
}
