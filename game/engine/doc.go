// Package engine runs the arcade: a catalogue of six games and the Selector
// that holds which one is being played.
//
// The rules live in their own packages (hangman, tictactoe, checkers, snake,
// blackjack, minesweeper) as plain state values with pure update functions.
// This package wraps each of them behind the Game interface so a Selector
// can route actions, render views and drive scheduled work.
//
// Usage:
//
//	sel := engine.NewSelector(engine.DefaultSettings())
//	defer sel.Close()
//
//	if _, err := sel.Select(engine.TicTacToe); err != nil {
//		log.Fatal(err)
//	}
//	res, err := sel.Apply(engine.Action{Type: engine.ActionPlace, Cell: 4})
//	// res.Applied is false if the rules rejected the move.
//
// Scheduled work:
//
// Tic-tac-toe and checkers answer the player after a short delay and snake
// advances on a fixed tick. The Selector arms at most one timer per instance
// through its Scheduler. Leaving a game, selecting another, restarting it or
// closing the selector bumps a generation counter, so callbacks that were
// already in flight do nothing when they run.
//
// Observers:
//
// An Observer sees every state change, whether it came from the player or
// from a timer, and is told once when a game reaches an outcome.
package engine
