// Package hangman implements the word-guessing game.
//
// State is a plain value; Guess returns a new State and never mutates its
// receiver, so callers can keep older states around for history or tests.
package hangman

import (
	"math/rand/v2"
	"strings"
)

// MaxGuesses is the default number of wrong guesses allowed.
const MaxGuesses = 6

// Words is the default word list.
var Words = []string{"react", "javascript", "typescript", "nextjs", "tailwind"}

// Status describes where a game stands.
type Status string

const (
	Playing Status = "playing"
	Won     Status = "won"
	Lost    Status = "lost"
)

// State is a single hangman game.
type State struct {
	Word      string   `json:"-"`
	Guessed   [26]bool `json:"-"`
	Remaining int      `json:"remaining"`
}

// New starts a game for word with the given number of allowed misses.
func New(word string, maxGuesses int) State {
	return State{
		Word:      strings.ToLower(word),
		Remaining: maxGuesses,
	}
}

// Pick returns a word chosen uniformly from words.
func Pick(words []string, rng *rand.Rand) string {
	if len(words) == 0 {
		return ""
	}
	return words[rng.IntN(len(words))]
}

// Guess records letter. The returned bool is false when the guess had no
// effect: the game is over, the letter is not a-z, or it was already guessed.
func (s State) Guess(letter rune) (State, bool) {
	if s.Status() != Playing {
		return s, false
	}
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return s, false
	}
	idx := letter - 'a'
	if s.Guessed[idx] {
		return s, false
	}

	s.Guessed[idx] = true
	if !strings.ContainsRune(s.Word, letter) {
		s.Remaining--
	}
	return s, true
}

// Masked renders the word with unguessed letters as '_', separated by spaces.
func (s State) Masked() string {
	var b strings.Builder
	for i, c := range s.Word {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.has(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Solved reports whether every letter of the word has been guessed.
func (s State) Solved() bool {
	for _, c := range s.Word {
		if !s.has(c) {
			return false
		}
	}
	return true
}

// Status returns the game status.
func (s State) Status() Status {
	switch {
	case s.Remaining <= 0:
		return Lost
	case s.Solved():
		return Won
	default:
		return Playing
	}
}

// GuessedLetters returns the guessed letters in alphabetical order.
func (s State) GuessedLetters() string {
	var b strings.Builder
	for i, ok := range s.Guessed {
		if ok {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}

func (s State) has(c rune) bool {
	if c < 'a' || c > 'z' {
		return true
	}
	return s.Guessed[c-'a']
}
