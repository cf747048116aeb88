// Package blackjack implements single-player blackjack against a dealer that
// stands on 17, with a running balance and a fixed bet per round.
package blackjack

import (
	"math/rand/v2"
	"strconv"
)

const (
	DefaultBalance = 100
	DefaultBet     = 10
	DealerStands   = 17
	Blackjack      = 21
)

// Suit of a card.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitNames = [...]string{"♠", "♥", "♦", "♣"}

func (s Suit) String() string { return suitNames[s] }

// Rank of a card, Ace through King.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Card is a playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }

// NewDeck returns the 52 cards in suit then rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes deck in place with a uniform Fisher-Yates shuffle.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// HandValue counts aces as 11 and downgrades them to 1, one at a time,
// while the total exceeds 21.
func HandValue(hand []Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		switch {
		case c.Rank == Ace:
			total += 11
			aces++
		case c.Rank >= Ten:
			total += 10
		default:
			total += int(c.Rank)
		}
	}
	for total > Blackjack && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// Bust reports a hand worth more than 21.
func Bust(hand []Card) bool {
	return HandValue(hand) > Blackjack
}

// Phase of a round.
type Phase string

const (
	Betting  Phase = "betting"
	Playing  Phase = "playing"
	Finished Phase = "finished"
)

// Outcome of a finished round.
type Outcome string

const (
	NoOutcome Outcome = ""
	Win       Outcome = "win"
	Loss      Outcome = "loss"
	Push      Outcome = "push"
	BustLoss  Outcome = "bust"
)

var messages = map[Outcome]string{
	Win:      "You win!",
	Loss:     "Dealer wins!",
	Push:     "Push!",
	BustLoss: "Bust! You lose.",
}

// State is the table. The deck is drawn from its end.
type State struct {
	Deck    []Card
	Player  []Card
	Dealer  []Card
	Bet     int
	Balance int
	Phase   Phase
	Outcome Outcome
	Message string
}

// New opens a table in the betting phase with a freshly shuffled deck.
func New(balance, bet int, rng *rand.Rand) State {
	s := State{Balance: balance}
	s.Bet = s.clamp(bet)
	return s.NewRound(rng)
}

// NewRound clears the hands, reshuffles a full deck and returns to betting.
// Balance and bet carry over.
func (s State) NewRound(rng *rand.Rand) State {
	deck := NewDeck()
	Shuffle(deck, rng)
	return State{
		Deck:    deck,
		Bet:     s.Bet,
		Balance: s.Balance,
		Phase:   Betting,
	}
}

// SetBet clamps amount to [1, balance]. Only allowed while betting.
func (s State) SetBet(amount int) (State, bool) {
	if s.Phase != Betting {
		return s, false
	}
	s.Bet = s.clamp(amount)
	return s, true
}

func (s State) clamp(n int) int {
	return max(1, min(s.Balance, n))
}

// CanDeal reports whether the balance covers the bet.
func (s State) CanDeal() bool {
	return s.Phase == Betting && s.Balance >= s.Bet && s.Bet >= 1
}

// Deal gives two cards each, player first.
func (s State) Deal(rng *rand.Rand) (State, bool) {
	if !s.CanDeal() {
		return s, false
	}
	s.Deck = append([]Card(nil), s.Deck...)
	var c1, c2, d1, d2 Card
	s, c1 = s.draw(rng)
	s, c2 = s.draw(rng)
	s, d1 = s.draw(rng)
	s, d2 = s.draw(rng)
	s.Player = []Card{c1, c2}
	s.Dealer = []Card{d1, d2}
	s.Phase = Playing
	return s, true
}

// Hit draws a card for the player. Going over 21 loses the round.
func (s State) Hit(rng *rand.Rand) (State, bool) {
	if s.Phase != Playing {
		return s, false
	}
	s.Deck = append([]Card(nil), s.Deck...)
	var c Card
	s, c = s.draw(rng)
	s.Player = append(append([]Card(nil), s.Player...), c)
	if Bust(s.Player) {
		s = s.finish(BustLoss)
	}
	return s, true
}

// Stand plays out the dealer hand and settles the round.
func (s State) Stand(rng *rand.Rand) (State, bool) {
	if s.Phase != Playing {
		return s, false
	}
	s.Deck = append([]Card(nil), s.Deck...)
	s.Dealer = append([]Card(nil), s.Dealer...)
	for HandValue(s.Dealer) < DealerStands {
		var c Card
		s, c = s.draw(rng)
		s.Dealer = append(s.Dealer, c)
	}

	player, dealer := HandValue(s.Player), HandValue(s.Dealer)
	switch {
	case dealer > Blackjack || player > dealer:
		s = s.finish(Win)
	case dealer > player:
		s = s.finish(Loss)
	default:
		s = s.finish(Push)
	}
	return s, true
}

func (s State) finish(o Outcome) State {
	switch o {
	case Win:
		s.Balance += s.Bet
	case Loss, BustLoss:
		s.Balance -= s.Bet
	}
	s.Phase = Finished
	s.Outcome = o
	s.Message = messages[o]
	return s
}

// draw pops the last card, reshuffling a full deck when the deck runs out.
// The caller must own s.Deck.
func (s State) draw(rng *rand.Rand) (State, Card) {
	if len(s.Deck) == 0 {
		s.Deck = NewDeck()
		Shuffle(s.Deck, rng)
	}
	n := len(s.Deck) - 1
	c := s.Deck[n]
	s.Deck = s.Deck[:n]
	return s, c
}
