package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Selector holds the selected game, if any, and its running instance. It is
// safe for concurrent use. Scheduled work (computer moves, the snake clock)
// belongs to the current instance and is dropped when the instance is left,
// replaced, restarted or the selector is closed.
type Selector struct {
	mu       sync.Mutex
	settings Settings
	rng      *rand.Rand
	sched    Scheduler
	observer Observer

	kind     Kind
	game     Game
	instance string
	outcome  string

	timer   Stopper
	gen     uint64
	version uint64
	closed  bool

	history []HistoryEntry
	seq     int
}

// Option configures a Selector.
type Option func(*Selector)

// WithScheduler replaces the runtime timer, mostly for tests.
func WithScheduler(sched Scheduler) Option {
	return func(s *Selector) { s.sched = sched }
}

// WithRand sets the random source shared by the selector's games.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// NewSelector returns a selector showing the menu.
func NewSelector(settings Settings, opts ...Option) *Selector {
	s := &Selector{
		settings: settings,
		sched:    RealScheduler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// SetObserver registers the observer notified of state changes.
func (s *Selector) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Settings returns the preset the selector starts games with.
func (s *Selector) Settings() Settings {
	return s.settings
}

// Games lists the catalogue.
func (s *Selector) Games() []GameInfo {
	return Games()
}

// Selected returns the running game kind, or "" on the menu.
func (s *Selector) Selected() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Select starts a fresh instance of kind, replacing any running game.
func (s *Selector) Select(kind Kind) (Snapshot, error) {
	e, ok := lookup(kind)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	s.stopTimer()
	s.kind = kind
	s.game = e.new(s.settings, s.rng)
	s.instance = uuid.NewString()
	s.outcome = ""
	s.schedule()
	n := s.changed()
	s.mu.Unlock()

	n.send()
	return n.snap, nil
}

// Back returns to the menu and cancels the instance's scheduled work.
func (s *Selector) Back() Snapshot {
	s.mu.Lock()
	if s.game == nil {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap
	}
	s.stopTimer()
	s.kind = ""
	s.game = nil
	s.instance = ""
	s.outcome = ""
	n := s.changed()
	s.mu.Unlock()

	n.send()
	return n.snap
}

// Apply routes a player action to the running game. Rule rejections are
// reported through Result.Applied, not as errors.
func (s *Selector) Apply(a Action) (Result, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Result{}, ErrClosed
	}
	if s.game == nil {
		s.mu.Unlock()
		return Result{}, ErrNoGameSelected
	}
	applied, err := s.game.Apply(a)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	s.record(a, applied, SourcePlayer)

	if !applied {
		snap := s.snapshot()
		s.mu.Unlock()
		return Result{Snapshot: snap}, nil
	}
	switch a.Type {
	case ActionReset, ActionStart, ActionNewRound:
		s.stopTimer()
	}
	s.schedule()
	n := s.changed()
	s.mu.Unlock()

	n.send()
	return Result{Applied: true, Snapshot: n.snap}, nil
}

// Snapshot returns the current view without changing anything.
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// History returns the recorded actions, oldest first.
func (s *Selector) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

// Close cancels scheduled work. Further Select and Apply calls fail.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimer()
}

func (s *Selector) snapshot() Snapshot {
	snap := Snapshot{Version: s.version}
	if s.game == nil {
		snap.Menu = Games()
		return snap
	}
	snap.Selected = s.kind
	snap.InstanceID = s.instance
	snap.State = s.game.View()
	snap.Outcome = s.game.Outcome()
	return snap
}

// stopTimer cancels the pending callback and invalidates any that already
// started running. Caller holds mu.
func (s *Selector) stopTimer() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// schedule arms a timer for the game's pending work unless one is already
// armed. Caller holds mu.
func (s *Selector) schedule() {
	if s.timer != nil || s.game == nil || s.closed {
		return
	}
	d, ok := s.game.Pending()
	if !ok {
		return
	}
	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() { s.fire(gen) })
}

func (s *Selector) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.game == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	a, changed := s.game.Fire()
	computer := changed && a.Type != ActionTick
	if computer {
		s.record(a, true, SourceComputer)
	}
	s.schedule()
	if !changed {
		s.mu.Unlock()
		return
	}
	n := s.changed()
	if computer {
		n.move = &a
	}
	s.mu.Unlock()

	n.send()
}

func (s *Selector) record(a Action, applied bool, source string) {
	s.seq++
	s.history = append(s.history, HistoryEntry{
		Seq:        s.seq,
		Game:       s.kind,
		InstanceID: s.instance,
		Action:     a,
		Applied:    applied,
		Source:     source,
		Timestamp:  time.Now().Unix(),
	})
	if len(s.history) > MaxHistory {
		s.history = append([]HistoryEntry(nil), s.history[len(s.history)-MaxHistory:]...)
	}
}

// notice carries observer calls out of the critical section.
type notice struct {
	observer Observer
	snap     Snapshot
	finished bool
	move     *Action
}

// changed bumps the version and prepares the observer calls. Caller holds mu.
func (s *Selector) changed() notice {
	s.version++
	snap := s.snapshot()
	finished := snap.Outcome != "" && s.outcome == ""
	s.outcome = snap.Outcome
	return notice{observer: s.observer, snap: snap, finished: finished}
}

func (n notice) send() {
	if n.observer == nil {
		return
	}
	if mo, ok := n.observer.(MoveObserver); ok && n.move != nil {
		mo.ComputerMoved(n.snap.Selected, *n.move)
	}
	n.observer.StateChanged(n.snap)
	if n.finished {
		n.observer.GameFinished(n.snap.Selected, n.snap.Outcome)
	}
}
