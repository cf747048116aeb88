// Package snake implements the classic snake game on a square grid. The game
// advances one cell per Tick; the caller owns the clock.
package snake

import "math/rand/v2"

// DefaultSize is the default grid dimension.
const DefaultSize = 20

// Point is a grid cell or a direction vector. Y grows downwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

var (
	Up    = Point{0, -1}
	Down  = Point{0, 1}
	Left  = Point{-1, 0}
	Right = Point{1, 0}
)

// Direction maps a direction name to its vector.
func Direction(name string) (Point, bool) {
	switch name {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Point{}, false
}

// State is one snake game. Body[0] is the head.
type State struct {
	Size    int
	Body    []Point
	Dir     Point
	Heading Point
	Food    Point
	Score   int
	Started bool
	Over    bool
	Won     bool
}

// New returns a game that has not started yet: a one-segment snake in the
// centre heading right and food at three quarters of the grid.
func New(size int) State {
	return State{
		Size:    size,
		Body:    []Point{{size / 2, size / 2}},
		Dir:     Right,
		Heading: Right,
		Food:    Point{size * 3 / 4, size * 3 / 4},
	}
}

// Start returns a fresh running game.
func (s State) Start() State {
	n := New(s.Size)
	n.Started = true
	return n
}

// Running reports whether ticks advance the game.
func (s State) Running() bool {
	return s.Started && !s.Over
}

// Head returns the first body segment.
func (s State) Head() Point {
	return s.Body[0]
}

// Turn changes direction. Reversing onto the axis the snake last travelled
// along is rejected, as is turning before the game runs.
func (s State) Turn(d Point) (State, bool) {
	if !s.Running() {
		return s, false
	}
	if (d.X == 0) == (d.Y == 0) {
		return s, false
	}
	if d.X != 0 && s.Heading.X != 0 || d.Y != 0 && s.Heading.Y != 0 {
		return s, false
	}
	s.Dir = d
	return s, true
}

// Tick advances the snake one cell. rng relocates eaten food.
func (s State) Tick(rng *rand.Rand) (State, bool) {
	if !s.Running() {
		return s, false
	}
	head := s.Head().add(s.Dir)
	s.Heading = s.Dir
	if !s.inside(head) || s.occupied(head) {
		s.Over = true
		return s, true
	}

	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, head)
	body = append(body, s.Body...)
	if head == s.Food {
		s.Score++
		s.Body = body
		s.Food, s.Won = s.placeFood(rng)
		if s.Won {
			s.Over = true
		}
		return s, true
	}
	s.Body = body[:len(body)-1]
	return s, true
}

func (s State) inside(p Point) bool {
	return p.X >= 0 && p.X < s.Size && p.Y >= 0 && p.Y < s.Size
}

func (s State) occupied(p Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// placeFood picks a uniformly random cell not covered by the snake. It
// reports true when the snake covers the whole grid.
func (s State) placeFood(rng *rand.Rand) (Point, bool) {
	taken := make(map[Point]bool, len(s.Body))
	for _, b := range s.Body {
		taken[b] = true
	}
	free := s.Size*s.Size - len(taken)
	if free <= 0 {
		return s.Food, true
	}
	n := rng.IntN(free)
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			p := Point{x, y}
			if taken[p] {
				continue
			}
			if n == 0 {
				return p, false
			}
			n--
		}
	}
	return s.Food, true
}
