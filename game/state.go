// Package game defines the core game state types for Battlesnake.
//
// These types represent the full per-turn snapshot the decision engine
// consumes: board dimensions, food, hazards, and every snake on the board.
// The state is designed to be efficiently clonable for forward simulation.
package game

// Point is a board coordinate.
// Coordinates follow Battlesnake conventions: (0,0) is bottom-left.
type Point struct {
	X int32
	Y int32
}

// ManhattanDistance returns |dx| + |dy| between two points.
func ManhattanDistance(a, b Point) int32 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Snake is one agent on the board. Body is head-first; Body[0] is the head
// and the last element is the tail. Adjacent segments differ by one unit in
// exactly one axis, except transiently at spawn where segments stack.
type Snake struct {
	Id     string
	Health int32
	Body   []Point
}

// Head returns the snake's head position. Body must be non-empty.
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Length returns the number of body segments.
func (s *Snake) Length() int32 {
	return int32(len(s.Body))
}

// GameState is the complete snapshot for one turn.
// YouId selects the ego snake perspective for decisions.
type GameState struct {
	Width   int32
	Height  int32
	Snakes  []Snake
	Food    []Point
	Hazards []Point
	YouId   string
	Turn    int32
}

// You returns a pointer to the ego snake, or nil if it is not on the board.
func (s *GameState) You() *Snake {
	for i := range s.Snakes {
		if s.Snakes[i].Id == s.YouId {
			return &s.Snakes[i]
		}
	}
	return nil
}

// InBounds reports whether a point lies on the board.
func (s *GameState) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// IsFood reports whether a food item occupies the point.
func (s *GameState) IsFood(p Point) bool {
	for _, f := range s.Food {
		if f == p {
			return true
		}
	}
	return false
}

// IsHazard reports whether a hazard occupies the point.
func (s *GameState) IsHazard(p Point) bool {
	for _, h := range s.Hazards {
		if h == p {
			return true
		}
	}
	return false
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Width:  s.Width,
		Height: s.Height,
		YouId:  s.YouId,
		Turn:   s.Turn,
	}

	if len(s.Food) > 0 {
		out.Food = make([]Point, len(s.Food))
		copy(out.Food, s.Food)
	}

	if len(s.Hazards) > 0 {
		out.Hazards = make([]Point, len(s.Hazards))
		copy(out.Hazards, s.Hazards)
	}

	if len(s.Snakes) > 0 {
		out.Snakes = make([]Snake, len(s.Snakes))
		for i := range s.Snakes {
			out.Snakes[i] = Snake{Id: s.Snakes[i].Id, Health: s.Snakes[i].Health}
			if len(s.Snakes[i].Body) > 0 {
				out.Snakes[i].Body = make([]Point, len(s.Snakes[i].Body))
				copy(out.Snakes[i].Body, s.Snakes[i].Body)
			}
		}
	}

	return out
}
