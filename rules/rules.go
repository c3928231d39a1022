// Package rules implements the Battlesnake state transition function.
//
// The decision engine and the self-play harness both advance states through
// this package, so the growth, health, and collision semantics live in
// exactly one place.
package rules

import (
	"github.com/jj-bali/battlesnake-team-10/game"
)

const (
	MoveUp    = 0
	MoveDown  = 1
	MoveLeft  = 2
	MoveRight = 3
)

// AllMoves enumerates the four moves in the fixed tie-break order used
// throughout the engine.
var AllMoves = [4]int{MoveUp, MoveDown, MoveLeft, MoveRight}

var moveNames = [4]string{"up", "down", "left", "right"}

// MoveName returns the wire token for a move ("up", "down", "left", "right").
func MoveName(move int) string {
	if move < 0 || move > 3 {
		return "up"
	}
	return moveNames[move]
}

// MoveDelta returns the board offset a move applies to a head position.
func MoveDelta(move int) game.Point {
	switch move {
	case MoveUp:
		return game.Point{X: 0, Y: 1}
	case MoveDown:
		return game.Point{X: 0, Y: -1}
	case MoveLeft:
		return game.Point{X: -1, Y: 0}
	case MoveRight:
		return game.Point{X: 1, Y: 0}
	}
	return game.Point{}
}

// ApplyMove returns the cell a head lands on after the move.
func ApplyMove(head game.Point, move int) game.Point {
	d := MoveDelta(move)
	return game.Point{X: head.X + d.X, Y: head.Y + d.Y}
}

// MoveFromPoints returns the move that steps from a to b, assuming the two
// cells are 4-adjacent. The second return is false when they are not.
func MoveFromPoints(a, b game.Point) (int, bool) {
	switch {
	case b.X == a.X && b.Y == a.Y+1:
		return MoveUp, true
	case b.X == a.X && b.Y == a.Y-1:
		return MoveDown, true
	case b.X == a.X-1 && b.Y == a.Y:
		return MoveLeft, true
	case b.X == a.X+1 && b.Y == a.Y:
		return MoveRight, true
	}
	return 0, false
}

// GetLegalMoves returns the moves for YouId that stay in bounds and avoid
// snake bodies and hazards. Head proximity is not considered here; the
// agent package layers that on top.
func GetLegalMoves(state *game.GameState) []int {
	you := state.You()
	if you == nil || you.Health <= 0 || len(you.Body) == 0 {
		return []int{}
	}

	head := you.Body[0]
	moves := []int{}
	for _, m := range AllMoves {
		if isLegal(state, ApplyMove(head, m)) {
			moves = append(moves, m)
		}
	}
	return moves
}

func isLegal(state *game.GameState, p game.Point) bool {
	if !state.InBounds(p) {
		return false
	}
	if state.IsHazard(p) {
		return false
	}
	// Conservative: every body segment blocks, including tails that may move.
	for _, s := range state.Snakes {
		if s.Health <= 0 {
			continue
		}
		for _, bp := range s.Body {
			if p == bp {
				return false
			}
		}
	}
	return true
}

// NextState advances only YouId by one move. Other snakes stay in place.
// Used for single-perspective lookahead where enemy moves are unknown.
func NextState(state *game.GameState, move int) *game.GameState {
	return NextStateSimultaneous(state, map[string]int{state.YouId: move})
}

// NextStateSimultaneous advances the game by one turn with a move per snake.
// Snakes missing from the map do not move and keep their position.
//
// Growth follows standard Battlesnake rules: eating appends a new head and
// leaves the tail in place for that turn (net +1 segment); a non-eating
// move appends a new head and drops the tail. Health drops by one each turn
// and resets to 100 on eating.
func NextStateSimultaneous(state *game.GameState, moves map[string]int) *game.GameState {
	newState := state.Clone()
	newState.Turn++

	// 1. Compute new head positions.
	newHeads := make(map[string]game.Point, len(newState.Snakes))
	for i := range newState.Snakes {
		s := &newState.Snakes[i]
		if s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		move, ok := moves[s.Id]
		if !ok {
			continue
		}
		newHeads[s.Id] = ApplyMove(s.Body[0], move)
	}

	// 2. Resolve eaten food before bodies move, so two snakes reaching the
	// same food both grow (and both die head-to-head afterwards).
	eatenFood := make(map[int]bool)
	snakeAte := make(map[string]bool)
	for id, head := range newHeads {
		for i, f := range newState.Food {
			if f == head {
				eatenFood[i] = true
				snakeAte[id] = true
			}
		}
	}
	remainingFood := newState.Food[:0]
	for i, f := range newState.Food {
		if !eatenFood[i] {
			remainingFood = append(remainingFood, f)
		}
	}
	newState.Food = remainingFood

	// 3. Advance bodies.
	for i := range newState.Snakes {
		s := &newState.Snakes[i]
		if s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		newHead, ok := newHeads[s.Id]
		if !ok {
			continue
		}

		newBody := make([]game.Point, 0, len(s.Body)+1)
		newBody = append(newBody, newHead)
		newBody = append(newBody, s.Body...)

		if snakeAte[s.Id] {
			s.Health = 100
		} else {
			s.Health--
			newBody = newBody[:len(newBody)-1]
		}
		s.Body = newBody
	}

	// 4. Resolve deaths: starvation, walls, hazards, body collisions.
	deadSnakes := make(map[string]bool)
	for _, s := range newState.Snakes {
		if s.Health <= 0 || len(s.Body) == 0 {
			deadSnakes[s.Id] = true
			continue
		}
		head := s.Body[0]

		if !newState.InBounds(head) || newState.IsHazard(head) {
			deadSnakes[s.Id] = true
			continue
		}

		for _, other := range newState.Snakes {
			if other.Health <= 0 {
				continue
			}
			for i, p := range other.Body {
				if i == 0 {
					// Head cells are resolved separately below.
					continue
				}
				if p == head {
					deadSnakes[s.Id] = true
				}
			}
		}
	}

	// 5. Head-to-head: shorter snake dies, equal lengths kill both.
	for i := 0; i < len(newState.Snakes); i++ {
		s1 := &newState.Snakes[i]
		if deadSnakes[s1.Id] || s1.Health <= 0 || len(s1.Body) == 0 {
			continue
		}
		for j := i + 1; j < len(newState.Snakes); j++ {
			s2 := &newState.Snakes[j]
			if deadSnakes[s2.Id] || s2.Health <= 0 || len(s2.Body) == 0 {
				continue
			}
			if s1.Body[0] != s2.Body[0] {
				continue
			}
			switch {
			case len(s1.Body) > len(s2.Body):
				deadSnakes[s2.Id] = true
			case len(s2.Body) > len(s1.Body):
				deadSnakes[s1.Id] = true
			default:
				deadSnakes[s1.Id] = true
				deadSnakes[s2.Id] = true
			}
		}
	}

	finalSnakes := make([]game.Snake, 0, len(newState.Snakes))
	for _, s := range newState.Snakes {
		if deadSnakes[s.Id] {
			continue
		}
		finalSnakes = append(finalSnakes, s)
	}
	newState.Snakes = finalSnakes

	return newState
}

// IsGameOver returns true once zero or one snakes remain alive.
func IsGameOver(state *game.GameState) bool {
	living := 0
	for _, s := range state.Snakes {
		if s.Health > 0 {
			living++
		}
	}
	return living <= 1
}

// IsTerminal returns true if the game is over from YouId's perspective.
func IsTerminal(state *game.GameState) bool {
	you := state.You()
	if you == nil || you.Health <= 0 {
		return true
	}
	return len(GetLegalMoves(state)) == 0
}
