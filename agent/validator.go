package agent

import (
	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// Health thresholds driving the food and aggression gates.
const (
	healthDesperate   = 15
	healthMaintenance = 50
	healthAggression  = 75
)

// SafeMoves returns the subset of the four moves that is immediately safe
// for the given snake. Pure function of (board, snake, all snakes).
func SafeMoves(state *game.GameState, you *game.Snake) []int {
	if you == nil || len(you.Body) == 0 {
		return []int{}
	}
	head := you.Body[0]
	moves := []int{}
	for _, m := range rules.AllMoves {
		if IsSafeCell(state, you, rules.ApplyMove(head, m)) {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsSafeCell reports whether the snake can move onto p this turn without
// dying. A cell is unsafe if it is out of bounds, on a hazard, inside any
// snake body, or adjacent to the head of an opponent at least as long as us
// (a head-to-head there kills us, or kills both at equal length).
//
// The snake's own tail is passable unless p is a food cell: eating freezes
// the tail in place for the turn.
func IsSafeCell(state *game.GameState, you *game.Snake, p game.Point) bool {
	if !state.InBounds(p) {
		return false
	}
	if state.IsHazard(p) {
		return false
	}

	eating := state.IsFood(p)

	for i := range state.Snakes {
		s := &state.Snakes[i]
		if s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		for j, bp := range s.Body {
			if bp != p {
				continue
			}
			if s.Id == you.Id && !eating && j == len(s.Body)-1 {
				// Own tail vacates this turn.
				continue
			}
			return false
		}
	}

	for i := range state.Snakes {
		s := &state.Snakes[i]
		if s.Id == you.Id || s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		if s.Length() >= you.Length() && game.ManhattanDistance(s.Body[0], p) <= 1 {
			return false
		}
	}

	return true
}

// MovesAvoidingSelf is the first degradation tier when no move is safe:
// in-bounds moves that at least miss our own body.
func MovesAvoidingSelf(state *game.GameState, you *game.Snake) []int {
	if you == nil || len(you.Body) == 0 {
		return []int{}
	}
	head := you.Body[0]
	moves := []int{}
	for _, m := range rules.AllMoves {
		p := rules.ApplyMove(head, m)
		if !state.InBounds(p) {
			continue
		}
		hit := false
		for _, bp := range you.Body {
			if bp == p {
				hit = true
				break
			}
		}
		if !hit {
			moves = append(moves, m)
		}
	}
	return moves
}

// MovesInBounds is the second degradation tier: moves that merely stay on
// the board.
func MovesInBounds(state *game.GameState, you *game.Snake) []int {
	if you == nil || len(you.Body) == 0 {
		return []int{}
	}
	head := you.Body[0]
	moves := []int{}
	for _, m := range rules.AllMoves {
		if state.InBounds(rules.ApplyMove(head, m)) {
			moves = append(moves, m)
		}
	}
	return moves
}

// opponents returns every living snake on the board other than you.
func opponents(state *game.GameState, you *game.Snake) []*game.Snake {
	out := []*game.Snake{}
	for i := range state.Snakes {
		s := &state.Snakes[i]
		if s.Id == you.Id || s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}
