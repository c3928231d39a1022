package agent

import (
	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// Passable decides whether the flood fill may expand onto a cell. The two
// instantiations below cover every reachability question in the engine, so
// there is exactly one fill implementation.
type Passable func(state *game.GameState, you *game.Snake, p game.Point) bool

// StrictPassable mirrors the immediate-safety rule of IsSafeCell, including
// head-to-head avoidance. Used to vet cells the snake would actually step
// onto this turn.
func StrictPassable(state *game.GameState, you *game.Snake, p game.Point) bool {
	return IsSafeCell(state, you, p)
}

// LenientPassable is the tactical-lookahead rule: every snake's last body
// segment is treated as free, since it will have vacated by the time we can
// arrive. Hazards and all non-tail segments still block. Head proximity is
// ignored; this predicate measures space, not survival of a single step.
func LenientPassable(state *game.GameState, you *game.Snake, p game.Point) bool {
	if !state.InBounds(p) {
		return false
	}
	if state.IsHazard(p) {
		return false
	}
	for i := range state.Snakes {
		s := &state.Snakes[i]
		if s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		for j, bp := range s.Body {
			if bp != p {
				continue
			}
			if j == len(s.Body)-1 {
				continue
			}
			return false
		}
	}
	return true
}

// ReachableSpace counts the cells reachable from start via 4-connected
// passable neighbors. The start cell itself always counts, so a fully
// enclosed cell yields 1. Expansion is capped at board area to guarantee
// termination.
func ReachableSpace(state *game.GameState, you *game.Snake, start game.Point, passable Passable) int {
	if !state.InBounds(start) {
		return 0
	}

	maxIterations := int(state.Width * state.Height)
	visited := make(map[game.Point]bool, maxIterations)
	visited[start] = true

	queue := make([]game.Point, 0, maxIterations)
	queue = append(queue, start)
	count := 1

	for len(queue) > 0 && count < maxIterations {
		cur := queue[0]
		queue = queue[1:]

		for _, m := range rules.AllMoves {
			next := rules.ApplyMove(cur, m)
			if visited[next] {
				continue
			}
			if !passable(state, you, next) {
				continue
			}
			visited[next] = true
			count++
			queue = append(queue, next)
		}
	}

	return count
}
