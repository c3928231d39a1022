package agent

import (
	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// pathNode is a cell on the A* frontier.
type pathNode struct {
	pos    game.Point
	parent *pathNode
	g      int32 // cost from start
	h      int32 // Manhattan heuristic to goal
}

// FindPath runs grid A* from start to goal with unit step costs and a
// Manhattan heuristic. Cells are expanded under the lenient passability
// rule, except that the goal cell is always considered legal so that
// occupied targets (an opponent's head) remain reachable.
//
// A nil return means no path exists; a successful path is inclusive of both
// start and goal, so len(path)-1 equals the total cost.
func FindPath(state *game.GameState, you *game.Snake, start, goal game.Point) []game.Point {
	if !state.InBounds(start) || !state.InBounds(goal) {
		return nil
	}
	if start == goal {
		return []game.Point{start}
	}

	open := []*pathNode{{pos: start, h: game.ManhattanDistance(start, goal)}}
	closed := make(map[game.Point]bool, int(state.Width*state.Height))

	for len(open) > 0 {
		// Lowest f = g + h wins; ties break toward the lower heuristic,
		// i.e. the node nearer the goal.
		best := 0
		for i := 1; i < len(open); i++ {
			fi := open[i].g + open[i].h
			fb := open[best].g + open[best].h
			if fi < fb || (fi == fb && open[i].h < open[best].h) {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)

		if cur.pos == goal {
			return reconstructPath(cur)
		}
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true

		for _, m := range rules.AllMoves {
			next := rules.ApplyMove(cur.pos, m)
			if closed[next] {
				continue
			}
			if next != goal && !LenientPassable(state, you, next) {
				continue
			}
			if !state.InBounds(next) {
				continue
			}
			open = append(open, &pathNode{
				pos:    next,
				parent: cur,
				g:      cur.g + 1,
				h:      game.ManhattanDistance(next, goal),
			})
		}
	}

	return nil
}

func reconstructPath(end *pathNode) []game.Point {
	path := []game.Point{}
	for n := end; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
