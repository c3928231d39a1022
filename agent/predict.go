package agent

import (
	"math"

	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// Lookahead depths for the bounded forward simulation. Endgame positions
// warrant the deeper (and more expensive) search because the board is
// mostly body by then and simulation steps are cheap.
const (
	lookaheadDepth        = 4
	lookaheadDepthEndgame = 8
)

const (
	predictOwnSpaceWeight = 1.0
	predictOppSpaceWeight = 2.5
	predictEscapeWeight   = 5.0
	predictDecay          = 0.7
)

// advanceOne advances a single snake by one move in a cloned state, leaving
// every other snake in place. Returns the new state and the moved snake
// within it (nil if the move killed it).
func advanceOne(state *game.GameState, id string, move int) (*game.GameState, *game.Snake) {
	next := rules.NextStateSimultaneous(state, map[string]int{id: move})
	for i := range next.Snakes {
		if next.Snakes[i].Id == id {
			return next, &next.Snakes[i]
		}
	}
	return next, nil
}

// greedySpaceMove picks the snake's safe move with the largest lenient
// reachable space, the 1-ply heuristic standing in for real opponent
// modeling. The bool return is false when the snake has no safe move.
func greedySpaceMove(state *game.GameState, s *game.Snake) (int, bool) {
	safe := SafeMoves(state, s)
	if len(safe) == 0 {
		return 0, false
	}
	best := safe[0]
	bestSpace := -1
	for _, m := range safe {
		space := ReachableSpace(state, s, rules.ApplyMove(s.Head(), m), LenientPassable)
		if space > bestSpace {
			bestSpace = space
			best = m
		}
	}
	return best, true
}

// escapeRouteReduction measures how boxed-in the snake is: how far below
// four its safe-move count has fallen, plus the same for safe moves that
// open into space at least as large as its body.
func escapeRouteReduction(state *game.GameState, s *game.Snake) float64 {
	safe := SafeMoves(state, s)
	spacious := 0
	for _, m := range safe {
		space := ReachableSpace(state, s, rules.ApplyMove(s.Head(), m), LenientPassable)
		if space >= int(s.Length()) {
			spacious++
		}
	}
	return float64(4-len(safe)) + float64(4-spacious)
}

// nearestOpponent returns the living opponent whose head is closest to
// ours. The forward simulation tracks this snake as "the" opponent.
func nearestOpponent(state *game.GameState, you *game.Snake) *game.Snake {
	var best *game.Snake
	bestDist := int32(math.MaxInt32)
	for _, o := range opponents(state, you) {
		d := game.ManhattanDistance(you.Head(), o.Head())
		if d < bestDist {
			bestDist = d
			best = o
		}
	}
	return best
}

// BestPredictedMove simulates each candidate move forward for a bounded
// number of turns and returns the candidate with the highest accumulated
// space-control score. Ties resolve to the earliest candidate.
func BestPredictedMove(state *game.GameState, you *game.Snake, candidates []int) (int, bool) {
	if you == nil || len(you.Body) == 0 || len(candidates) == 0 {
		return 0, false
	}

	depth := lookaheadDepth
	if EndgameActive(state, you) {
		depth = lookaheadDepthEndgame
	}

	bestMove := candidates[0]
	bestScore := math.Inf(-1)
	for _, m := range candidates {
		score := simulateMoveScore(state, you.Id, m, depth)
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
	}
	return bestMove, true
}

// simulateMoveScore plays the game forward for depth turns: our move is the
// candidate on the first turn and greedy space maximization afterwards;
// every opponent plays greedy space maximization throughout. Each turn
// contributes its space-control score with exponentially decaying weight,
// and the simulation halts early once either side has no safe move (that
// side has lost; remaining turns contribute nothing).
func simulateMoveScore(state *game.GameState, youId string, firstMove int, depth int) float64 {
	sim := state.Clone()
	sim.YouId = youId
	total := 0.0
	weight := 1.0

	for turn := 0; turn < depth; turn++ {
		var you *game.Snake
		for i := range sim.Snakes {
			if sim.Snakes[i].Id == youId {
				you = &sim.Snakes[i]
			}
		}
		if you == nil || rules.IsTerminal(sim) {
			break
		}

		moves := make(map[string]int, len(sim.Snakes))

		if turn == 0 {
			moves[youId] = firstMove
		} else {
			m, ok := greedySpaceMove(sim, you)
			if !ok {
				break
			}
			moves[youId] = m
		}

		tracked := nearestOpponent(sim, you)
		oppBlocked := false
		for _, o := range opponents(sim, you) {
			m, ok := greedySpaceMove(sim, o)
			if !ok {
				if tracked != nil && o.Id == tracked.Id {
					oppBlocked = true
				}
				continue
			}
			moves[o.Id] = m
		}
		if oppBlocked {
			break
		}

		trackedId := ""
		if tracked != nil {
			trackedId = tracked.Id
		}

		sim = rules.NextStateSimultaneous(sim, moves)

		you = nil
		var opp *game.Snake
		for i := range sim.Snakes {
			switch sim.Snakes[i].Id {
			case youId:
				you = &sim.Snakes[i]
			case trackedId:
				opp = &sim.Snakes[i]
			}
		}
		if you == nil || you.Health <= 0 {
			break
		}

		ownSpace := ReachableSpace(sim, you, you.Head(), LenientPassable)
		turnScore := predictOwnSpaceWeight * float64(ownSpace)
		if opp != nil && opp.Health > 0 {
			oppSpace := ReachableSpace(sim, opp, opp.Head(), LenientPassable)
			turnScore -= predictOppSpaceWeight * float64(oppSpace)
			turnScore += predictEscapeWeight * escapeRouteReduction(sim, opp)
		}

		total += weight * turnScore
		weight *= predictDecay
	}

	return total
}
