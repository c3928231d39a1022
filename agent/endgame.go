package agent

import (
	"math"

	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// endgameLengthRatio is the body-length-to-board-height ratio at which the
// space-denial policy takes over, tuned from duel games on 11x11 boards.
const endgameLengthRatio = 1.87

const (
	endgameOpponentSpaceWeight = 3.0
	endgameDistanceWeight      = 2.0

	// endgameCrampedPenalty sits far below any reachable live score while
	// keeping the space term representable. -math.MaxFloat64 would swallow
	// it and leave every cramped candidate tied.
	endgameCrampedPenalty = -1e12
)

// EndgameActive reports whether the space-denial override applies: exactly
// one opponent left, and our length is a large multiple of board height.
func EndgameActive(state *game.GameState, you *game.Snake) bool {
	if you == nil || len(you.Body) == 0 || state.Height <= 0 {
		return false
	}
	if len(opponents(state, you)) != 1 {
		return false
	}
	return float64(you.Length())/float64(state.Height) >= endgameLengthRatio
}

// EndgameMove scores each candidate move by how much space it keeps for us
// versus how much it leaves the last opponent, while rewarding closing on
// their head. Moves that would box us into less space than our own body are
// pinned to the bottom of the scale but stay rankable, so the selection
// still yields a move when every option is cramped.
func EndgameMove(state *game.GameState, you *game.Snake, candidates []int) (int, bool) {
	if you == nil || len(you.Body) == 0 || len(candidates) == 0 {
		return 0, false
	}
	opps := opponents(state, you)
	if len(opps) != 1 {
		return 0, false
	}
	oppId := opps[0].Id
	head := you.Body[0]

	bestMove := candidates[0]
	bestScore := math.Inf(-1)
	for _, m := range candidates {
		next := rules.ApplyMove(head, m)

		// Score in the world where we have taken the candidate step, so
		// the opponent's remaining space reflects our new body position.
		sim, simYou := advanceOne(state, you.Id, m)
		if simYou == nil {
			continue
		}
		var simOpp *game.Snake
		for i := range sim.Snakes {
			if sim.Snakes[i].Id == oppId {
				simOpp = &sim.Snakes[i]
			}
		}
		if simOpp == nil {
			continue
		}

		ownSpace := ReachableSpace(sim, simYou, simYou.Head(), LenientPassable)
		oppSpace := ReachableSpace(sim, simOpp, simOpp.Head(), LenientPassable)
		dist := float64(game.ManhattanDistance(next, simOpp.Head()))

		var score float64
		if ownSpace < int(you.Length()) {
			// Disqualified, but rank by how little space it grants.
			score = endgameCrampedPenalty + float64(ownSpace)
		} else {
			score = float64(ownSpace) -
				endgameOpponentSpaceWeight*float64(oppSpace) -
				endgameDistanceWeight*dist
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
	}
	return bestMove, true
}
