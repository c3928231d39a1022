package agent

import (
	"sort"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// FindNearestSmallerSnake selects the closest opponent that is strictly
// shorter than us and whose head is reachable. The bool return is false
// when no such opponent exists.
func FindNearestSmallerSnake(state *game.GameState, you *game.Snake) (*game.Snake, bool) {
	if you == nil || len(you.Body) == 0 {
		return nil, false
	}
	head := you.Body[0]

	smaller := []*game.Snake{}
	for _, o := range opponents(state, you) {
		if o.Length() < you.Length() {
			smaller = append(smaller, o)
		}
	}
	sort.Slice(smaller, func(i, j int) bool {
		return game.ManhattanDistance(head, smaller[i].Head()) < game.ManhattanDistance(head, smaller[j].Head())
	})

	for _, o := range smaller {
		if FindPath(state, you, head, o.Head()) != nil {
			return o, true
		}
	}
	return nil, false
}

// ShouldTargetOpponents gates aggression on being healthy enough to spend
// turns hunting and on a smaller opponent actually existing.
func ShouldTargetOpponents(state *game.GameState, you *game.Snake) bool {
	if you.Health < healthAggression {
		return false
	}
	for _, o := range opponents(state, you) {
		if o.Length() < you.Length() {
			return true
		}
	}
	return false
}

// GetMoveTowardsOpponent returns the first step of the A* path to the
// opponent's head, provided it is among the allowed candidate moves.
func GetMoveTowardsOpponent(state *game.GameState, you *game.Snake, target *game.Snake, allowed []int) (int, bool) {
	if target == nil || len(target.Body) == 0 {
		return 0, false
	}
	return moveAlongPath(state, you, target.Head(), allowed)
}
