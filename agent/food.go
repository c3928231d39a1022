package agent

import (
	"sort"

	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// FindNearestFood selects the closest food cell (by Manhattan distance)
// that is both reachable and survivable after consumption. The bool return
// is false when no food qualifies.
func FindNearestFood(state *game.GameState, you *game.Snake) (game.Point, bool) {
	if you == nil || len(you.Body) == 0 || len(state.Food) == 0 {
		return game.Point{}, false
	}
	head := you.Body[0]

	candidates := make([]game.Point, len(state.Food))
	copy(candidates, state.Food)
	sort.Slice(candidates, func(i, j int) bool {
		return game.ManhattanDistance(head, candidates[i]) < game.ManhattanDistance(head, candidates[j])
	})

	for _, f := range candidates {
		if FindPath(state, you, head, f) == nil {
			continue
		}
		if !IsFoodSafeToEat(state, you, f) {
			continue
		}
		return f, true
	}
	return game.Point{}, false
}

// IsFoodSafeToEat simulates having just eaten the food and checks whether
// the position is survivable: the simulated snake's head sits on the food
// cell, the tail is frozen (growth), and health is full. We then look at
// the four neighbors of the new head, counting those that are immediately
// safe and those opening into space at least as large as the grown body.
//
// Desperate snakes (health below the desperation threshold) accept any
// position with one safe exit. Otherwise we require either a spacious exit
// or two distinct safe exits, so a single dead-end corridor is rejected.
func IsFoodSafeToEat(state *game.GameState, you *game.Snake, food game.Point) bool {
	sim := state.Clone()
	var simYou *game.Snake
	for i := range sim.Snakes {
		if sim.Snakes[i].Id == you.Id {
			simYou = &sim.Snakes[i]
			break
		}
	}
	if simYou == nil {
		return false
	}

	grown := make([]game.Point, 0, len(you.Body)+1)
	grown = append(grown, food)
	grown = append(grown, you.Body...)
	simYou.Body = grown
	simYou.Health = 100

	// The food is gone in the simulated world.
	remaining := sim.Food[:0]
	for _, f := range sim.Food {
		if f != food {
			remaining = append(remaining, f)
		}
	}
	sim.Food = remaining

	safeExits := 0
	spaciousExits := 0
	for _, m := range rules.AllMoves {
		next := rules.ApplyMove(food, m)
		if !IsSafeCell(sim, simYou, next) {
			continue
		}
		safeExits++
		space := ReachableSpace(sim, simYou, next, LenientPassable)
		if space >= int(simYou.Length()) {
			spaciousExits++
		}
	}

	if you.Health < healthDesperate {
		return safeExits >= 1
	}
	return spaciousExits >= 1 || safeExits >= 2
}

// ShouldSeekFood gates food-seeking on health and the growth policy. An
// avoid-growth policy suppresses seeking entirely unless health is
// critically low.
func ShouldSeekFood(you *game.Snake, mode GrowthMode) bool {
	if mode == AvoidGrowth {
		return you.Health < healthDesperate
	}
	if you.Health < healthMaintenance {
		return true
	}
	return mode == MustGrow || mode == ShouldGrow
}

// GetMoveTowardsFood returns the first step of the A* path to the food,
// provided that step is among the allowed candidate moves.
func GetMoveTowardsFood(state *game.GameState, you *game.Snake, food game.Point, allowed []int) (int, bool) {
	return moveAlongPath(state, you, food, allowed)
}

// moveAlongPath converts an A* path to goal into a direction, keeping only
// directions the caller still permits.
func moveAlongPath(state *game.GameState, you *game.Snake, goal game.Point, allowed []int) (int, bool) {
	if you == nil || len(you.Body) == 0 {
		return 0, false
	}
	path := FindPath(state, you, you.Body[0], goal)
	if len(path) < 2 {
		return 0, false
	}
	move, ok := rules.MoveFromPoints(path[0], path[1])
	if !ok {
		return 0, false
	}
	for _, m := range allowed {
		if m == move {
			return move, true
		}
	}
	return 0, false
}
