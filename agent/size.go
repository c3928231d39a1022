package agent

import (
	"math"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// GrowthMode is the per-turn growth policy derived from board and opponent
// statistics. It gates food-seeking and is recomputed from scratch every
// decision.
type GrowthMode int

const (
	// MustGrow: shorter than the largest opponent, so losing every
	// head-to-head. Growth is urgent.
	MustGrow GrowthMode = iota
	// ShouldGrow: below the target band.
	ShouldGrow
	// Maintain: within the buffer above the target band.
	Maintain
	// AvoidGrowth: clearly above the band; extra length only costs space.
	AvoidGrowth
)

func (m GrowthMode) String() string {
	switch m {
	case MustGrow:
		return "must-grow"
	case ShouldGrow:
		return "should-grow"
	case Maintain:
		return "maintain"
	case AvoidGrowth:
		return "avoid-growth"
	}
	return "unknown"
}

const (
	// dominanceBuffer is how far beyond the largest opponent we aim to grow.
	dominanceBuffer = 2.0
	// maintainBuffer is the band above target where length is held steady.
	maintainBuffer = 2.0

	boardSizeWeight     = 0.6
	dominanceWeight     = 0.8
	averageWeight       = 0.2
	opponentCostPerHead = 0.7
)

// TargetLength computes the body-length band to aim for: a weighted blend
// of board size, the largest opponent plus a dominance buffer, and the
// average opponent, discounted by how crowded the board is. The result is
// clamped to [max(5, largest opponent), 0.6 * board area].
func TargetLength(state *game.GameState, you *game.Snake) float64 {
	area := float64(state.Width) * float64(state.Height)

	opps := opponents(state, you)
	maxOpp := 0.0
	sumOpp := 0.0
	for _, o := range opps {
		l := float64(o.Length())
		sumOpp += l
		if l > maxOpp {
			maxOpp = l
		}
	}
	avgOpp := 0.0
	if len(opps) > 0 {
		avgOpp = sumOpp / float64(len(opps))
	}

	target := boardSizeWeight*math.Sqrt(area) +
		dominanceWeight*(maxOpp+dominanceBuffer) +
		averageWeight*avgOpp -
		opponentCostPerHead*float64(len(opps))

	floor := math.Max(5, maxOpp)
	ceil := 0.6 * area
	if target < floor {
		target = floor
	}
	if target > ceil {
		target = ceil
	}
	return target
}

// GrowthModeFor derives the four-valued growth policy for this turn.
func GrowthModeFor(state *game.GameState, you *game.Snake) GrowthMode {
	length := float64(you.Length())
	target := TargetLength(state, you)

	maxOpp := 0.0
	for _, o := range opponents(state, you) {
		if l := float64(o.Length()); l > maxOpp {
			maxOpp = l
		}
	}

	switch {
	case length < maxOpp:
		return MustGrow
	case length < target:
		return ShouldGrow
	case length <= target+maintainBuffer:
		return Maintain
	default:
		return AvoidGrowth
	}
}
