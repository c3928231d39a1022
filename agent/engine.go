// Package agent implements the per-turn move-decision engine.
//
// Given a full board snapshot the engine picks one of the four cardinal
// moves, arbitrating between survival, feeding, hunting, and endgame
// space-denial. Decisions are pure functions of the snapshot: the engine
// holds no game state between turns, and each call draws randomness from
// its own source, so one instance can serve concurrent matches.
package agent

import (
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
)

// Engine is the top-level move decider.
type Engine struct {
	log  *slog.Logger
	seed atomic.Int64

	// UseLookahead enables the bounded forward simulation for the final
	// space-maximization fallback. Disable for minimum latency.
	UseLookahead bool
}

// New returns an engine. A nil logger discards decision traces. The rng,
// if given, only seeds the engine; it is not retained, so callers may
// pass one without worrying about sharing it.
func New(log *slog.Logger, rng *rand.Rand) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{log: log, UseLookahead: true}
	if rng != nil {
		e.seed.Store(rng.Int63())
	} else {
		e.seed.Store(rand.Int63())
	}
	return e
}

// decisionRand returns a rand source private to one Decide call.
// math/rand.Rand is not safe for concurrent use, so the engine never
// shares one between handler goroutines; each call gets its own,
// seeded from an atomic counter.
func (e *Engine) decisionRand() *rand.Rand {
	// 0x9e3779b97f4a7c15 as an int64 (the untyped constant overflows).
	return rand.New(rand.NewSource(e.seed.Add(-0x61c8864680b583eb)))
}

// Decide picks a move for the snapshot's ego snake. It never fails: every
// no-solution condition degrades to a weaker fallback, ending in a random
// in-bounds-or-not direction, so a valid move token is always produced.
// The shout string is a short status with no gameplay effect.
func (e *Engine) Decide(state *game.GameState) (int, string) {
	you := state.You()
	if you == nil || len(you.Body) == 0 {
		return rules.AllMoves[e.decisionRand().Intn(4)], "lost"
	}

	safe := SafeMoves(state, you)
	if len(safe) == 0 {
		return e.lastResort(state, you)
	}

	mode := GrowthModeFor(state, you)

	// Prefer moves that open into at least a body's worth of space; if
	// everything is cramped, keep the full safe set rather than none.
	candidates := e.spaciousMoves(state, you, safe)
	if len(candidates) == 0 {
		candidates = safe
	}

	if EndgameActive(state, you) {
		if move, ok := EndgameMove(state, you, candidates); ok {
			e.trace(state, move, "endgame", mode)
			return move, "endgame"
		}
	}

	if you.Health < healthDesperate || mode == MustGrow || mode == ShouldGrow {
		if ShouldSeekFood(you, mode) {
			if food, ok := FindNearestFood(state, you); ok {
				if move, ok := GetMoveTowardsFood(state, you, food, candidates); ok {
					e.trace(state, move, "food", mode)
					return move, "food"
				}
			}
		}
	}

	if ShouldTargetOpponents(state, you) {
		if target, ok := FindNearestSmallerSnake(state, you); ok {
			if move, ok := GetMoveTowardsOpponent(state, you, target, candidates); ok {
				e.trace(state, move, "hunt", mode)
				return move, "hunt"
			}
		}
	}

	// Default health-maintenance feed. Possibly redundant with the gated
	// pass above; kept because the gates differ when health sits between
	// the desperation and maintenance thresholds.
	if mode != AvoidGrowth {
		if food, ok := FindNearestFood(state, you); ok {
			if move, ok := GetMoveTowardsFood(state, you, food, candidates); ok {
				e.trace(state, move, "graze", mode)
				return move, "graze"
			}
		}
	}

	if e.UseLookahead {
		if move, ok := BestPredictedMove(state, you, candidates); ok {
			e.trace(state, move, "lookahead", mode)
			return move, "lookahead"
		}
	}

	move := e.maxSpaceMove(state, you, candidates)
	e.trace(state, move, "space", mode)
	return move, "space"
}

// lastResort handles the zero-safe-moves case: first any move that misses
// our own body, then any in-bounds move, then a random direction.
func (e *Engine) lastResort(state *game.GameState, you *game.Snake) (int, string) {
	if moves := MovesAvoidingSelf(state, you); len(moves) > 0 {
		e.log.Debug("no safe moves, avoiding self", slog.Int64("turn", int64(state.Turn)))
		return moves[0], "cornered"
	}
	if moves := MovesInBounds(state, you); len(moves) > 0 {
		e.log.Debug("no safe moves, staying in bounds", slog.Int64("turn", int64(state.Turn)))
		return moves[0], "cornered"
	}
	move := rules.AllMoves[e.decisionRand().Intn(4)]
	e.log.Debug("no survivable moves", slog.Int64("turn", int64(state.Turn)))
	return move, "doomed"
}

func (e *Engine) spaciousMoves(state *game.GameState, you *game.Snake, safe []int) []int {
	out := []int{}
	for _, m := range safe {
		space := ReachableSpace(state, you, rules.ApplyMove(you.Head(), m), LenientPassable)
		if space >= int(you.Length()) {
			out = append(out, m)
		}
	}
	return out
}

func (e *Engine) maxSpaceMove(state *game.GameState, you *game.Snake, candidates []int) int {
	best := candidates[0]
	bestSpace := -1
	for _, m := range candidates {
		space := ReachableSpace(state, you, rules.ApplyMove(you.Head(), m), LenientPassable)
		if space > bestSpace {
			bestSpace = space
			best = m
		}
	}
	return best
}

func (e *Engine) trace(state *game.GameState, move int, reason string, mode GrowthMode) {
	e.log.Debug("move decided",
		slog.Int64("turn", int64(state.Turn)),
		slog.String("move", rules.MoveName(move)),
		slog.String("reason", reason),
		slog.String("growth_mode", mode.String()),
	)
}
