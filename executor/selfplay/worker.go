// Package selfplay runs the heuristic engine against itself and records the
// resulting games for offline analysis.
package selfplay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jj-bali/battlesnake-team-10/agent"
	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/rules"
	"github.com/jj-bali/battlesnake-team-10/store"
)

type GameResult struct {
	WinnerId string
	Steps    int
}

// maxGameTurns aborts degenerate games where neither snake can finish the
// other off.
const maxGameTurns = 2000

// PlayGame plays one full two-snake game and returns the recorded turns.
// It returns nil rows if the context is cancelled mid-game.
func PlayGame(ctx context.Context, workerId int, verbose bool, onStep func()) ([]store.ArchiveTurnRow, GameResult) {
	rngSeed := time.Now().UnixNano() + int64(workerId)*1000003
	rng := rand.New(rand.NewSource(rngSeed))

	state := createInitialState(rng)
	gameID := fmt.Sprintf("selfplay_%d_%d", time.Now().UnixNano(), workerId)

	// One engine per snake, each with its own rng stream.
	engines := make(map[string]*agent.Engine, len(state.Snakes))
	for _, s := range state.Snakes {
		engines[s.Id] = agent.New(slog.New(slog.NewTextHandler(io.Discard, nil)), rand.New(rand.NewSource(rng.Int63())))
	}

	rows := make([]store.ArchiveTurnRow, 0, 256)

	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, GameResult{Steps: int(state.Turn)}
			default:
			}
		}

		if verbose {
			PrintBoard(state)
		}

		if rules.IsGameOver(state) || state.Turn >= maxGameTurns {
			break
		}

		moves := make(map[string]int, len(state.Snakes))
		reasons := make(map[string]string, len(state.Snakes))
		for _, s := range state.Snakes {
			if s.Health <= 0 {
				continue
			}
			perspective := state.Clone()
			perspective.YouId = s.Id
			move, shout := engines[s.Id].Decide(perspective)
			moves[s.Id] = move
			reasons[s.Id] = shout
		}

		rows = append(rows, store.RowFromState(gameID, "selfplay", state, moves, reasons))

		state = rules.NextStateSimultaneousWithFoodSettings(state, moves, rng, rules.DefaultFoodSettings)

		if onStep != nil {
			onStep()
		}
	}

	// Final frame, no moves.
	rows = append(rows, store.RowFromState(gameID, "selfplay", state, nil, nil))

	winner := ""
	for _, s := range state.Snakes {
		if s.Health > 0 {
			winner = s.Id
		}
	}
	return rows, GameResult{WinnerId: winner, Steps: int(state.Turn)}
}

// createInitialState spawns two stacked-body snakes in opposite corners of
// a standard 11x11 board, with food near each spawn plus one center food,
// mirroring the official engine's fixed start.
func createInitialState(rng *rand.Rand) *game.GameState {
	state := &game.GameState{
		Width:  11,
		Height: 11,
		Turn:   0,
	}

	spawns := []game.Point{{X: 1, Y: 1}, {X: 9, Y: 9}}
	for i, p := range spawns {
		state.Snakes = append(state.Snakes, game.Snake{
			Id:     fmt.Sprintf("snake_%d", i),
			Health: 100,
			Body:   []game.Point{p, p, p},
		})
	}
	state.YouId = state.Snakes[0].Id

	state.Food = []game.Point{{X: 0, Y: 2}, {X: 10, Y: 8}, {X: 5, Y: 5}}

	// A little variance so games don't all open identically.
	rules.ApplyFoodSettings(state, rng, rules.FoodSettings{MinimumFood: 4, FoodSpawnChance: 0})

	return state
}
