package rules

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// FoodSettings matches the common Battlesnake server knobs:
// - MinimumFood: ensure at least this many food items exist after each turn
// - FoodSpawnChance: percentage chance (0-100) to spawn one extra food each turn
//
// The rng parameter lets callers choose true randomness for self-play or
// deterministic pseudo-randomness (rng == nil) for tests.
type FoodSettings struct {
	MinimumFood     int
	FoodSpawnChance int
}

// DefaultFoodSettings matches the official engine defaults.
var DefaultFoodSettings = FoodSettings{MinimumFood: 1, FoodSpawnChance: 15}

// NextStateWithFoodSettings advances YouId by one move and then applies food
// spawning. Primarily a test and tooling convenience.
func NextStateWithFoodSettings(state *game.GameState, move int, rng *rand.Rand, settings FoodSettings) *game.GameState {
	next := NextState(state, move)
	ApplyFoodSettings(next, rng, settings)
	return next
}

// NextStateSimultaneousWithFoodSettings advances all snakes and then applies
// food spawning. This is the transition used by the self-play harness.
func NextStateSimultaneousWithFoodSettings(state *game.GameState, moves map[string]int, rng *rand.Rand, settings FoodSettings) *game.GameState {
	next := NextStateSimultaneous(state, moves)
	ApplyFoodSettings(next, rng, settings)
	return next
}

// ApplyFoodSettings spawns food onto free cells until MinimumFood is met,
// plus one extra with FoodSpawnChance probability. Food never spawns on a
// snake, a hazard, or existing food.
func ApplyFoodSettings(state *game.GameState, rng *rand.Rand, settings FoodSettings) {
	if state == nil || state.Width <= 0 || state.Height <= 0 {
		return
	}
	if settings.MinimumFood < 0 {
		settings.MinimumFood = 0
	}
	if settings.FoodSpawnChance < 0 {
		settings.FoodSpawnChance = 0
	}
	if settings.FoodSpawnChance > 100 {
		settings.FoodSpawnChance = 100
	}

	deficit := settings.MinimumFood - len(state.Food)
	if deficit < 0 {
		deficit = 0
	}

	spawnExtra := false
	if settings.FoodSpawnChance > 0 {
		if rng != nil {
			spawnExtra = rng.Intn(100) < settings.FoodSpawnChance
		} else {
			spawnExtra = int(stateDigest(state, 0xF00D)%100) < settings.FoodSpawnChance
		}
	}

	if deficit == 0 && !spawnExtra {
		return
	}

	if rng == nil {
		seed := int64(stateDigest(state, 0x464F4F445F494E49)) // "FOOD_INI"
		if seed == 0 {
			seed = 1
		}
		rng = rand.New(rand.NewSource(seed))
	}

	occupied := make(map[game.Point]struct{}, int(state.Width*state.Height))
	for _, s := range state.Snakes {
		if s.Health <= 0 {
			continue
		}
		for _, p := range s.Body {
			occupied[p] = struct{}{}
		}
	}
	for _, f := range state.Food {
		occupied[f] = struct{}{}
	}
	for _, h := range state.Hazards {
		occupied[h] = struct{}{}
	}

	available := make([]game.Point, 0, int(state.Width*state.Height))
	for y := int32(0); y < state.Height; y++ {
		for x := int32(0); x < state.Width; x++ {
			p := game.Point{X: x, Y: y}
			if _, ok := occupied[p]; ok {
				continue
			}
			available = append(available, p)
		}
	}

	spawnOne := func() {
		if len(available) == 0 {
			return
		}
		i := rng.Intn(len(available))
		state.Food = append(state.Food, available[i])
		available[i] = available[len(available)-1]
		available = available[:len(available)-1]
	}

	for ; deficit > 0; deficit-- {
		spawnOne()
		if len(available) == 0 {
			break
		}
	}
	if spawnExtra {
		spawnOne()
	}
}

// stateDigest is a cheap deterministic hash of the state, used to keep the
// transition function stable when no rng is supplied.
func stateDigest(state *game.GameState, salt uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(uint32(state.Width))|(uint64(uint32(state.Height))<<32))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(uint32(state.Turn)))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], salt)
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(state.Food)))
	_, _ = h.Write(buf[:])

	for _, s := range state.Snakes {
		if s.Health <= 0 || len(s.Body) == 0 {
			continue
		}
		_, _ = h.Write([]byte(s.Id))
		head := s.Body[0]
		binary.LittleEndian.PutUint64(buf[:], (uint64(uint32(head.X))<<32)|uint64(uint32(head.Y)))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
