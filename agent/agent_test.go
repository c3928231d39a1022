package agent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// Test board construction helpers shared across the package tests.

func pt(x, y int32) game.Point { return game.Point{X: x, Y: y} }

func testSnake(id string, health int32, body ...game.Point) game.Snake {
	return game.Snake{Id: id, Health: health, Body: body}
}

// stacked builds a freshly spawned body: n segments on one cell.
func stacked(id string, health int32, p game.Point, n int) game.Snake {
	body := make([]game.Point, n)
	for i := range body {
		body[i] = p
	}
	return game.Snake{Id: id, Health: health, Body: body}
}

// column builds a body running straight down from the head.
func column(id string, health int32, head game.Point, n int) game.Snake {
	body := make([]game.Point, n)
	for i := range body {
		body[i] = game.Point{X: head.X, Y: head.Y - int32(i)}
	}
	return game.Snake{Id: id, Health: health, Body: body}
}

func testState(w, h int32, youId string, snakes ...game.Snake) *game.GameState {
	return &game.GameState{Width: w, Height: h, YouId: youId, Snakes: snakes}
}

func boardString(state *game.GameState) string {
	var b strings.Builder
	food := make(map[game.Point]bool, len(state.Food))
	for _, f := range state.Food {
		food[f] = true
	}
	hazard := make(map[game.Point]bool, len(state.Hazards))
	for _, hz := range state.Hazards {
		hazard[hz] = true
	}
	body := map[game.Point]byte{}
	for _, s := range state.Snakes {
		c := byte('s')
		if s.Id == state.YouId {
			c = 'o'
		}
		for i, p := range s.Body {
			if i == 0 {
				body[p] = c - 32 // head uppercase
			} else if _, seen := body[p]; !seen {
				body[p] = c
			}
		}
	}
	for y := state.Height - 1; y >= 0; y-- {
		for x := int32(0); x < state.Width; x++ {
			p := game.Point{X: x, Y: y}
			switch {
			case body[p] != 0:
				b.WriteByte(body[p])
			case food[p]:
				b.WriteByte('F')
			case hazard[p]:
				b.WriteByte('x')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func logBoard(t *testing.T, state *game.GameState) {
	t.Helper()
	t.Logf("board:\n%s", boardString(state))
}

func movesEqual(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func moveNames(moves []int) string {
	names := []string{"up", "down", "left", "right"}
	parts := make([]string, 0, len(moves))
	for _, m := range moves {
		if m >= 0 && m < len(names) {
			parts = append(parts, names[m])
		} else {
			parts = append(parts, fmt.Sprintf("?%d", m))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
