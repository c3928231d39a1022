// visualize.go - Console visualization for debugging self-play games.
package selfplay

import (
	"fmt"
	"log"
	"strings"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// PrintBoard logs an ASCII representation of the board: O/o is the ego
// snake (head/body), S/s the others, F food, x hazards.
func PrintBoard(state *game.GameState) {
	grid := make([][]string, state.Height)
	for y := range grid {
		grid[y] = make([]string, state.Width)
		for x := range grid[y] {
			grid[y][x] = "."
		}
	}

	for _, h := range state.Hazards {
		if state.InBounds(h) {
			grid[h.Y][h.X] = "x"
		}
	}

	for _, f := range state.Food {
		if state.InBounds(f) {
			grid[f.Y][f.X] = "F"
		}
	}

	for _, s := range state.Snakes {
		char := "s"
		headChar := "S"
		if s.Id == state.YouId {
			char = "o"
			headChar = "O"
		}
		for i, p := range s.Body {
			if !state.InBounds(p) {
				continue
			}
			if i == 0 {
				grid[p.Y][p.X] = headChar
			} else {
				grid[p.Y][p.X] = char
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n=== Turn %d (you_id=%s) ===\n", state.Turn, state.YouId))
	for y := state.Height - 1; y >= 0; y-- {
		for x := int32(0); x < state.Width; x++ {
			sb.WriteString(grid[y][x] + " ")
		}
		sb.WriteString("\n")
	}
	for _, s := range state.Snakes {
		sb.WriteString(fmt.Sprintf("%s health=%d len=%d\n", s.Id, s.Health, len(s.Body)))
	}
	log.Print(sb.String())
}
