package agent

import (
	"testing"

	"github.com/jj-bali/battlesnake-team-10/rules"
)

func TestGreedySpaceMove_PicksLargerRegion(t *testing.T) {
	// Left enters a one-cell corner pocket, right keeps the open board.
	state := testState(11, 11, "me",
		testSnake("me", 100, pt(1, 0), pt(1, 1), pt(0, 1), pt(0, 2), pt(0, 3), pt(0, 4)))
	you := state.You()

	move, ok := greedySpaceMove(state, you)
	if !ok || move != rules.MoveRight {
		logBoard(t, state)
		t.Fatalf("move=%s ok=%v want=right", moveNames([]int{move}), ok)
	}
}

func TestEscapeRouteReduction(t *testing.T) {
	open := testState(11, 11, "me", testSnake("me", 100, pt(5, 5), pt(5, 4), pt(5, 3)))
	if got := escapeRouteReduction(open, open.You()); got != 2.0 {
		t.Fatalf("open board reduction=%v want=2 (neck blocks one of four)", got)
	}

	corner := testState(11, 11, "me", testSnake("me", 100, pt(0, 0), pt(0, 1), pt(0, 2)))
	if got := escapeRouteReduction(corner, corner.You()); got != 6.0 {
		t.Fatalf("corner reduction=%v want=6", got)
	}
}

func TestBestPredictedMove_PunishesDying(t *testing.T) {
	// The first-listed candidate walks off the board; the simulation should
	// rank the surviving candidate above it despite tie-break order.
	state := testState(11, 11, "me", testSnake("me", 100, pt(5, 0), pt(5, 1), pt(5, 2)))
	you := state.You()

	move, ok := BestPredictedMove(state, you, []int{rules.MoveDown, rules.MoveLeft})
	if !ok || move != rules.MoveLeft {
		t.Fatalf("move=%s ok=%v want=left", moveNames([]int{move}), ok)
	}
}

func TestSimulateMoveScore_TrappedSnakeScoresZero(t *testing.T) {
	// Head boxed in the corner by its own body: the position is terminal
	// before the first simulated step, so no turn contributes any score.
	state := testState(11, 11, "me",
		testSnake("me", 100, pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0)))

	if got := simulateMoveScore(state, "me", rules.MoveUp, lookaheadDepth); got != 0 {
		logBoard(t, state)
		t.Fatalf("score=%v want=0", got)
	}
}

func TestSimulateMoveScore_UsesGivenPerspective(t *testing.T) {
	// The state's ego id differs from the simulated snake; the simulation
	// must still score from the given snake's side.
	state := testState(11, 11, "other",
		testSnake("me", 100, pt(5, 5), pt(5, 4), pt(5, 3)),
		testSnake("other", 100, pt(9, 9), pt(9, 8), pt(9, 7)))

	if got := simulateMoveScore(state, "me", rules.MoveUp, 1); got == 0 {
		t.Fatal("expected a nonzero space-control score")
	}
}

func TestBestPredictedMove_TiesResolveToFirstCandidate(t *testing.T) {
	// Freshly spawned snake mid-board: every direction scores identically.
	state := testState(11, 11, "me", stacked("me", 100, pt(5, 5), 3))
	you := state.You()

	candidates := SafeMoves(state, you)
	move, ok := BestPredictedMove(state, you, candidates)
	if !ok || move != candidates[0] {
		t.Fatalf("move=%s ok=%v want first candidate %s",
			moveNames([]int{move}), ok, moveNames(candidates[:1]))
	}
}

func TestBestPredictedMove_WithOpponentReturnsCandidate(t *testing.T) {
	state := testState(11, 11, "me",
		testSnake("me", 100, pt(3, 5), pt(3, 4), pt(3, 3)),
		testSnake("opp", 100, pt(8, 5), pt(8, 4), pt(8, 3)))
	you := state.You()

	candidates := SafeMoves(state, you)
	move, ok := BestPredictedMove(state, you, candidates)
	if !ok {
		t.Fatal("expected a move")
	}
	found := false
	for _, m := range candidates {
		if m == move {
			found = true
		}
	}
	if !found {
		t.Fatalf("move=%s not among candidates %s", moveNames([]int{move}), moveNames(candidates))
	}
}

func TestAdvanceOne_OnlyMovesTargetSnake(t *testing.T) {
	state := testState(11, 11, "me",
		testSnake("me", 100, pt(3, 5), pt(3, 4), pt(3, 3)),
		testSnake("opp", 100, pt(8, 5), pt(8, 4), pt(8, 3)))

	next, moved := advanceOne(state, "me", rules.MoveUp)
	if moved == nil {
		t.Fatal("moved snake missing from next state")
	}
	if moved.Head() != pt(3, 6) {
		t.Fatalf("head=%v want=(3,6)", moved.Head())
	}
	for i := range next.Snakes {
		if next.Snakes[i].Id == "opp" && next.Snakes[i].Head() != pt(8, 5) {
			t.Fatalf("opponent moved to %v", next.Snakes[i].Head())
		}
	}
}
