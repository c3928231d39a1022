package agent

import (
	"testing"

	"github.com/jj-bali/battlesnake-team-10/game"
)

func TestReachableSpace_OpenBoard(t *testing.T) {
	state := testState(5, 5, "me", stacked("me", 100, pt(2, 2), 3))
	you := state.You()

	// Everything except the occupied cell is reachable from a free corner.
	got := ReachableSpace(state, you, pt(0, 0), LenientPassable)
	if got != 24 {
		t.Fatalf("space=%d want=24", got)
	}
}

func TestReachableSpace_EnclosedCellIsOne(t *testing.T) {
	// (0,0) walled in by body segments on (1,0) and (0,1).
	state := testState(7, 7, "me",
		stacked("me", 100, pt(5, 5), 3),
		testSnake("wall", 100, pt(2, 0), pt(1, 0), pt(1, 1), pt(0, 1), pt(0, 2), pt(0, 3)))
	you := state.You()

	got := ReachableSpace(state, you, pt(0, 0), LenientPassable)
	if got != 1 {
		logBoard(t, state)
		t.Fatalf("space=%d want=1", got)
	}
}

func TestReachableSpace_OutOfBoundsStart(t *testing.T) {
	state := testState(5, 5, "me", stacked("me", 100, pt(2, 2), 3))
	if got := ReachableSpace(state, state.You(), pt(-1, 0), LenientPassable); got != 0 {
		t.Fatalf("space=%d want=0", got)
	}
}

func TestLenientPassable_TailsOfEverySnake(t *testing.T) {
	state := testState(7, 7, "me",
		testSnake("me", 100, pt(3, 3), pt(3, 2), pt(3, 1)),
		testSnake("opp", 100, pt(5, 5), pt(5, 4), pt(5, 3)))
	you := state.You()

	if !LenientPassable(state, you, pt(3, 1)) {
		t.Fatal("own tail should be leniently passable")
	}
	if !LenientPassable(state, you, pt(5, 3)) {
		t.Fatal("opponent tail should be leniently passable")
	}
	if LenientPassable(state, you, pt(5, 4)) {
		t.Fatal("opponent mid-body should block")
	}
}

func TestStrictVersusLenient_HeadProximity(t *testing.T) {
	// Cell next to an equal-length opponent head: strict refuses, lenient
	// counts it as space.
	state := testState(11, 11, "me",
		testSnake("me", 100, pt(2, 2), pt(1, 2), pt(0, 2)),
		testSnake("opp", 100, pt(4, 2), pt(5, 2), pt(6, 2)))
	you := state.You()
	shared := game.Point{X: 3, Y: 2}

	if StrictPassable(state, you, shared) {
		t.Fatal("strict passability should refuse the contested cell")
	}
	if !LenientPassable(state, you, shared) {
		t.Fatal("lenient passability should allow the contested cell")
	}
}

func TestReachableSpace_HazardsBlockFill(t *testing.T) {
	// A hazard column splits a 5x1 strip in two.
	state := testState(5, 1, "me", stacked("me", 100, pt(4, 0), 2))
	state.Hazards = []game.Point{{X: 2, Y: 0}}
	you := state.You()

	if got := ReachableSpace(state, you, pt(0, 0), LenientPassable); got != 2 {
		t.Fatalf("space=%d want=2", got)
	}
}
