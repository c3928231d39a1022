package agent

import (
	"math"
	"testing"
)

func TestTargetLength_FloorOfFive(t *testing.T) {
	// Tiny empty board: the raw target is far below the hard floor.
	state := testState(3, 3, "me", stacked("me", 100, pt(1, 1), 3))
	you := state.You()

	got := TargetLength(state, you)
	if got != 5 {
		t.Fatalf("target=%v want=5 (floor)", got)
	}
}

func TestTargetLength_FloorIsLargestOpponent(t *testing.T) {
	state := testState(11, 11, "me",
		stacked("me", 100, pt(1, 1), 3),
		column("big", 100, pt(9, 10), 11))
	you := state.You()

	got := TargetLength(state, you)
	// Raw: 0.6*11 + 0.8*13 + 0.2*11 - 0.7 = 18.7, above the length-11
	// opponent floor, so no clamp fires here.
	want := 0.6*math.Sqrt(121) + 0.8*(11+2) + 0.2*11 - 0.7
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("target=%v want=%v", got, want)
	}
	if got < 11 {
		t.Fatalf("target=%v must not fall below the largest opponent", got)
	}
}

func TestTargetLength_CeilingOfBoardArea(t *testing.T) {
	// A huge opponent on a small board pushes the raw target past the
	// 60%-of-area ceiling.
	opp := stacked("big", 100, pt(4, 4), 30)
	state := testState(5, 5, "me", stacked("me", 100, pt(0, 0), 3), opp)
	you := state.You()

	got := TargetLength(state, you)
	want := 0.6 * 25.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("target=%v want=%v (ceiling)", got, want)
	}
}

func TestTargetLength_EmptyBoardDependsOnAreaOnly(t *testing.T) {
	state := testState(11, 11, "me", stacked("me", 100, pt(5, 5), 3))
	you := state.You()

	got := TargetLength(state, you)
	want := 0.6 * math.Sqrt(121)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("target=%v want=%v", got, want)
	}
}

func TestGrowthModeFor_Ladder(t *testing.T) {
	mk := func(youLen, oppLen int) GrowthMode {
		state := testState(11, 11, "me", stacked("me", 100, pt(1, 1), youLen))
		if oppLen > 0 {
			state.Snakes = append(state.Snakes, stacked("opp", 100, pt(9, 9), oppLen))
		}
		return GrowthModeFor(state, state.You())
	}

	if got := mk(3, 8); got != MustGrow {
		t.Fatalf("shorter than opponent: mode=%v want=must-grow", got)
	}
	if got := mk(3, 0); got != ShouldGrow {
		t.Fatalf("below target: mode=%v want=should-grow", got)
	}
	// Empty-board target is 6.6; 7 and 8 sit inside the maintain band,
	// 9 is past it.
	if got := mk(7, 0); got != Maintain {
		t.Fatalf("inside band: mode=%v want=maintain", got)
	}
	if got := mk(8, 0); got != Maintain {
		t.Fatalf("band edge: mode=%v want=maintain", got)
	}
	if got := mk(9, 0); got != AvoidGrowth {
		t.Fatalf("past band: mode=%v want=avoid-growth", got)
	}
}

func TestGrowthMode_String(t *testing.T) {
	cases := map[GrowthMode]string{
		MustGrow:      "must-grow",
		ShouldGrow:    "should-grow",
		Maintain:      "maintain",
		AvoidGrowth:   "avoid-growth",
		GrowthMode(9): "unknown",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("String(%d)=%q want=%q", int(mode), got, want)
		}
	}
}
