package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// lineLevel builds a 3x1 level of horizontal straights.
func lineLevel() *core.Level {
	g := core.NewGrid(3, 1)
	for x := 0; x < 3; x++ {
		g.Place(core.C(x, 0), core.TileStraight, 90)
	}
	return &core.Level{
		Grid:             g,
		Start:            core.C(0, 0),
		End:              core.C(2, 0),
		SolvedPathLength: 3,
	}
}

func TestSolveStraightLine(t *testing.T) {
	res := core.SolvePuzzle(lineLevel())

	if !res.Solved {
		t.Fatalf("expected solved, got %q", res.Message)
	}
	if res.PathLength != 3 || len(res.Path) != 3 {
		t.Errorf("expected path length 3, got %d (%d steps)", res.PathLength, len(res.Path))
	}
	if res.Path[0].Dir != core.DirNone || res.Path[1].Dir != core.DirEast || res.Path[2].Dir != core.DirEast {
		t.Errorf("unexpected directions: %+v", res.Path)
	}
	if res.Message != "Puzzle solved! Path length: 3" {
		t.Errorf("unexpected message %q", res.Message)
	}
	if res.ExploredNodes != 3 {
		t.Errorf("expected 3 explored nodes, got %d", res.ExploredNodes)
	}
}

func TestSolveBrokenLine(t *testing.T) {
	level := lineLevel()
	level.Grid.At(core.C(1, 0)).Rotation = 0

	res := core.SolvePuzzle(level)
	if res.Solved {
		t.Fatal("expected unsolved with vertical middle tile")
	}
	if len(res.Path) != 0 || res.PathLength != 0 {
		t.Errorf("unsolved result carries a path: %+v", res.Path)
	}
	if !strings.Contains(res.Message, "no path found") {
		t.Errorf("unexpected message %q", res.Message)
	}
	if res.ExploredNodes != 1 {
		t.Errorf("expected 1 explored node, got %d", res.ExploredNodes)
	}
}

func TestSolveOneWayConnection(t *testing.T) {
	g := core.NewGrid(2, 1)
	g.Place(core.C(0, 0), core.TileStraight, 90) // E|W
	g.Place(core.C(1, 0), core.TileCorner, 0)    // N|E, no west

	res := core.Solve(g, core.C(0, 0), core.C(1, 0), false)
	if res.Solved {
		t.Error("solver followed a one-way connection")
	}
}

func TestSolveOutsideGrid(t *testing.T) {
	level := lineLevel()
	level.End = core.C(3, 0)

	res := core.SolvePuzzle(level)
	if res.Solved {
		t.Fatal("expected unsolved with end outside grid")
	}
	if !strings.Contains(res.Message, "outside the grid") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestSolveShortestPath(t *testing.T) {
	g := core.NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Place(core.C(x, y), core.TileFourWay, 0)
		}
	}

	res := core.Solve(g, core.C(0, 0), core.C(2, 2), false)
	if !res.Solved {
		t.Fatalf("expected solved, got %q", res.Message)
	}
	if res.PathLength != 5 {
		t.Errorf("expected shortest path of 5 cells, got %d", res.PathLength)
	}

	// North, East, South, West expansion order fixes the route.
	want := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(2, 1), core.C(2, 2)}
	got := res.Path.Coords()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, got)
		}
	}
}

func TestSolveDoesNotModifyLevel(t *testing.T) {
	level := generate(t, core.DifficultyMedium, core.Options{Seed: 31})
	before := level.Grid.Clone()

	core.SolvePuzzle(level)
	if !level.Grid.Equal(before) {
		t.Error("solver modified the grid")
	}
}

// crossLevel is a 2x2 grid where the only route turns inside a
// criss-cross tile: west into (1,1), then north to (1,0).
func crossLevel() *core.Level {
	g := core.NewGrid(2, 2)
	g.Place(core.C(0, 1), core.TileStraight, 90)
	g.Place(core.C(1, 1), core.TileCrissCross, 0)
	g.Place(core.C(1, 0), core.TileStraight, 0)
	return &core.Level{
		Grid:             g,
		Start:            core.C(0, 1),
		End:              core.C(1, 0),
		SolvedPathLength: 3,
	}
}

func TestSolveCrissCrossLenient(t *testing.T) {
	res := core.SolvePuzzle(crossLevel())
	if !res.Solved || res.PathLength != 3 {
		t.Errorf("expected lenient solve of length 3, got solved=%v length=%d", res.Solved, res.PathLength)
	}
}

func TestSolveCrissCrossStrict(t *testing.T) {
	level := crossLevel()
	level.StrictCrissCross = true

	if res := core.SolvePuzzle(level); res.Solved {
		t.Error("strict mode allowed a turn inside a criss-cross tile")
	}
}

func TestSolveCrissCrossStrictStraightThrough(t *testing.T) {
	g := core.NewGrid(3, 1)
	g.Place(core.C(0, 0), core.TileStraight, 90)
	g.Place(core.C(1, 0), core.TileCrissCross, 0)
	g.Place(core.C(2, 0), core.TileStraight, 90)

	for _, strict := range []bool{false, true} {
		res := core.Solve(g, core.C(0, 0), core.C(2, 0), strict)
		if !res.Solved || res.PathLength != 3 {
			t.Errorf("strict=%v: expected solve of length 3, got solved=%v length=%d", strict, res.Solved, res.PathLength)
		}
	}
}

// Both wires of a criss-cross can carry the path in strict mode.
func TestSolveCrissCrossStrictReuse(t *testing.T) {
	// Route: east through the cross at (1,1), around the loop (2,1),
	// (2,0), (1,0), then south through the cross again to (1,2).
	g := core.NewGrid(3, 3)
	g.Place(core.C(0, 1), core.TileStraight, 90)  // E|W
	g.Place(core.C(1, 1), core.TileCrissCross, 0) // N|S and E|W
	g.Place(core.C(2, 1), core.TileCorner, 270)   // W|N
	g.Place(core.C(2, 0), core.TileCorner, 180)   // S|W
	g.Place(core.C(1, 0), core.TileCorner, 90)    // E|S
	g.Place(core.C(1, 2), core.TileStraight, 0)   // N|S

	res := core.Solve(g, core.C(0, 1), core.C(1, 2), true)
	if !res.Solved {
		t.Fatalf("expected strict solve through both wires, got %q", res.Message)
	}
	if res.PathLength != 7 {
		t.Errorf("expected path length 7, got %d", res.PathLength)
	}
}

func TestReachable(t *testing.T) {
	level := lineLevel()
	if got := core.Reachable(level.Grid, level.Start, false); len(got) != 3 {
		t.Errorf("expected 3 reachable cells, got %v", got)
	}

	level.Grid.At(core.C(1, 0)).Rotation = 0
	got := core.Reachable(level.Grid, level.Start, false)
	if len(got) != 1 || got[0] != level.Start {
		t.Errorf("expected only the start cell, got %v", got)
	}

	if core.Reachable(level.Grid, core.C(-1, 0), false) != nil {
		t.Error("start outside the grid should reach nothing")
	}
}

func TestReachableStrictCrissCross(t *testing.T) {
	level := crossLevel()
	if got := core.Reachable(level.Grid, level.Start, false); len(got) != 3 {
		t.Errorf("lenient: expected 3 reachable cells, got %v", got)
	}
	if got := core.Reachable(level.Grid, level.Start, true); len(got) != 2 {
		t.Errorf("strict: expected 2 reachable cells, got %v", got)
	}
}
