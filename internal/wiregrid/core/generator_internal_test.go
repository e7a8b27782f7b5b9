package core

import (
	"errors"
	"strings"
	"testing"
)

func TestPickTileForCoversRequired(t *testing.T) {
	rng := NewRNG(1)
	allowed := []TileType{TileStraight, TileCorner, TileTJunction, TileFourWay, TileCrissCross, TileColorChanger}

	for required := DirNone; required <= DirAll; required++ {
		if required.Count() > 2 {
			continue
		}
		for i := 0; i < 20; i++ {
			tt, rotation, ok := pickTileFor(rng, required, allowed, false)
			if !ok {
				t.Fatalf("no tile for %s", required)
			}
			if !ValidRotation(rotation) {
				t.Fatalf("illegal rotation %d", rotation)
			}
			got := RotateConnections(Definition(tt).BaseConnections, rotation/90)
			if got&required != required {
				t.Errorf("%s@%d gives %s, need %s", tt, rotation, got, required)
			}
		}
	}
}

func TestPickTileForStrictCrissCross(t *testing.T) {
	rng := NewRNG(1)
	only := []TileType{TileCrissCross}

	if _, _, ok := pickTileFor(rng, DirNorth|DirEast, only, true); ok {
		t.Error("strict mode placed a criss-cross on a turn")
	}
	if _, _, ok := pickTileFor(rng, DirNorth|DirEast, only, false); !ok {
		t.Error("lenient mode should accept a criss-cross on a turn")
	}
	if _, _, ok := pickTileFor(rng, DirEast|DirWest, only, true); !ok {
		t.Error("strict mode should accept a criss-cross on a straight")
	}
}

func TestPickTileForNoCandidate(t *testing.T) {
	if _, _, ok := pickTileFor(NewRNG(1), DirNorth|DirEast, []TileType{TileStraight}, false); ok {
		t.Error("a straight tile cannot turn")
	}
}

func TestGeneratePathBounds(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := NewRNG(seed)
		start, end := C(0, 0), C(4, 4)

		path, err := generatePath(rng, 5, 5, start, end, 11, 15, 0)
		if err != nil {
			t.Fatalf("seed %d: generatePath failed: %v", seed, err)
		}
		if len(path) < 11 || len(path) > 15 {
			t.Errorf("seed %d: path length %d outside [11, 15]", seed, len(path))
		}
		if path[0].Coord() != start || path[len(path)-1].Coord() != end {
			t.Errorf("seed %d: path runs %v to %v", seed, path[0].Coord(), path[len(path)-1].Coord())
		}

		seen := make(map[Coord]bool)
		for i, step := range path {
			if seen[step.Coord()] {
				t.Errorf("seed %d: cell %v repeated", seed, step.Coord())
			}
			seen[step.Coord()] = true
			if i > 0 && path[i-1].Coord().Manhattan(step.Coord()) != 1 {
				t.Errorf("seed %d: step %d not adjacent", seed, i)
			}
		}
	}
}

func TestGeneratePathTooLong(t *testing.T) {
	_, err := generatePath(NewRNG(1), 5, 5, C(0, 0), C(4, 4), 26, 30, 0)

	var ae attemptError
	if !errors.As(err, &ae) || ae.Step != "path" {
		t.Fatalf("expected path attempt error, got %v", err)
	}
}

// Two cells of the same checkerboard color are joined only by paths of
// odd length.
func TestGeneratePathParity(t *testing.T) {
	_, err := generatePath(NewRNG(1), 4, 4, C(0, 0), C(3, 3), 8, 8, 0)
	if err == nil {
		t.Fatal("expected no path of even length between same-colored cells")
	}
}

func TestGeneratePathBudget(t *testing.T) {
	_, err := generatePath(NewRNG(1), 8, 8, C(0, 0), C(7, 7), 40, 60, 1)
	if err == nil || !strings.Contains(err.Error(), "budget") {
		t.Fatalf("expected budget error, got %v", err)
	}
}

func TestChooseEndFarQuarter(t *testing.T) {
	g := NewGrid(5, 5)
	for seed := int64(1); seed <= 50; seed++ {
		end := chooseEnd(NewRNG(seed), g, C(0, 0))
		if end.Manhattan(C(0, 0)) < 6 {
			t.Errorf("seed %d: end %v too close to start", seed, end)
		}
	}
}

func TestChooseStartOnEdge(t *testing.T) {
	rng := NewRNG(3)
	for i := 0; i < 100; i++ {
		c := chooseStart(rng, 6, 4)
		if c.X != 0 && c.Y != 0 && c.X != 5 && c.Y != 3 {
			t.Fatalf("start %v not on the edge", c)
		}
	}
}

func TestMarkFixedTiles(t *testing.T) {
	g := NewGrid(5, 5)
	for i := range g.Tiles {
		g.Place(g.Tiles[i].Coord(), TileStraight, 0)
	}
	g.Place(C(0, 0), TileFourWay, 0)
	g.Place(C(1, 0), TileEmpty, 0)

	// 23 rotatable tiles at 20% fix floor(4.6) = 4.
	if n := markFixedTiles(NewRNG(5), g, 0.2); n != 4 {
		t.Errorf("expected 4 fixed, got %d", n)
	}
	if g.FixedCount() != 4 {
		t.Errorf("expected 4 fixed tiles in grid, got %d", g.FixedCount())
	}
	if g.At(C(0, 0)).Fixed || g.At(C(1, 0)).Fixed {
		t.Error("non-rotatable tile marked fixed")
	}

	clean := NewGrid(3, 3)
	if n := markFixedTiles(NewRNG(5), clean, 0); n != 0 || clean.FixedCount() != 0 {
		t.Error("zero percentage fixed tiles")
	}
}

func TestScrambleKeepsFixedAndPathTiles(t *testing.T) {
	g := NewGrid(6, 6)
	for i := range g.Tiles {
		g.Place(g.Tiles[i].Coord(), TileCorner, 90)
	}
	path := SolutionPath{{X: 0, Y: 0}, {X: 1, Y: 0, Dir: DirEast}, {X: 2, Y: 0, Dir: DirEast}}
	markFixedTiles(NewRNG(9), g, 0.3)

	before := g.Clone()
	scrambleTiles(NewRNG(9), g, path)

	for i := range g.Tiles {
		t0, t1 := before.Tiles[i], g.Tiles[i]
		onPath := t1.Y == 0 && t1.X <= 2
		if (t0.Fixed || onPath) && t0.Rotation != t1.Rotation {
			t.Errorf("tile at %v rotated from %d to %d", t1.Coord(), t0.Rotation, t1.Rotation)
		}
	}
}

func TestScrambleUniform(t *testing.T) {
	g := NewGrid(20, 20)
	for i := range g.Tiles {
		g.Place(g.Tiles[i].Coord(), TileStraight, 0)
	}

	var counts [4]int
	rng := NewRNG(2024)
	for round := 0; round < 10; round++ {
		scrambleTiles(rng, g, nil)
		for i := range g.Tiles {
			counts[g.Tiles[i].Rotation/90]++
		}
	}

	expected := float64(len(g.Tiles)*10) / 4
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	if chi > 16.27 {
		t.Errorf("rotations %v not uniform (chi-square %.2f)", counts, chi)
	}
}

func TestCheckPathDetectsBreak(t *testing.T) {
	g := NewGrid(3, 1)
	for x := 0; x < 3; x++ {
		g.Place(C(x, 0), TileStraight, 90)
	}
	path := SolutionPath{{X: 0, Y: 0}, {X: 1, Y: 0, Dir: DirEast}, {X: 2, Y: 0, Dir: DirEast}}

	if err := checkPath(g, path, false); err != nil {
		t.Fatalf("intact path rejected: %v", err)
	}

	g.At(C(2, 0)).Rotation = 0
	if err := checkPath(g, path, false); err == nil {
		t.Error("broken path accepted")
	}
}

func TestMergeSettings(t *testing.T) {
	s, err := mergeSettings(DifficultyHard, Options{GridWidth: 9, AllowFixedTiles: Bool(false)})
	if err != nil {
		t.Fatalf("mergeSettings failed: %v", err)
	}
	if s.Width != 9 || s.Height != 8 || s.AllowFixedTiles || s.MinPathLength != 24 {
		t.Errorf("unexpected settings %+v", s)
	}

	if _, err := mergeSettings(DifficultyEasy, Options{RequiredTileTypes: []TileType{TileEmpty}}); err != nil {
		t.Errorf("empty tiles should always be allowed as required, got %v", err)
	}
}

// pathThrough builds a solution path visiting cells in order.
func pathThrough(cells ...Coord) SolutionPath {
	path := make(SolutionPath, len(cells))
	for i, c := range cells {
		path[i] = PathStep{X: c.X, Y: c.Y}
		if i > 0 {
			path[i].Dir = cells[i-1].DirectionTo(c)
		}
	}
	return path
}

func TestPlacePathTilesCoverRequired(t *testing.T) {
	allowed := []TileType{TileStraight, TileCorner, TileTJunction}
	path := pathThrough(C(0, 0), C(1, 0), C(2, 0), C(2, 1), C(1, 1), C(1, 2), C(2, 2), C(3, 2))

	for seed := int64(1); seed <= 20; seed++ {
		g := NewGrid(4, 3)
		if err := placePathTiles(NewRNG(seed), g, path, allowed, false); err != nil {
			t.Fatalf("seed %d: placePathTiles failed: %v", seed, err)
		}

		for i, step := range path {
			c := step.Coord()
			required := DirNone
			if i > 0 {
				required |= c.DirectionTo(path[i-1].Coord())
			}
			if i < len(path)-1 {
				required |= c.DirectionTo(path[i+1].Coord())
			}
			tile := g.At(c)
			if tile.Type() == TileEmpty || !ValidRotation(tile.Rotation) {
				t.Fatalf("seed %d: bad tile %s@%d at %v", seed, tile.Type(), tile.Rotation, c)
			}
			if got := tile.Connections(); got&required != required {
				t.Errorf("seed %d: %v has %s, need %s", seed, c, got, required)
			}
		}
		if err := checkPath(g, path, false); err != nil {
			t.Errorf("seed %d: placed path does not connect: %v", seed, err)
		}
	}
}

func TestPlacePathTilesNoFit(t *testing.T) {
	g := NewGrid(2, 2)
	path := pathThrough(C(0, 0), C(1, 0), C(1, 1))

	err := placePathTiles(NewRNG(1), g, path, []TileType{TileStraight}, false)
	var ae attemptError
	if !errors.As(err, &ae) || ae.Step != "placement" {
		t.Fatalf("expected placement attempt error, got %v", err)
	}
}

func TestAddDecoyBranchesAvoidPath(t *testing.T) {
	allowed := []TileType{TileStraight, TileCorner}
	path := pathThrough(C(0, 2), C(1, 2), C(2, 2), C(3, 2), C(4, 2), C(5, 2))
	onPath := pathSet(path)

	for seed := int64(1); seed <= 10; seed++ {
		g := NewGrid(6, 6)
		if err := placePathTiles(NewRNG(seed), g, path, allowed, false); err != nil {
			t.Fatalf("placePathTiles failed: %v", err)
		}
		before := g.Clone()

		if n := addDecoyBranches(NewRNG(seed), g, path, 50, allowed); n != 50 {
			t.Errorf("seed %d: placed %d decoys, want 50", seed, n)
		}

		for i := range g.Tiles {
			tile := &g.Tiles[i]
			c := tile.Coord()
			if onPath.Has(c) {
				if *tile != before.Tiles[i] {
					t.Errorf("seed %d: path tile at %v changed", seed, c)
				}
				continue
			}
			if tile.Type() == TileEmpty {
				continue
			}
			if c.Y != 1 && c.Y != 3 {
				t.Errorf("seed %d: decoy at %v is not next to the path", seed, c)
			}
		}
	}
}

func TestAddDecoyBranchesSkipsEnclosedCells(t *testing.T) {
	allowed := []TileType{TileStraight, TileCorner}

	// The path covers the whole grid.
	full := NewGrid(2, 1)
	path := pathThrough(C(0, 0), C(1, 0))
	if n := addDecoyBranches(NewRNG(1), full, path, 5, allowed); n != 0 {
		t.Errorf("placed %d decoys with no free neighbor", n)
	}

	// Only (1,0) has a free neighbor, so branches from (0,0) are skipped.
	for seed := int64(1); seed <= 5; seed++ {
		g := NewGrid(3, 1)
		n := addDecoyBranches(NewRNG(seed), g, path, 20, allowed)
		if n == 0 || n >= 20 {
			t.Errorf("seed %d: placed %d of 20 decoys, want some skipped", seed, n)
		}
		if g.At(C(2, 0)).Type() == TileEmpty {
			t.Errorf("seed %d: free neighbor never received a decoy", seed)
		}
		if g.At(C(0, 0)).Type() != TileEmpty || g.At(C(1, 0)).Type() != TileEmpty {
			t.Errorf("seed %d: decoy placed on the path", seed)
		}
	}
}

func TestFillEmptySpaces(t *testing.T) {
	const w, h = 40, 40
	g := NewGrid(w, h)
	for x := 0; x < w; x++ {
		g.Place(C(x, 0), TileFourWay, 0)
		g.At(C(x, 0)).Fixed = true
	}

	filled := fillEmptySpaces(NewRNG(3), g, []TileType{TileStraight, TileCorner})

	empty := (h - 1) * w
	rate := float64(filled) / float64(empty)
	if rate < 0.65 || rate > 0.75 {
		t.Errorf("fill rate %.3f, want about %.2f", rate, fillProbability)
	}

	nonEmpty := 0
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			tile := g.At(C(x, y))
			switch tile.Type() {
			case TileEmpty:
			case TileStraight, TileCorner:
				nonEmpty++
				if !ValidRotation(tile.Rotation) {
					t.Errorf("illegal rotation %d at (%d,%d)", tile.Rotation, x, y)
				}
			default:
				t.Errorf("unexpected %s at (%d,%d)", tile.Type(), x, y)
			}
		}
	}
	if nonEmpty != filled {
		t.Errorf("counted %d filled cells, fillEmptySpaces reported %d", nonEmpty, filled)
	}

	for x := 0; x < w; x++ {
		if tile := g.At(C(x, 0)); tile.Type() != TileFourWay || !tile.Fixed {
			t.Errorf("occupied cell (%d,0) was overwritten", x)
		}
	}
}
