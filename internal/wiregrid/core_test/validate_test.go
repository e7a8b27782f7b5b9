package core_test

import (
	"testing"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

func hasCode(list []core.ValidationError, code string) bool {
	for _, e := range list {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestValidateValidLevel(t *testing.T) {
	res := core.ValidateLevel(lineLevel())

	if !res.Valid {
		t.Fatalf("expected valid, got issues %v", res.Issues)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
	if !res.Solve.Solved || res.Solve.PathLength != 3 {
		t.Errorf("unexpected solve result %+v", res.Solve)
	}

	a := res.Analysis
	if a.TotalTiles != 3 || a.RotatableTiles != 3 || a.EmptyTiles != 0 || a.FixedTiles != 0 {
		t.Errorf("unexpected analysis %+v", a)
	}
	if a.TileTypeCounts[core.TileStraight] != 3 {
		t.Errorf("expected 3 straight tiles, got %d", a.TileTypeCounts[core.TileStraight])
	}
}

func TestValidateGeneratedLevels(t *testing.T) {
	for _, d := range core.Difficulties[:3] {
		level := generate(t, d, core.Options{Seed: 2024})
		res := core.ValidateLevel(level)
		if !res.Valid {
			t.Errorf("%s: generated level invalid: %v", d, res.Issues)
		}
		if hasCode(res.Issues, core.CodeInvalidRotation) {
			t.Errorf("%s: generated level has illegal rotations", d)
		}
	}
}

func TestValidatePathLengthMismatch(t *testing.T) {
	level := lineLevel()
	level.SolvedPathLength = 5

	res := core.ValidateLevel(level)
	if !res.Valid {
		t.Errorf("mismatch should only warn, got issues %v", res.Issues)
	}
	if !hasCode(res.Warnings, core.CodePathLengthMismatch) {
		t.Errorf("expected %s warning, got %v", core.CodePathLengthMismatch, res.Warnings)
	}
}

func TestValidateNoRotatableTiles(t *testing.T) {
	g := core.NewGrid(3, 1)
	for x := 0; x < 3; x++ {
		g.Place(core.C(x, 0), core.TileFourWay, 0)
	}
	level := &core.Level{Grid: g, Start: core.C(0, 0), End: core.C(2, 0), SolvedPathLength: 3}

	res := core.ValidateLevel(level)
	if !res.Valid {
		t.Errorf("expected valid, got issues %v", res.Issues)
	}
	if !hasCode(res.Warnings, core.CodeNoRotatable) {
		t.Errorf("expected %s warning, got %v", core.CodeNoRotatable, res.Warnings)
	}
}

func TestValidateFixedTilesNotRotatable(t *testing.T) {
	level := lineLevel()
	for i := range level.Grid.Tiles {
		level.Grid.Tiles[i].Fixed = true
	}

	res := core.ValidateLevel(level)
	if res.Analysis.FixedTiles != 3 || res.Analysis.RotatableTiles != 0 {
		t.Errorf("unexpected analysis %+v", res.Analysis)
	}
	if !hasCode(res.Warnings, core.CodeNoRotatable) {
		t.Errorf("expected %s warning, got %v", core.CodeNoRotatable, res.Warnings)
	}
}

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*core.Level)
		codes  []string
	}{
		{
			name:   "start outside grid",
			modify: func(l *core.Level) { l.Start = core.C(-1, 0) },
			codes:  []string{core.CodeInvalidStart, core.CodeNotSolvable},
		},
		{
			name:   "end outside grid",
			modify: func(l *core.Level) { l.End = core.C(0, 4) },
			codes:  []string{core.CodeInvalidEnd, core.CodeNotSolvable},
		},
		{
			name:   "same endpoints",
			modify: func(l *core.Level) { l.End = l.Start },
			codes:  []string{core.CodeSameEndpoints},
		},
		{
			name:   "illegal rotation",
			modify: func(l *core.Level) { l.Grid.At(core.C(1, 0)).Rotation = 45 },
			codes:  []string{core.CodeInvalidRotation},
		},
		{
			name:   "empty end",
			modify: func(l *core.Level) { l.Grid.Place(core.C(2, 0), core.TileEmpty, 0) },
			codes:  []string{core.CodeEmptyEnd, core.CodeNotSolvable},
		},
		{
			name:   "empty start",
			modify: func(l *core.Level) { l.Grid.Place(core.C(0, 0), core.TileEmpty, 0) },
			codes:  []string{core.CodeEmptyStart, core.CodeNotSolvable},
		},
		{
			name:   "broken wire",
			modify: func(l *core.Level) { l.Grid.At(core.C(1, 0)).Rotation = 0 },
			codes:  []string{core.CodeNotSolvable},
		},
		{
			name:   "tile position",
			modify: func(l *core.Level) { l.Grid.Tiles[1].X = 7 },
			codes:  []string{core.CodeTilePosition},
		},
		{
			name:   "tile count",
			modify: func(l *core.Level) { l.Grid.Tiles = l.Grid.Tiles[:2] },
			codes:  []string{core.CodeTileCount},
		},
		{
			name:   "missing tile type",
			modify: func(l *core.Level) { l.Grid.Tiles[2].Def = nil },
			codes:  []string{core.CodeTilePosition},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := lineLevel()
			tt.modify(level)

			res := core.ValidateLevel(level)
			if res.Valid {
				t.Fatal("expected invalid level")
			}
			for _, code := range tt.codes {
				if !hasCode(res.Issues, code) {
					t.Errorf("expected issue %s, got %v", code, res.Issues)
				}
			}
		})
	}
}

func TestValidateNilGrid(t *testing.T) {
	res := core.ValidateLevel(&core.Level{})
	if res.Valid || !hasCode(res.Issues, core.CodeNilGrid) {
		t.Errorf("expected %s issue, got %v", core.CodeNilGrid, res.Issues)
	}
	if res.Solve.Solved {
		t.Error("nil grid reported solved")
	}
}

func TestValidationErrorString(t *testing.T) {
	e := core.ValidationError{Code: core.CodeNotSolvable, Message: "no path"}
	if e.Error() != "[NOT_SOLVABLE] no path" {
		t.Errorf("unexpected error string %q", e.Error())
	}
}

func TestValidateCountsFixedEmptyTiles(t *testing.T) {
	g := core.NewGrid(4, 1)
	for x := 0; x < 3; x++ {
		g.Place(core.C(x, 0), core.TileStraight, 90)
	}
	g.At(core.C(3, 0)).Fixed = true
	g.At(core.C(1, 0)).Fixed = true
	level := &core.Level{Grid: g, Start: core.C(0, 0), End: core.C(2, 0), SolvedPathLength: 3}

	a := core.ValidateLevel(level).Analysis
	if a.EmptyTiles != 1 || a.FixedTiles != 2 || a.RotatableTiles != 2 {
		t.Errorf("unexpected analysis %+v", a)
	}
}

func TestValidationStructuralIssues(t *testing.T) {
	broken := lineLevel()
	broken.Grid.At(core.C(1, 0)).Rotation = 0
	res := core.ValidateLevel(broken)
	if res.Valid {
		t.Fatal("broken wire should not be valid")
	}
	if issues := res.StructuralIssues(); len(issues) != 0 {
		t.Errorf("unsolved level reported structural issues %v", issues)
	}

	outside := lineLevel()
	outside.Start = core.C(7, 9)
	issues := core.ValidateLevel(outside).StructuralIssues()
	if !hasCode(issues, core.CodeInvalidStart) || hasCode(issues, core.CodeNotSolvable) {
		t.Errorf("unexpected structural issues %v", issues)
	}
}
