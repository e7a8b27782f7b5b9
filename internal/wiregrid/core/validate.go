package core

import "fmt"

// Issue and warning codes reported by ValidateLevel.
const (
	CodeNilGrid            = "NIL_GRID"
	CodeTileCount          = "TILE_COUNT"
	CodeTilePosition       = "TILE_POSITION"
	CodeInvalidStart       = "INVALID_START"
	CodeInvalidEnd         = "INVALID_END"
	CodeSameEndpoints      = "SAME_ENDPOINTS"
	CodeInvalidRotation    = "INVALID_ROTATION"
	CodeEmptyStart         = "EMPTY_START"
	CodeEmptyEnd           = "EMPTY_END"
	CodeNotSolvable        = "NOT_SOLVABLE"
	CodeNoRotatable        = "NO_ROTATABLE"
	CodePathLengthMismatch = "PATH_LENGTH_MISMATCH"
)

// ValidationError contains details about one validation finding.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// GridAnalysis summarizes the tiles of a level.
type GridAnalysis struct {
	TotalTiles     int
	EmptyTiles     int
	RotatableTiles int // Rotatable and not fixed
	FixedTiles     int // Every fixed tile, empty ones included
	TileTypeCounts map[TileType]int
}

// ValidationResult is the report produced by ValidateLevel.
type ValidationResult struct {
	Valid    bool // No issues and the level is solvable
	Issues   []ValidationError
	Warnings []ValidationError
	Solve    SolveResult
	Analysis GridAnalysis
}

// ValidateLevel checks a level's structure, solves it, and analyzes its tiles.
// Checks:
//   - Start and end lie inside the grid and differ
//   - Every rotation is 0, 90, 180 or 270
//   - Start and end do not hold empty tiles
//   - The level is solvable as currently rotated
//
// Warnings do not affect validity.
func ValidateLevel(level *Level) ValidationResult {
	var res ValidationResult

	g := level.Grid
	if g == nil {
		res.Issues = append(res.Issues, ValidationError{Code: CodeNilGrid, Message: "level has no grid"})
		res.Solve = SolveResult{Message: "Puzzle is not solvable - level has no grid"}
		return res
	}

	if issues := checkLayout(g); len(issues) > 0 {
		res.Issues = issues
		res.Solve = SolveResult{Message: "Puzzle is not solvable - grid layout is malformed"}
		return res
	}
	res.Issues = append(res.Issues, checkEndpoints(level)...)

	for i := range g.Tiles {
		t := &g.Tiles[i]
		if !ValidRotation(t.Rotation) {
			res.Issues = append(res.Issues, ValidationError{
				Code:    CodeInvalidRotation,
				Message: fmt.Sprintf("invalid rotation %d at %v", t.Rotation, t.Coord()),
			})
		}
	}

	res.Analysis = analyzeGrid(g)
	if res.Analysis.RotatableTiles == 0 {
		res.Warnings = append(res.Warnings, ValidationError{
			Code:    CodeNoRotatable,
			Message: "no rotatable tiles - puzzle cannot be solved by player interaction",
		})
	}

	res.Solve = SolvePuzzle(level)
	if !res.Solve.Solved {
		res.Issues = append(res.Issues, ValidationError{Code: CodeNotSolvable, Message: res.Solve.Message})
	} else if res.Solve.PathLength != level.SolvedPathLength {
		res.Warnings = append(res.Warnings, ValidationError{
			Code: CodePathLengthMismatch,
			Message: fmt.Sprintf("claimed path length (%d) doesn't match actual (%d)",
				level.SolvedPathLength, res.Solve.PathLength),
		})
	}

	res.Valid = len(res.Issues) == 0 && res.Solve.Solved
	return res
}

// StructuralIssues returns the issues other than the level being unsolved
// as currently rotated. A level without them can be played.
func (r ValidationResult) StructuralIssues() []ValidationError {
	var out []ValidationError
	for _, issue := range r.Issues {
		if issue.Code != CodeNotSolvable {
			out = append(out, issue)
		}
	}
	return out
}

// checkLayout verifies the tile slice matches the grid dimensions and every
// tile has a type and knows its own position.
func checkLayout(g *Grid) []ValidationError {
	if len(g.Tiles) != g.W*g.H {
		return []ValidationError{{
			Code:    CodeTileCount,
			Message: fmt.Sprintf("grid %dx%d holds %d tiles", g.W, g.H, len(g.Tiles)),
		}}
	}

	var issues []ValidationError
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			t := &g.Tiles[y*g.W+x]
			if t.Def == nil {
				issues = append(issues, ValidationError{
					Code:    CodeTilePosition,
					Message: fmt.Sprintf("tile at (%d,%d) has no type", x, y),
				})
				continue
			}
			if t.X != x || t.Y != y {
				issues = append(issues, ValidationError{
					Code:    CodeTilePosition,
					Message: fmt.Sprintf("tile at (%d,%d) records position (%d,%d)", x, y, t.X, t.Y),
				})
			}
		}
	}
	return issues
}

func checkEndpoints(level *Level) []ValidationError {
	g := level.Grid
	var issues []ValidationError

	if !g.InBounds(level.Start) {
		issues = append(issues, ValidationError{
			Code:    CodeInvalidStart,
			Message: fmt.Sprintf("start %v outside %dx%d grid", level.Start, g.W, g.H),
		})
	} else if g.At(level.Start).Type() == TileEmpty {
		issues = append(issues, ValidationError{Code: CodeEmptyStart, Message: "start position has an empty tile"})
	}

	if !g.InBounds(level.End) {
		issues = append(issues, ValidationError{
			Code:    CodeInvalidEnd,
			Message: fmt.Sprintf("end %v outside %dx%d grid", level.End, g.W, g.H),
		})
	} else if g.At(level.End).Type() == TileEmpty {
		issues = append(issues, ValidationError{Code: CodeEmptyEnd, Message: "end position has an empty tile"})
	}

	if level.Start == level.End {
		issues = append(issues, ValidationError{Code: CodeSameEndpoints, Message: "start and end are the same cell"})
	}
	return issues
}

func analyzeGrid(g *Grid) GridAnalysis {
	a := GridAnalysis{
		TotalTiles:     len(g.Tiles),
		TileTypeCounts: g.CountByType(),
	}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if t.Type() == TileEmpty {
			a.EmptyTiles++
		}
		if t.Fixed {
			a.FixedTiles++
		} else if t.Def.Rotatable {
			a.RotatableTiles++
		}
	}
	return a
}
