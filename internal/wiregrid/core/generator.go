package core

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
)

// DefaultMaxAttempts is the number of attempts before generation gives up.
const DefaultMaxAttempts = 100

// fillProbability is the chance that an empty cell receives a random tile.
const fillProbability = 0.7

// shuffleRetries bounds the attempts ShufflePath makes to break a level.
const shuffleRetries = 20

// Metadata describes how a level was generated.
type Metadata struct {
	Difficulty         Difficulty
	GridWidth          int
	GridHeight         int
	TileTypes          []TileType // Distinct types in row-major order of first appearance
	FixedTileCount     int
	GenerationAttempts int
	Seed               int64
}

// Level is a generated puzzle.
type Level struct {
	Grid             *Grid
	Start            Coord
	End              Coord
	SolvedPathLength int
	// Solution is the path the generator built the level around.
	// It can be longer than the shortest path the solver finds.
	Solution SolutionPath
	// StrictCrissCross selects group-aware connectivity for criss-cross tiles.
	StrictCrissCross bool
	Metadata         Metadata
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	out := *l
	out.Grid = l.Grid.Clone()
	out.Solution = append(SolutionPath(nil), l.Solution...)
	out.Metadata.TileTypes = append([]TileType(nil), l.Metadata.TileTypes...)
	return &out
}

// RotateTile turns the tile at c a quarter turn clockwise, as a player
// move would. Fixed and non-rotatable tiles are refused.
func (l *Level) RotateTile(c Coord) error {
	t := l.Grid.At(c)
	if t == nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if t.Fixed {
		return fmt.Errorf("%w: %v", ErrTileFixed, c)
	}
	if !t.Def.Rotatable {
		return fmt.Errorf("%w: %s at %v", ErrTileNotRotatable, t.Def.Type, c)
	}
	t.Rotation = (t.Rotation + 90) % 360
	return nil
}

// ShufflePath randomizes the rotation of every rotatable, non-fixed tile on
// the solution path until the level no longer solves as shown, so a player
// has something to fix. It returns false when no tried rotation broke the
// path, for example when every path tile is fixed.
func (l *Level) ShufflePath(rng *RNG) bool {
	var movable []*Tile
	for _, c := range l.Solution.Coords() {
		if t := l.Grid.At(c); t != nil && t.Def.Rotatable && !t.Fixed {
			movable = append(movable, t)
		}
	}
	if len(movable) == 0 {
		return false
	}

	for i := 0; i < shuffleRetries; i++ {
		for _, t := range movable {
			t.Rotation = rng.Int(0, 3) * 90
		}
		if !SolvePuzzle(l).Solved {
			return true
		}
	}
	return false
}

// Generator builds levels. The zero value is ready to use.
type Generator struct {
	// MaxAttempts caps the attempts per call. 0 means DefaultMaxAttempts.
	MaxAttempts int
	// Logger receives per-attempt progress. nil discards it.
	Logger *log.Logger
}

// NewGenerator creates a generator logging to logger.
func NewGenerator(logger *log.Logger) *Generator {
	return &Generator{MaxAttempts: DefaultMaxAttempts, Logger: logger}
}

// GenerateLevel generates a level with a default generator.
func GenerateLevel(d Difficulty, opts Options) (*Level, error) {
	var g Generator
	return g.Generate(context.Background(), d, opts)
}

// Generate builds a solvable level for difficulty d. One RNG stream is
// shared by all attempts, so a seed reproduces the whole call rather than
// any single attempt.
func (g *Generator) Generate(ctx context.Context, d Difficulty, opts Options) (*Level, error) {
	s, err := mergeSettings(d, opts)
	if err != nil {
		return nil, err
	}

	rng := NewRNG(opts.Seed)
	logger := g.logger().With("difficulty", string(d), "seed", rng.Seed())

	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		level, err := buildLevel(rng, s, logger.With("attempt", attempt))
		if err != nil {
			logger.Debug("attempt discarded", "attempt", attempt, "reason", err)
			continue
		}

		level.Metadata.Difficulty = d
		level.Metadata.GenerationAttempts = attempt
		level.Metadata.Seed = rng.Seed()
		logger.Debug("level generated", "attempts", attempt, "path_length", level.SolvedPathLength)
		return level, nil
	}

	logger.Warn("generation exhausted", "attempts", maxAttempts)
	return nil, fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, maxAttempts)
}

func (g *Generator) logger() *log.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return log.New(io.Discard)
}

// buildLevel runs one generation attempt. Any error discards the attempt.
func buildLevel(rng *RNG, s settings, logger *log.Logger) (*Level, error) {
	grid := NewGrid(s.Width, s.Height)

	start := chooseStart(rng, s.Width, s.Height)
	end := chooseEnd(rng, grid, start)
	logger.Debug("endpoints chosen", "start", start, "end", end)

	path, err := generatePath(rng, s.Width, s.Height, start, end, s.MinPathLength, s.MaxPathLength, s.SearchBudget)
	if err != nil {
		return nil, err
	}
	if len(path) < s.MinPathLength {
		return nil, attemptError{Step: "path", Reason: fmt.Sprintf("path too short (%d < %d)", len(path), s.MinPathLength)}
	}
	logger.Debug("path generated", "length", len(path))

	if err := placePathTiles(rng, grid, path, s.AllowedTileTypes, s.StrictCrissCross); err != nil {
		return nil, err
	}
	if err := checkPath(grid, path, s.StrictCrissCross); err != nil {
		return nil, attemptError{Step: "placement checkpoint", Reason: err.Error()}
	}

	decoys := addDecoyBranches(rng, grid, path, s.DecoyBranches, s.AllowedTileTypes)
	filled := fillEmptySpaces(rng, grid, s.AllowedTileTypes)
	logger.Debug("grid filled", "decoys", decoys, "filled", filled)
	if err := checkPath(grid, path, s.StrictCrissCross); err != nil {
		return nil, attemptError{Step: "fill checkpoint", Reason: err.Error()}
	}

	pct := s.FixedTilePercentage
	if !s.AllowFixedTiles {
		pct = 0
	}
	fixed := markFixedTiles(rng, grid, pct)
	scrambled := scrambleTiles(rng, grid, path)
	logger.Debug("grid scrambled", "fixed", fixed, "scrambled", scrambled)
	if err := checkPath(grid, path, s.StrictCrissCross); err != nil {
		return nil, attemptError{Step: "scramble checkpoint", Reason: err.Error()}
	}

	if len(s.RequiredTileTypes) > 0 {
		counts := grid.CountByType()
		for _, t := range s.RequiredTileTypes {
			if counts[t] == 0 {
				return nil, attemptError{Step: "required tiles", Reason: fmt.Sprintf("no %s tile in grid", t)}
			}
		}
	}

	return &Level{
		Grid:             grid,
		Start:            start,
		End:              end,
		SolvedPathLength: len(path),
		Solution:         path,
		StrictCrissCross: s.StrictCrissCross,
		Metadata: Metadata{
			GridWidth:      s.Width,
			GridHeight:     s.Height,
			TileTypes:      grid.TypesPresent(),
			FixedTileCount: fixed,
		},
	}, nil
}

// chooseStart picks a random edge, then a random cell along it.
func chooseStart(rng *RNG, w, h int) Coord {
	switch rng.Int(0, 3) {
	case 0:
		return C(rng.Int(0, w-1), 0)
	case 1:
		return C(w-1, rng.Int(0, h-1))
	case 2:
		return C(rng.Int(0, w-1), h-1)
	default:
		return C(0, rng.Int(0, h-1))
	}
}

// chooseEnd picks uniformly among the most distant quarter of the
// perimeter cells, ranked by Manhattan distance from start.
func chooseEnd(rng *RNG, g *Grid, start Coord) Coord {
	candidates := g.Perimeter()
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Manhattan(start) > candidates[j].Manhattan(start)
	})
	top := candidates[:max(1, len(candidates)/4)]
	return top[rng.Int(0, len(top)-1)]
}

// placePathTiles puts a tile on every path cell that connects to its
// neighbors on the path. Endpoints need one connection.
func placePathTiles(rng *RNG, g *Grid, path SolutionPath, allowed []TileType, strict bool) error {
	for i, step := range path {
		c := step.Coord()

		required := DirNone
		if i > 0 {
			required |= c.DirectionTo(path[i-1].Coord())
		}
		if i < len(path)-1 {
			required |= c.DirectionTo(path[i+1].Coord())
		}

		t, rotation, ok := pickTileFor(rng, required, allowed, strict)
		if !ok {
			return attemptError{Step: "placement", Reason: fmt.Sprintf("no tile provides %s at %v", required, c)}
		}
		g.Place(c, t, rotation)
	}
	return nil
}

// pickTileFor chooses uniformly among every allowed (type, rotation) pair
// whose connections include the required mask. Extra connections are fine.
func pickTileFor(rng *RNG, required Direction, allowed []TileType, strict bool) (TileType, int, bool) {
	type candidate struct {
		t        TileType
		rotation int
	}

	var candidates []candidate
	for _, t := range allowed {
		def := Definition(t)
		for q, rotation := range Rotations {
			if RotateConnections(def.BaseConnections, q)&required != required {
				continue
			}
			if strict && len(def.ConnectionGroups) > 0 && !withinOneGroup(def, q, required) {
				continue
			}
			candidates = append(candidates, candidate{t: t, rotation: rotation})
		}
	}

	if len(candidates) == 0 {
		return 0, 0, false
	}
	chosen := candidates[rng.Int(0, len(candidates)-1)]
	return chosen.t, chosen.rotation, true
}

func withinOneGroup(def *TileDefinition, quarterTurns int, mask Direction) bool {
	for _, g := range def.ConnectionGroups {
		if mask&^RotateConnections(g, quarterTurns) == 0 {
			return true
		}
	}
	return false
}

// checkPath walks the path and requires every consecutive pair of tiles to
// connect in both directions.
func checkPath(g *Grid, path SolutionPath, strict bool) error {
	for i := 0; i < len(path)-1; i++ {
		cur, next := path[i].Coord(), path[i+1].Coord()
		a, b := g.At(cur), g.At(next)
		if a == nil || b == nil {
			return fmt.Errorf("path leaves the grid between %v and %v", cur, next)
		}

		dir := cur.DirectionTo(next)
		if a.Connections()&dir == 0 {
			return fmt.Errorf("tile at %v missing %s connection", cur, dir)
		}
		back, ok := dir.Opposite()
		if !ok {
			return fmt.Errorf("cells %v and %v are not adjacent", cur, next)
		}
		if b.Connections()&back == 0 {
			return fmt.Errorf("tile at %v missing %s connection back", next, back)
		}

		if strict && i > 0 && len(a.Def.ConnectionGroups) > 0 {
			in := cur.DirectionTo(path[i-1].Coord())
			if a.GroupFor(in)&dir == 0 {
				return fmt.Errorf("path turns inside criss-cross at %v", cur)
			}
		}
	}
	return nil
}

// addDecoyBranches places up to count random tiles next to random path
// cells. Decoys carry no connectivity guarantee. Returns the number placed.
func addDecoyBranches(rng *RNG, g *Grid, path SolutionPath, count int, allowed []TileType) int {
	onPath := pathSet(path)
	placed := 0

	for i := 0; i < count; i++ {
		branch := path[rng.Int(0, len(path)-1)].Coord()
		for _, d := range Shuffle(rng, Cardinals[:]) {
			n := branch.Step(d)
			if !g.InBounds(n) || onPath.Has(n) {
				continue
			}
			g.Place(n, allowed[rng.Int(0, len(allowed)-1)], rng.Int(0, 3)*90)
			placed++
			break
		}
	}
	return placed
}

// fillEmptySpaces gives every empty cell a 70% chance of a random tile.
func fillEmptySpaces(rng *RNG, g *Grid, allowed []TileType) int {
	filled := 0
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if t.Def.Type != TileEmpty {
			continue
		}
		if rng.Float() < fillProbability {
			g.Place(t.Coord(), allowed[rng.Int(0, len(allowed)-1)], rng.Int(0, 3)*90)
			filled++
		}
	}
	return filled
}

// markFixedTiles fixes floor(n * pct) of the n rotatable tiles, chosen at random.
func markFixedTiles(rng *RNG, g *Grid, pct float64) int {
	if pct == 0 {
		return 0
	}

	var rotatable []int
	for i := range g.Tiles {
		if g.Tiles[i].Def.Rotatable {
			rotatable = append(rotatable, i)
		}
	}

	count := int(math.Floor(float64(len(rotatable)) * pct))
	shuffled := Shuffle(rng, rotatable)
	for i := 0; i < count && i < len(shuffled); i++ {
		g.Tiles[shuffled[i]].Fixed = true
	}
	return count
}

// scrambleTiles randomizes the rotation of every rotatable, non-fixed tile
// that is not on the solution path. Path tiles keep their placed rotation.
func scrambleTiles(rng *RNG, g *Grid, path SolutionPath) int {
	onPath := pathSet(path)
	scrambled := 0

	for i := range g.Tiles {
		t := &g.Tiles[i]
		if !t.Def.Rotatable || t.Fixed || onPath.Has(t.Coord()) {
			continue
		}
		t.Rotation = rng.Int(0, 3) * 90
		scrambled++
	}
	return scrambled
}

func pathSet(path SolutionPath) mapset.Set[Coord] {
	set := mapset.New[Coord]()
	for _, s := range path {
		set.Put(s.Coord())
	}
	return set
}
