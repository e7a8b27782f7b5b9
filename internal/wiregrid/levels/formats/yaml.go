// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// YAMLLevel represents the YAML structure for a level file.
// Empty tiles are omitted from Tiles.
type YAMLLevel struct {
	ID               string       `yaml:"id"`
	Difficulty       string       `yaml:"difficulty,omitempty"`
	Size             YAMLSize     `yaml:"size"`
	Start            core.Coord   `yaml:"start"`
	End              core.Coord   `yaml:"end"`
	SolvedPathLength int          `yaml:"solved_path_length"`
	StrictCrissCross bool         `yaml:"strict_crisscross,omitempty"`
	Tiles            []YAMLTile   `yaml:"tiles"`
	Solution         []YAMLStep   `yaml:"solution,omitempty"`
	Metadata         YAMLMetadata `yaml:"metadata"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLTile represents a single non-empty tile.
type YAMLTile struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Type     string `yaml:"type"`
	Rotation int    `yaml:"rotation"`
	Fixed    bool   `yaml:"fixed,omitempty"`
}

// YAMLStep represents one cell of the generation-time solution path.
type YAMLStep struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir,omitempty"`
}

// YAMLMetadata mirrors core.Metadata.
type YAMLMetadata struct {
	TileTypes          []string `yaml:"tile_types,omitempty"`
	FixedTileCount     int      `yaml:"fixed_tile_count"`
	GenerationAttempts int      `yaml:"generation_attempts"`
	Seed               int64    `yaml:"seed"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID     string
	Puzzle *core.Level
}

// ParseYAML parses a YAML level file. Unknown tile types, unknown
// directions, illegal rotations, duplicate tiles and tiles or endpoints
// outside the grid are errors.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.Size.W < 1 || yl.Size.H < 1 {
		return Level{}, fmt.Errorf("invalid size %dx%d", yl.Size.W, yl.Size.H)
	}

	grid := core.NewGrid(yl.Size.W, yl.Size.H)
	if !grid.InBounds(yl.Start) {
		return Level{}, fmt.Errorf("start %v outside %dx%d grid", yl.Start, yl.Size.W, yl.Size.H)
	}
	if !grid.InBounds(yl.End) {
		return Level{}, fmt.Errorf("end %v outside %dx%d grid", yl.End, yl.Size.W, yl.Size.H)
	}

	seen := mapset.New[core.Coord]()
	for _, t := range yl.Tiles {
		tt, err := core.ParseTileType(t.Type)
		if err != nil {
			return Level{}, fmt.Errorf("tile at (%d,%d): %w", t.X, t.Y, err)
		}
		c := core.C(t.X, t.Y)
		if !grid.InBounds(c) {
			return Level{}, fmt.Errorf("tile at %v outside %dx%d grid", c, yl.Size.W, yl.Size.H)
		}
		if !core.ValidRotation(t.Rotation) {
			return Level{}, fmt.Errorf("tile at %v: illegal rotation %d", c, t.Rotation)
		}
		if seen.Has(c) {
			return Level{}, fmt.Errorf("tile at %v listed twice", c)
		}
		seen.Put(c)
		grid.Place(c, tt, t.Rotation)
		grid.At(c).Fixed = t.Fixed
	}

	solution := make(core.SolutionPath, 0, len(yl.Solution))
	for _, s := range yl.Solution {
		dir := core.DirNone
		if s.Dir != "" {
			d, ok := core.ParseDirection(s.Dir)
			if !ok {
				return Level{}, fmt.Errorf("solution step (%d,%d): unknown direction %q", s.X, s.Y, s.Dir)
			}
			dir = d
		}
		solution = append(solution, core.PathStep{X: s.X, Y: s.Y, Dir: dir})
	}

	types := make([]core.TileType, 0, len(yl.Metadata.TileTypes))
	for _, name := range yl.Metadata.TileTypes {
		tt, err := core.ParseTileType(name)
		if err != nil {
			return Level{}, fmt.Errorf("metadata: %w", err)
		}
		types = append(types, tt)
	}

	return Level{
		ID: yl.ID,
		Puzzle: &core.Level{
			Grid:             grid,
			Start:            yl.Start,
			End:              yl.End,
			SolvedPathLength: yl.SolvedPathLength,
			Solution:         solution,
			StrictCrissCross: yl.StrictCrissCross,
			Metadata: core.Metadata{
				Difficulty:         core.Difficulty(yl.Difficulty),
				GridWidth:          yl.Size.W,
				GridHeight:         yl.Size.H,
				TileTypes:          types,
				FixedTileCount:     yl.Metadata.FixedTileCount,
				GenerationAttempts: yl.Metadata.GenerationAttempts,
				Seed:               yl.Metadata.Seed,
			},
		},
	}, nil
}

// EncodeYAML serializes a level under the given ID.
func EncodeYAML(id string, level *core.Level) ([]byte, error) {
	g := level.Grid
	yl := YAMLLevel{
		ID:               id,
		Difficulty:       string(level.Metadata.Difficulty),
		Size:             YAMLSize{W: g.W, H: g.H},
		Start:            level.Start,
		End:              level.End,
		SolvedPathLength: level.SolvedPathLength,
		StrictCrissCross: level.StrictCrissCross,
		Metadata: YAMLMetadata{
			FixedTileCount:     level.Metadata.FixedTileCount,
			GenerationAttempts: level.Metadata.GenerationAttempts,
			Seed:               level.Metadata.Seed,
		},
	}

	for i := range g.Tiles {
		t := &g.Tiles[i]
		if t.Type() == core.TileEmpty {
			continue
		}
		yl.Tiles = append(yl.Tiles, YAMLTile{
			X:        t.X,
			Y:        t.Y,
			Type:     t.Type().String(),
			Rotation: t.Rotation,
			Fixed:    t.Fixed,
		})
	}

	for _, s := range level.Solution {
		step := YAMLStep{X: s.X, Y: s.Y}
		if s.Dir != core.DirNone {
			step.Dir = s.Dir.String()
		}
		yl.Solution = append(yl.Solution, step)
	}

	for _, t := range level.Metadata.TileTypes {
		yl.Metadata.TileTypes = append(yl.Metadata.TileTypes, t.String())
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
