package core

import "fmt"

// Difficulty names a row of the difficulty table.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultySuperHard Difficulty = "superHard"
)

// Difficulties lists the tiers from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultySuperHard}

// ParseDifficulty converts a tier name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// DifficultyConfig holds the generation defaults of a tier.
type DifficultyConfig struct {
	GridWidth           int
	GridHeight          int
	MinPathLength       int
	MaxPathLength       int
	DecoyBranches       int
	FixedTilePercentage float64
	AllowedTileTypes    []TileType
}

var difficultyTable = map[Difficulty]DifficultyConfig{
	DifficultyEasy: {
		GridWidth:           5,
		GridHeight:          5,
		MinPathLength:       6,
		MaxPathLength:       10,
		DecoyBranches:       1,
		FixedTilePercentage: 0.2,
		AllowedTileTypes:    []TileType{TileStraight, TileCorner},
	},
	DifficultyMedium: {
		GridWidth:           6,
		GridHeight:          6,
		MinPathLength:       12,
		MaxPathLength:       18,
		DecoyBranches:       2,
		FixedTilePercentage: 0.3,
		AllowedTileTypes:    []TileType{TileStraight, TileCorner, TileTJunction},
	},
	DifficultyHard: {
		GridWidth:           8,
		GridHeight:          8,
		MinPathLength:       24,
		MaxPathLength:       35,
		DecoyBranches:       3,
		FixedTilePercentage: 0.25,
		AllowedTileTypes:    []TileType{TileStraight, TileCorner, TileTJunction, TileFourWay},
	},
	DifficultySuperHard: {
		GridWidth:           10,
		GridHeight:          10,
		MinPathLength:       45,
		MaxPathLength:       70,
		DecoyBranches:       5,
		FixedTilePercentage: 0.2,
		AllowedTileTypes: []TileType{
			TileStraight,
			TileCorner,
			TileTJunction,
			TileFourWay,
			TileCrissCross,
			TileColorChanger,
		},
	},
}

// ConfigFor returns a copy of the table row for d.
func ConfigFor(d Difficulty) (DifficultyConfig, error) {
	cfg, ok := difficultyTable[d]
	if !ok {
		return DifficultyConfig{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
	}
	cfg.AllowedTileTypes = append([]TileType(nil), cfg.AllowedTileTypes...)
	return cfg, nil
}

// Options overrides individual difficulty defaults for one Generate call.
// Zero values mean "use the tier default".
type Options struct {
	GridWidth         int
	GridHeight        int
	AllowedTileTypes  []TileType
	RequiredTileTypes []TileType
	MinPathLength     int
	MaxPathLength     int
	AllowFixedTiles   *bool
	Seed              int64 // 0 = seeded from the current time

	// StrictCrissCross keeps the two criss-cross wires apart: a signal
	// entering north or south can only leave north or south, and likewise
	// for east and west.
	StrictCrissCross bool

	// SearchBudget caps the number of cells the path search may expand per
	// attempt. 0 means unbounded.
	SearchBudget int
}

// Bool returns a pointer to v, for Options.AllowFixedTiles.
func Bool(v bool) *bool {
	return &v
}

// settings is the merged configuration for one Generate call.
type settings struct {
	Width               int
	Height              int
	MinPathLength       int
	MaxPathLength       int
	DecoyBranches       int
	FixedTilePercentage float64
	AllowedTileTypes    []TileType
	RequiredTileTypes   []TileType
	AllowFixedTiles     bool
	StrictCrissCross    bool
	SearchBudget        int
}

// mergeSettings lays opts over the tier defaults and checks the result.
func mergeSettings(d Difficulty, opts Options) (settings, error) {
	cfg, err := ConfigFor(d)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Width:               cfg.GridWidth,
		Height:              cfg.GridHeight,
		MinPathLength:       cfg.MinPathLength,
		MaxPathLength:       cfg.MaxPathLength,
		DecoyBranches:       cfg.DecoyBranches,
		FixedTilePercentage: cfg.FixedTilePercentage,
		AllowedTileTypes:    cfg.AllowedTileTypes,
		AllowFixedTiles:     true,
		StrictCrissCross:    opts.StrictCrissCross,
		SearchBudget:        opts.SearchBudget,
	}
	if opts.GridWidth != 0 {
		s.Width = opts.GridWidth
	}
	if opts.GridHeight != 0 {
		s.Height = opts.GridHeight
	}
	if opts.MinPathLength != 0 {
		s.MinPathLength = opts.MinPathLength
	}
	if opts.MaxPathLength != 0 {
		s.MaxPathLength = opts.MaxPathLength
	}
	if len(opts.AllowedTileTypes) > 0 {
		s.AllowedTileTypes = append([]TileType(nil), opts.AllowedTileTypes...)
	}
	if len(opts.RequiredTileTypes) > 0 {
		s.RequiredTileTypes = append([]TileType(nil), opts.RequiredTileTypes...)
	}
	if opts.AllowFixedTiles != nil {
		s.AllowFixedTiles = *opts.AllowFixedTiles
	}

	if err := s.check(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) check() error {
	if s.Width < 2 || s.Height < 2 {
		return invalidOptions("grid must be at least 2x2, got %dx%d", s.Width, s.Height)
	}
	if s.MinPathLength < 2 {
		return invalidOptions("minimum path length must be at least 2, got %d", s.MinPathLength)
	}
	if s.MaxPathLength < s.MinPathLength {
		return invalidOptions("maximum path length %d is below minimum %d", s.MaxPathLength, s.MinPathLength)
	}
	if s.SearchBudget < 0 {
		return invalidOptions("search budget must not be negative, got %d", s.SearchBudget)
	}
	for _, t := range s.AllowedTileTypes {
		if !t.Valid() {
			return invalidOptions("allowed tile type %d is not in the catalog", t)
		}
	}
	for _, t := range s.RequiredTileTypes {
		if !t.Valid() {
			return invalidOptions("required tile type %d is not in the catalog", t)
		}
		if t != TileEmpty && !containsType(s.AllowedTileTypes, t) {
			return invalidOptions("required tile type %s is not allowed", t)
		}
	}
	return nil
}

func containsType(types []TileType, t TileType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
