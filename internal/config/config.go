// Package config provides YAML-based configuration loading for the
// wiregrid command line.
package config

import (
	"fmt"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// Config is the complete wiregrid configuration.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Bench    BenchConfig    `yaml:"bench"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Render   RenderConfig   `yaml:"render"`
}

// GenerateConfig holds generator defaults. Zero values keep the tier
// defaults of the chosen difficulty.
type GenerateConfig struct {
	Difficulty       string   `yaml:"difficulty"`
	Width            int      `yaml:"width"`
	Height           int      `yaml:"height"`
	MinPath          int      `yaml:"min_path"`
	MaxPath          int      `yaml:"max_path"`
	AllowedTiles     []string `yaml:"allowed_tiles"`
	RequiredTiles    []string `yaml:"required_tiles"`
	AllowFixedTiles  *bool    `yaml:"allow_fixed_tiles"`
	StrictCrissCross bool     `yaml:"strict_crisscross"`
	SearchBudget     int      `yaml:"search_budget"`
	MaxAttempts      int      `yaml:"max_attempts"`
	Seed             int64    `yaml:"seed"`
}

// BenchConfig holds batch statistics defaults.
type BenchConfig struct {
	Count   int `yaml:"count"`
	Workers int `yaml:"workers"`
}

// StorageConfig holds file locations.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	LevelsDir string `yaml:"levels_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RenderConfig holds text rendering settings.
type RenderConfig struct {
	Colors            string `yaml:"colors"` // auto, always, never
	ShowCoordinates   bool   `yaml:"show_coordinates"`
	ShowRotations     bool   `yaml:"show_rotations"`
	ShowTileTypes     bool   `yaml:"show_tile_types"`
	HighlightSolution bool   `yaml:"highlight_solution"`
	ShowFixed         bool   `yaml:"show_fixed"`
}

// ToOptions converts the generate section into a difficulty and generator
// options. Unknown difficulty or tile names fail.
func (g GenerateConfig) ToOptions() (core.Difficulty, core.Options, error) {
	d, err := core.ParseDifficulty(g.Difficulty)
	if err != nil {
		return "", core.Options{}, fmt.Errorf("config: %w", err)
	}

	allowed, err := parseTileTypes(g.AllowedTiles)
	if err != nil {
		return "", core.Options{}, fmt.Errorf("config: allowed_tiles: %w", err)
	}
	required, err := parseTileTypes(g.RequiredTiles)
	if err != nil {
		return "", core.Options{}, fmt.Errorf("config: required_tiles: %w", err)
	}

	return d, core.Options{
		GridWidth:         g.Width,
		GridHeight:        g.Height,
		AllowedTileTypes:  allowed,
		RequiredTileTypes: required,
		MinPathLength:     g.MinPath,
		MaxPathLength:     g.MaxPath,
		AllowFixedTiles:   g.AllowFixedTiles,
		Seed:              g.Seed,
		StrictCrissCross:  g.StrictCrissCross,
		SearchBudget:      g.SearchBudget,
	}, nil
}

func parseTileTypes(names []string) ([]core.TileType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	types := make([]core.TileType, 0, len(names))
	for _, name := range names {
		t, err := core.ParseTileType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
