package config

import (
	_ "embed"
)

//go:embed defaults/wiregrid.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration. It matches
// the embedded defaults/wiregrid.yaml.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Difficulty:  "easy",
			MaxAttempts: 100,
		},
		Bench: BenchConfig{
			Count:   100,
			Workers: 4,
		},
		Storage: StorageConfig{
			DBPath:    "~/.wiregrid/runs.db",
			LevelsDir: "./levels",
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Colors:            "auto",
			ShowCoordinates:   true,
			HighlightSolution: true,
			ShowFixed:         true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
