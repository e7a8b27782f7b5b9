package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

const sampleLevel = `
id: sample
difficulty: easy
size: {w: 3, h: 2}
start: {x: 0, y: 0}
end: {x: 2, y: 0}
solved_path_length: 3
tiles:
  - {x: 0, y: 0, type: straight, rotation: 90}
  - {x: 1, y: 0, type: straight, rotation: 90, fixed: true}
  - {x: 2, y: 0, type: corner, rotation: 270}
  - {x: 1, y: 1, type: t-junction, rotation: 180}
solution:
  - {x: 0, y: 0}
  - {x: 1, y: 0, dir: East}
  - {x: 2, y: 0, dir: East}
metadata:
  tile_types: [straight, corner, t-junction]
  fixed_tile_count: 1
  generation_attempts: 2
  seed: 99
`

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	require.NoError(t, err)

	assert.Equal(t, "sample", lvl.ID)
	p := lvl.Puzzle
	assert.Equal(t, 3, p.Grid.W)
	assert.Equal(t, 2, p.Grid.H)
	assert.Equal(t, core.C(2, 0), p.End)
	assert.Equal(t, core.DifficultyEasy, p.Metadata.Difficulty)
	assert.Equal(t, int64(99), p.Metadata.Seed)

	mid := p.Grid.At(core.C(1, 0))
	assert.Equal(t, core.TileStraight, mid.Type())
	assert.True(t, mid.Fixed)
	assert.Equal(t, core.DirEast|core.DirWest, mid.Connections())

	// Cells not listed stay empty.
	assert.Equal(t, core.TileEmpty, p.Grid.At(core.C(0, 1)).Type())

	require.Len(t, p.Solution, 3)
	assert.Equal(t, core.DirEast, p.Solution[2].Dir)
	assert.Equal(t, []core.TileType{core.TileStraight, core.TileCorner, core.TileTJunction}, p.Metadata.TileTypes)

	assert.True(t, core.SolvePuzzle(p).Solved)
}

func TestParseYAMLRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad size", "id: x\nsize: {w: 0, h: 3}\n"},
		{"unknown type", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 0, y: 0, type: spiral, rotation: 0}\n"},
		{"out of bounds", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 5, y: 0, type: corner, rotation: 0}\n"},
		{"bad direction", "id: x\nsize: {w: 2, h: 2}\nsolution:\n  - {x: 0, y: 0, dir: Up}\n"},
		{"not yaml", "id: [unterminated"},
		{"rotation 45", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 0, y: 0, type: corner, rotation: 45}\n"},
		{"negative rotation", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 1, y: 0, type: straight, rotation: -90}\n"},
		{"rotation 360", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 1, y: 0, type: straight, rotation: 360}\n"},
		{"duplicate tile", "id: x\nsize: {w: 2, h: 2}\ntiles:\n  - {x: 1, y: 1, type: corner, rotation: 0}\n  - {x: 1, y: 1, type: straight, rotation: 90}\n"},
		{"start outside", "id: x\nsize: {w: 2, h: 1}\nstart: {x: 7, y: 9}\nend: {x: 1, y: 0}\n"},
		{"end outside", "id: x\nsize: {w: 2, h: 1}\nstart: {x: 0, y: 0}\nend: {x: 2, y: 0}\n"},
		{"negative start", "id: x\nsize: {w: 2, h: 1}\nstart: {x: -1, y: 0}\nend: {x: 1, y: 0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEncodeYAMLPreservesGeneratedLevel(t *testing.T) {
	level, err := core.GenerateLevel(core.DifficultyMedium, core.Options{Seed: 2024})
	require.NoError(t, err)

	data, err := EncodeYAML("medium-2024", level)
	require.NoError(t, err)

	parsed, err := ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "medium-2024", parsed.ID)
	assert.True(t, level.Grid.Equal(parsed.Puzzle.Grid), "grid changed through YAML")
	assert.Equal(t, level.Solution, parsed.Puzzle.Solution)
	assert.Equal(t, level.Metadata, parsed.Puzzle.Metadata)
	assert.Equal(t, core.SolvePuzzle(level), core.SolvePuzzle(parsed.Puzzle))
}
