package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

func generate(t *testing.T, seed int64) *core.Level {
	t.Helper()
	level, err := core.GenerateLevel(core.DifficultyEasy, core.Options{Seed: seed})
	require.NoError(t, err)
	return level
}

func TestLoaderSaveAndLoadAll(t *testing.T) {
	root := t.TempDir()
	loader := NewLoader(root)

	require.NoError(t, loader.Save("b-level", generate(t, 2), "b.yaml"))
	require.NoError(t, loader.Save("a-level", generate(t, 1), filepath.Join("nested", "a.yml")))

	// Non-level and broken files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.yaml"), []byte("size: {w: 0}"), 0o644))

	levels, err := loader.LoadAll()
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "a-level", levels[0].ID)
	assert.Equal(t, "b-level", levels[1].ID)

	ids, err := loader.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a-level", "b-level"}, ids)
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(t.TempDir())
	original := generate(t, 7)
	require.NoError(t, loader.Save("seven", original, "seven.yaml"))

	lvl, err := loader.LoadByID("seven")
	require.NoError(t, err)
	assert.True(t, original.Grid.Equal(lvl.Puzzle.Grid))
	assert.Equal(t, original.Start, lvl.Puzzle.Start)

	_, err = loader.LoadByID("missing")
	assert.Error(t, err)
}

func TestLoaderLoadFileDefaultsIDToFileName(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "untitled.yaml")
	data := "size: {w: 2, h: 2}\nstart: {x: 0, y: 0}\nend: {x: 1, y: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	lvl, err := NewLoader(root).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "untitled", lvl.ID)
	assert.Equal(t, path, lvl.FilePath)
}

func TestLoaderSaveRejectsUnknownExtension(t *testing.T) {
	err := NewLoader(t.TempDir()).Save("x", generate(t, 3), "level.json")
	assert.Error(t, err)
}
