package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/wiregrid/internal/storage"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// PlayRecorder is the part of the store that keeps solved games.
type PlayRecorder interface {
	SavePlay(p storage.Play) (int64, error)
}

// PlayConfig configures an interactive session.
type PlayConfig struct {
	Recorder PlayRecorder                // nil disables recording
	Next     func() (*core.Level, error) // nil disables new levels
	Seed     int64                       // Seeds the path shuffle; 0 uses the clock
}

// PlayModel is the Bubble Tea model for solving a level by rotating tiles.
type PlayModel struct {
	renderer *Renderer
	keys     *KeyMapper
	config   PlayConfig
	rng      *core.RNG

	level    *core.Level
	initial  *core.Level // Shuffled state, restored by reset
	cursor   core.Coord
	moves    int
	started  time.Time
	solved   bool
	recorded bool
	hint     bool
	message  string
	quitting bool
}

// NewPlayModel creates a session for level. The solution path is shuffled
// first so the level does not open already solved.
func NewPlayModel(level *core.Level, r *Renderer, cfg PlayConfig) PlayModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := PlayModel{
		renderer: r,
		keys:     NewKeyMapper(),
		config:   cfg,
		rng:      core.NewRNG(cfg.Seed),
	}
	m.load(level)
	return m
}

// load starts a fresh session on level.
func (m *PlayModel) load(level *core.Level) {
	level.ShufflePath(m.rng)
	m.level = level
	m.initial = level.Clone()
	m.cursor = level.Start
	if !level.Grid.InBounds(m.cursor) {
		m.cursor = core.C(0, 0)
	}
	m.moves = 0
	m.started = time.Now()
	m.solved = core.SolvePuzzle(level).Solved
	m.recorded = false
	m.hint = false
}

// Level returns the level in its current rotation state.
func (m PlayModel) Level() *core.Level { return m.level }

// Cursor returns the selected cell.
func (m PlayModel) Cursor() core.Coord { return m.cursor }

// Moves returns the number of rotations made since the level was loaded or reset.
func (m PlayModel) Moves() int { return m.moves }

// Solved reports whether the start currently connects to the end.
func (m PlayModel) Solved() bool { return m.solved }

// Message returns the last status message.
func (m PlayModel) Message() string { return m.message }

// Init initializes the play model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.message = ""
	switch action {
	case PlayActionUp:
		m.move(core.DirNorth)
	case PlayActionDown:
		m.move(core.DirSouth)
	case PlayActionLeft:
		m.move(core.DirWest)
	case PlayActionRight:
		m.move(core.DirEast)
	case PlayActionRotate:
		m.rotate()
	case PlayActionHint:
		m.hint = !m.hint
	case PlayActionReset:
		m.level = m.initial.Clone()
		m.moves = 0
		m.solved = core.SolvePuzzle(m.level).Solved
		m.recorded = false
	case PlayActionNext:
		m.next()
	}
	return m, nil
}

func (m *PlayModel) move(d core.Direction) {
	if c := m.cursor.Step(d); m.level.Grid.InBounds(c) {
		m.cursor = c
	}
}

// rotate turns the selected tile and records the game once solved.
func (m *PlayModel) rotate() {
	if m.solved {
		m.message = "Already solved. Press n for a new level."
		return
	}

	err := m.level.RotateTile(m.cursor)
	switch {
	case errors.Is(err, core.ErrTileFixed):
		m.message = "That tile is fixed."
		return
	case errors.Is(err, core.ErrTileNotRotatable):
		m.message = "That tile does not rotate."
		return
	case err != nil:
		m.message = err.Error()
		return
	}

	m.moves++
	if core.SolvePuzzle(m.level).Solved {
		m.solved = true
		m.record()
	}
}

// record saves a solved game, at most once per session.
func (m *PlayModel) record() {
	if m.recorded || m.config.Recorder == nil {
		return
	}
	m.recorded = true

	_, err := m.config.Recorder.SavePlay(storage.Play{
		Difficulty: string(m.level.Metadata.Difficulty),
		Seed:       m.level.Metadata.Seed,
		Moves:      m.moves,
		Duration:   time.Since(m.started),
	})
	if err != nil {
		m.message = "Cannot save result: " + err.Error()
	}
}

func (m *PlayModel) next() {
	if m.config.Next == nil {
		m.message = "No level source for a new level."
		return
	}
	level, err := m.config.Next()
	if err == nil {
		err = CheckPlayable(level)
	}
	if err != nil {
		m.message = "Cannot create level: " + err.Error()
		return
	}
	m.load(level)
}

// View renders the board, status and key help.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	r := m.renderer
	g := m.level.Grid

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.Theme.Title.Render(fmt.Sprintf("  WIREGRID | %s | %dx%d",
		strings.ToUpper(string(m.level.Metadata.Difficulty)), g.W, g.H)))
	sb.WriteString("\n\n")
	sb.WriteString(r.Board(m.level, m.cursor, m.hint))
	sb.WriteString("\n")

	status := fmt.Sprintf("  Moves: %d", m.moves)
	if tile := g.At(m.cursor); tile != nil {
		status += fmt.Sprintf("   Tile %v: %s %d°", m.cursor, tile.Type(), tile.Rotation)
		if tile.Fixed {
			status += " (fixed)"
		}
	}
	sb.WriteString(status)
	sb.WriteString("\n")

	if m.solved {
		sb.WriteString("  ")
		sb.WriteString(r.Theme.Good.Render(fmt.Sprintf("SOLVED in %d moves!", m.moves)))
		sb.WriteString("\n")
	}
	if m.message != "" {
		sb.WriteString("  ")
		sb.WriteString(r.Theme.Warn.Render(m.message))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(r.Theme.Rule.Render("  arrows/wasd move | space rotate | p path | r reset | n new | q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Board draws the level for play. Cells the signal reaches from the start
// are energized, and the cursor cell is bracketed. With hint set the
// generator's solution path is highlighted too.
func (r *Renderer) Board(level *core.Level, cursor core.Coord, hint bool) string {
	g := level.Grid

	energized := mapset.New[core.Coord]()
	for _, c := range core.Reachable(g, level.Start, level.StrictCrissCross) {
		energized.Put(c)
	}
	onPath := mapset.New[core.Coord]()
	if hint {
		onPath = pathSet(level.Solution)
	}

	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.WriteString(" ")
		for x := 0; x < g.W; x++ {
			c := core.C(x, y)
			tile := g.At(c)
			cell := core.Glyph(tile.Connections())

			switch {
			case c == level.Start:
				cell = r.Theme.Start.Render(cell)
			case c == level.End:
				cell = r.Theme.End.Render(cell)
			case energized.Has(c):
				cell = r.Theme.Energized.Render(cell)
			case onPath.Has(c):
				cell = r.Theme.Solution.Render(cell)
			case tile.Fixed && r.Options.ShowFixed:
				cell = r.Theme.Fixed.Render(cell)
			case tile.Type() == core.TileEmpty:
				cell = r.Theme.Empty.Render(cell)
			}

			if c == cursor {
				sb.WriteString(r.Theme.Cursor.Render("["))
				sb.WriteString(cell)
				sb.WriteString(r.Theme.Cursor.Render("]"))
			} else {
				sb.WriteString(" ")
				sb.WriteString(cell)
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// CheckPlayable rejects levels with structural problems such as endpoints
// outside the grid or illegal rotations. An unsolved level is playable.
func CheckPlayable(level *core.Level) error {
	if level == nil {
		return errors.New("no level")
	}
	issues := core.ValidateLevel(level).StructuralIssues()
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Error()
	}
	return fmt.Errorf("level is not playable: %s", strings.Join(msgs, "; "))
}

// RunPlay runs an interactive session until the user quits.
func RunPlay(level *core.Level, r *Renderer, cfg PlayConfig) error {
	if err := CheckPlayable(level); err != nil {
		return err
	}

	model := NewPlayModel(level, r, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
