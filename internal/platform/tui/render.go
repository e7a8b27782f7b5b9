package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// Options controls what the level view shows.
type Options struct {
	ShowRotations     bool // Append the quarter-turn count to rotatable tiles
	HighlightSolution bool
	ShowFixed         bool
	UseColors         bool
	ShowCoordinates   bool
	ShowTileTypes     bool // Type abbreviations instead of glyphs
}

// DefaultOptions returns the default view options.
func DefaultOptions() Options {
	return Options{
		HighlightSolution: true,
		ShowFixed:         true,
		UseColors:         true,
		ShowCoordinates:   true,
	}
}

// Renderer draws levels and reports as text.
type Renderer struct {
	Theme   Theme
	Options Options
}

// NewRenderer creates a renderer. Colors off selects the plain theme.
func NewRenderer(opts Options) *Renderer {
	theme := PlainTheme()
	if opts.UseColors {
		theme = DefaultTheme()
	}
	return &Renderer{Theme: theme, Options: opts}
}

func (r *Renderer) rule(width int) string {
	return r.Theme.Rule.Render(strings.Repeat("═", width)) + "\n"
}

// Level draws the level as currently rotated, with a header, legend and
// metadata footer.
func (r *Renderer) Level(level *core.Level) string {
	g := level.Grid
	opts := r.Options
	width := g.W*4 + 2

	onPath := mapset.New[core.Coord]()
	if opts.HighlightSolution {
		for _, c := range level.Solution.Coords() {
			onPath.Put(c)
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))
	sb.WriteString(r.Theme.Title.Render(fmt.Sprintf("  Level: %s | Grid: %dx%d | Path Length: %d",
		strings.ToUpper(string(level.Metadata.Difficulty)), g.W, g.H, level.SolvedPathLength)))
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))

	if opts.ShowCoordinates {
		sb.WriteString(columnHeader(g.W))
	}

	for y := 0; y < g.H; y++ {
		if opts.ShowCoordinates {
			fmt.Fprintf(&sb, "%2d│", y)
		}
		for x := 0; x < g.W; x++ {
			c := core.C(x, y)
			tile := g.At(c)

			var cell string
			if opts.ShowTileTypes {
				cell = core.TypeAbbrev(tile.Type())
			} else {
				cell = core.Glyph(tile.Connections())
				if opts.ShowRotations && tile.Def.Rotatable {
					cell += fmt.Sprintf("%d", tile.Rotation/90)
				} else {
					cell += " "
				}
			}

			switch {
			case c == level.Start:
				cell = r.Theme.Start.Render("S ")
			case c == level.End:
				cell = r.Theme.End.Render("E ")
			case onPath.Has(c):
				cell = r.Theme.Path.Render(cell)
			case tile.Fixed && opts.ShowFixed:
				cell = r.Theme.Fixed.Render(cell)
			case tile.Type() == core.TileEmpty:
				cell = r.Theme.Empty.Render(cell)
			}

			sb.WriteString(" ")
			sb.WriteString(cell)
		}
		if opts.ShowCoordinates {
			sb.WriteString("│")
		}
		sb.WriteString("\n")
	}

	if opts.ShowCoordinates {
		sb.WriteString("  " + strings.Repeat("─", g.W*4) + "\n")
	}

	sb.WriteString("\nLegend:\n")
	sb.WriteString("  S = Start, E = End\n")
	if opts.ShowFixed && opts.UseColors {
		sb.WriteString("  " + r.Theme.Fixed.Render("Cyan") + " = Fixed tiles (cannot rotate)\n")
	}
	if opts.HighlightSolution && opts.UseColors {
		sb.WriteString("  " + r.Theme.Path.Render("Yellow") + " = Solution path\n")
	}
	if opts.ShowRotations {
		sb.WriteString("  Numbers = Rotation (0=0°, 1=90°, 2=180°, 3=270°)\n")
	}

	sb.WriteString("\nTile Types:\n")
	fmt.Fprintf(&sb, "  %s = Straight  %s = Corner  %s = T-junction  %s = 4-way\n",
		core.Glyph(core.DirNorth|core.DirSouth),
		core.Glyph(core.DirNorth|core.DirEast),
		core.Glyph(core.DirNorth|core.DirEast|core.DirSouth),
		core.Glyph(core.DirAll))

	sb.WriteString("\nMetadata:\n")
	fmt.Fprintf(&sb, "  Fixed Tiles: %d\n", level.Metadata.FixedTileCount)
	fmt.Fprintf(&sb, "  Tile Types: %s\n", joinTypes(level.Metadata.TileTypes))
	fmt.Fprintf(&sb, "  Generation Attempts: %d\n", level.Metadata.GenerationAttempts)
	fmt.Fprintf(&sb, "  Seed: %d\n", level.Metadata.Seed)
	sb.WriteString(r.rule(width))

	return sb.String()
}

// Solution draws the grid with path cells highlighted. A nil path uses the
// level's generation-time solution.
func (r *Renderer) Solution(level *core.Level, path core.SolutionPath) string {
	if path == nil {
		path = level.Solution
	}
	g := level.Grid
	width := g.W*4 + 2
	onPath := pathSet(path)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))
	sb.WriteString(r.Theme.Title.Render("  SOLUTION VIEW"))
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))
	sb.WriteString("\n")
	sb.WriteString(columnHeader(g.W))

	for y := 0; y < g.H; y++ {
		fmt.Fprintf(&sb, "%2d│", y)
		for x := 0; x < g.W; x++ {
			sb.WriteString(" ")
			sb.WriteString(r.solutionCell(level, core.C(x, y), onPath, 2))
		}
		sb.WriteString("│\n")
	}

	sb.WriteString("  " + strings.Repeat("─", g.W*4) + "\n")
	sb.WriteString("\n" + r.Theme.Solution.Render("Green") + " = Solution path\n")
	sb.WriteString(r.rule(width))
	return sb.String()
}

// solutionCell draws one cell padded to width for the solution views.
func (r *Renderer) solutionCell(level *core.Level, c core.Coord, onPath mapset.Set[core.Coord], width int) string {
	tile := level.Grid.At(c)
	glyph := core.Glyph(tile.Connections())
	pad := strings.Repeat(" ", width-1)

	switch {
	case c == level.Start:
		return r.Theme.Start.Render("S" + pad)
	case c == level.End:
		return r.Theme.End.Render("E" + pad)
	case onPath.Has(c):
		return r.Theme.Solution.Render(glyph) + pad
	case tile.Type() == core.TileEmpty:
		return r.Theme.Empty.Render(glyph) + pad
	default:
		return glyph + pad
	}
}

// Comparison draws the level as the player sees it next to the same grid
// with the solution path highlighted.
func (r *Renderer) Comparison(level *core.Level, path core.SolutionPath) string {
	if path == nil {
		path = level.Solution
	}
	g := level.Grid
	onPath := pathSet(path)
	panel := g.W*2 + 2

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("╔" + strings.Repeat("═", panel) + "╦" + strings.Repeat("═", panel) + "╗\n")
	sb.WriteString(padVisible("║ SCRAMBLED", panel+1) + padVisible("║ SOLUTION", panel+1) + "║\n")
	sb.WriteString("╠" + strings.Repeat("═", panel) + "╬" + strings.Repeat("═", panel) + "╣\n")

	for y := 0; y < g.H; y++ {
		left := "║ "
		right := "║ "
		for x := 0; x < g.W; x++ {
			c := core.C(x, y)
			tile := g.At(c)
			glyph := core.Glyph(tile.Connections())

			switch {
			case c == level.Start:
				left += r.Theme.Start.Render("S")
			case c == level.End:
				left += r.Theme.End.Render("E")
			case tile.Fixed:
				left += r.Theme.Fixed.Render(glyph)
			default:
				left += glyph
			}
			left += " "

			right += r.solutionCell(level, c, onPath, 2)
		}
		sb.WriteString(padVisible(left, panel+1) + padVisible(right, panel+1) + "║\n")
	}

	sb.WriteString("╚" + strings.Repeat("═", panel) + "╩" + strings.Repeat("═", panel) + "╝\n")
	sb.WriteString("\nLEFT:  Scrambled puzzle (what the player sees)\n")
	sb.WriteString("RIGHT: Solution path highlighted in " + r.Theme.Solution.Render("green") + "\n\n")
	sb.WriteString(r.Theme.Fixed.Render("Cyan tiles") + " = Fixed (cannot be rotated)\n")
	sb.WriteString(r.Theme.Start.Render("S") + " = Start, " + r.Theme.End.Render("E") + " = End\n")
	return sb.String()
}

// Connections draws every cell as its N, E, S, W connection code.
func (r *Renderer) Connections(level *core.Level) string {
	g := level.Grid
	width := g.W*5 + 2

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))
	sb.WriteString(r.Theme.Title.Render("  CONNECTION DEBUG VIEW"))
	sb.WriteString("\n")
	sb.WriteString(r.rule(width))
	sb.WriteString("\n")

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := core.C(x, y)
			cell := core.ConnectionCode(g.At(c).Connections())
			switch c {
			case level.Start:
				cell = r.Theme.Start.Render(cell)
			case level.End:
				cell = r.Theme.End.Render(cell)
			}
			sb.WriteString(" ")
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nEach cell shows: North, East, South, West connections\n")
	sb.WriteString("Example: \"N·SW\" = Connected North, South, and West\n")
	sb.WriteString(r.rule(width))
	return sb.String()
}

// PathSteps describes a path cell by cell: tile, rotation, connections and
// the move to the next cell.
func (r *Renderer) PathSteps(level *core.Level, path core.SolutionPath) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.rule(60))
	sb.WriteString(r.Theme.Title.Render("  PATH DEBUG"))
	sb.WriteString("\n")
	sb.WriteString(r.rule(60))
	sb.WriteString("\n")

	for i, step := range path {
		c := step.Coord()
		tile := level.Grid.At(c)
		if tile == nil {
			fmt.Fprintf(&sb, "Step %d: %v outside grid\n\n", i, c)
			continue
		}

		fmt.Fprintf(&sb, "Step %d: (%d, %d)\n", i, c.X, c.Y)
		fmt.Fprintf(&sb, "  Tile: %s\n", tile.Type())
		fmt.Fprintf(&sb, "  Rotation: %d°\n", tile.Rotation)
		fmt.Fprintf(&sb, "  Connections: %s\n", strings.ReplaceAll(tile.Connections().String(), "|", ", "))

		if i < len(path)-1 {
			next := path[i+1].Coord()
			move := c.DirectionTo(next)
			moving := move.String()
			if move == core.DirNone {
				moving = r.Theme.Bad.Render("ERROR")
			}
			fmt.Fprintf(&sb, "  Moving: %s to (%d, %d)\n", moving, next.X, next.Y)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(r.rule(60))
	return sb.String()
}

// Report draws a validation report.
func (r *Renderer) Report(res core.ValidationResult) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(r.rule(60))
	sb.WriteString(r.Theme.Title.Render("  LEVEL VALIDATION REPORT"))
	sb.WriteString("\n")
	sb.WriteString(r.rule(60))
	sb.WriteString("\n")

	status := r.Theme.Good.Render("✓ VALID")
	if !res.Valid {
		status = r.Theme.Bad.Render("✗ INVALID")
	}
	sb.WriteString("Status: " + status + "\n\n")

	if len(res.Issues) > 0 {
		sb.WriteString(r.Theme.Bad.Render("ISSUES:") + "\n")
		for _, issue := range res.Issues {
			fmt.Fprintf(&sb, "  ✗ %s\n", issue.Error())
		}
		sb.WriteString("\n")
	}

	if len(res.Warnings) > 0 {
		sb.WriteString(r.Theme.Warn.Render("WARNINGS:") + "\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&sb, "  ⚠ %s\n", w.Error())
		}
		sb.WriteString("\n")
	}

	sb.WriteString(r.Theme.Label.Render("SOLVE ATTEMPT:") + "\n")
	if res.Solve.Solved {
		fmt.Fprintf(&sb, "  %s %s\n", r.Theme.Good.Render("✓"), res.Solve.Message)
		fmt.Fprintf(&sb, "  Path length: %d\n", res.Solve.PathLength)
	} else {
		fmt.Fprintf(&sb, "  %s %s\n", r.Theme.Bad.Render("✗"), res.Solve.Message)
	}
	fmt.Fprintf(&sb, "  Nodes explored: %d\n\n", res.Solve.ExploredNodes)

	a := res.Analysis
	sb.WriteString(r.Theme.Label.Render("GRID ANALYSIS:") + "\n")
	fmt.Fprintf(&sb, "  Total tiles: %d\n", a.TotalTiles)
	fmt.Fprintf(&sb, "  Empty tiles: %d\n", a.EmptyTiles)
	fmt.Fprintf(&sb, "  Rotatable tiles: %d\n", a.RotatableTiles)
	fmt.Fprintf(&sb, "  Fixed tiles: %d\n", a.FixedTiles)
	sb.WriteString("  Tile types:\n")

	types := make([]core.TileType, 0, len(a.TileTypeCounts))
	for t := range a.TileTypeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(&sb, "    %s: %d\n", t, a.TileTypeCounts[t])
	}

	sb.WriteString("\n")
	sb.WriteString(r.rule(60))
	return sb.String()
}

// Tiers draws the difficulty table.
func (r *Renderer) Tiers() string {
	var sb strings.Builder
	sb.WriteString(r.Theme.Title.Render(fmt.Sprintf("%-10s %-6s %-8s %-7s %-6s %s",
		"TIER", "GRID", "PATH", "DECOYS", "FIXED", "TILES")))
	sb.WriteString("\n")

	for _, d := range core.Difficulties {
		cfg, err := core.ConfigFor(d)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%-10s %-6s %-8s %-7d %-6s %s\n",
			d,
			fmt.Sprintf("%dx%d", cfg.GridWidth, cfg.GridHeight),
			fmt.Sprintf("%d-%d", cfg.MinPathLength, cfg.MaxPathLength),
			cfg.DecoyBranches,
			fmt.Sprintf("%.0f%%", cfg.FixedTilePercentage*100),
			joinTypes(cfg.AllowedTileTypes))
	}
	return sb.String()
}

func columnHeader(w int) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < w; x++ {
		fmt.Fprintf(&sb, " %2d ", x)
	}
	sb.WriteString("\n")
	sb.WriteString("  " + strings.Repeat("─", w*4) + "\n")
	return sb.String()
}

// padVisible right-pads s to width visible columns, ignoring ANSI sequences.
func padVisible(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func joinTypes(types []core.TileType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func pathSet(path core.SolutionPath) mapset.Set[core.Coord] {
	set := mapset.New[core.Coord]()
	for _, c := range path.Coords() {
		set.Put(c)
	}
	return set
}
