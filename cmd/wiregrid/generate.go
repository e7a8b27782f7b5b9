package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/levels"
)

var (
	generateView     string
	generateOut      string
	generateSave     bool
	generateID       string
	generateWidth    int
	generateHeight   int
	generateMinPath  int
	generateMaxPath  int
	generateTiles    []string
	generateRequire  []string
	generateNoFixed  bool
	generateStrict   bool
	generateBudget   int
	generateAttempts int
	generateRotation bool
	generateTypes    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [difficulty]",
	Short: "Generate a level",
	Long: `Generates a level of the given difficulty (default from config) and
prints it. Views:
  level        - scrambled grid as the player sees it
  solution     - grid with the solution path highlighted
  compare      - solution and scrambled grid side by side
  connections  - connection mask of every tile
  path         - solution path as a list of steps
  ascii        - compact glyph grid
  all          - every view above

Examples:
  wiregrid generate medium --seed 7
  wiregrid generate hard --view compare
  wiregrid generate easy --tiles straight,corner --require corner --no-fixed
  wiregrid generate superHard --out levels/big.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateView, "view", "level", "Output view: level, solution, compare, connections, path, ascii, all")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Write the level to a YAML file")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save the level into the levels directory")
	generateCmd.Flags().StringVar(&generateID, "id", "", "Level ID for saved files (default: <difficulty>-<seed>)")
	generateCmd.Flags().IntVar(&generateWidth, "width", 0, "Grid width (0 = tier default)")
	generateCmd.Flags().IntVar(&generateHeight, "height", 0, "Grid height (0 = tier default)")
	generateCmd.Flags().IntVar(&generateMinPath, "min-path", 0, "Minimum path length (0 = tier default)")
	generateCmd.Flags().IntVar(&generateMaxPath, "max-path", 0, "Maximum path length (0 = tier default)")
	generateCmd.Flags().StringSliceVar(&generateTiles, "tiles", nil, "Allowed tile types")
	generateCmd.Flags().StringSliceVar(&generateRequire, "require", nil, "Tile types that must appear")
	generateCmd.Flags().BoolVar(&generateNoFixed, "no-fixed", false, "Disable fixed tiles")
	generateCmd.Flags().BoolVar(&generateStrict, "strict-crisscross", false, "Crisscross tiles keep their two channels separate")
	generateCmd.Flags().IntVar(&generateBudget, "budget", 0, "Path search step budget (0 = unlimited)")
	generateCmd.Flags().IntVar(&generateAttempts, "max-attempts", 0, "Generation attempts before giving up (0 = config default)")
	generateCmd.Flags().BoolVar(&generateRotation, "rotations", false, "Show tile rotations")
	generateCmd.Flags().BoolVar(&generateTypes, "types", false, "Show tile type abbreviations")
}

func runGenerate(cmd *cobra.Command, args []string) {
	applyGenerateFlags(cmd, args)

	d, opts, err := cfg.Generate.ToOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	gen := core.NewGenerator(logger)
	gen.MaxAttempts = cfg.Generate.MaxAttempts

	level, err := gen.Generate(ctx, d, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating level: %v\n", err)
		os.Exit(1)
	}
	logger.Info("level generated",
		"difficulty", d,
		"size", fmt.Sprintf("%dx%d", level.Grid.W, level.Grid.H),
		"path", level.SolvedPathLength,
		"attempts", level.Metadata.GenerationAttempts,
		"seed", level.Metadata.Seed,
	)

	out, err := renderView(level, generateView)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)

	id := generateID
	if id == "" {
		id = fmt.Sprintf("%s-%d", d, level.Metadata.Seed)
	}
	if generateOut != "" {
		if err := levels.NewLoader("").Save(id, level, generateOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
			os.Exit(1)
		}
		logger.Info("level written", "id", id, "path", generateOut)
	}
	if generateSave {
		if err := levels.NewLoader(cfg.Storage.LevelsDir).Save(id, level, id+".yaml"); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
			os.Exit(1)
		}
		logger.Info("level saved", "id", id, "dir", cfg.Storage.LevelsDir)
	}
}

// applyGenerateFlags copies explicitly set flags over the config values.
func applyGenerateFlags(cmd *cobra.Command, args []string) {
	g := &cfg.Generate
	if len(args) > 0 {
		g.Difficulty = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		g.Width = generateWidth
	}
	if flags.Changed("height") {
		g.Height = generateHeight
	}
	if flags.Changed("min-path") {
		g.MinPath = generateMinPath
	}
	if flags.Changed("max-path") {
		g.MaxPath = generateMaxPath
	}
	if flags.Changed("tiles") {
		g.AllowedTiles = generateTiles
	}
	if flags.Changed("require") {
		g.RequiredTiles = generateRequire
	}
	if generateNoFixed {
		g.AllowFixedTiles = core.Bool(false)
	}
	if generateStrict {
		g.StrictCrissCross = true
	}
	if flags.Changed("budget") {
		g.SearchBudget = generateBudget
	}
	if generateAttempts > 0 {
		g.MaxAttempts = generateAttempts
	}
	if generateRotation {
		cfg.Render.ShowRotations = true
	}
	if generateTypes {
		cfg.Render.ShowTileTypes = true
	}
}

// renderView renders a level in one of the named views.
// views lists every single view in the order "all" prints them.
var views = []string{"level", "solution", "compare", "connections", "path", "ascii"}

func renderView(level *core.Level, view string) (string, error) {
	r := renderer()
	switch strings.ToLower(view) {
	case "level", "":
		return r.Level(level), nil
	case "solution":
		return r.Solution(level, nil), nil
	case "compare":
		return r.Comparison(level, nil), nil
	case "connections":
		return r.Connections(level), nil
	case "path":
		return r.PathSteps(level, level.Solution), nil
	case "ascii":
		return core.RenderASCII(level), nil
	case "all":
		var b strings.Builder
		for _, v := range views {
			s, _ := renderView(level, v)
			b.WriteString(s)
			b.WriteString("\n")
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("unknown view %q", view)
}
