// wiregrid generates, solves and validates tile-rotation pipe puzzles.
//
// Usage:
//
//	wiregrid tiers                 - List difficulty tiers
//	wiregrid generate [difficulty] - Generate a level
//	wiregrid solve <file|id>       - Solve a level file
//	wiregrid validate <file|id>    - Validate a level file
//	wiregrid levels                - List saved levels
//	wiregrid play [difficulty]     - Solve a level interactively
//	wiregrid bench [difficulty]    - Generate a batch and report statistics
//	wiregrid history [difficulty]  - Show stored batch statistics
//
// Global flags:
//
//	--seed <value>     - RNG seed for reproducible levels
//	--config <path>    - Configuration file
//	--db <path>        - Run database path (default: ~/.wiregrid/runs.db)
//	--log-level <lvl>  - debug, info, warn, error
//	--no-color         - Disable colored output
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wiregrid/internal/config"
	"github.com/vovakirdan/wiregrid/internal/platform/tui"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagNoColor  bool

	// Loaded before any command runs
	cfg    = config.DefaultConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "wiregrid"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wiregrid",
	Short: "wiregrid - procedural tile-rotation puzzle generator",
	Long: `wiregrid builds tile-rotation pipe puzzles: a grid of rotatable tiles
in which the player turns tiles until a connected path joins the start
and end cells. Every generated level is checked solvable.

Available commands:
  tiers     - Show the difficulty tiers
  generate  - Generate a level and print it
  solve     - Run the solver on a level file
  validate  - Print a validation report for a level file
  levels    - List saved levels
  play      - Solve a level interactively
  bench     - Generate a batch and report statistics
  history   - Show stored batch statistics

Examples:
  wiregrid generate easy --seed 12345
  wiregrid generate hard --view compare --out hard.yaml
  wiregrid validate hard.yaml
  wiregrid play medium
  wiregrid bench medium --count 200 --workers 8
  wiregrid history --browse`,
	PersistentPreRun: setup,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the configuration and builds the logger. Flags override
// config values.
func setup(cmd *cobra.Command, _ []string) {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		fatal("cannot load config", err)
	}
	cfg = loaded

	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fatal("invalid log level", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wiregrid",
		Level:           level,
	})
	logger.Debug("config loaded", "path", flagConfig, "difficulty", cfg.Generate.Difficulty, "db", cfg.Storage.DBPath)
}

// renderer builds a text renderer from the render config. Colors follow
// the terminal unless forced on or off.
func renderer() *tui.Renderer {
	r := cfg.Render
	return tui.NewRenderer(tui.Options{
		ShowRotations:     r.ShowRotations,
		HighlightSolution: r.HighlightSolution,
		ShowFixed:         r.ShowFixed,
		UseColors:         useColors(),
		ShowCoordinates:   r.ShowCoordinates,
		ShowTileTypes:     r.ShowTileTypes,
	})
}

func useColors() bool {
	if flagNoColor {
		return false
	}
	switch cfg.Render.Colors {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// signalContext returns a context cancelled on Ctrl+C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// fatal logs err and exits.
func fatal(msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
