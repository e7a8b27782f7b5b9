package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/platform/tui"
	"github.com/vovakirdan/wiregrid/internal/storage"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

var playNoStore bool

var playCmd = &cobra.Command{
	Use:   "play [difficulty|file|id]",
	Short: "Solve a level interactively",
	Long: `Opens a level in the terminal. Move the cursor over a tile and rotate it
until the start connects to the end. Energized tiles show how far the
signal reaches. Solved games are stored in the run database.

With a difficulty (default from config) a fresh level is generated; with a
file or level ID that level is opened instead.

Controls:
  Arrows/WASD/HJKL - Move cursor
  Space/Enter      - Rotate tile clockwise
  P                - Show the solution path
  R                - Reset the level
  N                - New level
  Q/Esc            - Quit

Examples:
  wiregrid play
  wiregrid play hard --seed 42
  wiregrid play levels/big.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playNoStore, "no-store", false, "Do not record solved games")
}

func runPlay(cmd *cobra.Command, args []string) {
	d, opts, err := cfg.Generate.ToOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var level *core.Level
	if len(args) > 0 {
		if parsed, perr := core.ParseDifficulty(args[0]); perr == nil {
			d = parsed
		} else {
			lvl, err := loadLevel(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
				os.Exit(1)
			}
			if err := tui.CheckPlayable(lvl.Puzzle); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", lvl.ID, err)
				os.Exit(1)
			}
			level = lvl.Puzzle
			if lvl.Puzzle.Metadata.Difficulty != "" {
				d = lvl.Puzzle.Metadata.Difficulty
			}
		}
	}

	gen := core.NewGenerator(logger)
	gen.MaxAttempts = cfg.Generate.MaxAttempts
	next := func() (*core.Level, error) {
		l, err := gen.Generate(context.Background(), d, opts)
		if err != nil {
			return nil, err
		}
		logger.Debug("level generated", "difficulty", d, "seed", l.Metadata.Seed)
		if opts.Seed != 0 {
			opts.Seed++
		}
		return l, nil
	}

	if level == nil {
		if level, err = next(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating level: %v\n", err)
			os.Exit(1)
		}
	}

	playCfg := tui.PlayConfig{Next: next, Seed: opts.Seed}
	if !playNoStore {
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("solved games will not be recorded", "err", err)
		} else {
			defer store.Close()
			playCfg.Recorder = store
		}
	}

	if err := tui.RunPlay(level, renderer(), playCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
