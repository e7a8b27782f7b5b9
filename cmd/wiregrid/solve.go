package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/levels"
)

var (
	solveShowPath bool
	solveShowGrid bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <file|id>",
	Short: "Solve a level file",
	Long: `Runs the breadth-first solver on a level file, or on a level from the
levels directory when the argument is not an existing file.

Examples:
  wiregrid solve hard.yaml
  wiregrid solve easy-12345 --path`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveShowPath, "path", false, "Print the path step by step")
	solveCmd.Flags().BoolVar(&solveShowGrid, "grid", false, "Print the grid with the found path highlighted")
}

func runSolve(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	res := core.SolvePuzzle(lvl.Puzzle)
	logger.Debug("solver finished", "level", lvl.ID, "solved", res.Solved, "explored", res.ExploredNodes)

	fmt.Println(res.Message)
	fmt.Printf("Nodes explored: %d\n", res.ExploredNodes)

	if res.Solved {
		r := renderer()
		if solveShowGrid {
			fmt.Print(r.Solution(lvl.Puzzle, res.Path))
		}
		if solveShowPath {
			fmt.Print(r.PathSteps(lvl.Puzzle, res.Path))
		}
		return
	}
	os.Exit(1)
}

// loadLevel reads a level from a file path, falling back to a level ID in
// the configured levels directory.
func loadLevel(arg string) (levels.Level, error) {
	loader := levels.NewLoader(cfg.Storage.LevelsDir)
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return loader.LoadFile(arg)
	}
	return loader.LoadByID(arg)
}
