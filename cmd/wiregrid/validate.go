package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

var validateShowLevel bool

var validateCmd = &cobra.Command{
	Use:   "validate <file|id>",
	Short: "Validate a level file",
	Long: `Checks a level for structural problems, runs the solver on it and
prints a report. Exits with status 1 when the level is invalid.

Examples:
  wiregrid validate hard.yaml
  wiregrid validate easy-12345 --show`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateShowLevel, "show", false, "Print the level before the report")
}

func runValidate(cmd *cobra.Command, args []string) {
	lvl, err := loadLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	res := core.ValidateLevel(lvl.Puzzle)
	logger.Debug("validation finished", "level", lvl.ID, "valid", res.Valid,
		"issues", len(res.Issues), "warnings", len(res.Warnings))

	r := renderer()
	if validateShowLevel {
		fmt.Print(r.Level(lvl.Puzzle))
	}
	fmt.Print(r.Report(res))

	if !res.Valid {
		os.Exit(1)
	}
}
