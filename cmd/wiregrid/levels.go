package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List saved levels",
	Long:  `Lists the levels stored in the levels directory (storage.levels_dir in the config).`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	lvls, err := levels.NewLoader(cfg.Storage.LevelsDir).LoadAll()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("No levels directory at %s.\n", cfg.Storage.LevelsDir)
			fmt.Println("Run 'wiregrid generate --save' to create one.")
			return
		}
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels saved yet.")
		return
	}

	fmt.Printf("%-24s %-10s %-6s %-5s %s\n", "ID", "TIER", "GRID", "PATH", "FILE")
	for _, l := range lvls {
		p := l.Puzzle
		fmt.Printf("%-24s %-10s %-6s %-5d %s\n",
			l.ID,
			p.Metadata.Difficulty,
			fmt.Sprintf("%dx%d", p.Grid.W, p.Grid.H),
			p.SolvedPathLength,
			l.FilePath,
		)
	}
}
