package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/platform/tui"
	"github.com/vovakirdan/wiregrid/internal/storage"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

var (
	historyLimit  int
	historyBrowse bool
	historyClear  bool
	historyPlays  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [difficulty]",
	Short: "Show stored batch statistics",
	Long: `Displays recorded bench runs, newest first, followed by per-tier
summaries. Without a difficulty, runs of every tier are listed. With
--plays the best solved games from play mode are shown instead.

Examples:
  wiregrid history
  wiregrid history hard --limit 5
  wiregrid history --browse
  wiregrid history medium --plays
  wiregrid history easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyBrowse, "browse", false, "Browse runs interactively")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the runs of the given difficulty")
	historyCmd.Flags().BoolVar(&historyPlays, "plays", false, "Show the best solved games instead of runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	var difficulty string
	if len(args) > 0 {
		d, err := core.ParseDifficulty(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		difficulty = string(d)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case historyClear:
		if difficulty == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a difficulty")
			os.Exit(1)
		}
		if err := store.ClearRuns(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared %s runs.\n", difficulty)

	case historyBrowse:
		start := core.DifficultyEasy
		if difficulty != "" {
			start = core.Difficulty(difficulty)
		}
		if err := tui.RunHistory(store, start); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history browser: %v\n", err)
			os.Exit(1)
		}

	case historyPlays:
		printPlays(store, difficulty)

	default:
		printHistory(store, difficulty)
	}
}

func printPlays(store *storage.Store, difficulty string) {
	tiers := core.Difficulties
	if difficulty != "" {
		tiers = []core.Difficulty{core.Difficulty(difficulty)}
	}

	fmt.Println("Best Games")
	for _, d := range tiers {
		plays, err := store.BestPlays(string(d), historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving plays: %v\n", err)
			os.Exit(1)
		}
		if len(plays) == 0 {
			continue
		}

		fmt.Println()
		fmt.Printf("%s:\n", d)
		fmt.Printf("  %-4s  %-6s  %-10s  %-20s  %s\n", "Rank", "Moves", "Time", "Seed", "Date")
		for i, p := range plays {
			fmt.Printf("  %-4d  %-6d  %-10s  %-20d  %s\n",
				i+1,
				p.Moves,
				p.Duration.Round(time.Second),
				p.Seed,
				p.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
	}
}

func printHistory(store *storage.Store, difficulty string) {
	runs, err := store.RecentRuns(difficulty, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Bench History")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'wiregrid bench' to record the first one.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-6s  %-7s  %-8s  %-9s  %-8s  %s\n",
		"Run", "Tier", "Levels", "Success", "Avg Path", "Avg Tries", "Time", "Date")
	fmt.Printf("  %-5s  %-10s  %-6s  %-7s  %-8s  %-9s  %-8s  %s\n",
		"---", "----", "------", "-------", "--------", "---------", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-6d  %-7s  %-8.1f  %-9.2f  %-8s  %s\n",
			r.ID,
			r.Difficulty,
			r.Total,
			fmt.Sprintf("%.0f%%", r.SuccessRate()*100),
			r.AveragePathLength,
			r.AverageAttempts,
			r.Duration.Round(10*time.Millisecond),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	sums, err := store.AllSummaries()
	if err != nil || len(sums) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Totals:")
	for _, d := range core.Difficulties {
		s, ok := sums[string(d)]
		if !ok || (difficulty != "" && string(d) != difficulty) {
			continue
		}
		fmt.Printf("  %-10s %d runs, %d levels, %d generated, %d valid, avg path %.1f\n",
			d, s.Runs, s.Levels, s.Successful, s.Valid, s.AveragePathLength)
	}
}
