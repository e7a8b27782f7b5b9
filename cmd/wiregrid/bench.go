package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wiregrid/internal/bench"
	"github.com/vovakirdan/wiregrid/internal/storage"
	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

var (
	benchCount   int
	benchWorkers int
	benchNoStore bool
	benchFailed  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [difficulty]",
	Short: "Generate a batch and report statistics",
	Long: `Generates a batch of levels in parallel, validates each one and prints
success rate, average path length and average attempts. Level i of the
batch uses seed <seed>+i, so a fixed --seed reproduces the batch.
The run is recorded in the run database unless --no-store is given.

Examples:
  wiregrid bench
  wiregrid bench hard --count 500 --workers 8
  wiregrid bench easy --seed 1 --no-store`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchCount, "count", 0, "Levels to generate (0 = config default)")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "Parallel generators (0 = config default)")
	benchCmd.Flags().BoolVar(&benchNoStore, "no-store", false, "Do not record the run")
	benchCmd.Flags().BoolVar(&benchFailed, "failed", false, "List the seeds of failed levels")
}

func runBench(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		cfg.Generate.Difficulty = args[0]
	}
	if benchCount > 0 {
		cfg.Bench.Count = benchCount
	}
	if benchWorkers > 0 {
		cfg.Bench.Workers = benchWorkers
	}

	d, opts, err := cfg.Generate.ToOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	gen := core.NewGenerator(logger)
	gen.MaxAttempts = cfg.Generate.MaxAttempts

	logger.Info("bench started", "difficulty", d, "count", cfg.Bench.Count, "workers", cfg.Bench.Workers)
	stats, err := bench.Run(ctx, gen, d, opts, cfg.Bench.Count, cfg.Bench.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running bench: %v\n", err)
		os.Exit(1)
	}

	printStats(stats)

	if benchNoStore {
		return
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Difficulty:        string(stats.Difficulty),
		BaseSeed:          stats.BaseSeed,
		Total:             stats.Total,
		Successful:        stats.Successful,
		Failed:            stats.Failed,
		Valid:             stats.Valid,
		Invalid:           stats.Invalid,
		AveragePathLength: stats.AveragePathLength,
		AverageAttempts:   stats.AverageAttempts,
		Duration:          stats.Duration,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}
	logger.Info("run recorded", "id", id, "db", cfg.Storage.DBPath)
}

func printStats(s bench.Stats) {
	fmt.Printf("Bench - %s\n", s.Difficulty)
	fmt.Println()
	fmt.Printf("  %-20s %d\n", "Base seed:", s.BaseSeed)
	fmt.Printf("  %-20s %d\n", "Levels:", s.Total)
	fmt.Printf("  %-20s %d (%.1f%%)\n", "Generated:", s.Successful, s.SuccessRate()*100)
	fmt.Printf("  %-20s %d\n", "Failed:", s.Failed)
	fmt.Printf("  %-20s %d\n", "Valid:", s.Valid)
	fmt.Printf("  %-20s %d\n", "Invalid:", s.Invalid)
	fmt.Printf("  %-20s %.2f\n", "Avg path length:", s.AveragePathLength)
	fmt.Printf("  %-20s %.2f\n", "Avg attempts:", s.AverageAttempts)
	fmt.Printf("  %-20s %s\n", "Duration:", s.Duration.Round(time.Millisecond))

	if benchFailed && s.Failed > 0 {
		fmt.Println()
		fmt.Println("  Failed seeds:")
		for _, r := range s.Results {
			if !r.Generated {
				fmt.Printf("    %d\n", r.Seed)
			}
		}
	}
}
