package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List difficulty tiers",
	Long:  `Shows the grid size, path length bounds, decoy count, fixed tile ratio and tile types of every difficulty tier.`,
	Run:   runTiers,
}

func runTiers(cmd *cobra.Command, args []string) {
	fmt.Println("Difficulty tiers:")
	fmt.Println()
	fmt.Print(renderer().Tiers())
	fmt.Println()
	fmt.Println("Run 'wiregrid generate <tier>' to generate a level.")
}
