package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade with their stake and level count.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %5s  %6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Stake", "Levels", "Goal")
	fmt.Printf("  %-*s  %-*s  %5s  %6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "------", "----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %5d  %6d  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Stake, g.MaxLevel, g.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
