package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

var (
	flagHistoryLimit int
	flagTop          bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show settled sessions and stats",
	Long: `Display the local profile's settled sessions, newest first, with
per-game totals. With --top, show the best scores across all profiles
for one game instead.

Examples:
  arcade history
  arcade history snake --limit 5
  arcade history pong --top`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagTop, "top", false, "Show the leaderboard for a game")
}

func runHistory(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return unknownGame(gameID)
		}
	}
	if flagTop && gameID == "" {
		return fmt.Errorf("--top needs a game")
	}

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open profile database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if flagTop {
		scores, err := store.TopScores(ctx, gameID, flagHistoryLimit)
		if err != nil {
			return err
		}
		fmt.Printf("Top Scores - %s\n\n", gameID)
		if len(scores) == 0 {
			fmt.Println("No sessions settled yet.")
			return nil
		}
		fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
		fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
		for i, s := range scores {
			fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %s\n", i+1, s.Player, s.Score, s.Level, s.SettledAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	}

	stats, err := store.Stats(ctx, settings.Player)
	if err != nil {
		return err
	}
	printStats(stats, gameID)

	rows, err := store.History(ctx, settings.Player, gameID, flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	if len(rows) == 0 {
		fmt.Println("No sessions settled yet.")
		return nil
	}
	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %-6s  %s\n", "Date", "Game", "Level", "Score", "Result", "Tokens")
	fmt.Printf("  %-16s  %-8s  %-5s  %-8s  %-6s  %s\n", "----", "----", "-----", "-----", "------", "------")
	for _, s := range rows {
		tokens := fmt.Sprintf("%+d", s.Tokens)
		if !s.Applied {
			tokens += " (pending)"
		}
		fmt.Printf("  %-16s  %-8s  %-5d  %-8d  %-6s  %s\n",
			s.SettledAt.Local().Format("2006-01-02 15:04"), s.VariantID, s.Level, s.Score, s.Verdict, tokens)
	}
	return nil
}

// printStats prints per-game totals, optionally for one game only.
func printStats(stats map[string]storage.VariantStats, gameID string) {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if gameID == "" || id == gameID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	fmt.Printf("History - %s\n\n", settings.Player)
	if len(ids) == 0 {
		return
	}
	fmt.Printf("  %-8s  %6s  %4s  %4s  %6s  %s\n", "Game", "Played", "Won", "Lost", "Best", "Tokens")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-8s  %6d  %4d  %4d  %6d  %+d\n", id, st.Attempts, st.Wins, st.Losses, st.BestScore, st.Tokens)
	}
}
