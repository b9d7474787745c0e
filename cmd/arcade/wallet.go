package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/storage"
)

var (
	flagGrant   int
	flagEntries int
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the token balance",
	Long: `Show the local profile's token balance and its latest ledger entries.
A new profile starts with ARCADE_STARTING_BALANCE tokens.

Examples:
  arcade wallet
  arcade wallet --grant 50
  arcade wallet --player alice --entries 20`,
	Args: cobra.NoArgs,
	RunE: runWallet,
}

func init() {
	walletCmd.Flags().IntVar(&flagGrant, "grant", 0, "Credit this many tokens first")
	walletCmd.Flags().IntVar(&flagEntries, "entries", 5, "Number of ledger entries to show")
}

func runWallet(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open profile database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	profile := store.Profile(settings.Player, settings.StartingBalance)
	if cmd.Flags().Changed("grant") {
		if err := profile.Grant(ctx, flagGrant); err != nil {
			return err
		}
	}

	balance, err := profile.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d tokens\n", settings.Player, balance)

	if flagEntries <= 0 {
		return nil
	}
	entries, err := store.LedgerEntries(ctx, settings.Player, flagEntries)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %s  %-8s  %+6d  -> %d\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Reason, e.Delta, e.Balance)
	}
	return nil
}
