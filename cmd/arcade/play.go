package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

var (
	flagConfig string
	flagLevel  int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game on the local profile.

Games with a stake deduct it when the session starts. Leaving a game
before it ends forfeits the stake.

Controls:
  Arrows/WASD - Move, steer or slide
  Space       - Jump, flap or flip a card
  Enter       - Select
  P           - Pause/resume
  R           - Restart (after the game ends; retries a failed payout)
  N           - Next level (after a win)
  Esc/Q       - Quit

Examples:
  arcade play flappy
  arcade play snake --level 3
  arcade play pong --seed 42
  arcade play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Starting level")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}
	if flagConfig != "" {
		if err := registry.Configure(gameID, flagConfig); err != nil {
			return err
		}
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open profile database: %w", err)
	}
	defer store.Close()

	e := localEngine(store, logger)
	if err := tui.Run(cmd.Context(), e, gameID, flagLevel); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	st := e.Stats(gameID)
	balance, err := e.Balance(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%d played, %d won, %d lost. Balance: %d tokens\n", st.Attempts, st.Wins, st.Losses, balance)
	return nil
}
