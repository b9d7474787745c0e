// arcade is a terminal arcade where every game settles into a token wallet.
//
// Usage:
//
//	arcade list               - List available games
//	arcade play <game>        - Play a game
//	arcade menu               - Start menu to pick games interactively
//	arcade wallet             - Show (or grant) the token balance
//	arcade history [game]     - Show settled sessions and stats
//	arcade serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/arcade.db)
//	--player <name>     - Local profile name (default: local)
//	--log-level <level> - debug, info, warn or error
//
// Every flag falls back to an ARCADE_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-engine/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-engine/internal/games/flappy"
	_ "github.com/vovakirdan/arcade-engine/internal/games/memory"
	_ "github.com/vovakirdan/arcade-engine/internal/games/merge"
	_ "github.com/vovakirdan/arcade-engine/internal/games/pong"
	_ "github.com/vovakirdan/arcade-engine/internal/games/runner"
	_ "github.com/vovakirdan/arcade-engine/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPlayer   string
	flagLogLevel string

	// settings is the environment merged with explicitly set flags.
	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Token Arcade - Play games in your terminal, earn tokens",
	Long: `Token Arcade is a terminal gaming platform. Every game session
settles into a token wallet: some games cost a stake to enter, and wins
pay out tokens that grow with the level reached.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  wallet   - Show the token balance
  history  - View settled sessions
  serve    - Start SSH server for remote play

Examples:
  arcade list
  arcade play flappy
  arcade play snake --level 3
  arcade menu
  arcade wallet --grant 50
  arcade history pong
  arcade serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "local", "Local profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings reads ARCADE_* variables and lets explicitly set flags win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.TickRate = flagFPS
	}
	if flags.Changed("db") {
		s.DBPath = flagDBPath
	}
	if flags.Changed("player") {
		s.Player = flagPlayer
	}
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if s.Player == "" {
		return fmt.Errorf("player name must not be empty")
	}

	settings = s
	return nil
}
