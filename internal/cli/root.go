// Package cli implements the homeworlds command-line interface.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/homeworlds/internal/config"
	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/log"
)

var (
	// cfg starts from the environment; persistent flags override it.
	cfg    config.Config
	envErr error

	titleColor = color.New(color.FgCyan, color.Bold)
)

// rootCmd is the root command for homeworlds.
var rootCmd = &cobra.Command{
	Use:     "homeworlds",
	Version: "dev",
	Short:   "Two-player Homeworlds rules engine",
	Long: `homeworlds plays and checks games of Homeworlds, the two-player space game
played with pyramids of four colors and three sizes.

Play at the console, replay Lua scenarios against the rules, or list the
openings available to new games.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return envErr
		}
		if _, err := cfg.Level(); err != nil {
			return err
		}
		if !cfg.Color {
			titleColor.DisableColor()
		}
		return nil
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newGame creates a game whose events are kept in memory. A positive opening
// applies that 1-indexed opening from the configured openings file.
func newGame(opening int) (*game.Game, error) {
	g := game.NewGameWithConfig(game.GameConfig{Logger: log.NewMemoryLogger()})
	if opening <= 0 {
		return g, nil
	}
	o, err := game.OpeningByNumber(cfg.Openings, opening)
	if err != nil {
		return nil, err
	}
	if err := g.ApplyOpening(o); err != nil {
		return nil, err
	}
	return g, nil
}

func init() {
	cfg, envErr = config.Load()
	cfg.Bind(rootCmd.PersistentFlags())

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the homeworlds CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(openingsCmd)
	rootCmd.AddCommand(versionCmd)
}
