package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/homeworlds/internal/console"
	"github.com/peterkuimelis/homeworlds/internal/view"
)

var (
	playOpening int
	playJSON    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game at the console",
	Long: `Play a two-player game at the console, one command per line.

Both players share the terminal. Type "help" for the command list. With
--opening the homeworlds are placed from the openings file; otherwise each
player starts with "setup STAR STAR SHIP".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGame(playOpening)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sess := console.NewSession(g, console.NewRenderer(out, cfg.Color))
		if err := sess.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
			return err
		}

		if playJSON {
			data, err := json.MarshalIndent(view.BuildStateView(g), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal state: %w", err)
			}
			_, _ = fmt.Fprintln(out, string(data))
		}
		return nil
	},
}

func init() {
	playCmd.Flags().IntVar(&playOpening, "opening", 0, "1-indexed opening from the openings file (0 to set up by hand)")
	playCmd.Flags().BoolVar(&playJSON, "json", false, "print the final state as JSON")
}
