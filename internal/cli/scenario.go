package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/log"
	"github.com/peterkuimelis/homeworlds/internal/scenario"
)

var scenarioVerbose bool

var scenarioCmd = &cobra.Command{
	Use:   "scenario FILE...",
	Short: "Replay Lua scenarios against the rules",
	Long: `Replay each Lua scenario script against a fresh game and report whether
every step went as scripted. Game events are printed as they happen unless
--events=false.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			if err := runScenario(cmd, out, path); err != nil {
				failed++
				_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
		}
		return nil
	},
}

func runScenario(cmd *cobra.Command, out io.Writer, path string) error {
	fresh := func() *game.Game {
		if cfg.EventLog {
			return game.NewGameWithConfig(game.GameConfig{Logger: log.NewTextLogger(out)})
		}
		return game.NewGame()
	}

	runner := &scenario.Runner{}
	if scenarioVerbose {
		runner.Out = out
	}
	sc, g, err := runner.RunFile(cmd.Context(), path, fresh)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "ok   %s (%d steps, %s)\n", sc.Name, len(sc.Steps), g.State())
	return nil
}

func init() {
	scenarioCmd.Flags().BoolVarP(&scenarioVerbose, "verbose", "v", false, "print each step before it runs")
}
