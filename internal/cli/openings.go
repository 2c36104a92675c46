package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

var openingsCmd = &cobra.Command{
	Use:   "openings",
	Short: "List the openings in the openings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		openings, err := game.LoadOpenings(cfg.Openings)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = titleColor.Fprintf(out, "Openings in %s:\n", cfg.Openings)
		for i, o := range openings {
			seats := make([]string, len(o.Seats))
			for p, s := range o.Seats {
				seats[p] = fmt.Sprintf("P%d %s %s / %s", p+1, s.Stars[0].Code(), s.Stars[1].Code(), s.Ship.Code())
			}
			_, _ = fmt.Fprintf(out, "  %d. %-10s %s\n", i+1, o.Name, strings.Join(seats, "   "))
		}
		return nil
	},
}
