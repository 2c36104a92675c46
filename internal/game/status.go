package game

import (
	"fmt"
	"strings"
)

// Status returns a human-readable summary of the game: state, bank and every
// live system. The format is for diagnostics only.
func (g *Game) Status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", g.state)
	if g.turn > 0 {
		fmt.Fprintf(&sb, "Turn %d\n", g.turn)
	}
	sb.WriteString(g.bank.String())
	sb.WriteByte('\n')
	for _, id := range g.SystemIDs() {
		fmt.Fprintf(&sb, "System %d - %s\n", id, g.systems[id])
	}
	return sb.String()
}

func (g *Game) String() string {
	return g.Status()
}
