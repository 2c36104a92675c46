package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/log"
)

// Renderer writes game state to a terminal.
type Renderer struct {
	w io.Writer

	header  *color.Color
	label   *color.Color
	dim     *color.Color
	errorC  *color.Color
	success *color.Color
	pieces  [4]*color.Color // indexed by game.Color
}

// NewRenderer creates a renderer. With useColor false every escape sequence
// is suppressed regardless of the terminal.
func NewRenderer(w io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		w:       w,
		header:  color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgWhite, color.Bold),
		dim:     color.New(color.FgHiBlack),
		errorC:  color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		pieces: [4]*color.Color{
			game.Red:    color.New(color.FgRed),
			game.Blue:   color.New(color.FgBlue),
			game.Green:  color.New(color.FgGreen),
			game.Yellow: color.New(color.FgYellow),
		},
	}
	for _, c := range r.all() {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) all() []*color.Color {
	return append([]*color.Color{r.header, r.label, r.dim, r.errorC, r.success}, r.pieces[:]...)
}

// Piece returns p in compact notation, tinted with its color.
func (r *Renderer) Piece(p game.Piece) string {
	if !p.Color.Valid() {
		return p.Code()
	}
	return r.pieces[p.Color].Sprint(p.Code())
}

func (r *Renderer) pieceList(pieces []game.Piece) string {
	if len(pieces) == 0 {
		return r.dim.Sprint("-")
	}
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = r.Piece(p)
	}
	return strings.Join(parts, " ")
}

// Board prints the state line and every live system.
func (r *Renderer) Board(g *game.Game) {
	fmt.Fprintln(r.w)
	_, _ = r.header.Fprintf(r.w, "▸ %s\n", g.State())
	if g.Turn() > 0 {
		_, _ = r.dim.Fprintf(r.w, "  turn %d\n", g.Turn())
	}
	for _, sum := range g.Systems() {
		home := ""
		if sum.Home != game.NoPlayer {
			home = fmt.Sprintf(" [home P%d]", sum.Home+1)
		}
		_, _ = r.label.Fprintf(r.w, "  #%d", sum.ID)
		fmt.Fprintf(r.w, " %s%s\n", r.pieceList(sum.Stars), home)
		for p := 0; p < game.NumPlayers; p++ {
			fmt.Fprintf(r.w, "      P%d: %s\n", p+1, r.pieceList(sum.Ships[p]))
		}
	}
}

// Bank prints the remaining pieces grouped by color.
func (r *Renderer) Bank(b *game.Bank) {
	_, _ = r.label.Fprintf(r.w, "  Bank (%d pieces)\n", b.Total())
	for _, c := range game.AllColors {
		fmt.Fprintf(r.w, "    %-7s", c)
		for _, s := range game.AllSizes {
			p := game.NewPiece(c, s)
			fmt.Fprintf(r.w, " %s×%d", r.Piece(p), b.Available(p))
		}
		fmt.Fprintln(r.w)
	}
}

// Event prints one game event in the log's line format.
func (r *Renderer) Event(e log.GameEvent) {
	line := log.FormatEvent(e)
	switch e.Type {
	case log.EventWin, log.EventDraw:
		_, _ = r.success.Fprintln(r.w, line)
	case log.EventNewTurn:
		_, _ = r.header.Fprintln(r.w, line)
	case log.EventPhaseChange:
		_, _ = r.dim.Fprintln(r.w, line)
	default:
		fmt.Fprintln(r.w, line)
	}
}

// Error prints a rejected command. Rules errors carry their stable name.
func (r *Renderer) Error(err error) {
	if name := game.ErrorName(err); name != "" {
		_, _ = r.errorC.Fprintf(r.w, "✗ %s: %v\n", name, err)
		return
	}
	_, _ = r.errorC.Fprintf(r.w, "✗ %v\n", err)
}

// Prompt prints the input prompt for the player expected to act.
func (r *Renderer) Prompt(g *game.Game) {
	p := g.CurrentPlayer()
	if p == game.NoPlayer {
		return
	}
	_, _ = r.label.Fprintf(r.w, "P%d> ", p+1)
}

// Text prints a plain line.
func (r *Renderer) Text(s string) {
	fmt.Fprintln(r.w, s)
}
