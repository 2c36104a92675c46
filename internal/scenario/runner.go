package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/view"
)

// actionKinds are the steps that drive the game; the rest are assertions.
var actionKinds = map[string]struct{}{
	"setup":       {},
	"free":        {},
	"sacrifice":   {},
	"capture":     {},
	"trade":       {},
	"build":       {},
	"move":        {},
	"discover":    {},
	"catastrophe": {},
	"end_turn":    {},
}

// StepError reports the first step of a scenario that did not go as scripted.
type StepError struct {
	Index int // 0-based
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %s: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner replays scenarios.
type Runner struct {
	// Out receives one line per executed step when set.
	Out io.Writer
}

// Run replays sc against g and returns a *StepError for the first step that
// fails or whose expectation is not met.
func (r *Runner) Run(ctx context.Context, sc *Scenario, g *game.Game) error {
	if sc == nil {
		return errors.New("scenario is required")
	}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Out != nil {
			fmt.Fprintf(r.Out, "-- %d: %s\n", i+1, step)
		}
		if err := runStep(g, step); err != nil {
			return &StepError{Index: i, Step: step, Err: err}
		}
	}
	return nil
}

// RunFile loads a scenario script and replays it against a fresh game built
// by newGame.
func (r *Runner) RunFile(ctx context.Context, path string, newGame func() *game.Game) (*Scenario, *game.Game, error) {
	sc, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g := newGame()
	return sc, g, r.Run(ctx, sc, g)
}

func runStep(g *game.Game, step Step) error {
	if _, ok := actionKinds[step.Kind]; ok {
		err := apply(g, step)
		var parse *argError
		if errors.As(err, &parse) {
			return err
		}
		return checkOutcome(step.ExpectError, err)
	}
	return check(g, step)
}

func checkOutcome(want string, err error) error {
	if want == "" {
		return err
	}
	if err == nil {
		return fmt.Errorf("expected %s, step succeeded", want)
	}
	if got := game.ErrorName(err); got != want {
		return fmt.Errorf("expected %s, got %v", want, err)
	}
	return nil
}

func apply(g *game.Game, step Step) error {
	a := args(step)
	switch step.Kind {
	case "setup":
		s1, s2, ship := a.piece("star1"), a.piece("star2"), a.piece("ship")
		if a.err != nil {
			return a.err
		}
		return g.Setup([2]game.Piece{s1, s2}, ship)
	case "free":
		sys, c := a.integer("system"), a.color("color")
		if a.err != nil {
			return a.err
		}
		return g.DeclareFreeMove(sys, c)
	case "sacrifice":
		sys, ship := a.integer("system"), a.piece("ship")
		if a.err != nil {
			return a.err
		}
		return g.Sacrifice(sys, ship)
	case "catastrophe":
		sys, c := a.integer("system"), a.color("color")
		if a.err != nil {
			return a.err
		}
		return g.DeclareCatastrophe(sys, c)
	case "end_turn":
		return g.EndTurn()
	}

	action := game.Action{System: a.integer("system"), Ship: a.piece("ship")}
	switch step.Kind {
	case "capture":
		action.Kind = game.Capture{Enemy: a.integer("enemy"), Target: a.piece("target")}
	case "trade":
		action.Kind = game.Trade{NewColor: a.color("color")}
	case "build":
		action.Kind = game.Build{}
	case "move":
		action.Kind = game.Move{Destination: a.integer("dest")}
	case "discover":
		action.Kind = game.Discover{Star: a.piece("star")}
	default:
		return &argError{fmt.Errorf("unknown step %q", step.Kind)}
	}
	if a.err != nil {
		return a.err
	}
	return g.PerformAction(action)
}

func check(g *game.Game, step Step) error {
	a := args(step)
	switch step.Kind {
	case "expect_bank":
		p, want := a.piece("piece"), a.integer("count")
		if a.err != nil {
			return a.err
		}
		if got := g.Bank().Available(p); got != want {
			return fmt.Errorf("bank holds %d %s, want %d", got, p.Code(), want)
		}
	case "expect_phase":
		want := a.text("phase")
		if !phaseMatches(g, want) {
			return fmt.Errorf("state is %s, want %q", g.State(), want)
		}
	case "expect_winner":
		want := a.integer("player")
		winner, over := g.Winner()
		if !over {
			return fmt.Errorf("game not finished: %s", g.State())
		}
		if winner != want {
			return fmt.Errorf("winner is %d, want %d", winner, want)
		}
	case "expect_systems":
		want := a.integer("count")
		if got := len(g.SystemIDs()); got != want {
			return fmt.Errorf("%d systems, want %d", got, want)
		}
	default:
		return fmt.Errorf("unknown step %q", step.Kind)
	}
	return a.err
}

// phaseMatches accepts the phase's short name ("free_move"), its display
// form ("Done") or the whole state string, ignoring case.
func phaseMatches(g *game.Game, want string) bool {
	want = strings.TrimSpace(want)
	if strings.EqualFold(want, g.State().String()) {
		return true
	}
	switch g.State().(type) {
	case game.SetupState:
		return strings.EqualFold(want, "setup")
	case game.FinishedState:
		return strings.EqualFold(want, "finished")
	}
	ph, ok := g.Phase()
	if !ok {
		return false
	}
	return strings.EqualFold(want, ph.String()) || strings.EqualFold(want, view.NewPhaseView(ph).Name)
}

// argError marks a malformed step, which never satisfies expect_error.
type argError struct{ err error }

func (e *argError) Error() string { return e.err.Error() }
func (e *argError) Unwrap() error { return e.err }

// stepArgs decodes step arguments, keeping the first failure.
type stepArgs struct {
	args map[string]any
	err  error
}

func args(step Step) *stepArgs {
	return &stepArgs{args: step.Args}
}

func (a *stepArgs) fail(err error) {
	if a.err == nil {
		a.err = &argError{err}
	}
}

func (a *stepArgs) text(key string) string {
	v, ok := a.args[key].(string)
	if !ok {
		a.fail(fmt.Errorf("argument %s: want string, got %T", key, a.args[key]))
	}
	return v
}

func (a *stepArgs) integer(key string) int {
	v, ok := a.args[key].(int)
	if !ok {
		a.fail(fmt.Errorf("argument %s: want integer, got %T", key, a.args[key]))
	}
	return v
}

func (a *stepArgs) piece(key string) game.Piece {
	s := a.text(key)
	if a.err != nil {
		return game.Piece{}
	}
	p, err := game.ParsePiece(s)
	if err != nil {
		a.fail(err)
	}
	return p
}

func (a *stepArgs) color(key string) game.Color {
	s := a.text(key)
	if a.err != nil {
		return 0
	}
	c, err := game.ParseColor(s)
	if err != nil {
		a.fail(err)
	}
	return c
}
