package mcp

import (
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

// toolArgs decodes the arguments of one tool call, keeping the first failure.
type toolArgs struct {
	req mcp.CallToolRequest
	err error
}

func newToolArgs(req mcp.CallToolRequest) *toolArgs {
	return &toolArgs{req: req}
}

func (a *toolArgs) fail(format string, args ...any) {
	if a.err == nil {
		a.err = fmt.Errorf(format, args...)
	}
}

func (a *toolArgs) has(key string) bool {
	_, ok := a.req.GetArguments()[key]
	return ok
}

func (a *toolArgs) text(key string) string {
	s := a.req.GetString(key, "")
	if s == "" {
		a.fail("%s is required", key)
	}
	return s
}

func (a *toolArgs) integer(key string) int {
	if !a.has(key) {
		a.fail("%s is required", key)
		return 0
	}
	v := a.req.GetInt(key, math.MinInt)
	if v == math.MinInt {
		a.fail("%s must be an integer", key)
	}
	return v
}

func (a *toolArgs) piece(key string) game.Piece {
	s := a.text(key)
	if a.err != nil {
		return game.Piece{}
	}
	p, err := game.ParsePiece(s)
	if err != nil {
		a.fail("%s: %v", key, err)
	}
	return p
}

func (a *toolArgs) color(key string) game.Color {
	s := a.text(key)
	if a.err != nil {
		return 0
	}
	c, err := game.ParseColor(s)
	if err != nil {
		a.fail("%s: %v", key, err)
	}
	return c
}

// actor returns the optional acting player, or NoPlayer when the caller did
// not name one.
func (a *toolArgs) actor() int {
	if !a.has("player") {
		return game.NoPlayer
	}
	return a.integer("player")
}

// operation turns a tool call into the game operation it requests. The
// returned function checks the acting player, if one was named, first.
func operation(tool string, req mcp.CallToolRequest) (func(g *game.Game) error, error) {
	a := newToolArgs(req)
	actor := a.actor()

	var op func(g *game.Game) error
	switch tool {
	case "setup":
		s1, s2, ship := a.piece("star1"), a.piece("star2"), a.piece("ship")
		op = func(g *game.Game) error { return g.Setup([2]game.Piece{s1, s2}, ship) }
	case "free_move":
		sys, c := a.integer("system"), a.color("color")
		op = func(g *game.Game) error { return g.DeclareFreeMove(sys, c) }
	case "sacrifice":
		sys, ship := a.integer("system"), a.piece("ship")
		op = func(g *game.Game) error { return g.Sacrifice(sys, ship) }
	case "catastrophe":
		sys, c := a.integer("system"), a.color("color")
		op = func(g *game.Game) error { return g.DeclareCatastrophe(sys, c) }
	case "end_turn":
		op = func(g *game.Game) error { return g.EndTurn() }
	default:
		action, err := colorAction(tool, a)
		if err != nil {
			return nil, err
		}
		op = func(g *game.Game) error { return g.PerformAction(action) }
	}
	if a.err != nil {
		return nil, a.err
	}

	// Catastrophes may be declared by either player.
	if actor == game.NoPlayer || tool == "catastrophe" {
		return op, nil
	}
	return func(g *game.Game) error {
		if err := g.CheckActor(actor); err != nil {
			return err
		}
		return op(g)
	}, nil
}

func colorAction(tool string, a *toolArgs) (game.Action, error) {
	action := game.Action{System: a.integer("system"), Ship: a.piece("ship")}
	switch tool {
	case "capture":
		action.Kind = game.Capture{Enemy: a.integer("enemy"), Target: a.piece("target")}
	case "trade":
		action.Kind = game.Trade{NewColor: a.color("color")}
	case "build":
		action.Kind = game.Build{}
	case "move":
		action.Kind = game.Move{Destination: a.integer("destination")}
	case "discover":
		action.Kind = game.Discover{Star: a.piece("star")}
	default:
		return game.Action{}, fmt.Errorf("unknown tool %q", tool)
	}
	return action, a.err
}
