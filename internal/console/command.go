// Package console implements hot-seat play on a terminal: a small command
// language over the game operations, a colored renderer and the REPL that
// ties them together.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

// Kind identifies a console command.
type Kind int

const (
	KindSetup Kind = iota
	KindFree
	KindSacrifice
	KindCapture
	KindTrade
	KindBuild
	KindMove
	KindDiscover
	KindCatastrophe
	KindEnd
	KindStatus
	KindBank
	KindHelp
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindFree:
		return "free"
	case KindSacrifice:
		return "sacrifice"
	case KindCapture:
		return "capture"
	case KindTrade:
		return "trade"
	case KindBuild:
		return "build"
	case KindMove:
		return "move"
	case KindDiscover:
		return "discover"
	case KindCatastrophe:
		return "catastrophe"
	case KindEnd:
		return "end"
	case KindStatus:
		return "status"
	case KindBank:
		return "bank"
	case KindHelp:
		return "help"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed console line. Only the fields its Kind uses are set.
type Command struct {
	Kind   Kind
	System int
	Ship   game.Piece
	Color  game.Color
	Stars  [2]game.Piece
	Enemy  int
	Target game.Piece
	Dest   int
	Star   game.Piece
}

// ErrEmptyCommand is returned for blank input.
var ErrEmptyCommand = errors.New("empty command")

// Usage lists the command language.
const Usage = `Commands:
  setup STAR STAR SHIP          found the next homeworld (e.g. setup r1 y2 g3)
  free SYS COLOR                declare a free action of COLOR in system SYS
  sacrifice SYS SHIP            sacrifice SHIP in system SYS
  capture SYS SHIP PLAYER SHIP  red: take PLAYER's ship with yours
  trade SYS SHIP COLOR          blue: swap SHIP for the same size in COLOR
  build SYS SHIP                green: build a ship of SHIP's color
  move SYS SHIP DEST            yellow: fly SHIP to system DEST
  discover SYS SHIP STAR        yellow: fly SHIP to a new system around STAR
  catastrophe SYS COLOR         destroy every COLOR piece in SYS
  end                           end the turn
  status | bank | help | quit`

var aliases = map[string]Kind{
	"setup":       KindSetup,
	"free":        KindFree,
	"sacrifice":   KindSacrifice,
	"sac":         KindSacrifice,
	"capture":     KindCapture,
	"attack":      KindCapture,
	"trade":       KindTrade,
	"build":       KindBuild,
	"move":        KindMove,
	"discover":    KindDiscover,
	"catastrophe": KindCatastrophe,
	"cat":         KindCatastrophe,
	"end":         KindEnd,
	"pass":        KindEnd,
	"status":      KindStatus,
	"s":           KindStatus,
	"bank":        KindBank,
	"help":        KindHelp,
	"?":           KindHelp,
	"quit":        KindQuit,
	"exit":        KindQuit,
}

var arity = map[Kind]int{
	KindSetup:       3,
	KindFree:        2,
	KindSacrifice:   2,
	KindCapture:     4,
	KindTrade:       3,
	KindBuild:       2,
	KindMove:        3,
	KindDiscover:    3,
	KindCatastrophe: 2,
}

// ParseCommand parses one line of the command language.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	kind, ok := aliases[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	args := fields[1:]
	if want := arity[kind]; len(args) != want {
		return Command{}, fmt.Errorf("%s takes %d arguments, got %d", kind, want, len(args))
	}

	cmd := Command{Kind: kind}
	var err error
	switch kind {
	case KindSetup:
		for i := 0; i < 2 && err == nil; i++ {
			cmd.Stars[i], err = game.ParsePiece(args[i])
		}
		if err == nil {
			cmd.Ship, err = game.ParsePiece(args[2])
		}
	case KindFree, KindCatastrophe:
		if cmd.System, err = parseSystem(args[0]); err == nil {
			cmd.Color, err = game.ParseColor(args[1])
		}
	case KindSacrifice, KindBuild:
		if cmd.System, err = parseSystem(args[0]); err == nil {
			cmd.Ship, err = game.ParsePiece(args[1])
		}
	case KindCapture:
		if cmd.System, err = parseSystem(args[0]); err != nil {
			break
		}
		if cmd.Ship, err = game.ParsePiece(args[1]); err != nil {
			break
		}
		if cmd.Enemy, err = ParsePlayer(args[2]); err != nil {
			break
		}
		cmd.Target, err = game.ParsePiece(args[3])
	case KindTrade:
		if cmd.System, err = parseSystem(args[0]); err != nil {
			break
		}
		if cmd.Ship, err = game.ParsePiece(args[1]); err != nil {
			break
		}
		cmd.Color, err = game.ParseColor(args[2])
	case KindMove:
		if cmd.System, err = parseSystem(args[0]); err != nil {
			break
		}
		if cmd.Ship, err = game.ParsePiece(args[1]); err != nil {
			break
		}
		cmd.Dest, err = parseSystem(args[2])
	case KindDiscover:
		if cmd.System, err = parseSystem(args[0]); err != nil {
			break
		}
		if cmd.Ship, err = game.ParsePiece(args[1]); err != nil {
			break
		}
		cmd.Star, err = game.ParsePiece(args[2])
	}
	if err != nil {
		return Command{}, fmt.Errorf("%s: %w", kind, err)
	}
	return cmd, nil
}

// ParsePlayer accepts "p1"/"p2" or "1"/"2" and returns a 0-based player.
func ParsePlayer(s string) (int, error) {
	t := strings.TrimPrefix(strings.ToLower(s), "p")
	n, err := strconv.Atoi(t)
	if err != nil || n < 1 || n > game.NumPlayers {
		return 0, fmt.Errorf("unknown player %q", s)
	}
	return n - 1, nil
}

func parseSystem(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad system id %q", s)
	}
	return n, nil
}

// Action converts a colored-action command into a game.Action.
func (c Command) Action() (game.Action, bool) {
	a := game.Action{System: c.System, Ship: c.Ship}
	switch c.Kind {
	case KindCapture:
		a.Kind = game.Capture{Enemy: c.Enemy, Target: c.Target}
	case KindTrade:
		a.Kind = game.Trade{NewColor: c.Color}
	case KindBuild:
		a.Kind = game.Build{}
	case KindMove:
		a.Kind = game.Move{Destination: c.Dest}
	case KindDiscover:
		a.Kind = game.Discover{Star: c.Star}
	default:
		return game.Action{}, false
	}
	return a, true
}

// Apply runs a game-changing command against g. Display commands are a
// no-op here.
func (c Command) Apply(g *game.Game) error {
	if a, ok := c.Action(); ok {
		return g.PerformAction(a)
	}
	switch c.Kind {
	case KindSetup:
		return g.Setup(c.Stars, c.Ship)
	case KindFree:
		return g.DeclareFreeMove(c.System, c.Color)
	case KindSacrifice:
		return g.Sacrifice(c.System, c.Ship)
	case KindCatastrophe:
		return g.DeclareCatastrophe(c.System, c.Color)
	case KindEnd:
		return g.EndTurn()
	}
	return nil
}
