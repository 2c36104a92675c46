// Package mcp exposes the rules engine as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

// Tools serves tool calls against a registry of games.
type Tools struct {
	reg    *Registry
	logger *zap.Logger
}

// NewTools creates the tool handlers for reg.
func NewTools(reg *Registry, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{reg: reg, logger: logger}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(newGameTool(), t.handleNewGame)
	for _, tool := range operationTools() {
		s.AddTool(tool, t.operationHandler(tool.Name))
	}
	s.AddTool(getGameStateTool(), t.handleGetGameState)
}

// --- Tool definitions ---

func gameIDArg() mcp.ToolOption {
	return mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id returned by new_game"))
}

func playerArg() mcp.ToolOption {
	return mcp.WithNumber("player", mcp.Description("Acting player (0 or 1). When given, the call fails with WrongPlayer unless it is that player's move"))
}

func systemArg(desc string) mcp.ToolOption {
	return mcp.WithNumber("system", mcp.Required(), mcp.Description(desc))
}

func pieceArg(name, desc string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description(desc+" in piece notation, e.g. g3 for a large green"))
}

func colorArg(desc string) mcp.ToolOption {
	return mcp.WithString("color", mcp.Required(), mcp.Description(desc+": red, blue, green or yellow"))
}

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new two-player Homeworlds game. Returns the game_id used by every other tool and the initial state."),
		mcp.WithNumber("opening", mcp.Description("1-indexed opening from the openings file to set both homeworlds up with. Omit to place homeworlds with setup")),
	)
}

func operationTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("setup",
			mcp.WithDescription("Place the next player's homeworld: two stars and one ship, all taken from the bank."),
			gameIDArg(), playerArg(),
			pieceArg("star1", "First star"),
			pieceArg("star2", "Second star"),
			pieceArg("ship", "Starting ship"),
		),
		mcp.NewTool("free_move",
			mcp.WithDescription("Declare the turn's free action: one action of a color available to you in a system."),
			gameIDArg(), playerArg(),
			systemArg("System the free action takes place in"),
			colorArg("Action color"),
		),
		mcp.NewTool("sacrifice",
			mcp.WithDescription("Sacrifice one of your ships for 1, 2 or 3 actions of its color, by size."),
			gameIDArg(), playerArg(),
			systemArg("System holding the ship"),
			pieceArg("ship", "Ship to sacrifice"),
		),
		mcp.NewTool("capture",
			mcp.WithDescription("Red action: take an enemy ship no larger than your ship in the same system."),
			gameIDArg(), playerArg(),
			systemArg("System of both ships"),
			pieceArg("ship", "Your capturing ship"),
			mcp.WithNumber("enemy", mcp.Required(), mcp.Description("Owner of the target ship")),
			pieceArg("target", "Enemy ship to capture"),
		),
		mcp.NewTool("trade",
			mcp.WithDescription("Blue action: exchange a ship with the bank for the same size in another color."),
			gameIDArg(), playerArg(),
			systemArg("System holding the ship"),
			pieceArg("ship", "Ship to trade"),
			colorArg("New color"),
		),
		mcp.NewTool("build",
			mcp.WithDescription("Green action: build the smallest available ship of the named ship's color in its system."),
			gameIDArg(), playerArg(),
			systemArg("System to build in"),
			pieceArg("ship", "Ship whose color is built"),
		),
		mcp.NewTool("move",
			mcp.WithDescription("Yellow action: move a ship to an adjacent existing system."),
			gameIDArg(), playerArg(),
			systemArg("System the ship leaves"),
			pieceArg("ship", "Ship to move"),
			mcp.WithNumber("destination", mcp.Required(), mcp.Description("Destination system id")),
		),
		mcp.NewTool("discover",
			mcp.WithDescription("Yellow action: move a ship to a new system whose star is taken from the bank."),
			gameIDArg(), playerArg(),
			systemArg("System the ship leaves"),
			pieceArg("ship", "Ship to move"),
			pieceArg("star", "Star of the new system"),
		),
		mcp.NewTool("catastrophe",
			mcp.WithDescription("Destroy every piece of a color in a system holding four or more of them. Either player may declare it at any time."),
			gameIDArg(), playerArg(),
			systemArg("Overpopulated system"),
			colorArg("Overpopulated color"),
		),
		mcp.NewTool("end_turn",
			mcp.WithDescription("Pass play to the other player once the turn's actions are spent."),
			gameIDArg(), playerArg(),
		),
	}
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state and any events not yet reported. Read-only."),
		gameIDArg(),
	)
}

// --- Tool handlers ---

func (t *Tools) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opening := request.GetInt("opening", 0)
	if opening < 0 {
		return mcp.NewToolResultError("opening must be >= 1"), nil
	}
	sess, err := t.reg.Create(opening)
	if err != nil {
		t.logger.Warn("new game failed", zap.Int("opening", opening), zap.Error(err))
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

func (t *Tools) operationHandler(tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sess, err := t.reg.Get(request.GetString("game_id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		op, err := operation(tool, request)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid arguments: %v", err), nil
		}

		resp, err := sess.Do(op)
		if err != nil {
			name := game.ErrorName(err)
			t.logger.Debug("move rejected",
				zap.String("game_id", sess.ID),
				zap.String("tool", tool),
				zap.String("kind", name),
				zap.Error(err))
			if name == "" {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultErrorf("%s: %v", name, err), nil
		}

		t.logger.Debug("move applied",
			zap.String("game_id", sess.ID),
			zap.String("tool", tool),
			zap.Int("events", len(resp.Events)))
		if resp.GameOver {
			t.logger.Info("game over",
				zap.String("game_id", sess.ID),
				zap.String("result", resp.Result))
		}
		return mcp.NewToolResultText(respondJSON(resp)), nil
	}
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.reg.Get(request.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}
