package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/log"
	"github.com/peterkuimelis/homeworlds/internal/view"
)

// ErrUnknownGame is returned for a game_id the registry does not hold.
var ErrUnknownGame = errors.New("unknown game")

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string           `json:"game_id"`
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	GameOver bool             `json:"game_over"`
	Winner   int              `json:"winner"` // -1 until decided, and for a draw
	Result   string           `json:"result,omitempty"`
}

// GameSession holds one game and the events not yet reported to the client.
type GameSession struct {
	ID      string
	Opening string

	mu      sync.Mutex
	game    *game.Game
	events  *log.MemoryLogger
	lastSeq int
}

func newGameSession() *GameSession {
	events := log.NewMemoryLogger()
	return &GameSession{
		ID:     uuid.NewString(),
		game:   game.NewGameWithConfig(game.GameConfig{Logger: events}),
		events: events,
	}
}

// Do runs op against the session's game under the session lock. On success
// it returns the events op produced together with the resulting state.
func (s *GameSession) Do(op func(g *game.Game) error) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := op(s.game); err != nil {
		return nil, err
	}
	return s.respond(), nil
}

// Snapshot reports pending events and the state without changing the game.
func (s *GameSession) Snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respond()
}

// respond builds the envelope. Callers hold s.mu.
func (s *GameSession) respond() *ToolResponse {
	resp := &ToolResponse{
		GameID: s.ID,
		Events: s.drainEvents(),
		State:  view.BuildStateView(s.game),
		Winner: game.NoPlayer,
	}
	if winner, over := s.game.Winner(); over {
		resp.GameOver = true
		resp.Winner = winner
		if winner == game.NoPlayer {
			resp.Result = "draw"
		} else {
			resp.Result = fmt.Sprintf("player %d wins", winner)
		}
	}
	return resp
}

// drainEvents returns the events logged since the previous drain.
func (s *GameSession) drainEvents() []view.EventView {
	events := s.events.EventsSince(s.lastSeq)
	if len(events) > 0 {
		s.lastSeq = events[len(events)-1].Seq
	}
	return view.EventViews(events)
}

// Registry holds the games of one server process, keyed by uuid.
type Registry struct {
	openings string
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*GameSession
}

// NewRegistry creates an empty registry. openings is the YAML file new_game
// reads numbered openings from.
func NewRegistry(openings string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		openings: openings,
		logger:   logger,
		sessions: make(map[string]*GameSession),
	}
}

// Create starts a new game. A positive opening applies that 1-indexed
// opening from the openings file; 0 leaves the game in setup.
func (r *Registry) Create(opening int) (*GameSession, error) {
	sess := newGameSession()
	if opening > 0 {
		o, err := game.OpeningByNumber(r.openings, opening)
		if err != nil {
			return nil, err
		}
		if err := sess.game.ApplyOpening(o); err != nil {
			return nil, fmt.Errorf("apply opening %s: %w", o.Name, err)
		}
		sess.Opening = o.Name
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info("game created",
		zap.String("game_id", sess.ID),
		zap.String("opening", sess.Opening),
		zap.Int("games", count))
	return sess, nil
}

// Get looks up a game by id.
func (r *Registry) Get(id string) (*GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return sess, nil
}

// Len returns the number of games held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
