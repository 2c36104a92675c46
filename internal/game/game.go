package game

import (
	"fmt"
	"sort"

	"github.com/peterkuimelis/homeworlds/internal/log"
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Logger log.EventLogger
}

// Game is the rules engine: the bank, every system on the board and the
// state machine that sequences setup, turns and the end of the game.
//
// A Game is not safe for concurrent use; one caller drives it.
type Game struct {
	state      State
	bank       *Bank
	systems    []*System // indexed by system id; nil once evaporated
	homeworlds [NumPlayers]int
	turn       int // 1-based turn counter, 0 during setup

	Logger log.EventLogger
}

// NewGame creates a game waiting for the first player's setup.
func NewGame() *Game {
	return NewGameWithConfig(GameConfig{})
}

// NewGameWithConfig creates a game with the given configuration.
func NewGameWithConfig(cfg GameConfig) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	g := &Game{
		state:  SetupState{Next: 0},
		bank:   FullBank(),
		Logger: logger,
	}
	for p := range g.homeworlds {
		g.homeworlds[p] = NoPlayer
	}
	return g
}

// --- Queries ---

// State returns the current machine state.
func (g *Game) State() State {
	return g.state
}

// Phase returns the current turn phase, if a turn is in progress.
func (g *Game) Phase() (Phase, bool) {
	if ts, ok := g.state.(TurnState); ok {
		return ts.Phase, true
	}
	return nil, false
}

// Turn returns the 1-based turn counter (0 during setup).
func (g *Game) Turn() int {
	return g.turn
}

// CurrentPlayer returns the player expected to act, or NoPlayer once the
// game is finished.
func (g *Game) CurrentPlayer() int {
	switch s := g.state.(type) {
	case SetupState:
		return s.Next
	case TurnState:
		return s.Player
	default:
		return NoPlayer
	}
}

// Winner returns the winner and true once the game is finished. A drawn
// game reports NoPlayer.
func (g *Game) Winner() (int, bool) {
	if s, ok := g.state.(FinishedState); ok {
		return s.Winner, true
	}
	return NoPlayer, false
}

// Bank returns a copy of the bank.
func (g *Game) Bank() *Bank {
	return g.bank.Clone()
}

// System returns a copy of a live system.
func (g *Game) System(id int) (*System, error) {
	sys, err := g.live(id)
	if err != nil {
		return nil, err
	}
	return sys.Clone(), nil
}

// SystemSummary is a read-only snapshot of one system.
type SystemSummary struct {
	ID    int
	Stars []Piece
	Home  int
	Ships [NumPlayers][]Piece
}

// Systems returns summaries of all live systems, ordered by id.
func (g *Game) Systems() []SystemSummary {
	var out []SystemSummary
	for _, id := range g.SystemIDs() {
		sys := g.systems[id]
		sum := SystemSummary{ID: id, Stars: sys.Stars(), Home: sys.home}
		for p := 0; p < NumPlayers; p++ {
			sum.Ships[p] = sys.ShipsOf(p)
		}
		out = append(out, sum)
	}
	return out
}

// SystemIDs returns the ids of all live systems in ascending order.
func (g *Game) SystemIDs() []int {
	var ids []int
	for id, sys := range g.systems {
		if sys != nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Homeworld returns the id of player's homeworld and whether it still exists.
func (g *Game) Homeworld(player int) (int, bool) {
	if !validPlayer(player) {
		return NoPlayer, false
	}
	id := g.homeworlds[player]
	if id == NoPlayer {
		return NoPlayer, false
	}
	return id, g.systems[id] != nil
}

// CheckActor verifies that player is the one expected to act next.
func (g *Game) CheckActor(player int) error {
	switch s := g.state.(type) {
	case SetupState:
		if player != s.Next {
			return fmt.Errorf("P%d cannot set up now, P%d is next: %w", player+1, s.Next+1, ErrWrongPlayer)
		}
		return nil
	case TurnState:
		if player != s.Player {
			return fmt.Errorf("it is P%d's turn: %w", s.Player+1, ErrWrongPlayer)
		}
		return nil
	case FinishedState:
		return fmt.Errorf("game is over: %w", ErrWrongState)
	default:
		return ErrWrongState
	}
}

// --- Setup ---

// Setup founds the next player's homeworld from two stars and places their
// first ship there. All three pieces come from the bank, or none do.
func (g *Game) Setup(stars [2]Piece, ship Piece) error {
	s, ok := g.state.(SetupState)
	if !ok {
		return fmt.Errorf("setup: %w", ErrWrongState)
	}
	p := s.Next
	if err := g.bank.WithdrawMany([]Piece{stars[0], stars[1], ship}); err != nil {
		return fmt.Errorf("setup P%d: %w", p+1, err)
	}

	home := NewHomeworld(stars[0], stars[1], p)
	home.AddShip(p, ship)
	id := g.addSystem(home)
	g.homeworlds[p] = id
	g.log(log.NewSetupEvent(p, id, [2]string{stars[0].Code(), stars[1].Code()}, ship.Code()))

	if next := p + 1; next < NumPlayers {
		g.state = SetupState{Next: next}
		return nil
	}
	g.turn = 1
	g.state = TurnState{Player: 0, Phase: PhaseStarted{}}
	g.log(log.NewTurnEvent(g.turn, 0))
	return nil
}

// --- Turn operations ---

// DeclareFreeMove unlocks one action of color in system for the turn player.
func (g *Game) DeclareFreeMove(system int, color Color) error {
	ts, err := g.turnState()
	if err != nil {
		return fmt.Errorf("free move: %w", err)
	}
	if _, ok := ts.Phase.(PhaseStarted); !ok {
		return fmt.Errorf("free move during %s: %w", ts.Phase, ErrWrongPhase)
	}
	sys, err := g.live(system)
	if err != nil {
		return fmt.Errorf("free move: %w", err)
	}
	p := ts.Player
	if len(sys.ShipsOf(p)) == 0 {
		return fmt.Errorf("free move: P%d has no ship in system %d: %w", p+1, system, ErrFreeActionUnavailable)
	}
	if !color.Valid() || !sys.HasColorAccess(p, color) {
		return fmt.Errorf("free move: %s not available in system %d: %w", color, system, ErrFreeActionUnavailable)
	}

	g.state = TurnState{Player: p, Phase: PhaseFreeMove{System: system, Color: color}}
	g.log(log.NewFreeMoveEvent(g.turn, p, system, color.String()))
	return nil
}

// Sacrifice gives up one of the turn player's ships, returning it to the
// bank, and grants as many actions of its color as its size rank.
func (g *Game) Sacrifice(system int, ship Piece) error {
	ts, err := g.turnState()
	if err != nil {
		return fmt.Errorf("sacrifice: %w", err)
	}
	if _, ok := ts.Phase.(PhaseStarted); !ok {
		return fmt.Errorf("sacrifice during %s: %w", ts.Phase, ErrWrongPhase)
	}
	sys, err := g.live(system)
	if err != nil {
		return fmt.Errorf("sacrifice: %w", err)
	}
	p := ts.Player
	if !sys.HasShip(p, ship) {
		return fmt.Errorf("sacrifice %s in system %d: %w", ship.Code(), system, ErrNoSuchShip)
	}
	if err := g.bank.Deposit(ship); err != nil {
		return fmt.Errorf("sacrifice: %w", err)
	}
	if err := sys.RemoveShip(p, ship); err != nil {
		return fmt.Errorf("sacrifice: %w", err)
	}

	moves := ship.Size.Rank()
	g.state = TurnState{Player: p, Phase: PhaseSacrifice{Color: ship.Color, MovesLeft: moves}}
	g.log(log.NewSacrificeEvent(g.turn, p, system, ship.Code(), moves))

	if sys.IsEmpty() {
		if err := g.evaporate(system); err != nil {
			return err
		}
	}
	g.checkWin()
	return nil
}

// PerformAction executes one colored action unlocked by a free move or a
// sacrifice.
func (g *Game) PerformAction(a Action) error {
	ts, err := g.turnState()
	if err != nil {
		return fmt.Errorf("action: %w", err)
	}
	if a.Kind == nil {
		return fmt.Errorf("action: missing color action: %w", ErrWrongActionColor)
	}
	switch ph := ts.Phase.(type) {
	case PhaseStarted:
		return fmt.Errorf("action before a free move or sacrifice: %w", ErrWrongPhase)
	case PhaseDone:
		return fmt.Errorf("action: %w", ErrNoActionsLeft)
	case PhaseFreeMove:
		if a.Color() != ph.Color {
			return fmt.Errorf("%s action during a free %s action: %w", a.Color(), ph.Color, ErrWrongActionColor)
		}
		if a.System != ph.System {
			return fmt.Errorf("action in system %d, free action locked to system %d: %w", a.System, ph.System, ErrWrongSystem)
		}
	case PhaseSacrifice:
		if a.Color() != ph.Color {
			return fmt.Errorf("%s action during a %s sacrifice: %w", a.Color(), ph.Color, ErrWrongActionColor)
		}
	default:
		return fmt.Errorf("action: %w", ErrWrongPhase)
	}

	sys, err := g.live(a.System)
	if err != nil {
		return fmt.Errorf("action: %w", err)
	}
	p := ts.Player
	if !sys.HasShip(p, a.Ship) {
		return fmt.Errorf("action with %s in system %d: %w", a.Ship.Code(), a.System, ErrNoSuchShip)
	}

	switch k := a.Kind.(type) {
	case Capture:
		err = g.capture(p, a.System, sys, a.Ship, k)
	case Trade:
		err = g.trade(p, a.System, sys, a.Ship, k)
	case Build:
		err = g.build(p, a.System, sys, a.Ship)
	case Move:
		err = g.move(p, a.System, sys, a.Ship, k)
	case Discover:
		err = g.discover(p, a.System, sys, a.Ship, k)
	default:
		err = fmt.Errorf("action %T: %w", a.Kind, ErrWrongActionColor)
	}
	if err != nil {
		return err
	}

	g.advancePhase(ts)
	g.checkWin()
	return nil
}

// DeclareCatastrophe destroys every piece of color in system once at least
// four are present. It is legal at any time before the game ends.
func (g *Game) DeclareCatastrophe(system int, color Color) error {
	if _, ok := g.state.(FinishedState); ok {
		return fmt.Errorf("catastrophe: %w", ErrWrongState)
	}
	sys, err := g.live(system)
	if err != nil {
		return fmt.Errorf("catastrophe: %w", err)
	}
	if !color.Valid() || sys.ColorCount(color) < 4 {
		return fmt.Errorf("catastrophe: %d %s pieces in system %d: %w", sys.ColorCount(color), color, system, ErrNotCatastropheEnough)
	}

	before := sys.Stars()
	res, err := sys.Catastrophe(color, g.bank)
	if err != nil {
		return err
	}
	g.log(log.NewCatastropheEvent(g.turn, g.CurrentPlayer(), system, color.String()))
	if res == Evaporated {
		g.systems[system] = nil
		g.log(log.NewEvaporateEvent(g.turn, system))
	} else if after := sys.Stars(); len(after) < len(before) {
		for _, star := range before {
			if star.Color == color {
				g.log(log.NewStarDestroyedEvent(g.turn, system, star.Code()))
			}
		}
	}

	if _, ok := g.state.(TurnState); ok {
		g.checkWin()
	}
	return nil
}

// EndTurn passes play to the next player once the turn's actions are done.
func (g *Game) EndTurn() error {
	ts, err := g.turnState()
	if err != nil {
		return fmt.Errorf("end turn: %w", err)
	}
	if _, ok := ts.Phase.(PhaseDone); !ok {
		return fmt.Errorf("end turn during %s: %w", ts.Phase, ErrWrongPhase)
	}
	next := (ts.Player + 1) % NumPlayers
	g.turn++
	g.state = TurnState{Player: next, Phase: PhaseStarted{}}
	g.log(log.NewTurnEvent(g.turn, next))
	return nil
}

// --- Colored actions ---

func (g *Game) capture(p, id int, sys *System, ship Piece, c Capture) error {
	if c.Enemy == p || !validPlayer(c.Enemy) {
		return fmt.Errorf("capture from P%d: %w", c.Enemy+1, ErrWrongPlayer)
	}
	if !sys.HasShip(c.Enemy, c.Target) {
		return fmt.Errorf("capture %s in system %d: %w", c.Target.Code(), id, ErrNoSuchShip)
	}
	if c.Target.Size > ship.Size {
		return fmt.Errorf("capture %s with %s: %w", c.Target.Code(), ship.Code(), ErrShipTooBig)
	}
	if err := sys.RemoveShip(c.Enemy, c.Target); err != nil {
		return err
	}
	sys.AddShip(p, c.Target)
	g.log(log.NewCaptureEvent(g.turn, p, id, c.Target.Code(), c.Enemy))
	return nil
}

func (g *Game) trade(p, id int, sys *System, ship Piece, t Trade) error {
	if !t.NewColor.Valid() || t.NewColor == ship.Color {
		return fmt.Errorf("trade %s to %s: %w", ship.Code(), t.NewColor, ErrWrongColor)
	}
	traded := Piece{Color: t.NewColor, Size: ship.Size}
	if err := g.bank.Withdraw(traded); err != nil {
		return fmt.Errorf("trade: %w", err)
	}
	if err := g.bank.Deposit(ship); err != nil {
		_ = g.bank.Deposit(traded)
		return fmt.Errorf("trade: %w", err)
	}
	if err := sys.RemoveShip(p, ship); err != nil {
		return err
	}
	sys.AddShip(p, traded)
	g.log(log.NewTradeEvent(g.turn, p, id, ship.Code(), traded.Code()))
	return nil
}

func (g *Game) build(p, id int, sys *System, ship Piece) error {
	for _, size := range AllSizes {
		piece := Piece{Color: ship.Color, Size: size}
		if g.bank.Available(piece) == 0 {
			continue
		}
		if err := g.bank.Withdraw(piece); err != nil {
			return fmt.Errorf("build: %w", err)
		}
		sys.AddShip(p, piece)
		g.log(log.NewBuildEvent(g.turn, p, id, piece.Code()))
		return nil
	}
	return fmt.Errorf("build %s: %w", ship.Color, ErrPieceUnavailable)
}

func (g *Game) move(p, from int, src *System, ship Piece, m Move) error {
	dst, err := g.live(m.Destination)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	if !src.IsAdjacent(dst) {
		return fmt.Errorf("move from system %d to system %d: %w", from, m.Destination, ErrSystemsNotAdjacent)
	}
	if err := src.RemoveShip(p, ship); err != nil {
		return err
	}
	dst.AddShip(p, ship)
	g.log(log.NewMoveEvent(g.turn, p, from, m.Destination, ship.Code()))

	if src.IsEmpty() {
		return g.evaporate(from)
	}
	return nil
}

func (g *Game) discover(p, from int, src *System, ship Piece, d Discover) error {
	if !d.Star.Valid() {
		return fmt.Errorf("discover: %w", ErrPieceUnavailable)
	}
	candidate := NewNeutral(d.Star)
	if !src.IsAdjacent(candidate) {
		return fmt.Errorf("discover %s from system %d: %w", d.Star.Code(), from, ErrSystemsNotAdjacent)
	}
	if err := g.bank.Withdraw(d.Star); err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	if err := src.RemoveShip(p, ship); err != nil {
		_ = g.bank.Deposit(d.Star)
		return err
	}
	candidate.AddShip(p, ship)
	to := g.addSystem(candidate)
	g.log(log.NewDiscoverEvent(g.turn, p, from, to, ship.Code(), d.Star.Code()))

	if src.IsEmpty() {
		return g.evaporate(from)
	}
	return nil
}

// --- Internals ---

func (g *Game) turnState() (TurnState, error) {
	switch s := g.state.(type) {
	case TurnState:
		return s, nil
	case SetupState, FinishedState:
		return TurnState{}, fmt.Errorf("%s: %w", s, ErrWrongState)
	default:
		return TurnState{}, ErrWrongState
	}
}

// live returns the system with the given id if it has not evaporated.
func (g *Game) live(id int) (*System, error) {
	if id < 0 || id >= len(g.systems) || g.systems[id] == nil {
		return nil, fmt.Errorf("system %d: %w", id, ErrBadSystem)
	}
	return g.systems[id], nil
}

func (g *Game) addSystem(sys *System) int {
	g.systems = append(g.systems, sys)
	return len(g.systems) - 1
}

func (g *Game) evaporate(id int) error {
	sys, err := g.live(id)
	if err != nil {
		return err
	}
	if err := sys.Evaporate(g.bank); err != nil {
		return err
	}
	g.systems[id] = nil
	g.log(log.NewEvaporateEvent(g.turn, id))
	return nil
}

// advancePhase spends one action of the turn that was current when the
// action started.
func (g *Game) advancePhase(ts TurnState) {
	switch ph := ts.Phase.(type) {
	case PhaseFreeMove:
		g.state = TurnState{Player: ts.Player, Phase: PhaseDone{}}
	case PhaseSacrifice:
		if ph.MovesLeft <= 1 {
			g.state = TurnState{Player: ts.Player, Phase: PhaseDone{}}
		} else {
			g.state = TurnState{Player: ts.Player, Phase: PhaseSacrifice{Color: ph.Color, MovesLeft: ph.MovesLeft - 1}}
			return
		}
	default:
		return
	}
	g.log(log.NewPhaseChangeEvent(g.turn, ts.Player, PhaseDone{}.String()))
}

// losers reports which seated players have lost their homeworld, either
// because it evaporated or because none of their ships remain there.
func (g *Game) losers() [NumPlayers]bool {
	var lost [NumPlayers]bool
	for p, id := range g.homeworlds {
		if id == NoPlayer {
			continue
		}
		sys := g.systems[id]
		lost[p] = sys == nil || len(sys.ShipsOf(p)) == 0
	}
	return lost
}

// checkWin ends the game when all but one player have lost, or draws it
// when every player has.
func (g *Game) checkWin() {
	if _, ok := g.state.(TurnState); !ok {
		return
	}
	lost := g.losers()
	count := 0
	survivor := NoPlayer
	for p, l := range lost {
		if l {
			count++
		} else {
			survivor = p
		}
	}
	switch count {
	case NumPlayers:
		g.state = FinishedState{Winner: NoPlayer}
		g.log(log.NewDrawEvent(g.turn, "every homeworld lost"))
	case NumPlayers - 1:
		g.state = FinishedState{Winner: survivor}
		g.log(log.NewWinEvent(g.turn, survivor, "opponent's homeworld lost"))
	}
}

// log emits a game event through the logger.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
}
