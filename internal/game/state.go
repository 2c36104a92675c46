package game

import "fmt"

// State is the game's top-level machine state: SetupState, TurnState or
// FinishedState.
type State interface {
	isState()
	String() string
}

// SetupState waits for player Next to found a homeworld.
type SetupState struct {
	Next int
}

// TurnState is player Player's turn, currently in Phase.
type TurnState struct {
	Player int
	Phase  Phase
}

// FinishedState ends the game. Winner is NoPlayer for a draw.
type FinishedState struct {
	Winner int
}

func (SetupState) isState()    {}
func (TurnState) isState()     {}
func (FinishedState) isState() {}

func (s SetupState) String() string {
	return fmt.Sprintf("Setup (P%d to place homeworld)", s.Next+1)
}

func (s TurnState) String() string {
	return fmt.Sprintf("Turn P%d - %s", s.Player+1, s.Phase)
}

func (s FinishedState) String() string {
	if s.Winner == NoPlayer {
		return "Finished (draw)"
	}
	return fmt.Sprintf("Finished (P%d wins)", s.Winner+1)
}

// Phase is the progress within a turn: PhaseStarted, PhaseFreeMove,
// PhaseSacrifice or PhaseDone.
type Phase interface {
	isPhase()
	String() string
}

// PhaseStarted is the start of a turn; no action has been unlocked yet.
type PhaseStarted struct{}

// PhaseFreeMove locks one action of Color in System.
type PhaseFreeMove struct {
	System int
	Color  Color
}

// PhaseSacrifice grants MovesLeft actions of Color anywhere.
type PhaseSacrifice struct {
	Color     Color
	MovesLeft int
}

// PhaseDone means the turn's actions are spent; only EndTurn remains.
type PhaseDone struct{}

func (PhaseStarted) isPhase()   {}
func (PhaseFreeMove) isPhase()  {}
func (PhaseSacrifice) isPhase() {}
func (PhaseDone) isPhase()      {}

func (PhaseStarted) String() string { return "Started" }

func (p PhaseFreeMove) String() string {
	return fmt.Sprintf("Free %s action in system %d", p.Color, p.System)
}

func (p PhaseSacrifice) String() string {
	return fmt.Sprintf("Sacrifice (%d %s actions left)", p.MovesLeft, p.Color)
}

func (PhaseDone) String() string { return "Done" }
