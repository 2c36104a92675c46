// Package view turns a game into JSON-ready snapshots for tool clients and
// machine-readable console output.
package view

import (
	"github.com/peterkuimelis/homeworlds/internal/game"
	"github.com/peterkuimelis/homeworlds/internal/log"
)

// StateView is a full snapshot of a game.
type StateView struct {
	State         string       `json:"state"` // "setup", "turn" or "finished"
	Description   string       `json:"description"`
	Turn          int          `json:"turn"`
	CurrentPlayer int          `json:"current_player"`
	Phase         *PhaseView   `json:"phase,omitempty"`
	Winner        int          `json:"winner"`
	Draw          bool         `json:"draw,omitempty"`
	Bank          BankView     `json:"bank"`
	Systems       []SystemView `json:"systems"`
}

// PhaseView describes the progress within a turn.
type PhaseView struct {
	Name      string `json:"name"` // "started", "free_move", "sacrifice" or "done"
	System    *int   `json:"system,omitempty"`
	Color     string `json:"color,omitempty"`
	MovesLeft int    `json:"moves_left,omitempty"`
}

// BankView maps piece codes to the number of copies left.
type BankView struct {
	Pieces map[string]int `json:"pieces"`
	Total  int            `json:"total"`
}

// SystemView shows one live system.
type SystemView struct {
	ID       int        `json:"id"`
	Stars    []string   `json:"stars"`
	Home     int        `json:"home"` // -1 for a neutral system
	Ships    [][]string `json:"ships"`
	Adjacent []int      `json:"adjacent"`
}

// EventView is a game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	System  int    `json:"system"`
	Piece   string `json:"piece,omitempty"`
	Details string `json:"details"`
}

// BuildStateView creates a StateView of g.
func BuildStateView(g *game.Game) *StateView {
	sv := &StateView{
		Description:   g.State().String(),
		Turn:          g.Turn(),
		CurrentPlayer: g.CurrentPlayer(),
		Winner:        game.NoPlayer,
		Bank:          NewBankView(g.Bank()),
		Systems:       []SystemView{},
	}

	switch s := g.State().(type) {
	case game.SetupState:
		sv.State = "setup"
	case game.TurnState:
		sv.State = "turn"
		sv.Phase = NewPhaseView(s.Phase)
	case game.FinishedState:
		sv.State = "finished"
		sv.Winner = s.Winner
		sv.Draw = s.Winner == game.NoPlayer
	}

	live := make(map[int]*game.System)
	for _, id := range g.SystemIDs() {
		sys, err := g.System(id)
		if err != nil {
			continue
		}
		live[id] = sys
	}
	for _, sum := range g.Systems() {
		v := SystemView{
			ID:       sum.ID,
			Stars:    codes(sum.Stars),
			Home:     sum.Home,
			Ships:    make([][]string, game.NumPlayers),
			Adjacent: []int{},
		}
		for p := range sum.Ships {
			v.Ships[p] = codes(sum.Ships[p])
		}
		for _, other := range g.SystemIDs() {
			if live[sum.ID].IsAdjacent(live[other]) {
				v.Adjacent = append(v.Adjacent, other)
			}
		}
		sv.Systems = append(sv.Systems, v)
	}
	return sv
}

// NewPhaseView describes a turn phase.
func NewPhaseView(phase game.Phase) *PhaseView {
	switch ph := phase.(type) {
	case game.PhaseStarted:
		return &PhaseView{Name: "started"}
	case game.PhaseFreeMove:
		id := ph.System
		return &PhaseView{Name: "free_move", System: &id, Color: ph.Color.String()}
	case game.PhaseSacrifice:
		return &PhaseView{Name: "sacrifice", Color: ph.Color.String(), MovesLeft: ph.MovesLeft}
	case game.PhaseDone:
		return &PhaseView{Name: "done"}
	default:
		return nil
	}
}

// NewBankView lists every piece kind with its remaining count.
func NewBankView(b *game.Bank) BankView {
	bv := BankView{Pieces: make(map[string]int), Total: b.Total()}
	for _, p := range game.AllPieces() {
		bv.Pieces[p.Code()] = b.Available(p)
	}
	return bv
}

// NewEventView converts a logged event.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Type.String(),
		System:  e.System,
		Piece:   e.Piece,
		Details: e.Details,
	}
}

// EventViews converts a slice of events. It never returns nil.
func EventViews(events []log.GameEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventView(e))
	}
	return out
}

func codes(pieces []game.Piece) []string {
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.Code()
	}
	return out
}
