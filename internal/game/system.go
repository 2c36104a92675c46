package game

import (
	"fmt"
	"strings"
)

// CatastropheResult tells the caller whether a system survived a catastrophe.
type CatastropheResult int

const (
	StillExists CatastropheResult = iota
	Evaporated
)

func (r CatastropheResult) String() string {
	if r == Evaporated {
		return "Evaporated"
	}
	return "StillExists"
}

// System is a star system: one or two stars, an optional home player and
// each player's ships.
type System struct {
	stars []Piece
	home  int
	ships [NumPlayers][]Piece
}

// NewNeutral creates a single-star system with no home player.
func NewNeutral(star Piece) *System {
	return &System{
		stars: []Piece{star},
		home:  NoPlayer,
	}
}

// NewHomeworld creates a binary system owned by player.
func NewHomeworld(star1, star2 Piece, player int) *System {
	return &System{
		stars: []Piece{star1, star2},
		home:  player,
	}
}

// Stars returns the one or two stars currently present.
func (s *System) Stars() []Piece {
	out := make([]Piece, len(s.stars))
	copy(out, s.stars)
	return out
}

// Home returns the player whose homeworld this is.
func (s *System) Home() (int, bool) {
	return s.home, s.home != NoPlayer
}

// IsHomeworld reports whether the system carries a home-player marker.
func (s *System) IsHomeworld() bool {
	return s.home != NoPlayer
}

// IsEmpty reports whether no player has a ship here.
func (s *System) IsEmpty() bool {
	return s.ShipCount() == 0
}

// ShipCount returns the number of ships of all players.
func (s *System) ShipCount() int {
	n := 0
	for _, fleet := range s.ships {
		n += len(fleet)
	}
	return n
}

// AddShip appends a ship to player's fleet. The caller accounts for where
// the piece came from.
func (s *System) AddShip(player int, piece Piece) {
	s.ships[player] = append(s.ships[player], piece)
}

// RemoveShip removes one ship matching piece from player's fleet.
func (s *System) RemoveShip(player int, piece Piece) error {
	if !validPlayer(player) {
		return fmt.Errorf("remove %s: %w", piece.Code(), ErrNoSuchShip)
	}
	fleet := s.ships[player]
	for i, ship := range fleet {
		if ship == piece {
			s.ships[player] = append(fleet[:i:i], fleet[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", piece.Code(), ErrNoSuchShip)
}

// HasShip reports whether player holds a ship matching piece here.
func (s *System) HasShip(player int, piece Piece) bool {
	if !validPlayer(player) {
		return false
	}
	for _, ship := range s.ships[player] {
		if ship == piece {
			return true
		}
	}
	return false
}

// ShipsOf returns a copy of player's fleet.
func (s *System) ShipsOf(player int) []Piece {
	if !validPlayer(player) {
		return nil
	}
	out := make([]Piece, len(s.ships[player]))
	copy(out, s.ships[player])
	return out
}

// IsAdjacent reports whether no star size here matches a star size of other.
func (s *System) IsAdjacent(other *System) bool {
	if s == other {
		return false
	}
	for _, a := range s.stars {
		for _, b := range other.stars {
			if a.Size == b.Size {
				return false
			}
		}
	}
	return true
}

// ColorCount counts stars and ships of color in the system.
func (s *System) ColorCount(color Color) int {
	n := 0
	for _, star := range s.stars {
		if star.Color == color {
			n++
		}
	}
	for _, fleet := range s.ships {
		for _, ship := range fleet {
			if ship.Color == color {
				n++
			}
		}
	}
	return n
}

// HasColorAccess reports whether player may use color here: a star has it or
// one of the player's own ships does.
func (s *System) HasColorAccess(player int, color Color) bool {
	for _, star := range s.stars {
		if star.Color == color {
			return true
		}
	}
	for _, ship := range s.ShipsOf(player) {
		if ship.Color == color {
			return true
		}
	}
	return false
}

// Catastrophe destroys every piece of color. Ships of color go first; if
// ships remain, stars of color are destroyed, and a system whose stars are
// all of color evaporates. A system left without ships evaporates.
func (s *System) Catastrophe(color Color, bank *Bank) (CatastropheResult, error) {
	var returned []Piece
	var survivors [NumPlayers][]Piece
	remaining := 0
	for p, fleet := range s.ships {
		for _, ship := range fleet {
			if ship.Color == color {
				returned = append(returned, ship)
				continue
			}
			survivors[p] = append(survivors[p], ship)
			remaining++
		}
	}

	var stars []Piece
	evaporate := remaining == 0
	if !evaporate {
		matching := 0
		for _, star := range s.stars {
			if star.Color == color {
				matching++
			}
		}
		switch {
		case matching == len(s.stars):
			evaporate = true
		case matching > 0:
			for _, star := range s.stars {
				if star.Color == color {
					returned = append(returned, star)
					continue
				}
				stars = append(stars, star)
			}
		default:
			stars = s.stars
		}
	}

	if evaporate {
		for _, fleet := range survivors {
			returned = append(returned, fleet...)
		}
		returned = append(returned, s.stars...)
	}

	if err := bank.DepositMany(returned); err != nil {
		return StillExists, fmt.Errorf("catastrophe: %w", err)
	}

	if evaporate {
		s.clear()
		return Evaporated, nil
	}
	s.ships = survivors
	s.stars = stars
	return StillExists, nil
}

// Evaporate returns every ship and star to the bank and empties the system.
func (s *System) Evaporate(bank *Bank) error {
	returned := s.Stars()
	for _, fleet := range s.ships {
		returned = append(returned, fleet...)
	}
	if err := bank.DepositMany(returned); err != nil {
		return fmt.Errorf("evaporate: %w", err)
	}
	s.clear()
	return nil
}

func (s *System) clear() {
	s.stars = nil
	for p := range s.ships {
		s.ships[p] = nil
	}
}

// Clone returns an independent copy of the system.
func (s *System) Clone() *System {
	c := &System{stars: s.Stars(), home: s.home}
	for p := range s.ships {
		c.ships[p] = s.ShipsOf(p)
	}
	return c
}

func (s *System) String() string {
	var sb strings.Builder
	sb.WriteString("stars ")
	sb.WriteString(PieceCodes(s.stars))
	if s.IsHomeworld() {
		fmt.Fprintf(&sb, " [home P%d]", s.home+1)
	}
	for p := range s.ships {
		fmt.Fprintf(&sb, "; P%d: %s", p+1, PieceCodes(s.ships[p]))
	}
	return sb.String()
}

func validPlayer(p int) bool {
	return p >= 0 && p < NumPlayers
}
