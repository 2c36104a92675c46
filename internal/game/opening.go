package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OpeningFile represents the top-level YAML structure.
type OpeningFile struct {
	Openings []OpeningEntry `yaml:"openings"`
}

// OpeningEntry represents a single opening in the YAML file.
type OpeningEntry struct {
	Name  string      `yaml:"name"`
	Seats []SeatEntry `yaml:"seats"`
}

// SeatEntry is one player's homeworld stars and starting ship, in piece notation.
type SeatEntry struct {
	Stars []string `yaml:"stars"`
	Ship  string   `yaml:"ship"`
}

// Seat is a parsed SeatEntry.
type Seat struct {
	Stars [2]Piece
	Ship  Piece
}

// Opening is a named set of setups, one per player in seat order.
type Opening struct {
	Name  string
	Seats []Seat
}

// ParseOpenings parses YAML opening data.
func ParseOpenings(data []byte) ([]Opening, error) {
	var of OpeningFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, fmt.Errorf("parse openings YAML: %w", err)
	}

	openings := make([]Opening, 0, len(of.Openings))
	for i, entry := range of.Openings {
		o, err := entry.parse()
		if err != nil {
			return nil, fmt.Errorf("opening %d (%s): %w", i+1, entry.Name, err)
		}
		openings = append(openings, o)
	}
	return openings, nil
}

// LoadOpenings reads and parses an openings file.
func LoadOpenings(path string) ([]Opening, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOpenings(data)
}

// OpeningByNumber returns the Nth opening (1-indexed) from the file.
func OpeningByNumber(path string, n int) (Opening, error) {
	openings, err := LoadOpenings(path)
	if err != nil {
		return Opening{}, err
	}
	if n < 1 || n > len(openings) {
		return Opening{}, fmt.Errorf("opening %d not found (have %d openings)", n, len(openings))
	}
	return openings[n-1], nil
}

func (e OpeningEntry) parse() (Opening, error) {
	if len(e.Seats) != NumPlayers {
		return Opening{}, fmt.Errorf("want %d seats, got %d", NumPlayers, len(e.Seats))
	}
	o := Opening{Name: e.Name}
	for i, s := range e.Seats {
		if len(s.Stars) != 2 {
			return Opening{}, fmt.Errorf("seat %d: want 2 stars, got %d", i+1, len(s.Stars))
		}
		var seat Seat
		for j, code := range s.Stars {
			p, err := ParsePiece(code)
			if err != nil {
				return Opening{}, fmt.Errorf("seat %d: %w", i+1, err)
			}
			seat.Stars[j] = p
		}
		ship, err := ParsePiece(s.Ship)
		if err != nil {
			return Opening{}, fmt.Errorf("seat %d: %w", i+1, err)
		}
		seat.Ship = ship
		o.Seats = append(o.Seats, seat)
	}
	return o, nil
}

// ApplyOpening runs Setup for every seat of the opening. It is only legal
// before anyone has set up, and either every seat is placed or none is.
func (g *Game) ApplyOpening(o Opening) error {
	s, ok := g.state.(SetupState)
	if !ok || s.Next != 0 {
		return fmt.Errorf("apply opening %q: %w", o.Name, ErrWrongState)
	}
	if len(o.Seats) != NumPlayers {
		return fmt.Errorf("apply opening %q: want %d seats, got %d: %w", o.Name, NumPlayers, len(o.Seats), ErrWrongState)
	}
	var all []Piece
	for _, seat := range o.Seats {
		all = append(all, seat.Stars[0], seat.Stars[1], seat.Ship)
	}
	if err := g.bank.Clone().WithdrawMany(all); err != nil {
		return fmt.Errorf("apply opening %q: %w", o.Name, err)
	}
	for _, seat := range o.Seats {
		if err := g.Setup(seat.Stars, seat.Ship); err != nil {
			return fmt.Errorf("apply opening %q: %w", o.Name, err)
		}
	}
	return nil
}
