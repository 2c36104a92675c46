package game

import (
	"fmt"
	"strings"
)

// NumPlayers is the number of seats at the table.
const NumPlayers = 2

// NoPlayer marks the absence of a player (neutral systems, drawn games).
const NoPlayer = -1

// MaxCopies is how many pieces of each kind exist.
const MaxCopies = 3

// --- Enums ---

type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
)

// AllColors lists every color in display order.
var AllColors = [4]Color{Red, Blue, Green, Yellow}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	default:
		return "Unknown"
	}
}

// Letter returns the single-letter code used in compact piece notation.
func (c Color) Letter() byte {
	switch c {
	case Red:
		return 'r'
	case Blue:
		return 'b'
	case Green:
		return 'g'
	case Yellow:
		return 'y'
	default:
		return '?'
	}
}

// Valid reports whether c is one of the four colors.
func (c Color) Valid() bool {
	return c >= Red && c <= Yellow
}

type Size int

const (
	Small Size = iota
	Medium
	Large
)

// AllSizes lists every size from smallest to largest.
var AllSizes = [3]Size{Small, Medium, Large}

func (s Size) String() string {
	switch s {
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	case Large:
		return "Large"
	default:
		return "Unknown"
	}
}

// Rank returns 1, 2 or 3 for Small, Medium and Large.
func (s Size) Rank() int {
	return int(s) + 1
}

// Valid reports whether s is one of the three sizes.
func (s Size) Valid() bool {
	return s >= Small && s <= Large
}

// --- Piece ---

// Piece is a (color, size) value. Pieces are fungible: two pieces with the
// same color and size are interchangeable.
type Piece struct {
	Color Color
	Size  Size
}

// NewPiece builds a piece from a color and a size.
func NewPiece(c Color, s Size) Piece {
	return Piece{Color: c, Size: s}
}

// AllPieces lists the 12 piece kinds, grouped by color.
func AllPieces() []Piece {
	pieces := make([]Piece, 0, len(AllColors)*len(AllSizes))
	for _, c := range AllColors {
		for _, s := range AllSizes {
			pieces = append(pieces, Piece{Color: c, Size: s})
		}
	}
	return pieces
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Size)
}

// Code returns the compact notation, e.g. "r1" for a small red piece.
func (p Piece) Code() string {
	return fmt.Sprintf("%c%d", p.Color.Letter(), p.Size.Rank())
}

// Valid reports whether both color and size are in range.
func (p Piece) Valid() bool {
	return p.Color.Valid() && p.Size.Valid()
}

// index maps a piece kind onto 0..11.
func (p Piece) index() int {
	return int(p.Color)*len(AllSizes) + int(p.Size)
}

// --- Parsing ---

// ParseColor accepts a color name ("green") or its letter ("g").
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "b", "blue":
		return Blue, nil
	case "g", "green":
		return Green, nil
	case "y", "yellow":
		return Yellow, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// ParseSize accepts a size name ("large") or its rank ("3").
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "s", "small":
		return Small, nil
	case "2", "m", "medium":
		return Medium, nil
	case "3", "l", "large":
		return Large, nil
	}
	return 0, fmt.Errorf("unknown size %q", s)
}

// ParsePiece accepts compact notation ("g3") or a long form ("green-large",
// "green large").
func ParsePiece(s string) (Piece, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if len(t) == 2 {
		c, err := ParseColor(t[:1])
		if err != nil {
			return Piece{}, fmt.Errorf("parse piece %q: %w", s, err)
		}
		sz, err := ParseSize(t[1:])
		if err != nil {
			return Piece{}, fmt.Errorf("parse piece %q: %w", s, err)
		}
		return Piece{Color: c, Size: sz}, nil
	}
	parts := strings.FieldsFunc(t, func(r rune) bool { return r == '-' || r == ' ' || r == '_' })
	if len(parts) != 2 {
		return Piece{}, fmt.Errorf("parse piece %q: want notation like g3 or green-large", s)
	}
	c, err := ParseColor(parts[0])
	if err != nil {
		return Piece{}, fmt.Errorf("parse piece %q: %w", s, err)
	}
	sz, err := ParseSize(parts[1])
	if err != nil {
		return Piece{}, fmt.Errorf("parse piece %q: %w", s, err)
	}
	return Piece{Color: c, Size: sz}, nil
}

// MustPiece parses compact notation and panics on error. Intended for
// package-level fixtures and tests only.
func MustPiece(s string) Piece {
	p, err := ParsePiece(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PieceCodes formats a list of pieces in compact notation.
func PieceCodes(pieces []Piece) string {
	if len(pieces) == 0 {
		return "-"
	}
	codes := make([]string, len(pieces))
	for i, p := range pieces {
		codes[i] = p.Code()
	}
	return strings.Join(codes, " ")
}
