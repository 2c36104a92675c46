package game

import "fmt"

// Action is one colored action performed by Ship, held by the acting player
// in System.
type Action struct {
	System int
	Ship   Piece
	Kind   ColorAction
}

// Color returns the color the action consumes.
func (a Action) Color() Color {
	return a.Kind.Color()
}

func (a Action) String() string {
	return fmt.Sprintf("%s with %s in system %d", a.Kind, a.Ship.Code(), a.System)
}

// ColorAction is the color-specific part of an action: Capture, Trade, Build,
// Move or Discover.
type ColorAction interface {
	Color() Color
	String() string
}

// Capture (red) takes an enemy ship in the same system.
type Capture struct {
	Enemy  int
	Target Piece
}

// Trade (blue) swaps the ship for a same-size ship of NewColor.
type Trade struct {
	NewColor Color
}

// Build (green) adds the smallest available ship of the acting ship's color.
type Build struct{}

// Move (yellow) flies the ship to an existing system.
type Move struct {
	Destination int
}

// Discover (yellow) flies the ship to a new system with Star as its sun.
type Discover struct {
	Star Piece
}

func (Capture) Color() Color  { return Red }
func (Trade) Color() Color    { return Blue }
func (Build) Color() Color    { return Green }
func (Move) Color() Color     { return Yellow }
func (Discover) Color() Color { return Yellow }

func (c Capture) String() string {
	return fmt.Sprintf("capture P%d's %s", c.Enemy+1, c.Target.Code())
}

func (t Trade) String() string {
	return fmt.Sprintf("trade to %s", t.NewColor)
}

func (Build) String() string { return "build" }

func (m Move) String() string {
	return fmt.Sprintf("move to system %d", m.Destination)
}

func (d Discover) String() string {
	return fmt.Sprintf("discover %s", d.Star.Code())
}
