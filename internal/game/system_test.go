package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemShipsAreFungible(t *testing.T) {
	sys := NewNeutral(pc("b2"))
	sys.AddShip(0, pc("g1"))
	sys.AddShip(0, pc("g1"))
	sys.AddShip(0, pc("r3"))

	require.NoError(t, sys.RemoveShip(0, pc("g1")))
	assert.Equal(t, pieces("g1", "r3"), sys.ShipsOf(0))
	assert.True(t, sys.HasShip(0, pc("g1")))

	assert.ErrorIs(t, sys.RemoveShip(1, pc("g1")), ErrNoSuchShip)
	assert.ErrorIs(t, sys.RemoveShip(0, pc("y1")), ErrNoSuchShip)
	assert.ErrorIs(t, sys.RemoveShip(7, pc("g1")), ErrNoSuchShip)
}

func TestSystemShipsOfReturnsCopy(t *testing.T) {
	sys := NewNeutral(pc("b2"))
	sys.AddShip(1, pc("y1"))
	ships := sys.ShipsOf(1)
	ships[0] = pc("r3")
	assert.Equal(t, pieces("y1"), sys.ShipsOf(1))
}

func TestSystemIsEmpty(t *testing.T) {
	sys := NewHomeworld(pc("r1"), pc("y2"), 0)
	assert.True(t, sys.IsEmpty())
	sys.AddShip(1, pc("g3"))
	assert.False(t, sys.IsEmpty())
	require.NoError(t, sys.RemoveShip(1, pc("g3")))
	assert.True(t, sys.IsEmpty())
}

func TestSystemHome(t *testing.T) {
	home := NewHomeworld(pc("r1"), pc("y2"), 1)
	p, ok := home.Home()
	assert.True(t, ok)
	assert.Equal(t, 1, p)
	assert.Len(t, home.Stars(), 2)

	neutral := NewNeutral(pc("b3"))
	_, ok = neutral.Home()
	assert.False(t, ok)
	assert.False(t, neutral.IsHomeworld())
}

func TestSystemAdjacency(t *testing.T) {
	systems := []*System{
		NewNeutral(pc("r1")),
		NewNeutral(pc("g2")),
		NewNeutral(pc("b3")),
		NewNeutral(pc("y1")),
		NewHomeworld(pc("r1"), pc("y2"), 0),
		NewHomeworld(pc("b3"), pc("g3"), 1),
		NewHomeworld(pc("b1"), pc("g3"), 1),
	}

	tests := []struct {
		a, b int
		want bool
	}{
		{0, 1, true},
		{0, 3, false}, // both small
		{0, 4, false},
		{1, 4, false},
		{2, 4, true},
		{4, 5, true},
		{4, 6, false},
		{1, 5, true},
		{2, 5, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, systems[tt.a].IsAdjacent(systems[tt.b]), "systems %d and %d", tt.a, tt.b)
	}

	for i, a := range systems {
		assert.Falsef(t, a.IsAdjacent(a), "system %d adjacent to itself", i)
		for j, b := range systems {
			assert.Equalf(t, a.IsAdjacent(b), b.IsAdjacent(a), "asymmetric adjacency %d/%d", i, j)
		}
	}
}

func TestSystemColorCountAndAccess(t *testing.T) {
	sys := NewHomeworld(pc("g1"), pc("y2"), 0)
	sys.AddShip(0, pc("g3"))
	sys.AddShip(1, pc("g2"))
	sys.AddShip(1, pc("r1"))

	assert.Equal(t, 3, sys.ColorCount(Green))
	assert.Equal(t, 1, sys.ColorCount(Yellow))
	assert.Equal(t, 1, sys.ColorCount(Red))
	assert.Equal(t, 0, sys.ColorCount(Blue))

	assert.True(t, sys.HasColorAccess(0, Yellow))
	assert.False(t, sys.HasColorAccess(0, Red))
	assert.True(t, sys.HasColorAccess(1, Red))
	assert.False(t, sys.HasColorAccess(1, Blue))
}

func TestCatastropheRemovesShipsOfColor(t *testing.T) {
	bank := FullBank()
	require.NoError(t, bank.WithdrawMany(pieces("b3", "y2", "r1", "r2", "r3", "g1")))
	sys := NewNeutral(pc("b3"))
	sys.AddShip(0, pc("r1"))
	sys.AddShip(0, pc("g1"))
	sys.AddShip(1, pc("r2"))
	sys.AddShip(1, pc("r3"))
	sys.AddShip(1, pc("y2"))

	res, err := sys.Catastrophe(Red, bank)
	require.NoError(t, err)
	assert.Equal(t, StillExists, res)
	assert.Equal(t, 0, sys.ColorCount(Red))
	assert.Equal(t, pieces("g1"), sys.ShipsOf(0))
	assert.Equal(t, pieces("y2"), sys.ShipsOf(1))
	assert.Equal(t, pieces("b3"), sys.Stars())
	assert.Equal(t, 3, bank.Available(pc("r1")))
	assert.Equal(t, 3, bank.Available(pc("r2")))
	assert.Equal(t, 3, bank.Available(pc("r3")))
}

func TestCatastropheDestroysOneStarOfBinary(t *testing.T) {
	bank := FullBank()
	require.NoError(t, bank.WithdrawMany(pieces("g1", "y2", "g3", "g2", "g2", "b1")))
	sys := NewHomeworld(pc("g1"), pc("y2"), 0)
	sys.AddShip(0, pc("g3"))
	sys.AddShip(0, pc("b1"))
	sys.AddShip(1, pc("g2"))
	sys.AddShip(1, pc("g2"))

	res, err := sys.Catastrophe(Green, bank)
	require.NoError(t, err)
	assert.Equal(t, StillExists, res)
	assert.Equal(t, pieces("y2"), sys.Stars())
	assert.Equal(t, pieces("b1"), sys.ShipsOf(0))
	assert.Empty(t, sys.ShipsOf(1))
	assert.True(t, sys.IsHomeworld())
	assert.Equal(t, 3, bank.Available(pc("g1")))
	assert.Equal(t, 3, bank.Available(pc("g2")))
	assert.Equal(t, 3, bank.Available(pc("g3")))
	assert.Equal(t, 2, bank.Available(pc("y2")))
}

func TestCatastropheEvaporatesWhenEveryStarMatches(t *testing.T) {
	bank := FullBank()
	require.NoError(t, bank.WithdrawMany(pieces("b2", "b1", "b3", "b3", "r1")))
	sys := NewNeutral(pc("b2"))
	sys.AddShip(0, pc("b1"))
	sys.AddShip(0, pc("b3"))
	sys.AddShip(1, pc("b3"))
	sys.AddShip(1, pc("r1"))

	res, err := sys.Catastrophe(Blue, bank)
	require.NoError(t, err)
	assert.Equal(t, Evaporated, res)
	assert.Empty(t, sys.Stars())
	assert.True(t, sys.IsEmpty())
	assert.Equal(t, 36, bank.Total())
}

func TestCatastropheEvaporatesWhenNoShipsRemain(t *testing.T) {
	bank := FullBank()
	require.NoError(t, bank.WithdrawMany(pieces("r1", "g2", "y1", "y2", "y3", "y3")))
	sys := NewHomeworld(pc("r1"), pc("g2"), 0)
	sys.AddShip(0, pc("y1"))
	sys.AddShip(0, pc("y2"))
	sys.AddShip(1, pc("y3"))
	sys.AddShip(1, pc("y3"))

	res, err := sys.Catastrophe(Yellow, bank)
	require.NoError(t, err)
	assert.Equal(t, Evaporated, res)
	assert.Equal(t, 36, bank.Total())
}

func TestCatastropheLeavesSystemUntouchedOnBankFailure(t *testing.T) {
	bank := FullBank() // nothing withdrawn: every deposit overflows
	sys := NewNeutral(pc("b2"))
	sys.AddShip(0, pc("r1"))
	sys.AddShip(0, pc("r2"))
	sys.AddShip(1, pc("r3"))
	sys.AddShip(1, pc("r3"))

	_, err := sys.Catastrophe(Red, bank)
	require.ErrorIs(t, err, ErrPieceAtCapacity)
	assert.Equal(t, 4, sys.ColorCount(Red))
	assert.Equal(t, 36, bank.Total())
}

func TestSystemEvaporate(t *testing.T) {
	bank := FullBank()
	require.NoError(t, bank.WithdrawMany(pieces("r1", "y2", "g3")))
	sys := NewHomeworld(pc("r1"), pc("y2"), 0)
	sys.AddShip(0, pc("g3"))

	require.NoError(t, sys.Evaporate(bank))
	assert.Empty(t, sys.Stars())
	assert.True(t, sys.IsEmpty())
	assert.Equal(t, 36, bank.Total())
}

func TestSystemString(t *testing.T) {
	sys := NewHomeworld(pc("r1"), pc("y2"), 0)
	sys.AddShip(0, pc("g3"))
	assert.Equal(t, "stars r1 y2 [home P1]; P1: g3; P2: -", sys.String())
}
