package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/homeworlds/internal/log"
)

// pc is shorthand for MustPiece in test tables.
func pc(code string) Piece {
	return MustPiece(code)
}

// pieces parses a list of compact piece codes.
func pieces(codes ...string) []Piece {
	out := make([]Piece, len(codes))
	for i, c := range codes {
		out[i] = pc(c)
	}
	return out
}

// seat describes one player's setup in compact notation.
type seat struct {
	star1, star2, ship string
}

// newTestGame creates a game with a memory logger and runs setup for both
// players.
func newTestGame(t *testing.T, seats ...seat) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g := NewGameWithConfig(GameConfig{Logger: logger})
	for _, s := range seats {
		require.NoError(t, g.Setup([2]Piece{pc(s.star1), pc(s.star2)}, pc(s.ship)))
	}
	requireConservation(t, g)
	return g, logger
}

// classicGame is the Classic opening: P1 on r1/y2 with g3,
// P2 on b2/g1 with y3.
func classicGame(t *testing.T) (*Game, *log.MemoryLogger) {
	t.Helper()
	return newTestGame(t,
		seat{"r1", "y2", "g3"},
		seat{"b2", "g1", "y3"},
	)
}

// place withdraws pieces from the bank and gives them to player in system id,
// keeping the conservation invariant intact.
func place(t *testing.T, g *Game, id, player int, codes ...string) {
	t.Helper()
	sys, err := g.live(id)
	require.NoError(t, err)
	for _, p := range pieces(codes...) {
		require.NoError(t, g.bank.Withdraw(p))
		sys.AddShip(player, p)
	}
}

// addNeutral withdraws a star from the bank and adds a neutral system.
func addNeutral(t *testing.T, g *Game, star string) int {
	t.Helper()
	p := pc(star)
	require.NoError(t, g.bank.Withdraw(p))
	return g.addSystem(NewNeutral(p))
}

// requireConservation checks bank + stars + ships == 3 for every piece kind.
func requireConservation(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range AllPieces() {
		n := g.bank.Available(p)
		for _, sys := range g.systems {
			if sys == nil {
				continue
			}
			for _, star := range sys.stars {
				if star == p {
					n++
				}
			}
			for player := 0; player < NumPlayers; player++ {
				for _, ship := range sys.ships[player] {
					if ship == p {
						n++
					}
				}
			}
		}
		require.Equalf(t, MaxCopies, n, "conservation broken for %s", p.Code())
	}
}

// requirePhase asserts the game is in player's turn with the given phase.
func requirePhase(t *testing.T, g *Game, player int, phase Phase) {
	t.Helper()
	require.Equal(t, TurnState{Player: player, Phase: phase}, g.State())
}

// passTurn spends the current player's turn on a free build in their
// homeworld and ends it. The homeworld must give green access.
func passTurn(t *testing.T, g *Game, ship string) {
	t.Helper()
	p := g.CurrentPlayer()
	home, ok := g.Homeworld(p)
	require.True(t, ok)
	require.NoError(t, g.DeclareFreeMove(home, Green))
	require.NoError(t, g.PerformAction(Action{System: home, Ship: pc(ship), Kind: Build{}}))
	require.NoError(t, g.EndTurn())
	requireConservation(t, g)
}
