package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"setup r1 y2 g3", Command{Kind: KindSetup, Stars: [2]game.Piece{game.MustPiece("r1"), game.MustPiece("y2")}, Ship: game.MustPiece("g3")}},
		{"free 0 green", Command{Kind: KindFree, System: 0, Color: game.Green}},
		{"sac 2 g2", Command{Kind: KindSacrifice, System: 2, Ship: game.MustPiece("g2")}},
		{"capture 2 r3 p1 g1", Command{Kind: KindCapture, System: 2, Ship: game.MustPiece("r3"), Enemy: 0, Target: game.MustPiece("g1")}},
		{"trade #2 y3 red", Command{Kind: KindTrade, System: 2, Ship: game.MustPiece("y3"), Color: game.Red}},
		{"build 0 g3", Command{Kind: KindBuild, Ship: game.MustPiece("g3")}},
		{"move 1 y3 2", Command{Kind: KindMove, System: 1, Ship: game.MustPiece("y3"), Dest: 2}},
		{"discover 0 g1 blue-large", Command{Kind: KindDiscover, Ship: game.MustPiece("g1"), Star: game.MustPiece("b3")}},
		{"CAT 2 g", Command{Kind: KindCatastrophe, System: 2, Color: game.Green}},
		{"end", Command{Kind: KindEnd}},
		{"  status ", Command{Kind: KindStatus}},
		{"quit", Command{Kind: KindQuit}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoErrorf(t, err, "ParseCommand(%q)", tt.line)
		assert.Equalf(t, tt.want, got, "ParseCommand(%q)", tt.line)
	}
}

func TestParseCommandErrors(t *testing.T) {
	_, err := ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	for _, line := range []string{
		"fly 0 g3",
		"free 0",
		"free x green",
		"free -1 green",
		"free 0 purple",
		"build 0 g9",
		"capture 0 g3 p3 r1",
		"setup r1 y2",
		"end now",
	} {
		_, err := ParseCommand(line)
		assert.Errorf(t, err, "ParseCommand(%q) should fail", line)
	}
}

func TestParsePlayer(t *testing.T) {
	p, err := ParsePlayer("P2")
	require.NoError(t, err)
	assert.Equal(t, 1, p)
	p, err = ParsePlayer("1")
	require.NoError(t, err)
	assert.Equal(t, 0, p)
	_, err = ParsePlayer("p0")
	assert.Error(t, err)
}

func TestCommandAction(t *testing.T) {
	cmd, err := ParseCommand("discover 0 g1 b3")
	require.NoError(t, err)
	a, ok := cmd.Action()
	require.True(t, ok)
	assert.Equal(t, game.Action{System: 0, Ship: game.MustPiece("g1"), Kind: game.Discover{Star: game.MustPiece("b3")}}, a)

	_, ok = Command{Kind: KindEnd}.Action()
	assert.False(t, ok)
}

func newSession(t *testing.T) (*Session, *game.Game, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	g := game.NewGame()
	return NewSession(g, NewRenderer(&out, false)), g, &out
}

func TestSessionPlaysTurns(t *testing.T) {
	s, g, out := newSession(t)
	for _, line := range []string{"setup r1 y2 g3", "setup b2 g1 y3", "free 0 green", "build 0 g3", "end"} {
		stop, err := s.Exec(line)
		require.NoError(t, err, line)
		require.False(t, stop, line)
	}

	assert.Equal(t, game.TurnState{Player: 1, Phase: game.PhaseStarted{}}, g.State())
	text := out.String()
	assert.Contains(t, text, "P1 builds g1 in system 0")
	assert.Contains(t, text, "=== Turn 2 (P2) ===")
	assert.NotContains(t, text, "\x1b[")
}

func TestSessionRendersRulesErrors(t *testing.T) {
	s, g, out := newSession(t)
	_, err := s.Exec("setup r1 y2 g3")
	require.NoError(t, err)
	_, err = s.Exec("setup b2 g1 y3")
	require.NoError(t, err)

	_, err = s.Exec("free 0 blue")
	require.ErrorIs(t, err, game.ErrFreeActionUnavailable)
	assert.Contains(t, out.String(), "✗ FreeActionUnavailable:")
	assert.Equal(t, game.TurnState{Player: 0, Phase: game.PhaseStarted{}}, g.State())

	_, err = s.Exec("bogus")
	require.Error(t, err)
	assert.Contains(t, out.String(), `unknown command "bogus"`)
}

func TestSessionDisplayCommands(t *testing.T) {
	s, _, out := newSession(t)
	_, err := s.Exec("setup r1 y2 g3")
	require.NoError(t, err)

	_, err = s.Exec("status")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "#0 r1 y2 [home P1]")
	assert.Contains(t, out.String(), "P1: g3")

	_, err = s.Exec("bank")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Bank (33 pieces)")

	_, err = s.Exec("help")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "catastrophe SYS COLOR")

	stop, err := s.Exec("quit")
	require.NoError(t, err)
	assert.True(t, stop)
}

func TestSessionStopsWhenGameEnds(t *testing.T) {
	s, g, out := newSession(t)
	script := strings.Join([]string{
		"setup r1 y2 g3",
		"setup b2 g1 y3",
		"sacrifice 0 g3",
		"status",
	}, "\n")

	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))
	winner, over := g.Winner()
	require.True(t, over)
	assert.Equal(t, 1, winner)
	assert.Contains(t, out.String(), "P2 wins!")
}

func TestSessionRunHonorsContext(t *testing.T) {
	s, _, _ := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx, strings.NewReader("setup r1 y2 g3\n")), context.Canceled)
}

func TestRendererColor(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, true)
	assert.Contains(t, r.Piece(game.MustPiece("r1")), "\x1b[")

	plain := NewRenderer(&out, false)
	assert.Equal(t, "y3", plain.Piece(game.MustPiece("y3")))
}
