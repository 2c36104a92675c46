package scenario

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

const classicSetup = `
local s = Scenario.new("inline")
s:setup("r1", "y2", "g3")
s:setup("b2", "g1", "y3")
`

func load(t *testing.T, body string) *Scenario {
	t.Helper()
	sc, err := LoadString(classicSetup + body + "\nreturn s\n")
	require.NoError(t, err)
	return sc
}

func TestLoadStringRecordsSteps(t *testing.T) {
	sc := load(t, `
s:free(0, "green")
s:build(0, "g3")
s:capture(2, "r3", 1, "g1")
s:move(1, "y3", 2)
s:expect_bank("g1", 1)
s:expect_winner(1)
s:end_turn()
`)
	assert.Equal(t, "inline", sc.Name)
	require.Len(t, sc.Steps, 9)
	assert.Equal(t, Step{Kind: "setup", Args: map[string]any{"star1": "r1", "star2": "y2", "ship": "g3"}}, sc.Steps[0])
	assert.Equal(t, Step{Kind: "free", Args: map[string]any{"system": 0, "color": "green"}}, sc.Steps[2])
	assert.Equal(t, map[string]any{"system": 2, "ship": "r3", "enemy": 1, "target": "g1"}, sc.Steps[4].Args)
	assert.Equal(t, map[string]any{"system": 1, "ship": "y3", "dest": 2}, sc.Steps[5].Args)
	assert.Equal(t, "expect_bank(g1, 1)", sc.Steps[6].String())
	assert.Equal(t, "end_turn", sc.Steps[8].Kind)
	assert.Empty(t, sc.Steps[8].Args)
}

func TestExpectErrorMarksPreviousStep(t *testing.T) {
	sc := load(t, `
s:free(0, "blue")
s:expect_error("FreeActionUnavailable")
`)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, "FreeActionUnavailable", sc.Steps[2].ExpectError)
	assert.Equal(t, "free(0, blue) expecting FreeActionUnavailable", sc.Steps[2].String())
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "local s = Scenario.new("},
		{"no return", `local s = Scenario.new("x")`},
		{"wrong return", `return 42`},
		{"expect_error first", `local s = Scenario.new("x") s:expect_error("WrongPhase") return s`},
		{"expect_error after assertion", `local s = Scenario.new("x") s:expect_systems(0) s:expect_error("WrongPhase") return s`},
		{"bad argument", `local s = Scenario.new("x") s:free("zero", "green") return s`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString(tt.src)
			assert.Error(t, err)
		})
	}
}

func TestLoadFileDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opening-check.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return Scenario.new()`), 0o644))

	sc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "opening-check", sc.Name)
	assert.Empty(t, sc.Steps)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestRunPlaysTurn(t *testing.T) {
	sc := load(t, `
s:expect_phase("Started")
s:free(0, "green")
s:expect_phase("free_move")
s:build(0, "g3")
s:expect_phase("done")
s:expect_bank("g1", 1)
s:end_turn()
s:expect_phase("Turn P2 - Started")
s:expect_systems(2)
`)
	g := game.NewGame()
	var out bytes.Buffer
	r := &Runner{Out: &out}
	require.NoError(t, r.Run(context.Background(), sc, g))
	assert.Equal(t, game.TurnState{Player: 1, Phase: game.PhaseStarted{}}, g.State())
	assert.Contains(t, out.String(), "-- 6: build(0, g3)")
}

func TestRunReportsFailingStep(t *testing.T) {
	sc := load(t, `
s:free(0, "green")
s:capture(0, "g3", 1, "y3")
`)
	err := (&Runner{}).Run(context.Background(), sc, game.NewGame())
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 3, stepErr.Index)
	assert.Equal(t, "capture", stepErr.Step.Kind)
	assert.ErrorIs(t, err, game.ErrWrongActionColor)
	assert.Contains(t, err.Error(), "step 4 capture(0, g3, 1, y3)")
}

func TestRunExpectedErrors(t *testing.T) {
	ok := load(t, `
s:discover(0, "g3", "b3")
s:expect_error("WrongPhase")
s:free(0, "green")
s:build(0, "g3")
s:build(0, "g3")
s:expect_error("NoActionsLeft")
`)
	require.NoError(t, (&Runner{}).Run(context.Background(), ok, game.NewGame()))

	wrong := load(t, `
s:end_turn()
s:expect_error("WrongState")
`)
	err := (&Runner{}).Run(context.Background(), wrong, game.NewGame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected WrongState")

	succeeded := load(t, `
s:free(0, "green")
s:expect_error("WrongPhase")
`)
	err = (&Runner{}).Run(context.Background(), succeeded, game.NewGame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step succeeded")
}

func TestRunMalformedArgumentNeverMatches(t *testing.T) {
	sc := load(t, `
s:free(0, "purple")
s:expect_error("WrongActionColor")
`)
	err := (&Runner{}).Run(context.Background(), sc, game.NewGame())
	require.Error(t, err)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, stepErr.Index)
	assert.Empty(t, game.ErrorName(err))
}

func TestRunAssertionFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bank", `s:expect_bank("g3", 3)`, "bank holds 2 g3, want 3"},
		{"phase", `s:expect_phase("done")`, `want "done"`},
		{"winner", `s:expect_winner(0)`, "game not finished"},
		{"systems", `s:expect_systems(3)`, "2 systems, want 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Runner{}).Run(context.Background(), load(t, tt.body), game.NewGame())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunWinner(t *testing.T) {
	sc := load(t, `
s:sacrifice(0, "g3")
s:expect_phase("finished")
s:expect_winner(1)
`)
	g := game.NewGame()
	require.NoError(t, (&Runner{}).Run(context.Background(), sc, g))
	winner, over := g.Winner()
	assert.True(t, over)
	assert.Equal(t, 1, winner)
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&Runner{}).Run(ctx, load(t, ""), game.NewGame())
	assert.ErrorIs(t, err, context.Canceled)

	assert.Error(t, (&Runner{}).Run(context.Background(), nil, game.NewGame()))
}

func TestDemoScenario(t *testing.T) {
	sc, g, err := (&Runner{}).RunFile(context.Background(), "../../scenarios/demo.lua", game.NewGame)
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name)
	assert.Equal(t, game.TurnState{Player: 1, Phase: game.PhaseStarted{}}, g.State())
	assert.Equal(t, 10, g.Turn())
	assert.Equal(t, 28, g.Bank().Total())

	sys, err := g.System(2)
	require.NoError(t, err)
	assert.Empty(t, sys.ShipsOf(0))
	assert.Equal(t, []game.Piece{game.MustPiece("r3")}, sys.ShipsOf(1))
}
