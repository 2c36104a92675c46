package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/homeworlds/internal/view"
)

const testOpenings = "../../openings.yaml"

// execute runs the root command with args and stdin, returning its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--openings", testOpenings, "--color=false"}, args...))
	saved := cfg
	t.Cleanup(func() {
		cfg = saved
		playOpening, playJSON, scenarioVerbose = 0, false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "homeworlds")
	assert.Contains(t, out, "scenario")
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	SetVersion("")
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "", "invalid-command")
	assert.Error(t, err)
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, err := execute(t, "", "--log-level", "loud", "openings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
	_, err = execute(t, "", "--log-level", "info", "openings")
	require.NoError(t, err)
}

func TestOpeningsCommand(t *testing.T) {
	out, err := execute(t, "", "openings")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Classic")
	assert.Contains(t, out, "P1 r1 y2 / g3")
	assert.Contains(t, out, "P2 b2 g1 / y3")

	_, err = execute(t, "", "--openings", filepath.Join(t.TempDir(), "none.yaml"), "openings")
	assert.Error(t, err)
}

func TestPlayCommand(t *testing.T) {
	script := "free 0 green\nbuild 0 g3\nend\nquit\n"
	out, err := execute(t, script, "play", "--opening", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "P1 builds g1 in system 0")
	assert.Contains(t, out, "P2> ")
	assert.NotContains(t, out, "\x1b[")
}

func TestPlayCommandJSON(t *testing.T) {
	script := "setup r1 y2 g3\nsetup b2 g1 y3\nsacrifice 0 g3\n"
	out, err := execute(t, script, "play", "--json")
	require.NoError(t, err)

	start := strings.Index(out, "{\n")
	require.GreaterOrEqual(t, start, 0, out)
	var sv view.StateView
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &sv))
	assert.Equal(t, "finished", sv.State)
	assert.Equal(t, 1, sv.Winner)
}

func TestPlayCommandBadOpening(t *testing.T) {
	_, err := execute(t, "", "play", "--opening", "42")
	assert.Error(t, err)
}

func TestScenarioCommand(t *testing.T) {
	out, err := execute(t, "", "scenario", "../../scenarios/demo.lua")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   demo")
	assert.Contains(t, out, "T9  | P1 sacrifices g2")

	out, err = execute(t, "", "--events=false", "scenario", "-v", "../../scenarios/demo.lua")
	require.NoError(t, err)
	assert.Contains(t, out, "-- 1: setup(r1, y2, g3)")
	assert.NotContains(t, out, "T9  |")
}

func TestScenarioCommandFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.lua")
	src := `local s = Scenario.new("broken")
s:setup("r1", "y2", "g3")
s:setup("b2", "g1", "y3")
s:end_turn()
return s
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out, err := execute(t, "", "--events=false", "scenario", path, "../../scenarios/demo.lua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
	assert.Contains(t, out, "FAIL "+path+": step 3 end_turn")
	assert.Contains(t, out, "ok   demo")
}
