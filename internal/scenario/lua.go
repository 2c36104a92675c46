// Package scenario loads scripted games written in Lua and replays them
// against the rules engine.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "homeworlds.scenario"

// Scenario is a named list of steps recorded by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one recorded call. Args holds the call's arguments by name.
// ExpectError, when set, names the rules error the step must fail with.
type Step struct {
	Kind        string
	Args        map[string]any
	ExpectError string
}

func (s Step) String() string {
	var parts []string
	for _, key := range argOrder[s.Kind] {
		parts = append(parts, fmt.Sprint(s.Args[key]))
	}
	out := fmt.Sprintf("%s(%s)", s.Kind, strings.Join(parts, ", "))
	if s.ExpectError != "" {
		out += " expecting " + s.ExpectError
	}
	return out
}

// argOrder lists each step's arguments in call order.
var argOrder = map[string][]string{
	"setup":          {"star1", "star2", "ship"},
	"free":           {"system", "color"},
	"sacrifice":      {"system", "ship"},
	"capture":        {"system", "ship", "enemy", "target"},
	"trade":          {"system", "ship", "color"},
	"build":          {"system", "ship"},
	"move":           {"system", "ship", "dest"},
	"discover":       {"system", "ship", "star"},
	"catastrophe":    {"system", "color"},
	"end_turn":       {},
	"expect_bank":    {"piece", "count"},
	"expect_phase":   {"phase"},
	"expect_winner":  {"player"},
	"expect_systems": {"count"},
}

// LoadFile runs a scenario script and returns the Scenario it builds.
func LoadFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	sc, err := collect(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// LoadString runs scenario source held in memory.
func LoadString(src string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadString(state, src); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return collect(state)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state)
	registerScenarioConstructor(state)
	return state
}

func collect(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	sc, ok := ud.(*Scenario)
	if !ok || sc == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return sc, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{{Name: "new", Function: scenarioNew}}, 0)
	state.SetGlobal("Scenario")
}

func scenarioNew(state *lua.State) int {
	state.PushUserData(&Scenario{Name: lua.OptString(state, 1, "")})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "setup", Function: stringsStep("setup")},
	{Name: "free", Function: systemStep("free", "color")},
	{Name: "sacrifice", Function: systemStep("sacrifice", "ship")},
	{Name: "capture", Function: scenarioCapture},
	{Name: "trade", Function: systemStep("trade", "ship", "color")},
	{Name: "build", Function: systemStep("build", "ship")},
	{Name: "move", Function: scenarioMove},
	{Name: "discover", Function: systemStep("discover", "ship", "star")},
	{Name: "catastrophe", Function: systemStep("catastrophe", "color")},
	{Name: "end_turn", Function: scenarioEndTurn},
	{Name: "expect_error", Function: scenarioExpectError},
	{Name: "expect_bank", Function: scenarioExpectBank},
	{Name: "expect_phase", Function: scenarioExpectPhase},
	{Name: "expect_winner", Function: scenarioExpectWinner},
	{Name: "expect_systems", Function: scenarioExpectSystems},
}

// stringsStep records a step whose arguments are all strings.
func stringsStep(kind string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		args := map[string]any{}
		for i, key := range argOrder[kind] {
			args[key] = lua.CheckString(state, i+2)
		}
		appendStep(sc, kind, args)
		return 0
	}
}

// systemStep records a step taking a system id followed by string arguments.
func systemStep(kind string, keys ...string) lua.Function {
	return func(state *lua.State) int {
		sc := checkScenario(state)
		args := map[string]any{"system": lua.CheckInteger(state, 2)}
		for i, key := range keys {
			args[key] = lua.CheckString(state, i+3)
		}
		appendStep(sc, kind, args)
		return 0
	}
}

func scenarioCapture(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "capture", map[string]any{
		"system": lua.CheckInteger(state, 2),
		"ship":   lua.CheckString(state, 3),
		"enemy":  lua.CheckInteger(state, 4),
		"target": lua.CheckString(state, 5),
	})
	return 0
}

func scenarioMove(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "move", map[string]any{
		"system": lua.CheckInteger(state, 2),
		"ship":   lua.CheckString(state, 3),
		"dest":   lua.CheckInteger(state, 4),
	})
	return 0
}

func scenarioEndTurn(state *lua.State) int {
	appendStep(checkScenario(state), "end_turn", nil)
	return 0
}

func scenarioExpectError(state *lua.State) int {
	sc := checkScenario(state)
	name := lua.CheckString(state, 2)
	if len(sc.Steps) == 0 {
		lua.ArgumentError(state, 2, "expect_error needs a preceding step")
		return 0
	}
	last := &sc.Steps[len(sc.Steps)-1]
	if _, ok := actionKinds[last.Kind]; !ok {
		lua.ArgumentError(state, 2, "expect_error must follow a game step, not "+last.Kind)
		return 0
	}
	last.ExpectError = name
	return 0
}

func scenarioExpectBank(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "expect_bank", map[string]any{
		"piece": lua.CheckString(state, 2),
		"count": lua.CheckInteger(state, 3),
	})
	return 0
}

func scenarioExpectPhase(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "expect_phase", map[string]any{"phase": lua.CheckString(state, 2)})
	return 0
}

func scenarioExpectWinner(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "expect_winner", map[string]any{"player": lua.CheckInteger(state, 2)})
	return 0
}

func scenarioExpectSystems(state *lua.State) int {
	sc := checkScenario(state)
	appendStep(sc, "expect_systems", map[string]any{"count": lua.CheckInteger(state, 2)})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if sc, ok := ud.(*Scenario); ok && sc != nil {
		return sc
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(sc *Scenario, kind string, args map[string]any) {
	if args == nil {
		args = map[string]any{}
	}
	sc.Steps = append(sc.Steps, Step{Kind: kind, Args: args})
}
