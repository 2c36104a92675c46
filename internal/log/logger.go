package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// EventsSince returns the events with a sequence number greater than seq.
func (l *MemoryLogger) EventsSince(seq int) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Seq > seq {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	if e.Turn == 0 {
		return fmt.Sprintf("--  | %s", e.Details)
	}
	return fmt.Sprintf("T%-2d | %s", e.Turn, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewSetupEvent(player int, system int, stars [2]string, ship string) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventSetup,
		System:  system,
		Piece:   ship,
		Details: fmt.Sprintf("%s founds homeworld %d (stars %s, %s) with %s", playerName(player), system, stars[0], stars[1], ship),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		System:  -1,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewPhaseChangeEvent(turn int, player int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPhaseChange,
		System:  -1,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewFreeMoveEvent(turn int, player int, system int, color string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventFreeMove,
		System:  system,
		Details: fmt.Sprintf("%s declares a free %s action in system %d", playerName(player), color, system),
	}
}

func NewSacrificeEvent(turn int, player int, system int, ship string, moves int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventSacrifice,
		System:  system,
		Piece:   ship,
		Details: fmt.Sprintf("%s sacrifices %s in system %d (%d actions)", playerName(player), ship, system, moves),
	}
}

func NewCaptureEvent(turn int, player int, system int, target string, enemy int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCapture,
		System:  system,
		Piece:   target,
		Details: fmt.Sprintf("%s captures %s's %s in system %d", playerName(player), playerName(enemy), target, system),
	}
}

func NewTradeEvent(turn int, player int, system int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTrade,
		System:  system,
		Piece:   to,
		Details: fmt.Sprintf("%s trades %s for %s in system %d", playerName(player), from, to, system),
	}
}

func NewBuildEvent(turn int, player int, system int, ship string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventBuild,
		System:  system,
		Piece:   ship,
		Details: fmt.Sprintf("%s builds %s in system %d", playerName(player), ship, system),
	}
}

func NewMoveEvent(turn int, player int, from, to int, ship string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventMove,
		System:  to,
		Piece:   ship,
		Details: fmt.Sprintf("%s moves %s from system %d to system %d", playerName(player), ship, from, to),
	}
}

func NewDiscoverEvent(turn int, player int, from, to int, ship, star string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDiscover,
		System:  to,
		Piece:   ship,
		Details: fmt.Sprintf("%s discovers system %d (star %s) and moves %s there from system %d", playerName(player), to, star, ship, from),
	}
}

func NewCatastropheEvent(turn int, player int, system int, color string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCatastrophe,
		System:  system,
		Details: fmt.Sprintf("%s declares a %s catastrophe in system %d", playerName(player), color, system),
	}
}

func NewStarDestroyedEvent(turn int, system int, star string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventStarDestroyed,
		System:  system,
		Piece:   star,
		Details: fmt.Sprintf("Star %s of system %d is destroyed", star, system),
	}
}

func NewEvaporateEvent(turn int, system int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventEvaporate,
		System:  system,
		Details: fmt.Sprintf("System %d evaporates", system),
	}
}

func NewWinEvent(turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		System:  -1,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewDrawEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventDraw,
		System:  -1,
		Details: fmt.Sprintf("Draw (%s)", reason),
	}
}
