package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventSetup EventType = iota
	EventNewTurn
	EventFreeMove
	EventSacrifice
	EventCapture
	EventTrade
	EventBuild
	EventMove
	EventDiscover
	EventCatastrophe
	EventStarDestroyed
	EventEvaporate
	EventPhaseChange
	EventWin
	EventDraw
)

func (e EventType) String() string {
	switch e {
	case EventSetup:
		return "Setup"
	case EventNewTurn:
		return "NewTurn"
	case EventFreeMove:
		return "FreeMove"
	case EventSacrifice:
		return "Sacrifice"
	case EventCapture:
		return "Capture"
	case EventTrade:
		return "Trade"
	case EventBuild:
		return "Build"
	case EventMove:
		return "Move"
	case EventDiscover:
		return "Discover"
	case EventCatastrophe:
		return "Catastrophe"
	case EventStarDestroyed:
		return "StarDestroyed"
	case EventEvaporate:
		return "Evaporate"
	case EventPhaseChange:
		return "PhaseChange"
	case EventWin:
		return "Win"
	case EventDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 during setup)
	Player  int       // acting player (0 or 1), -1 when no player acts
	Type    EventType // event type
	System  int       // system id (-1 if not applicable)
	Piece   string    // piece code (if applicable)
	Details string    // human-readable detail string
}
