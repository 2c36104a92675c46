package game

import "errors"

var (
	// ErrWrongState indicates the game is not in a state that accepts the operation.
	ErrWrongState = errors.New("wrong game state")

	// ErrWrongPhase indicates the turn is not in a phase that accepts the operation.
	ErrWrongPhase = errors.New("wrong turn phase")

	// ErrWrongPlayer indicates the wrong player was named or targeted.
	ErrWrongPlayer = errors.New("wrong player")

	// ErrWrongActionColor indicates the action's color differs from the unlocked color.
	ErrWrongActionColor = errors.New("wrong action color")

	// ErrWrongSystem indicates the action targets a system other than the locked one.
	ErrWrongSystem = errors.New("wrong system")

	// ErrWrongColor indicates a trade into the ship's current color.
	ErrWrongColor = errors.New("wrong trade color")

	// ErrShipTooBig indicates a capture target larger than the acting ship.
	ErrShipTooBig = errors.New("ship too big to capture")

	// ErrSystemsNotAdjacent indicates a move between systems sharing a star size.
	ErrSystemsNotAdjacent = errors.New("systems not adjacent")

	// ErrPieceUnavailable indicates the bank has no copy of the piece left.
	ErrPieceUnavailable = errors.New("piece unavailable")

	// ErrPieceAtCapacity indicates a deposit of a piece the bank already holds all copies of.
	ErrPieceAtCapacity = errors.New("piece already at bank capacity")

	// ErrNoSuchShip indicates the player holds no matching ship in the system.
	ErrNoSuchShip = errors.New("no such ship")

	// ErrBadSystem indicates an unknown or evaporated system id.
	ErrBadSystem = errors.New("no such system")

	// ErrNotCatastropheEnough indicates fewer than four pieces of the color in the system.
	ErrNotCatastropheEnough = errors.New("not enough pieces for a catastrophe")

	// ErrFreeActionUnavailable indicates the color is not accessible to the player there.
	ErrFreeActionUnavailable = errors.New("free action unavailable")

	// ErrNoActionsLeft indicates the turn's action budget is spent.
	ErrNoActionsLeft = errors.New("no actions left")
)

// Category groups error kinds.
type Category int

const (
	CategoryNone Category = iota
	CategoryStateShape
	CategoryActionLegality
	CategoryResource
	CategoryReferential
	CategoryThreshold
)

func (c Category) String() string {
	switch c {
	case CategoryStateShape:
		return "state-shape"
	case CategoryActionLegality:
		return "action-legality"
	case CategoryResource:
		return "resource"
	case CategoryReferential:
		return "referential"
	case CategoryThreshold:
		return "threshold"
	default:
		return "none"
	}
}

var errorKinds = []struct {
	err      error
	name     string
	category Category
}{
	{ErrWrongState, "WrongState", CategoryStateShape},
	{ErrWrongPhase, "WrongPhase", CategoryStateShape},
	{ErrWrongPlayer, "WrongPlayer", CategoryStateShape},
	{ErrWrongActionColor, "WrongActionColor", CategoryActionLegality},
	{ErrWrongSystem, "WrongSystem", CategoryActionLegality},
	{ErrWrongColor, "WrongColor", CategoryActionLegality},
	{ErrShipTooBig, "ShipTooBig", CategoryActionLegality},
	{ErrSystemsNotAdjacent, "SystemsNotAdjacent", CategoryActionLegality},
	{ErrPieceUnavailable, "PieceUnavailable", CategoryResource},
	{ErrPieceAtCapacity, "PieceAtCapacity", CategoryResource},
	{ErrNoSuchShip, "NoSuchShip", CategoryReferential},
	{ErrBadSystem, "BadSystem", CategoryReferential},
	{ErrNotCatastropheEnough, "NotCatastropheEnough", CategoryThreshold},
	{ErrFreeActionUnavailable, "FreeActionUnavailable", CategoryThreshold},
	{ErrNoActionsLeft, "NoActionsLeft", CategoryThreshold},
}

// ErrorName returns the stable name of a rules error ("ShipTooBig"), or ""
// if err is not one of the game's error kinds.
func ErrorName(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// CategoryOf returns the group an error kind belongs to.
func CategoryOf(err error) Category {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.category
		}
	}
	return CategoryNone
}

// ErrorByName is the inverse of ErrorName.
func ErrorByName(name string) (error, bool) {
	for _, k := range errorKinds {
		if k.name == name {
			return k.err, true
		}
	}
	return nil, false
}
