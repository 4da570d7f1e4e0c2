package engine

import (
	"errors"
	"fmt"

	"DurakEngine/internal/game/table"
)

// HandsStartAmount is the hand size every player is topped up to.
const HandsStartAmount = 6

const (
	// Draw is returned by Run when every hand empties at once.
	Draw = -1
	// AutoStart lets Init pick the holder of the lowest trump.
	AutoStart = -1
	// NoPlayer marks an unsuccessful round-robin search.
	NoPlayer = -1
)

var (
	ErrIllegalAction   = errors.New("illegal action")
	ErrEmptyTable      = errors.New("cannot defend against an empty table")
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrInvalidPlayers  = errors.New("invalid player count")
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrNoDecision      = errors.New("no decision registered for seat")
	ErrNotInitialized  = errors.New("game not initialized")
)

// Stage of the trick state machine.
type Stage int

const (
	StageNone Stage = iota
	StageAttack
	StageDefend
	StageAppend
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageAttack:
		return "attack"
	case StageDefend:
		return "defend"
	case StageAppend:
		return "append"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

type AttackActionType int

const (
	// AttackCard plays a card: any card on an empty table, otherwise one whose
	// rank is already on the table.
	AttackCard AttackActionType = iota
	// AttackPass ends this player's attack for the trick.
	AttackPass
)

type DefendActionType int

const (
	// DefendBeat covers the last table card.
	DefendBeat DefendActionType = iota
	// DefendTake gives up and collects the table.
	DefendTake
)

type AttackAction struct {
	Type AttackActionType
	Card table.Card
}

type DefendAction struct {
	Type DefendActionType
	Card table.Card
}

func Attack(c table.Card) AttackAction { return AttackAction{Type: AttackCard, Card: c} }
func Pass() AttackAction               { return AttackAction{Type: AttackPass} }
func Beat(c table.Card) DefendAction   { return DefendAction{Type: DefendBeat, Card: c} }
func Take() DefendAction               { return DefendAction{Type: DefendTake} }

func (a AttackAction) String() string {
	if a.Type == AttackPass {
		return "pass"
	}
	return "attack " + a.Card.String()
}

func (a DefendAction) String() string {
	if a.Type == DefendTake {
		return "take"
	}
	return "beat " + a.Card.String()
}

// StepResult is how a trick ended.
type StepResult int

const (
	ResultNone StepResult = iota
	// ResultBeat: every attack was covered, the table goes to the discard pile.
	ResultBeat
	// ResultTake: the defender collects the table.
	ResultTake
)

func (r StepResult) String() string {
	switch r {
	case ResultBeat:
		return "beat"
	case ResultTake:
		return "take"
	default:
		return "none"
	}
}

// ActionError reports an action a decision returned that the engine could not
// validate. It wraps ErrIllegalAction.
type ActionError struct {
	Stage  Stage
	Seat   int
	Action string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("seat %d: %s during %s stage: %v", e.Seat, e.Action, e.Stage, ErrIllegalAction)
}

func (e *ActionError) Unwrap() error { return ErrIllegalAction }
