package engine

import (
	"errors"
	"fmt"
)

var errInvariant = errors.New("engine invariant violated")

// step runs a single trick: attack, defend, and after a take, append.
// It keeps no state across tricks beyond what init or restore hands it.
type step struct {
	g *Game

	start    int
	attacker int
	defender int

	// appendBudget is how many more cards may be added after a take.
	appendBudget int
	// attackers has bit i set while seat i may still attack this trick.
	attackers uint64

	stage Stage
}

func (s *step) init(start int) {
	s.start = start
	s.attacker = start
	s.defender = s.g.nextNonEmpty(start + 1)
	s.appendBudget = 0
	s.resetAttackers()
	s.changeStage(StageAttack)
}

func (s *step) restore(snap *Snapshot) {
	s.start = snap.StartSeat
	s.attacker = snap.AttackSeat
	s.defender = snap.DefendSeat
	s.appendBudget = snap.AppendBudget
	s.attackers = snap.Attackers
	s.changeStage(snap.Stage)
}

func (s *step) run() (StepResult, error) {
	result := ResultNone
	for result == ResultNone {
		var err error
		if result, err = s.next(); err != nil {
			return ResultNone, err
		}
	}
	s.changeStage(StageNone)
	s.g.fireTrickEnd(result)
	return result, nil
}

func (s *step) next() (StepResult, error) {
	switch s.stage {
	case StageAttack:
		return s.attack()
	case StageDefend:
		return s.defend()
	case StageAppend:
		return s.appendStep()
	}
	return ResultNone, fmt.Errorf("%w: %v", ErrInvalidStage, s.stage)
}

func (s *step) activeSeat() int {
	switch s.stage {
	case StageAttack, StageAppend:
		return s.attacker
	case StageDefend:
		return s.defender
	}
	return NoPlayer
}

func (s *step) attack() (StepResult, error) {
	seat := s.attacker
	a, err := s.g.askAttack(seat)
	if err != nil {
		return ResultNone, err
	}
	result := ResultNone
	switch a.Type {
	case AttackCard:
		if err := s.playAttack(seat, a); err != nil {
			return ResultNone, err
		}
		s.resetAttackers()
		s.changeStage(StageDefend)
	case AttackPass:
		if s.g.table.Empty() {
			return ResultNone, s.illegal(seat, a.String())
		}
		s.attackers &^= 1 << seat
		next := s.nextAttacker()
		if next == NoPlayer {
			result = ResultBeat
		} else {
			s.attacker = next
		}
	default:
		return ResultNone, s.illegal(seat, a.String())
	}
	s.g.fireAttack(seat, a)
	return result, nil
}

func (s *step) defend() (StepResult, error) {
	seat := s.defender
	if s.g.hands[seat].Empty() {
		return ResultNone, fmt.Errorf("%w: defender %d has no cards", errInvariant, seat)
	}
	a, err := s.g.askDefend(seat)
	if err != nil {
		return ResultNone, err
	}
	result := ResultNone
	switch a.Type {
	case DefendBeat:
		ok, err := s.g.CanDefend(a.Card)
		if err != nil {
			return ResultNone, err
		}
		if !ok {
			return ResultNone, s.illegal(seat, a.String())
		}
		s.g.hands[seat].Remove(a.Card)
		s.g.table.Push(a.Card)
		if s.g.hands[seat].Empty() {
			result = ResultBeat
		} else {
			s.changeStage(StageAttack)
		}
	case DefendTake:
		s.appendBudget = s.g.hands[seat].Len() - 1
		s.changeStage(StageAppend)
	default:
		return ResultNone, s.illegal(seat, a.String())
	}
	s.g.fireDefend(seat, a)
	return result, nil
}

// appendStep runs the window after a take in which attackers may still add cards.
func (s *step) appendStep() (StepResult, error) {
	if s.appendBudget <= 0 || s.attacker == NoPlayer {
		return ResultTake, nil
	}
	seat := s.attacker
	a, err := s.g.askAttack(seat)
	if err != nil {
		return ResultNone, err
	}
	switch a.Type {
	case AttackCard:
		if err := s.playAttack(seat, a); err != nil {
			return ResultNone, err
		}
		s.appendBudget--
		s.resetAttackers()
	case AttackPass:
		s.attackers &^= 1 << seat
		s.attacker = s.nextAttacker()
	default:
		return ResultNone, s.illegal(seat, a.String())
	}
	s.g.fireAppend(seat, a)
	return ResultNone, nil
}

func (s *step) playAttack(seat int, a AttackAction) error {
	if !s.g.CanAttack(a.Card) {
		return s.illegal(seat, a.String())
	}
	s.g.hands[seat].Remove(a.Card)
	s.g.table.Push(a.Card)
	return nil
}

// resetAttackers recomputes eligibility from scratch: a seat may attack if it
// holds cards and is not defending.
func (s *step) resetAttackers() {
	s.attackers = 0
	for seat, h := range s.g.hands {
		if seat != s.defender && !h.Empty() {
			s.attackers |= 1 << seat
		}
	}
}

// nextAttacker searches round-robin from the current attacker.
func (s *step) nextAttacker() int {
	for seat := range s.g.seatsFrom(s.attacker) {
		if s.attackers&(1<<seat) != 0 {
			return seat
		}
	}
	return NoPlayer
}

func (s *step) changeStage(next Stage) {
	old := s.stage
	s.stage = next
	s.g.fireStageChanged(old, next)
}

func (s *step) illegal(seat int, action string) error {
	return &ActionError{Stage: s.stage, Seat: seat, Action: action}
}
