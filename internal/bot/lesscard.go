package bot

import (
	"DurakEngine/internal/game/engine"
	"DurakEngine/internal/game/table"
)

// AttackLessCard leads with the lowest valid card. Once the table is not
// empty it keeps its trumps and passes instead.
func AttackLessCard(s *engine.Snapshot) (engine.AttackAction, error) {
	valid := s.ValidAttackCards()
	if valid.Empty() {
		if len(s.Table) == 0 {
			return engine.AttackAction{}, ErrNoLegalAction
		}
		return engine.Pass(), nil
	}
	c := lowest(valid, s.TrumpSuit())
	if len(s.Table) > 0 && c.Suit == s.TrumpSuit() {
		return engine.Pass(), nil
	}
	return engine.Attack(c), nil
}

// DefendLessCard covers with the lowest card that beats, or takes.
func DefendLessCard(s *engine.Snapshot) (engine.DefendAction, error) {
	valid, err := s.ValidDefendCards()
	if err != nil {
		return engine.DefendAction{}, err
	}
	if valid.Empty() {
		return engine.Take(), nil
	}
	return engine.Beat(lowest(valid, s.TrumpSuit())), nil
}

func lowest(cards table.CardSet, trump table.Suit) table.Card {
	var best table.Card
	first := true
	for c := range cards.All() {
		if first || table.Less(c, best, trump) {
			best, first = c, false
		}
	}
	return best
}
