package bot

import (
	"math/rand"

	"DurakEngine/internal/game/engine"
)

// Random picks uniformly among the legal actions. The seed is fixed at
// construction so a game replays identically.
type Random struct {
	Base
	rnd *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

func (r *Random) Attack(s *engine.Snapshot) (engine.AttackAction, error) {
	actions := s.LegalAttackActions()
	if len(actions) == 0 {
		// 空桌且手牌为空，引擎不会这样调用
		return engine.AttackAction{}, ErrNoLegalAction
	}
	return actions[r.rnd.Intn(len(actions))], nil
}

func (r *Random) Defend(s *engine.Snapshot) (engine.DefendAction, error) {
	actions, err := s.LegalDefendActions()
	if err != nil {
		return engine.DefendAction{}, err
	}
	return actions[r.rnd.Intn(len(actions))], nil
}
