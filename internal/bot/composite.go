package bot

import "DurakEngine/internal/game/engine"

type (
	AttackFunc func(s *engine.Snapshot) (engine.AttackAction, error)
	DefendFunc func(s *engine.Snapshot) (engine.DefendAction, error)
)

// Composite answers with its own funcs where set and asks Fallback
// otherwise. Resets always go to Fallback.
type Composite struct {
	Fallback engine.Decision
	OnAttack AttackFunc
	OnDefend DefendFunc
}

func (c *Composite) ResetForGame(s *engine.Snapshot)  { c.Fallback.ResetForGame(s) }
func (c *Composite) ResetForTrick(s *engine.Snapshot) { c.Fallback.ResetForTrick(s) }

func (c *Composite) Attack(s *engine.Snapshot) (engine.AttackAction, error) {
	if c.OnAttack == nil {
		return c.Fallback.Attack(s)
	}
	return c.OnAttack(s)
}

func (c *Composite) Defend(s *engine.Snapshot) (engine.DefendAction, error) {
	if c.OnDefend == nil {
		return c.Fallback.Defend(s)
	}
	return c.OnDefend(s)
}
