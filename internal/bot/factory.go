package bot

import (
	"errors"
	"fmt"
	"sort"

	"DurakEngine/internal/game/engine"
)

var (
	ErrUnknownBot    = errors.New("unknown bot")
	ErrNoLegalAction = errors.New("no legal action")
)

const (
	NameRandom         = "random"
	NameAttackLessCard = "attack-less-card"
	NameDefendLessCard = "defend-less-card"
	NameLessCard       = "less-card"
)

// Factory builds a fresh decision. Decisions keep per-game state, so every
// Game gets its own.
type Factory func(seed int64) engine.Decision

var registry = map[string]Factory{
	NameRandom: func(seed int64) engine.Decision {
		return NewRandom(seed)
	},
	NameAttackLessCard: func(seed int64) engine.Decision {
		return &Composite{Fallback: NewRandom(seed), OnAttack: AttackLessCard}
	},
	NameDefendLessCard: func(seed int64) engine.Decision {
		return &Composite{Fallback: NewRandom(seed), OnDefend: DefendLessCard}
	},
	NameLessCard: func(seed int64) engine.Decision {
		return &Composite{Fallback: NewRandom(seed), OnAttack: AttackLessCard, OnDefend: DefendLessCard}
	},
}

// New builds the named bot.
func New(name string, seed int64) (engine.Decision, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(seed), nil
}

func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
	return f, nil
}

// Names lists the registered bots in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
