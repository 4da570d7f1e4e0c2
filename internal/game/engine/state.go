package engine

import (
	"fmt"

	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/table"
)

// Snapshot is a read-only copy of the game as one seat sees it. Nothing in it
// points back into the engine. Other players' cards are not attributed to
// anyone: they are folded, together with the deck, into Rest.
type Snapshot struct {
	Players  int             `json:"players"`
	DeckType dealer.DeckType `json:"deckType"`
	// Seat is the player whose hand is exposed in Hand.
	Seat int `json:"seat"`

	Stage        Stage  `json:"stage"`
	StartSeat    int    `json:"startSeat"`
	AttackSeat   int    `json:"attackSeat"`
	DefendSeat   int    `json:"defendSeat"`
	AppendBudget int    `json:"appendBudget"`
	Attackers    uint64 `json:"attackers"`

	Trump   table.Card    `json:"trump"`
	Discard table.CardSet `json:"discard"`
	Table   []table.Card  `json:"table"`
	Hand    table.CardSet `json:"hand"`

	HandSizes []int `json:"handSizes"`
	DeckSize  int   `json:"deckSize"`
	// Rest holds every card Seat cannot see, in a fixed order that reveals
	// nothing about who holds what. While the deck is not empty the trump is
	// its last element.
	Rest []table.Card `json:"rest"`
}

// Snapshot captures the game from seat's point of view.
func (g *Game) Snapshot(seat int) (Snapshot, error) {
	if seat < 0 || seat >= g.players {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return g.snapshotFor(seat), nil
}

func (g *Game) snapshotFor(seat int) Snapshot {
	sizes := make([]int, g.players)
	var unseen table.CardSet
	for i, h := range g.hands {
		sizes[i] = h.Len()
		if i != seat {
			unseen = unseen.Union(h)
		}
	}
	deck := g.deck.Cards()
	unseen = unseen.Union(table.NewCardSet(deck...))
	if len(deck) > 0 {
		unseen.Remove(g.trump)
	}
	rest := unseen.Cards()
	if len(deck) > 0 {
		rest = append(rest, g.trump)
	}
	return Snapshot{
		Players:      g.players,
		DeckType:     g.deckType,
		Seat:         seat,
		Stage:        g.step.stage,
		StartSeat:    g.step.start,
		AttackSeat:   g.step.attacker,
		DefendSeat:   g.step.defender,
		AppendBudget: g.step.appendBudget,
		Attackers:    g.step.attackers,
		Trump:        g.trump,
		Discard:      g.discard,
		Table:        g.table.Cards(),
		Hand:         g.hands[seat],
		HandSizes:    sizes,
		DeckSize:     len(deck),
		Rest:         rest,
	}
}

func (s *Snapshot) TrumpSuit() table.Suit { return s.Trump.Suit }

// ActiveSeat is the seat whose move it is, or NoPlayer between tricks.
func (s *Snapshot) ActiveSeat() int {
	switch s.Stage {
	case StageAttack, StageAppend:
		return s.AttackSeat
	case StageDefend:
		return s.DefendSeat
	}
	return NoPlayer
}

// RestSize is the number of cards Seat cannot see.
func (s *Snapshot) RestSize() int {
	return len(s.Rest)
}

// Eligible reports whether seat is still allowed to attack this trick.
// Card legality is Game.CanAttack.
func (s *Snapshot) Eligible(seat int) bool {
	return seat >= 0 && seat < 64 && s.Attackers&(1<<seat) != 0
}

// ValidAttackCards are the cards in Hand that may be played as an attack:
// everything on an empty table, otherwise cards matching a rank on the table.
func (s *Snapshot) ValidAttackCards() table.CardSet {
	if len(s.Table) == 0 {
		return s.Hand
	}
	return s.Hand.Filter(func(c table.Card) bool {
		for _, t := range s.Table {
			if t.Rank == c.Rank {
				return true
			}
		}
		return false
	})
}

// ValidDefendCards are the cards in Hand that cover the last table card.
func (s *Snapshot) ValidDefendCards() (table.CardSet, error) {
	if len(s.Table) == 0 {
		return 0, ErrEmptyTable
	}
	last := s.Table[len(s.Table)-1]
	return s.Hand.Filter(func(c table.Card) bool {
		return table.Beats(c, last, s.Trump.Suit)
	}), nil
}

// LegalAttackActions lists every attack the engine accepts. Passing is only
// possible once something is on the table.
func (s *Snapshot) LegalAttackActions() []AttackAction {
	valid := s.ValidAttackCards()
	out := make([]AttackAction, 0, valid.Len()+1)
	for c := range valid.All() {
		out = append(out, Attack(c))
	}
	if len(s.Table) > 0 {
		out = append(out, Pass())
	}
	return out
}

// LegalDefendActions lists every defence the engine accepts; Take is always
// among them.
func (s *Snapshot) LegalDefendActions() ([]DefendAction, error) {
	valid, err := s.ValidDefendCards()
	if err != nil {
		return nil, err
	}
	out := make([]DefendAction, 0, valid.Len()+1)
	for c := range valid.All() {
		out = append(out, Beat(c))
	}
	return append(out, Take()), nil
}

func (g *Game) validateSnapshot(s *Snapshot) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSnapshot}, args...)...)
	}
	if s == nil {
		return bad("nil")
	}
	if s.Players != g.players || s.DeckType != g.deckType {
		return bad("snapshot is for %d players with %v, game has %d with %v", s.Players, s.DeckType, g.players, g.deckType)
	}
	inRange := func(seat int) bool { return seat >= 0 && seat < g.players }
	if !inRange(s.Seat) || !inRange(s.StartSeat) || !inRange(s.DefendSeat) {
		return bad("seat out of range")
	}
	switch s.Stage {
	case StageAttack, StageDefend:
		if !inRange(s.AttackSeat) {
			return bad("attacker %d out of range", s.AttackSeat)
		}
	case StageAppend:
		if s.AttackSeat != NoPlayer && !inRange(s.AttackSeat) {
			return bad("attacker %d out of range", s.AttackSeat)
		}
	default:
		return bad("stage %v cannot be resumed", s.Stage)
	}
	if s.AttackSeat == s.DefendSeat {
		return bad("seat %d attacks itself", s.DefendSeat)
	}
	if s.Stage == StageDefend && len(s.Table) == 0 {
		return bad("defend stage with an empty table")
	}
	if len(s.HandSizes) != g.players {
		return bad("%d hand sizes for %d players", len(s.HandSizes), g.players)
	}
	if s.Stage == StageDefend && s.HandSizes[s.DefendSeat] == 0 {
		return bad("defender %d has no cards", s.DefendSeat)
	}
	if s.HandSizes[s.Seat] != s.Hand.Len() {
		return bad("seat %d holds %d cards, sizes say %d", s.Seat, s.Hand.Len(), s.HandSizes[s.Seat])
	}
	hidden := s.DeckSize
	for seat, n := range s.HandSizes {
		if n < 0 {
			return bad("negative hand size")
		}
		if seat != s.Seat {
			hidden += n
		}
	}
	if hidden != len(s.Rest) {
		return bad("rest pool has %d cards, expected %d", len(s.Rest), hidden)
	}
	if s.DeckSize > 0 && s.Rest[len(s.Rest)-1] != s.Trump {
		return bad("trump %v is not at the bottom of the deck", s.Trump)
	}

	full, err := dealer.NewDeck(g.deckType)
	if err != nil {
		return err
	}
	population := table.NewCardSet(full.Cards()...)
	if !population.Has(s.Trump) {
		return bad("trump %v is not part of %v", s.Trump, g.deckType)
	}
	var seen table.CardSet
	add := func(c table.Card) error {
		if !population.Has(c) {
			return bad("card %v is not part of %v", c, g.deckType)
		}
		if seen.Has(c) {
			return bad("duplicate card %v", c)
		}
		seen.Add(c)
		return nil
	}
	for _, group := range [][]table.Card{s.Hand.Cards(), s.Discard.Cards(), s.Table, s.Rest} {
		for _, c := range group {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	if seen != population {
		return bad("%d of %d cards accounted for", seen.Len(), g.deckSize)
	}
	return nil
}

// RenderState is what a renderer needs to draw the table. It is a copy.
type RenderState struct {
	Stage     Stage
	Attacker  int
	Defender  int
	Trump     table.Card
	DeckSize  int
	Discarded int
	Hands     []table.CardSet
	Table     []table.Card
}

func (r RenderState) TrumpSuit() table.Suit { return r.Trump.Suit }
func (r RenderState) DeckEmpty() bool       { return r.DeckSize == 0 }

func (g *Game) RenderState() RenderState {
	return RenderState{
		Stage:     g.step.stage,
		Attacker:  g.step.attacker,
		Defender:  g.step.defender,
		Trump:     g.trump,
		DeckSize:  g.deck.Len(),
		Discarded: g.discard.Len(),
		Hands:     append([]table.CardSet(nil), g.hands...),
		Table:     g.table.Cards(),
	}
}
