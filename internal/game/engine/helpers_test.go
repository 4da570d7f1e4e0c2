package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/table"
)

var errScriptExhausted = errors.New("script exhausted")

// lowest plays the lowest legal card, the same policy as the less-card bot,
// so engine tests do not depend on the bot package.
type lowest struct {
	games  int
	tricks int
}

func (l *lowest) ResetForGame(*Snapshot)  { l.games++ }
func (l *lowest) ResetForTrick(*Snapshot) { l.tricks++ }

func (l *lowest) Attack(s *Snapshot) (AttackAction, error) {
	valid := s.ValidAttackCards()
	if valid.Empty() {
		return Pass(), nil
	}
	c := minCard(valid, s.TrumpSuit())
	if len(s.Table) > 0 && c.Suit == s.TrumpSuit() {
		return Pass(), nil
	}
	return Attack(c), nil
}

func (l *lowest) Defend(s *Snapshot) (DefendAction, error) {
	valid, err := s.ValidDefendCards()
	if err != nil {
		return DefendAction{}, err
	}
	if valid.Empty() {
		return Take(), nil
	}
	return Beat(minCard(valid, s.TrumpSuit())), nil
}

func minCard(set table.CardSet, trump table.Suit) table.Card {
	var best table.Card
	first := true
	for c := range set.All() {
		if first || table.Less(c, best, trump) {
			best, first = c, false
		}
	}
	return best
}

// scripted replays fixed actions and remembers every snapshot it was shown.
type scripted struct {
	attacks []AttackAction
	defends []DefendAction

	attackViews []Snapshot
	defendViews []Snapshot
	trickViews  []Snapshot
	gameViews   []Snapshot
}

func (s *scripted) ResetForGame(v *Snapshot)  { s.gameViews = append(s.gameViews, *v) }
func (s *scripted) ResetForTrick(v *Snapshot) { s.trickViews = append(s.trickViews, *v) }

func (s *scripted) Attack(v *Snapshot) (AttackAction, error) {
	s.attackViews = append(s.attackViews, *v)
	if len(s.attacks) == 0 {
		return AttackAction{}, errScriptExhausted
	}
	a := s.attacks[0]
	s.attacks = s.attacks[1:]
	return a, nil
}

func (s *scripted) Defend(v *Snapshot) (DefendAction, error) {
	s.defendViews = append(s.defendViews, *v)
	if len(s.defends) == 0 {
		return DefendAction{}, errScriptExhausted
	}
	a := s.defends[0]
	s.defends = s.defends[1:]
	return a, nil
}

func card(s string) table.Card { return table.MustParse(s) }

func newTestGame(t *testing.T, players int, decisions ...Decision) *Game {
	t.Helper()
	g, err := NewGame(players, dealer.Deck36)
	require.NoError(t, err)
	for seat := range players {
		var d Decision = &lowest{}
		if seat < len(decisions) && decisions[seat] != nil {
			d = decisions[seat]
		}
		require.NoError(t, g.SetDecision(seat, d))
	}
	return g
}

// endgame builds a seat-0 snapshot of a 36-card game with an empty deck.
// Cards not named in hands or on the table are in the discard pile.
func endgame(t *testing.T, trump string, hands [][]string, onTable []string, stage Stage, attacker, defender int) *Snapshot {
	t.Helper()
	full, err := dealer.NewDeck(dealer.Deck36)
	require.NoError(t, err)
	population := table.NewCardSet(full.Cards()...)

	var used table.CardSet
	sets := make([]table.CardSet, len(hands))
	sizes := make([]int, len(hands))
	var hidden table.CardSet
	for seat, h := range hands {
		for _, s := range h {
			c := card(s)
			sets[seat].Add(c)
			used.Add(c)
		}
		sizes[seat] = sets[seat].Len()
		if seat != 0 {
			hidden = hidden.Union(sets[seat])
		}
	}
	tableCards := make([]table.Card, 0, len(onTable))
	for _, s := range onTable {
		c := card(s)
		tableCards = append(tableCards, c)
		used.Add(c)
	}
	var attackers uint64
	for seat, h := range sets {
		if seat != defender && !h.Empty() {
			attackers |= 1 << seat
		}
	}
	return &Snapshot{
		Players:    len(hands),
		DeckType:   dealer.Deck36,
		Seat:       0,
		Stage:      stage,
		StartSeat:  attacker,
		AttackSeat: attacker,
		DefendSeat: defender,
		Attackers:  attackers,
		Trump:      card(trump),
		Discard:    population.Without(used),
		Table:      tableCards,
		Hand:       sets[0],
		HandSizes:  sizes,
		Rest:       hidden.Cards(),
	}
}

// requireConserved checks that every card of the deal is in exactly one place.
func requireConserved(t *testing.T, g *Game) {
	t.Helper()
	total := g.DeckSize() + g.Discard().Len() + len(g.TableCards())
	all := g.Discard().Union(table.NewCardSet(g.TableCards()...)).Union(table.NewCardSet(g.deck.Cards()...))
	for seat := range g.Players() {
		total += g.HandSize(seat)
		all = all.Union(g.Hand(seat))
	}
	require.Equal(t, g.deckSize, total, "card count")
	require.Equal(t, g.deckSize, all.Len(), "distinct cards")
}

// recorder keeps every step event, tagged with the seat.
type recorder struct {
	g         *Game
	actions   []string
	results   []StepResult
	defenders []int
}

func (r *recorder) AttackAction(seat int, a AttackAction) { r.add(seat, a.String()) }
func (r *recorder) DefendAction(seat int, a DefendAction) { r.add(seat, a.String()) }
func (r *recorder) AppendAction(seat int, a AttackAction) { r.add(seat, "append:"+a.String()) }

func (r *recorder) TrickEnd(res StepResult) {
	r.results = append(r.results, res)
	r.defenders = append(r.defenders, r.g.DefendSeat())
}

func (r *recorder) add(seat int, action string) {
	r.actions = append(r.actions, fmt.Sprintf("%d %s", seat, action))
}

func resume(t *testing.T, s *Snapshot, decisions ...Decision) (*Game, *recorder) {
	t.Helper()
	g := newTestGame(t, s.Players, decisions...)
	rec := &recorder{g: g}
	g.AddStepListener(rec)
	require.NoError(t, g.InitFromSnapshot(s, 1))
	return g, rec
}

// resumeDealt resumes like resume, then puts the hidden hands back the way
// the test laid them out instead of the shuffled redeal.
func resumeDealt(t *testing.T, s *Snapshot, hands [][]string, decisions ...Decision) (*Game, *recorder) {
	t.Helper()
	g, rec := resume(t, s, decisions...)
	require.Len(t, hands, g.Players())
	for seat, h := range hands {
		var set table.CardSet
		for _, c := range h {
			set.Add(card(c))
		}
		require.Equal(t, g.hands[seat].Len(), set.Len(), "seat %d hand size", seat)
		g.hands[seat] = set
	}
	requireConserved(t, g)
	return g, rec
}
