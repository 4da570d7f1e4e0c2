package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/table"
)

func TestNewGameValidation(t *testing.T) {
	_, err := NewGame(1, dealer.Deck36)
	assert.ErrorIs(t, err, ErrInvalidPlayers)

	_, err = NewGame(6, dealer.Deck36)
	assert.ErrorIs(t, err, ErrInvalidPlayers, "six hands leave no trump in 36 cards")

	_, err = NewGame(5, dealer.Deck36)
	assert.NoError(t, err)

	_, err = NewGame(2, dealer.DeckType(9))
	assert.ErrorIs(t, err, dealer.ErrUnknownDeckType)
}

func TestInitDealsHands(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Init(0, 42))

	assert.Equal(t, 6, g.HandSize(0))
	assert.Equal(t, 6, g.HandSize(1))
	assert.Equal(t, 24, g.DeckSize())

	bottom, ok := g.deck.Back()
	require.True(t, ok)
	assert.Equal(t, g.Trump(), bottom, "trump goes back under the deck")
	assert.False(t, g.Hand(0).Has(g.Trump()))
	assert.False(t, g.Hand(1).Has(g.Trump()))

	assert.Equal(t, StageAttack, g.Stage())
	assert.Equal(t, 0, g.AttackSeat())
	assert.Equal(t, 1, g.DefendSeat())

	s, err := g.Snapshot(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b01), s.Attackers)
	assert.True(t, s.Eligible(0))
	assert.False(t, s.Eligible(1))
	requireConserved(t, g)
}

func TestInitAutoStartPicksLowestTrump(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := newTestGame(t, 3)
		require.NoError(t, g.Init(AutoStart, seed))

		trump := g.Trump().Suit
		want, wantRank := 0, table.Ace+1
		for seat := range 3 {
			for c := range g.Hand(seat).All() {
				if c.Suit == trump && c.Rank < wantRank {
					want, wantRank = seat, c.Rank
				}
			}
		}
		assert.Equal(t, want, g.AttackSeat(), "seed %d", seed)
	}
}

func TestInitPreconditions(t *testing.T) {
	g, err := NewGame(2, dealer.Deck36)
	require.NoError(t, err)
	require.NoError(t, g.SetDecision(0, &lowest{}))
	assert.ErrorIs(t, g.Init(0, 1), ErrNoDecision)

	assert.ErrorIs(t, g.SetDecision(2, &lowest{}), ErrInvalidSeat)
	require.NoError(t, g.SetDecision(1, &lowest{}))
	assert.ErrorIs(t, g.Init(2, 1), ErrInvalidSeat)
	assert.ErrorIs(t, g.Init(-5, 1), ErrInvalidSeat)

	_, err = g.Run()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInitResetsDecisions(t *testing.T) {
	a, b := &lowest{}, &lowest{}
	g := newTestGame(t, 2, a, b)
	require.NoError(t, g.Init(0, 3))
	assert.Equal(t, 1, a.games)
	assert.Equal(t, 1, b.tricks)

	_, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, a.games)
	assert.Greater(t, a.tricks, 1)
	assert.Equal(t, a.tricks, b.tricks)
}

func TestRunConservesCardsAndTerminates(t *testing.T) {
	for players := 2; players <= 4; players++ {
		for seed := int64(0); seed < 30; seed++ {
			g := newTestGame(t, players)
			tricks := 0
			g.AddStageListener(StageListenerFunc(func(_, next Stage) {
				requireConserved(t, g)
				if next == StageNone {
					tricks++
				}
			}))
			require.NoError(t, g.Init(AutoStart, seed))

			loser, err := g.Run()
			require.NoError(t, err)
			assert.Less(t, tricks, 200)

			nonEmpty := 0
			for seat := range players {
				if g.HandSize(seat) > 0 {
					nonEmpty++
					assert.Equal(t, seat, loser)
				}
			}
			assert.LessOrEqual(t, nonEmpty, 1)
			if nonEmpty == 0 {
				assert.Equal(t, Draw, loser)
			}
			assert.Equal(t, loser, g.Loser())
			assert.Zero(t, g.DeckSize())
			requireConserved(t, g)
		}
	}
}

type tableRecorder struct {
	g      *Game
	states [][]table.Card
}

func (r *tableRecorder) AttackAction(int, AttackAction) { r.record() }
func (r *tableRecorder) DefendAction(int, DefendAction) { r.record() }
func (r *tableRecorder) AppendAction(int, AttackAction) { r.record() }
func (r *tableRecorder) TrickEnd(StepResult)            { r.record() }
func (r *tableRecorder) record()                        { r.states = append(r.states, r.g.TableCards()) }

func TestRunIsDeterministic(t *testing.T) {
	play := func(seed int64) (int, [][]table.Card) {
		g := newTestGame(t, 2)
		rec := &tableRecorder{g: g}
		g.AddStepListener(rec)
		require.NoError(t, g.Init(0, seed))
		loser, err := g.Run()
		require.NoError(t, err)
		return loser, rec.states
	}
	for _, seed := range []int64{42, 7, 1234} {
		l1, s1 := play(seed)
		l2, s2 := play(seed)
		assert.Equal(t, l1, l2)
		assert.Equal(t, s1, s2)
		assert.NotEmpty(t, s1)
	}
}

// capture wraps a decision and keeps the first snapshot matching when,
// together with the real hands at that moment.
type capture struct {
	Decision
	g     *Game
	when  func(*Snapshot) bool
	snap  *Snapshot
	hands []table.CardSet
}

func (c *capture) grab(s *Snapshot) {
	if c.snap == nil && c.when(s) {
		cp := *s
		c.snap = &cp
		c.hands = make([]table.CardSet, c.g.Players())
		for seat := range c.hands {
			c.hands[seat] = c.g.Hand(seat)
		}
	}
}

func (c *capture) Attack(s *Snapshot) (AttackAction, error) {
	c.grab(s)
	return c.Decision.Attack(s)
}

func (c *capture) Defend(s *Snapshot) (DefendAction, error) {
	c.grab(s)
	return c.Decision.Defend(s)
}

func TestResumeEquivalence(t *testing.T) {
	// With two players and an empty deck the only hidden cards are the
	// opponent's hand, so a resumed game must replay exactly.
	resumed := 0
	for seed := int64(0); seed < 40; seed++ {
		g := newTestGame(t, 2)
		caps := make([]*capture, 2)
		for seat := range caps {
			caps[seat] = &capture{
				Decision: &lowest{},
				g:        g,
				when:     func(s *Snapshot) bool { return s.DeckSize == 0 && len(s.Table) > 0 },
			}
			require.NoError(t, g.SetDecision(seat, caps[seat]))
		}
		require.NoError(t, g.Init(0, seed))
		want, err := g.Run()
		require.NoError(t, err)

		c := caps[0]
		if c.snap == nil {
			c = caps[1]
		}
		if c.snap == nil {
			continue
		}
		resumed++

		g2 := newTestGame(t, 2)
		require.NoError(t, g2.InitFromSnapshot(c.snap, seed+100))
		for seat := range 2 {
			assert.Equal(t, c.hands[seat], g2.Hand(seat), "seed %d seat %d", seed, seat)
		}
		assert.Equal(t, c.snap.Stage, g2.Stage())
		requireConserved(t, g2)

		got, err := g2.Run()
		require.NoError(t, err)
		assert.Equal(t, want, got, "seed %d", seed)
	}
	assert.Positive(t, resumed)
}

func TestResumeRedealsHiddenHands(t *testing.T) {
	g := newTestGame(t, 3)
	require.NoError(t, g.Init(0, 42))
	// Play the opening attack so the table is not empty.
	d := g.decisions[0]
	s0 := g.snapshotFor(0)
	a, err := d.Attack(&s0)
	require.NoError(t, err)
	require.NoError(t, g.step.playAttack(0, a))
	g.step.resetAttackers()
	g.step.changeStage(StageDefend)

	snap, err := g.Snapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ActiveSeat())
	assert.Equal(t, g.Trump(), snap.Rest[len(snap.Rest)-1])
	assert.Equal(t, snap.RestSize(), 36-snap.Hand.Len()-len(snap.Table)-snap.Discard.Len())

	unseen := table.NewCardSet(g.deck.Cards()...).Union(g.Hand(0)).Union(g.Hand(2))

	g2 := newTestGame(t, 3)
	require.NoError(t, g2.InitFromSnapshot(&snap, 99))
	assert.Equal(t, g.Hand(1), g2.Hand(1))
	assert.Equal(t, g.HandSize(0), g2.HandSize(0))
	assert.Equal(t, g.HandSize(2), g2.HandSize(2))
	assert.Equal(t, g.DeckSize(), g2.DeckSize())
	assert.Equal(t, g.TableCards(), g2.TableCards())
	assert.Equal(t, StageDefend, g2.Stage())
	assert.Equal(t, 0, g2.AttackSeat())
	assert.Equal(t, 1, g2.DefendSeat())

	bottom, _ := g2.deck.Back()
	assert.Equal(t, g.Trump(), bottom)
	redealt := table.NewCardSet(g2.deck.Cards()...).Union(g2.Hand(0)).Union(g2.Hand(2))
	assert.Equal(t, unseen, redealt)
	requireConserved(t, g2)

	_, err = g2.Run()
	assert.NoError(t, err)
}

func TestInitFromSnapshotRejectsInvalid(t *testing.T) {
	g := newTestGame(t, 2)
	valid := func() *Snapshot {
		return endgame(t, "9H", [][]string{{"6S"}, {"7S"}}, nil, StageAttack, 0, 1)
	}
	require.NoError(t, g.InitFromSnapshot(valid(), 1))

	cases := map[string]func(s *Snapshot){
		"nil stage":      func(s *Snapshot) { s.Stage = StageNone },
		"wrong players":  func(s *Snapshot) { s.Players = 3 },
		"bad seat":       func(s *Snapshot) { s.Seat = 5 },
		"size mismatch":  func(s *Snapshot) { s.HandSizes[1] = 2 },
		"duplicate card": func(s *Snapshot) { s.Discard.Add(card("6S")) },
		"missing card":   func(s *Snapshot) { s.Discard.Remove(card("AS")) },
		"foreign card":   func(s *Snapshot) { s.Discard.Add(card("2C")) },
		"empty defend":   func(s *Snapshot) { s.Stage = StageDefend },
		"trump not last": func(s *Snapshot) { s.DeckSize = 1; s.HandSizes[1] = 0 },
		"self attack":    func(s *Snapshot) { s.AttackSeat = 1 },
		"empty defender": func(s *Snapshot) {
			// 6S is on the table and the defender's 7S went to the discard.
			s.Stage = StageDefend
			s.Table = []table.Card{card("6S")}
			s.Hand.Remove(card("6S"))
			s.HandSizes = []int{0, 0}
			s.Discard.Add(card("7S"))
			s.Rest = nil
		},
	}
	for name, mutate := range cases {
		s := valid()
		mutate(s)
		err := g.InitFromSnapshot(s, 1)
		assert.ErrorIs(t, err, ErrInvalidSnapshot, name)
	}
	assert.ErrorIs(t, g.InitFromSnapshot(nil, 1), ErrInvalidSnapshot)
}

func TestLegalityPredicates(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Init(0, 42))

	attackerCard := g.Hand(0).Cards()[0]
	defenderCard := g.Hand(1).Cards()[0]
	assert.True(t, g.CanAttack(attackerCard))
	assert.False(t, g.CanAttack(defenderCard))

	_, err := g.CanDefend(defenderCard)
	assert.ErrorIs(t, err, ErrEmptyTable)
	ok, err := g.CanDefend(attackerCard)
	assert.NoError(t, err, "cards outside the defender's hand are rejected before the table is looked at")
	assert.False(t, ok)
}

func TestDecisionErrorAbortsRun(t *testing.T) {
	boom := errors.New("boom")
	g := newTestGame(t, 2, &failing{err: boom})
	require.NoError(t, g.Init(0, 1))
	_, err := g.Run()
	assert.ErrorIs(t, err, boom)

	_, err = g.Run()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

type failing struct {
	lowest
	err error
}

func (f *failing) Attack(*Snapshot) (AttackAction, error) { return AttackAction{}, f.err }
