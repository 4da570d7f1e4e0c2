package engine

import (
	"fmt"
	"iter"

	"github.com/charmbracelet/log"

	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/table"
	"DurakEngine/internal/utils"
)

// Game owns every piece of per-deal state: the deck, the hands, the table,
// the discard pile and the trump card. One Game must only be driven by one
// goroutine at a time; separate Games share nothing.
type Game struct {
	players  int
	deckType dealer.DeckType
	deckSize int

	deck    *dealer.Deck
	trump   table.Card
	hands   []table.CardSet
	discard table.CardSet
	table   table.Table

	step  step
	loser int
	ready bool

	decisions      []Decision
	stageListeners []StageListener
	stepListeners  []StepListener
	logger         *log.Logger
}

// NewGame creates an engine for a fixed number of players. Every hand must be
// dealable with at least one card left over for the trump.
func NewGame(players int, deckType dealer.DeckType) (*Game, error) {
	size, err := deckType.Size()
	if err != nil {
		return nil, err
	}
	if players < 2 || players*HandsStartAmount >= size {
		return nil, fmt.Errorf("%w: %d players with %v", ErrInvalidPlayers, players, deckType)
	}
	deck, err := dealer.NewDeck(deckType)
	if err != nil {
		return nil, err
	}
	g := &Game{
		players:   players,
		deckType:  deckType,
		deckSize:  size,
		deck:      deck,
		hands:     make([]table.CardSet, players),
		decisions: make([]Decision, players),
		loser:     Draw,
	}
	g.step.g = g
	return g, nil
}

// SetDecision registers the strategy for a seat. Must be called for every seat
// before Init.
func (g *Game) SetDecision(seat int, d Decision) error {
	if seat < 0 || seat >= g.players {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	g.decisions[seat] = d
	return nil
}

// SetLogger overrides utils.Log for this game.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

func (g *Game) log() *log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return utils.Log
}

// Init deals a fresh game. startHand is a seat or AutoStart, in which case
// the holder of the lowest trump leads (ties go to the lower seat).
func (g *Game) Init(startHand int, seed int64) error {
	if err := g.checkDecisions(); err != nil {
		return err
	}
	if startHand < AutoStart || startHand >= g.players {
		return fmt.Errorf("%w: start hand %d", ErrInvalidSeat, startHand)
	}
	g.clear()
	if err := g.deck.Fill(g.deckType); err != nil {
		return err
	}
	g.deck.Shuffle(seed)
	g.pickUpAll(0)

	g.trump = g.deck.Draw()
	g.deck.PushBack(g.trump)

	if startHand < 0 {
		startHand = g.lowestTrumpSeat()
	}
	g.loser = Draw
	g.ready = true
	g.step.init(startHand)
	g.log().Debug("dealt", "seed", seed, "trump", g.trump, "start", startHand)

	g.resetForGame()
	g.resetForTrick()
	return nil
}

// InitFromSnapshot resumes a game from a snapshot. The trump, the discard
// pile, the table and the snapshot owner's hand are restored as they were.
// The other hands are hidden from the snapshot, so they are redealt, at their
// recorded sizes, from the shuffled pool of unseen cards. The resumed game is
// therefore equivalent in information, not a bit-exact copy.
func (g *Game) InitFromSnapshot(s *Snapshot, seed int64) error {
	if err := g.checkDecisions(); err != nil {
		return err
	}
	if err := g.validateSnapshot(s); err != nil {
		return err
	}
	g.clear()
	g.trump = s.Trump
	g.discard = s.Discard
	for _, c := range s.Table {
		g.table.Push(c)
	}
	g.hands[s.Seat] = s.Hand

	g.deck.Append(s.Rest...)
	if s.DeckSize == 0 {
		g.deck.Shuffle(seed)
	} else {
		g.deck.ShuffleExceptLast(seed)
	}
	for seat := range g.players {
		if seat == s.Seat {
			continue
		}
		for range s.HandSizes[seat] {
			g.hands[seat].Add(g.deck.Draw())
		}
	}

	g.loser = Draw
	g.ready = true
	g.step.restore(s)
	g.log().Debug("resumed", "seed", seed, "seat", s.Seat, "stage", s.Stage, "deck", g.deck.Len())

	g.resetForGame()
	return nil
}

// Run plays tricks until at most one hand holds cards. It returns the loser's
// seat, or Draw when every hand ran out together. An error means a decision
// misbehaved or an invariant broke; the game cannot be continued.
func (g *Game) Run() (int, error) {
	if !g.ready {
		return Draw, ErrNotInitialized
	}
	g.ready = false
	for {
		result, err := g.step.run()
		if err != nil {
			return Draw, err
		}
		switch result {
		case ResultTake:
			g.tableToHand(g.step.defender)
		case ResultBeat:
			g.tableToDiscard()
		default:
			return Draw, fmt.Errorf("%w: trick ended with %v", ErrInvalidStage, result)
		}
		g.pickUpAll(g.step.start)
		g.log().Debug("trick", "result", result, "attacker", g.step.start, "defender", g.step.defender, "deck", g.deck.Len())

		if g.checkGameEnd() {
			break
		}
		next := g.nextNonEmpty(g.step.defender)
		if result == ResultTake {
			next = g.nextNonEmpty(g.step.defender + 1)
		}
		g.step.init(next)
		g.resetForTrick()
	}
	g.log().Debug("game over", "loser", g.loser)
	return g.loser, nil
}

// CanAttack reports whether the current attacker may play c.
func (g *Game) CanAttack(c table.Card) bool {
	seat := g.step.attacker
	if seat < 0 || seat >= g.players || !g.hands[seat].Has(c) {
		return false
	}
	return g.table.Empty() || g.table.HasRank(c.Rank)
}

// CanDefend reports whether the defender may cover the last table card with c.
func (g *Game) CanDefend(c table.Card) (bool, error) {
	seat := g.step.defender
	if seat < 0 || seat >= g.players || !g.hands[seat].Has(c) {
		return false, nil
	}
	last, ok := g.table.Last()
	if !ok {
		return false, ErrEmptyTable
	}
	return table.Beats(c, last, g.trump.Suit), nil
}

func (g *Game) Players() int                { return g.players }
func (g *Game) DeckType() dealer.DeckType   { return g.deckType }
func (g *Game) Loser() int                  { return g.loser }
func (g *Game) Trump() table.Card           { return g.trump }
func (g *Game) DeckSize() int               { return g.deck.Len() }
func (g *Game) Discard() table.CardSet      { return g.discard }
func (g *Game) TableCards() []table.Card    { return g.table.Cards() }
func (g *Game) Stage() Stage                { return g.step.stage }
func (g *Game) Hand(seat int) table.CardSet { return g.hands[seat] }
func (g *Game) HandSize(seat int) int       { return g.hands[seat].Len() }
func (g *Game) AttackSeat() int             { return g.step.attacker }
func (g *Game) DefendSeat() int             { return g.step.defender }

func (g *Game) checkDecisions() error {
	for seat, d := range g.decisions {
		if d == nil {
			return fmt.Errorf("%w %d", ErrNoDecision, seat)
		}
	}
	return nil
}

func (g *Game) clear() {
	g.deck.Clear()
	for i := range g.hands {
		g.hands[i] = 0
	}
	g.discard = 0
	g.table.Clear()
	g.step.stage = StageNone
}

// pickUpAll tops every hand up, one hand at a time, starting at from.
func (g *Game) pickUpAll(from int) {
	for seat := range g.seatsFrom(from) {
		for !g.deck.Empty() && g.hands[seat].Len() < HandsStartAmount {
			g.hands[seat].Add(g.deck.Draw())
		}
	}
}

func (g *Game) lowestTrumpSeat() int {
	best, bestRank := 0, table.Ace+1
	for seat, h := range g.hands {
		for c := range h.All() {
			if c.Suit == g.trump.Suit && c.Rank < bestRank {
				best, bestRank = seat, c.Rank
			}
		}
	}
	return best
}

func (g *Game) checkGameEnd() bool {
	g.loser = Draw
	nonEmpty := 0
	for seat, h := range g.hands {
		if !h.Empty() {
			nonEmpty++
			g.loser = seat
		}
	}
	switch nonEmpty {
	case 0:
		g.loser = Draw
		return true
	case 1:
		return true
	}
	g.loser = Draw
	return false
}

// seatsFrom yields every seat once, starting at from and wrapping around.
func (g *Game) seatsFrom(from int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range g.players {
			if !yield((from + i) % g.players) {
				return
			}
		}
	}
}

// nextNonEmpty returns the first seat holding cards at or after from, or
// NoPlayer.
func (g *Game) nextNonEmpty(from int) int {
	for seat := range g.seatsFrom(from) {
		if !g.hands[seat].Empty() {
			return seat
		}
	}
	return NoPlayer
}

func (g *Game) tableToHand(seat int) {
	for _, c := range g.table.Clear() {
		g.hands[seat].Add(c)
	}
}

func (g *Game) tableToDiscard() {
	for _, c := range g.table.Clear() {
		g.discard.Add(c)
	}
}

func (g *Game) resetForGame() {
	for seat, d := range g.decisions {
		s := g.snapshotFor(seat)
		d.ResetForGame(&s)
	}
}

func (g *Game) resetForTrick() {
	for seat, d := range g.decisions {
		s := g.snapshotFor(seat)
		d.ResetForTrick(&s)
	}
}

func (g *Game) askAttack(seat int) (AttackAction, error) {
	s := g.snapshotFor(seat)
	a, err := g.decisions[seat].Attack(&s)
	if err != nil {
		return a, fmt.Errorf("seat %d attack decision: %w", seat, err)
	}
	return a, nil
}

func (g *Game) askDefend(seat int) (DefendAction, error) {
	s := g.snapshotFor(seat)
	a, err := g.decisions[seat].Defend(&s)
	if err != nil {
		return a, fmt.Errorf("seat %d defend decision: %w", seat, err)
	}
	return a, nil
}
