package dealer

import (
	"errors"
	"fmt"
	"math/rand"

	"DurakEngine/internal/game/table"
)

var ErrUnknownDeckType = errors.New("unknown deck type")

// DeckType 牌组规格
type DeckType int

const (
	Deck32 DeckType = iota
	Deck36
	Deck52
)

// DeckTypeOf maps a card count to its variant.
func DeckTypeOf(size int) (DeckType, error) {
	switch size {
	case 32:
		return Deck32, nil
	case 36:
		return Deck36, nil
	case 52:
		return Deck52, nil
	}
	return 0, fmt.Errorf("%w: %d cards", ErrUnknownDeckType, size)
}

// Size returns the number of cards in a full deck of this type.
func (t DeckType) Size() (int, error) {
	switch t {
	case Deck32:
		return 32, nil
	case Deck36:
		return 36, nil
	case Deck52:
		return 52, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownDeckType, int(t))
}

// LowestRank is the smallest rank included in the variant.
func (t DeckType) LowestRank() (table.Rank, error) {
	switch t {
	case Deck32:
		return table.Seven, nil
	case Deck36:
		return table.Six, nil
	case Deck52:
		return table.Deuce, nil
	}
	return table.RankNone, fmt.Errorf("%w: %d", ErrUnknownDeckType, int(t))
}

func (t DeckType) String() string {
	n, err := t.Size()
	if err != nil {
		return fmt.Sprintf("deck(%d)", int(t))
	}
	return fmt.Sprintf("deck%d", n)
}

// Deck 牌堆: draw from the front, the trump card lives at the back.
type Deck struct {
	cards []table.Card
}

// NewDeck returns a full ordered deck of the given type.
func NewDeck(t DeckType) (*Deck, error) {
	d := &Deck{}
	if err := d.Fill(t); err != nil {
		return nil, err
	}
	return d, nil
}

// Fill replaces the contents with a full ordered deck.
func (d *Deck) Fill(t DeckType) error {
	low, err := t.LowestRank()
	if err != nil {
		return err
	}
	size, _ := t.Size()
	d.cards = make([]table.Card, 0, size)
	for _, s := range table.Suits {
		for r := low; r <= table.Ace; r++ {
			d.cards = append(d.cards, table.Card{Suit: s, Rank: r})
		}
	}
	return nil
}

// Shuffle permutes the whole deck. The same seed always yields the same order.
func (d *Deck) Shuffle(seed int64) {
	shuffle(d.cards, seed)
}

// ShuffleExceptLast permutes everything but the bottom card, keeping an
// already revealed trump in place.
func (d *Deck) ShuffleExceptLast(seed int64) {
	if len(d.cards) < 2 {
		return
	}
	shuffle(d.cards[:len(d.cards)-1], seed)
}

func shuffle(cards []table.Card, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw pops the front card. Drawing from an empty deck is a caller bug.
func (d *Deck) Draw() table.Card {
	if len(d.cards) == 0 {
		panic("dealer: draw from empty deck")
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

func (d *Deck) PushBack(c table.Card) {
	d.cards = append(d.cards, c)
}

func (d *Deck) Append(cards ...table.Card) {
	d.cards = append(d.cards, cards...)
}

// Back returns the bottom card.
func (d *Deck) Back() (table.Card, bool) {
	if len(d.cards) == 0 {
		return table.Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

func (d *Deck) Len() int    { return len(d.cards) }
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// Cards returns a copy, front first.
func (d *Deck) Cards() []table.Card {
	return append([]table.Card(nil), d.cards...)
}

func (d *Deck) Clear() {
	d.cards = d.cards[:0]
}

func (d *Deck) String() string {
	return fmt.Sprint(d.cards)
}
