package table

import (
	"encoding/json"
	"iter"
	"math/bits"
	"strings"
)

// CardSet is an unordered collection of unique cards (a hand, the discard
// pile). Iteration is always suit-major then by rank, so seeded games stay
// reproducible. The zero value is an empty set.
type CardSet uint64

const fullSet = CardSet(1)<<(suitCount*rankCount) - 1

// NewCardSet builds a set from cards. Invalid cards are ignored.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s.Add(c)
	}
	return s
}

func (s CardSet) Has(c Card) bool {
	return c.Valid() && s&(1<<c.index()) != 0
}

func (s *CardSet) Add(c Card) {
	if c.Valid() {
		*s |= 1 << c.index()
	}
}

func (s *CardSet) Remove(c Card) {
	if c.Valid() {
		*s &^= 1 << c.index()
	}
}

func (s CardSet) Len() int    { return bits.OnesCount64(uint64(s & fullSet)) }
func (s CardSet) Empty() bool { return s&fullSet == 0 }

func (s CardSet) Union(o CardSet) CardSet     { return s | o }
func (s CardSet) Intersect(o CardSet) CardSet { return s & o }
func (s CardSet) Without(o CardSet) CardSet   { return s &^ o }

// All yields the cards in deterministic order.
func (s CardSet) All() iter.Seq[Card] {
	return func(yield func(Card) bool) {
		rest := uint64(s & fullSet)
		for rest != 0 {
			i := uint(bits.TrailingZeros64(rest))
			if !yield(cardAt(i)) {
				return
			}
			rest &^= 1 << i
		}
	}
}

// Cards returns the members as a fresh slice.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for c := range s.All() {
		out = append(out, c)
	}
	return out
}

func (s CardSet) HasSuit(suit Suit) bool {
	for c := range s.All() {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func (s CardSet) HasRank(rank Rank) bool {
	for c := range s.All() {
		if c.Rank == rank {
			return true
		}
	}
	return false
}

// Filter returns the members for which keep reports true.
func (s CardSet) Filter(keep func(Card) bool) CardSet {
	var out CardSet
	for c := range s.All() {
		if keep(c) {
			out.Add(c)
		}
	}
	return out
}

func (s CardSet) String() string {
	parts := make([]string, 0, s.Len())
	for c := range s.All() {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (s CardSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Cards())
}

func (s *CardSet) UnmarshalJSON(b []byte) error {
	var cards []Card
	if err := json.Unmarshal(b, &cards); err != nil {
		return err
	}
	*s = NewCardSet(cards...)
	return nil
}
