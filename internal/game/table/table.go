package table

// Table 桌面上本轮已出的牌. Insertion order matters: the last card is the one
// the defender has to cover.
type Table struct {
	cards []Card
}

// NewTable returns a table holding a copy of cards.
func NewTable(cards ...Card) *Table {
	return &Table{cards: append([]Card(nil), cards...)}
}

func (t *Table) Push(c Card) {
	t.cards = append(t.cards, c)
}

// Last returns the most recently played card.
func (t *Table) Last() (Card, bool) {
	if len(t.cards) == 0 {
		return Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

func (t *Table) Len() int    { return len(t.cards) }
func (t *Table) Empty() bool { return len(t.cards) == 0 }

// Cards returns a copy in play order.
func (t *Table) Cards() []Card {
	return append([]Card(nil), t.cards...)
}

func (t *Table) HasRank(r Rank) bool {
	for _, c := range t.cards {
		if c.Rank == r {
			return true
		}
	}
	return false
}

// Set returns the cards on the table as a set.
func (t *Table) Set() CardSet {
	return NewCardSet(t.cards...)
}

// Clear empties the table and returns what was on it.
func (t *Table) Clear() []Card {
	out := t.cards
	t.cards = nil
	return out
}
