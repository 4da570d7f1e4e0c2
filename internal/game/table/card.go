package table

import (
	"fmt"
	"strings"
)

// Suit 花色. Values are consecutive so callers may iterate Spades..Hearts.
type Suit int

const (
	SuitNone Suit = iota
	Spades
	Clubs
	Diamonds
	Hearts
)

// Suits lists the real suits in deck order.
var Suits = []Suit{Spades, Clubs, Diamonds, Hearts}

// Rank 点数. Values are consecutive so callers may iterate Deuce..Ace.
type Rank int

const (
	RankNone Rank = iota
	Deuce
	Trey
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	suitCount = 4
	rankCount = 13
)

var suitSymbols = map[Suit]string{
	Spades:   "S",
	Clubs:    "C",
	Diamonds: "D",
	Hearts:   "H",
}

var rankSymbols = map[Rank]string{
	Deuce: "2", Trey: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

func (s Suit) String() string {
	if v, ok := suitSymbols[s]; ok {
		return v
	}
	return "?"
}

func (r Rank) String() string {
	if v, ok := rankSymbols[r]; ok {
		return v
	}
	return "?"
}

// Card 一张牌. Two cards are equal iff suit and rank are equal.
type Card struct {
	Suit Suit
	Rank Rank
}

// Valid reports whether c is one of the 52 real cards.
func (c Card) Valid() bool {
	return c.Suit >= Spades && c.Suit <= Hearts && c.Rank >= Deuce && c.Rank <= Ace
}

// String renders the card as rank followed by suit, e.g. "10H" or "AS".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank.String() + c.Suit.String()
}

// ParseCard is the inverse of Card.String. Case-insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card literal %q", s)
	}
	rs, ss := s[:len(s)-1], s[len(s)-1:]
	var c Card
	for suit, sym := range suitSymbols {
		if sym == ss {
			c.Suit = suit
		}
	}
	for rank, sym := range rankSymbols {
		if sym == rs {
			c.Rank = rank
		}
	}
	if !c.Valid() {
		return Card{}, fmt.Errorf("invalid card literal %q", s)
	}
	return c, nil
}

// MustParse panics on a malformed literal. Intended for tables and tests.
func MustParse(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card: suit=%d rank=%d", c.Suit, c.Rank)
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	v, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Less orders cards for heuristics: any non-trump is below any trump,
// otherwise the higher rank wins.
func Less(a, b Card, trump Suit) bool {
	if a.Suit != trump && b.Suit == trump {
		return true
	}
	if a.Suit == trump && b.Suit != trump {
		return false
	}
	return a.Rank < b.Rank
}

// Beats reports whether d covers a: same suit and higher rank, or d is a trump
// while a is not.
func Beats(d, a Card, trump Suit) bool {
	if d.Suit == a.Suit && d.Rank > a.Rank {
		return true
	}
	return d.Suit == trump && a.Suit != trump
}

// index maps a valid card to 0..51, suit-major.
func (c Card) index() uint {
	return uint(c.Suit-Spades)*rankCount + uint(c.Rank-Deuce)
}

func cardAt(i uint) Card {
	return Card{Suit: Spades + Suit(i/rankCount), Rank: Deuce + Rank(i%rankCount)}
}
