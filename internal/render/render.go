// Package render draws the table for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"DurakEngine/internal/game/engine"
	"DurakEngine/internal/game/table"
)

var (
	redSuit   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	blackSuit = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	trumpCard = lipgloss.NewStyle().Underline(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("22")).Padding(0, 1)
	seatStyle   = lipgloss.NewStyle().Width(12)
	activeStyle = seatStyle.Foreground(lipgloss.Color("214")).Bold(true)
	tableStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("22")).Padding(0, 1)
)

// Card renders one card, coloured by suit.
func Card(c table.Card, trump table.Suit) string {
	style := blackSuit
	if c.Suit == table.Diamonds || c.Suit == table.Hearts {
		style = redSuit
	}
	if c.Suit == trump {
		style = style.Inherit(trumpCard)
	}
	return style.Render(c.String())
}

func cards(cs []table.Card, trump table.Suit) string {
	if len(cs) == 0 {
		return "-"
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = Card(c, trump)
	}
	return strings.Join(out, " ")
}

// Render draws one frame: a header, every hand and the table.
func Render(s engine.RenderState) string {
	deck := fmt.Sprintf("deck %d", s.DeckSize)
	if s.DeckEmpty() {
		deck = "deck empty"
	}
	header := headerStyle.Render(fmt.Sprintf("%s | trump %s | %s | discard %d", s.Stage, s.Trump, deck, s.Discarded))

	active := engine.NoPlayer
	switch s.Stage {
	case engine.StageAttack, engine.StageAppend:
		active = s.Attacker
	case engine.StageDefend:
		active = s.Defender
	}

	rows := []string{header}
	for seat, h := range s.Hands {
		label := fmt.Sprintf("seat %d", seat)
		switch seat {
		case s.Attacker:
			label += " ⚔"
		case s.Defender:
			label += " ⛨"
		}
		style := seatStyle
		if seat == active {
			style = activeStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), cards(h.Cards(), s.TrumpSuit())))
	}
	rows = append(rows, tableStyle.Render(cards(s.Table, s.TrumpSuit())))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Source is anything that can describe the table, usually *engine.Game.
type Source interface {
	RenderState() engine.RenderState
}

// StageRenderer writes a frame on every stage change except the end of a
// trick.
type StageRenderer struct {
	W   io.Writer
	Src Source
}

func (r StageRenderer) StageChanged(_, next engine.Stage) {
	if next == engine.StageNone {
		return
	}
	fmt.Fprintln(r.W, Render(r.Src.RenderState()))
}
