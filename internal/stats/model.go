package stats

import (
	"fmt"
	"strings"
)

// GameStatistic 统计一组对局的结果，First/Second 指两种策略而不是座位
type GameStatistic struct {
	FirstWin  int `json:"firstWin"`
	SecondWin int `json:"secondWin"`
	Draw      int `json:"draw"`
}

func (g GameStatistic) Games() int { return g.FirstWin + g.SecondWin + g.Draw }

func (g *GameStatistic) add(o GameStatistic) {
	g.FirstWin += o.FirstWin
	g.SecondWin += o.SecondWin
	g.Draw += o.Draw
}

// FullStatistic splits results by which strategy led the first trick.
type FullStatistic struct {
	First       string        `json:"first"`
	Second      string        `json:"second"`
	FirstStart  GameStatistic `json:"firstStart"`
	SecondStart GameStatistic `json:"secondStart"`
}

func NewFullStatistic(first, second string) FullStatistic {
	return FullStatistic{First: first, Second: second}
}

// Record books one finished game. firstSeat is where the first strategy sat,
// startSeat who led, loser the losing seat or a negative value for a draw.
func (f *FullStatistic) Record(firstSeat, startSeat, loser int) {
	part := &f.SecondStart
	if startSeat == firstSeat {
		part = &f.FirstStart
	}
	switch {
	case loser < 0:
		part.Draw++
	case loser == firstSeat:
		part.SecondWin++
	default:
		part.FirstWin++
	}
}

// Merge adds o's counts. Names are taken from o when f has none.
func (f *FullStatistic) Merge(o FullStatistic) {
	if f.First == "" && f.Second == "" {
		f.First, f.Second = o.First, o.Second
	}
	f.FirstStart.add(o.FirstStart)
	f.SecondStart.add(o.SecondStart)
}

func (f FullStatistic) FirstWin() int  { return f.FirstStart.FirstWin + f.SecondStart.FirstWin }
func (f FullStatistic) SecondWin() int { return f.FirstStart.SecondWin + f.SecondStart.SecondWin }
func (f FullStatistic) Draw() int      { return f.FirstStart.Draw + f.SecondStart.Draw }
func (f FullStatistic) Games() int     { return f.FirstStart.Games() + f.SecondStart.Games() }

// StarterWin counts games won by whichever strategy led.
func (f FullStatistic) StarterWin() int {
	return f.FirstStart.FirstWin + f.SecondStart.SecondWin
}

func (f FullStatistic) NonStarterWin() int {
	return f.FirstStart.SecondWin + f.SecondStart.FirstWin
}

// String renders the report. A strategy playing itself gets the starter
// breakdown instead of the per-strategy one.
func (f FullStatistic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", f.First, f.Second)
	b.WriteString("Full statistic:\n")
	line(&b, "first decision win", f.FirstWin(), f.Games())
	line(&b, "second decision win", f.SecondWin(), f.Games())
	line(&b, "draw", f.Draw(), f.Games())
	if f.First != f.Second {
		for _, part := range []struct {
			title string
			stat  GameStatistic
		}{
			{"First decision start statistic:", f.FirstStart},
			{"Second decision start statistic:", f.SecondStart},
		} {
			b.WriteString(part.title + "\n")
			line(&b, "first decision win", part.stat.FirstWin, part.stat.Games())
			line(&b, "second decision win", part.stat.SecondWin, part.stat.Games())
			line(&b, "draw", part.stat.Draw, part.stat.Games())
		}
		return b.String()
	}
	b.WriteString("With start statistic:\n")
	line(&b, "start decision win", f.StarterWin(), f.Games())
	line(&b, "not start decision win", f.NonStarterWin(), f.Games())
	line(&b, "draw", f.Draw(), f.Games())
	return b.String()
}

func line(b *strings.Builder, label string, n, total int) {
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(n) / float64(total)
	}
	fmt.Fprintf(b, "  %-24s%7d (%.2f%%)\n", label+":", n, pct)
}
