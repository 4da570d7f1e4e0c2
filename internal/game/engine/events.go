package engine

import (
	"github.com/charmbracelet/log"
)

// StageListener is told about every stage change, including the final move to
// StageNone at the end of a trick.
type StageListener interface {
	StageChanged(old, next Stage)
}

// StageListenerFunc adapts a function to StageListener.
type StageListenerFunc func(old, next Stage)

func (f StageListenerFunc) StageChanged(old, next Stage) { f(old, next) }

// StepListener observes the actions applied during a trick and its outcome.
type StepListener interface {
	AttackAction(seat int, a AttackAction)
	DefendAction(seat int, a DefendAction)
	AppendAction(seat int, a AttackAction)
	TrickEnd(r StepResult)
}

// LogListener writes an audit trail of a game to a logger.
type LogListener struct {
	Logger *log.Logger
}

func (l LogListener) StageChanged(old, next Stage) {
	l.Logger.Debug("stage", "from", old, "to", next)
}

func (l LogListener) AttackAction(seat int, a AttackAction) {
	l.Logger.Info("attack", "seat", seat, "action", a)
}

func (l LogListener) DefendAction(seat int, a DefendAction) {
	l.Logger.Info("defend", "seat", seat, "action", a)
}

func (l LogListener) AppendAction(seat int, a AttackAction) {
	l.Logger.Info("append", "seat", seat, "action", a)
}

func (l LogListener) TrickEnd(r StepResult) {
	l.Logger.Info("trick end", "result", r)
}

func (g *Game) AddStageListener(l StageListener) {
	g.stageListeners = append(g.stageListeners, l)
}

func (g *Game) AddStepListener(l StepListener) {
	g.stepListeners = append(g.stepListeners, l)
}

func (g *Game) fireStageChanged(old, next Stage) {
	for _, l := range g.stageListeners {
		l.StageChanged(old, next)
	}
}

func (g *Game) fireAttack(seat int, a AttackAction) {
	for _, l := range g.stepListeners {
		l.AttackAction(seat, a)
	}
}

func (g *Game) fireDefend(seat int, a DefendAction) {
	for _, l := range g.stepListeners {
		l.DefendAction(seat, a)
	}
}

func (g *Game) fireAppend(seat int, a AttackAction) {
	for _, l := range g.stepListeners {
		l.AppendAction(seat, a)
	}
}

func (g *Game) fireTrickEnd(r StepResult) {
	for _, l := range g.stepListeners {
		l.TrickEnd(r)
	}
}
