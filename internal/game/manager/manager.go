package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"DurakEngine/internal/bot"
	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/engine"
	"DurakEngine/internal/stats"
	"DurakEngine/internal/utils"
)

var ErrNoRounds = errors.New("rounds must be positive")

// 每轮四局：第一种策略分别坐 0/1 号位，0/1 号位分别先手
var plays = [...]struct{ firstSeat, start int }{
	{0, 0}, {1, 0}, {0, 1}, {1, 1},
}

// Report 一次统计运行的结果
type Report struct {
	RunID string
	// Run 只含本次运行
	Run stats.FullStatistic
	// Total 为累加本次后的历史总计
	Total stats.FullStatistic
}

// Manager 管理统计对局：每局一个独立的 Game，并发执行
type Manager struct {
	repo     stats.Repo
	workers  int
	deckType dealer.DeckType
	logger   *log.Logger
	lookup   func(name string) (bot.Factory, error)
}

func NewManager(repo stats.Repo, workers int, deckType dealer.DeckType) *Manager {
	if workers < 1 {
		workers = 1
	}
	return &Manager{
		repo:     repo,
		workers:  workers,
		deckType: deckType,
		logger:   utils.Log,
		lookup:   bot.Lookup,
	}
}

func (m *Manager) SetLogger(l *log.Logger) {
	m.logger = l
}

// Run plays rounds*4 two-player games between the named bots. Game seeds come
// from a generator seeded with seed, so a run is reproducible whatever the
// worker count. The result is saved as a run and added to the totals.
func (m *Manager) Run(ctx context.Context, first, second string, rounds int, seed int64) (*Report, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoRounds, rounds)
	}
	firstBot, err := m.lookup(first)
	if err != nil {
		return nil, err
	}
	secondBot, err := m.lookup(second)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := m.logger.With("run", runID)
	logger.Info("stats run started", "first", first, "second", second, "rounds", rounds, "seed", seed, "workers", m.workers)

	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, rounds)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	losers := make([]int, rounds*len(plays))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for round, s := range seeds {
		for i, p := range plays {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				decisions := make([]engine.Decision, 2)
				decisions[p.firstSeat] = firstBot(s)
				decisions[1-p.firstSeat] = secondBot(s + 1)
				loser, err := m.play(decisions, p.start, s)
				if err != nil {
					return fmt.Errorf("round %d game %d (seed %d): %w", round, i, s, err)
				}
				losers[round*len(plays)+i] = loser
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		logger.Error("stats run failed", "err", err)
		return nil, err
	}

	stat := stats.NewFullStatistic(first, second)
	for idx, loser := range losers {
		p := plays[idx%len(plays)]
		stat.Record(p.firstSeat, p.start, loser)
	}

	if err := m.repo.SaveRun(ctx, runID, stat); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	if err := m.repo.Add(ctx, stat); err != nil {
		return nil, fmt.Errorf("add totals: %w", err)
	}
	total, err := m.repo.Load(ctx, first, second)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	logger.Info("stats run finished", "games", stat.Games(), "first_win", stat.FirstWin(), "second_win", stat.SecondWin(), "draw", stat.Draw())
	return &Report{RunID: runID, Run: stat, Total: total}, nil
}

func (m *Manager) play(decisions []engine.Decision, start int, seed int64) (int, error) {
	g, err := engine.NewGame(len(decisions), m.deckType)
	if err != nil {
		return engine.Draw, err
	}
	g.SetLogger(m.logger)
	for seat, d := range decisions {
		if err := g.SetDecision(seat, d); err != nil {
			return engine.Draw, err
		}
	}
	if err := g.Init(start, seed); err != nil {
		return engine.Draw, err
	}
	return g.Run()
}
