package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() FullStatistic {
	s := NewFullStatistic("less-card", "random")
	// 第一种策略坐 0 号位并先手
	s.Record(0, 0, 1)
	s.Record(0, 0, 0)
	s.Record(0, 0, -1)
	// 第一种策略坐 1 号位，0 号位（第二种策略）先手
	s.Record(1, 0, 0)
	s.Record(1, 0, 1)
	// 第一种策略坐 1 号位并先手
	s.Record(1, 1, 0)
	return s
}

func Test_RecordAttributesOutcomes(t *testing.T) {
	s := sample()
	assert.Equal(t, GameStatistic{FirstWin: 2, SecondWin: 1, Draw: 1}, s.FirstStart)
	assert.Equal(t, GameStatistic{FirstWin: 1, SecondWin: 1}, s.SecondStart)
	assert.Equal(t, 6, s.Games())
	assert.Equal(t, 3, s.FirstWin())
	assert.Equal(t, 2, s.SecondWin())
	assert.Equal(t, 1, s.Draw())
	assert.Equal(t, 3, s.StarterWin())
	assert.Equal(t, 2, s.NonStarterWin())
}

func Test_Report(t *testing.T) {
	out := sample().String()
	assert.Contains(t, out, "less-card vs random\n")
	assert.Contains(t, out, "First decision start statistic:")
	assert.Contains(t, out, "  first decision win:           3 (50.00%)\n")
	assert.NotContains(t, out, "With start statistic:")

	self := NewFullStatistic("random", "random")
	self.Record(0, 0, 1)
	self.Record(1, 0, 0)
	out = self.String()
	assert.Contains(t, out, "With start statistic:")
	assert.Contains(t, out, "  start decision win:           1 (50.00%)\n")

	empty := NewFullStatistic("x", "y").String()
	assert.Contains(t, empty, "0 (0.00%)")
}

// ---------- 两种实现共用的用例 ----------
func exerciseRepo(t *testing.T, repo Repo) {
	ctx := context.Background()

	s, err := repo.Load(ctx, "less-card", "random")
	require.NoError(t, err)
	assert.Equal(t, NewFullStatistic("less-card", "random"), s)

	require.NoError(t, repo.Add(ctx, sample()))
	require.NoError(t, repo.Add(ctx, sample()))
	s, err = repo.Load(ctx, "less-card", "random")
	require.NoError(t, err)
	assert.Equal(t, 12, s.Games())
	assert.Equal(t, GameStatistic{FirstWin: 4, SecondWin: 2, Draw: 2}, s.FirstStart)
	assert.Equal(t, "less-card", s.First)

	// 对阵顺序不同是另一组统计
	s, err = repo.Load(ctx, "random", "less-card")
	require.NoError(t, err)
	assert.Zero(t, s.Games())

	require.NoError(t, repo.SaveRun(ctx, "run-1", sample()))
	run, err := repo.LoadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, sample(), run)

	_, err = repo.LoadRun(ctx, "run-2")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

// ---------- 内存实现测试 ----------
func Test_MemoryRepo(t *testing.T) {
	exerciseRepo(t, NewMemoryRepo())
}

// ---------- Redis（miniredis）实现测试 ----------
func Test_RedisRepo(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	exerciseRepo(t, NewRedisRepo(rdb, time.Minute))

	assert.True(t, mr.Exists(pairKey("less-card", "random")))
	assert.Equal(t, "4", mr.HGet(pairKey("less-card", "random"), fieldFirstStartFirstWin))
	assert.True(t, mr.Exists(runKey("run-1")))
	assert.Equal(t, time.Minute, mr.TTL(runKey("run-1")))

	// 过期后读不到单次结果，累计结果仍在
	mr.FastForward(2 * time.Minute)
	_, err = NewRedisRepo(rdb, time.Minute).LoadRun(context.Background(), "run-1")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.True(t, mr.Exists(pairKey("less-card", "random")))
}

func Test_RedisRepo_BadField(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	mr.HSet(pairKey("a", "b"), fieldFirstStartDraw, "many")
	repo := NewRedisRepo(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)
	_, err = repo.Load(context.Background(), "a", "b")
	assert.Error(t, err)
}
