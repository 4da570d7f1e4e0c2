package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb    *redis.Client
	runTTL time.Duration
}

// NewRedisRepo stores totals forever and single runs for runTTL (0 keeps them).
func NewRedisRepo(rdb *redis.Client, runTTL time.Duration) Repo {
	return &redisRepo{rdb: rdb, runTTL: runTTL}
}

// key 约定：
//
//	hash: durak:stat:{first}:{second} -> 六个计数字段
//	kv  : durak:run:{runID}           -> 单次运行结果 JSON（带 TTL）
func pairKey(first, second string) string {
	return fmt.Sprintf("durak:stat:%s:%s", first, second)
}
func runKey(runID string) string {
	return fmt.Sprintf("durak:run:%s", runID)
}

const (
	fieldFirstStartFirstWin   = "first_start:first_win"
	fieldFirstStartSecondWin  = "first_start:second_win"
	fieldFirstStartDraw       = "first_start:draw"
	fieldSecondStartFirstWin  = "second_start:first_win"
	fieldSecondStartSecondWin = "second_start:second_win"
	fieldSecondStartDraw      = "second_start:draw"
)

func fields(s *FullStatistic) map[string]*int {
	return map[string]*int{
		fieldFirstStartFirstWin:   &s.FirstStart.FirstWin,
		fieldFirstStartSecondWin:  &s.FirstStart.SecondWin,
		fieldFirstStartDraw:       &s.FirstStart.Draw,
		fieldSecondStartFirstWin:  &s.SecondStart.FirstWin,
		fieldSecondStartSecondWin: &s.SecondStart.SecondWin,
		fieldSecondStartDraw:      &s.SecondStart.Draw,
	}
}

func (r *redisRepo) Add(ctx context.Context, stat FullStatistic) error {
	key := pairKey(stat.First, stat.Second)
	p := r.rdb.Pipeline()
	for field, v := range fields(&stat) {
		if *v != 0 {
			p.HIncrBy(ctx, key, field, int64(*v))
		}
	}
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) Load(ctx context.Context, first, second string) (FullStatistic, error) {
	stat := NewFullStatistic(first, second)
	vals, err := r.rdb.HGetAll(ctx, pairKey(first, second)).Result()
	if err != nil {
		return stat, err
	}
	for field, dst := range fields(&stat) {
		raw, ok := vals[field]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return stat, fmt.Errorf("field %s: %w", field, err)
		}
		*dst = n
	}
	return stat, nil
}

func (r *redisRepo) SaveRun(ctx context.Context, runID string, stat FullStatistic) error {
	data, err := json.Marshal(stat)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, runKey(runID), data, r.runTTL).Err()
}

func (r *redisRepo) LoadRun(ctx context.Context, runID string) (FullStatistic, error) {
	var stat FullStatistic
	data, err := r.rdb.Get(ctx, runKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return stat, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return stat, err
	}
	err = json.Unmarshal(data, &stat)
	return stat, err
}
