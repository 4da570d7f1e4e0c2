package stats

import (
	"context"
	"errors"
)

var ErrRunNotFound = errors.New("run not found")

// Repo 定义统计结果的存取
type Repo interface {
	// Add 把一次运行的结果累加到该对阵组合的总计
	Add(ctx context.Context, stat FullStatistic) error
	// Load 读取某对阵组合的累计结果，不存在时返回空统计
	Load(ctx context.Context, first, second string) (FullStatistic, error)
	// SaveRun 单独保存一次运行的结果
	SaveRun(ctx context.Context, runID string, stat FullStatistic) error
	// LoadRun 读取 SaveRun 保存的结果
	LoadRun(ctx context.Context, runID string) (FullStatistic, error)
}
