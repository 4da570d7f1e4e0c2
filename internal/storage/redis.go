package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis 连接 Redis 并 Ping，成功后设置全局 Rdb
func InitRedis(ctx context.Context, addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis %s: %w", addr, err)
	}
	Rdb = c
	return nil
}

// CloseRedis 关闭全局连接
func CloseRedis() error {
	if Rdb == nil {
		return nil
	}
	err := Rdb.Close()
	Rdb = nil
	return err
}
