package guard

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRateRecord 基于 Redis 的提交时间记录，供多实例部署共享冷却状态。
//
// 键带 TTL，冷却窗口过后自动过期，天然避免无界增长。
type RedisRateRecord struct {
	rdb    *goredis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisRateRecord 连接 Redis 并创建记录实例。
//
// ttl 应不小于冷却窗口；为零时取默认冷却窗口的 10 倍，
// 留足余量以免时钟漂移导致提前放行。
func NewRedisRateRecord(address, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisRateRecord, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         address,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 10 * DefaultCooldown
	}

	return &RedisRateRecord{rdb: rdb, logger: logger, ttl: ttl}, nil
}

// LastAccepted 返回邮箱最近一次被接受的时间。
//
// Redis 不可用时按从未提交处理，表单照常接收。
func (r *RedisRateRecord) LastAccepted(email string) (time.Time, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	value, err := r.rdb.Get(ctx, r.key(email)).Int64()
	if err != nil {
		if err != goredis.Nil {
			r.logger.Warn("rate record read failed", zap.Error(err))
		}
		return time.Time{}, false
	}
	return time.UnixMilli(value), true
}

// Record 更新邮箱的最近接受时间。
func (r *RedisRateRecord) Record(email string, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := r.rdb.Set(ctx, r.key(email), now.UnixMilli(), r.ttl).Err(); err != nil {
		r.logger.Warn("rate record write failed", zap.Error(err))
	}
}

// Close 关闭 Redis 连接。
func (r *RedisRateRecord) Close() error {
	return r.rdb.Close()
}

// Client 暴露底层客户端，供健康检查复用连接。
func (r *RedisRateRecord) Client() *goredis.Client {
	return r.rdb
}

func (r *RedisRateRecord) key(email string) string {
	return "agrofirma:submission:last:" + email
}
