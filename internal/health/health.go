package health

import (
	"context"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"agrofirma/backend/internal/storage"
)

// HealthChecker 健康检查器
type HealthChecker struct {
	health healthcheck.Handler
	repo   storage.MessageRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewHealthChecker 创建健康检查器
//
// redisClient 可以为 nil，此时跳过 Redis 检查。
func NewHealthChecker(repo storage.MessageRepository, redisClient *redis.Client, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		health: healthcheck.NewHandler(),
		repo:   repo,
		redis:  redisClient,
		logger: logger,
	}

	hc.addChecks()

	return hc
}

// addChecks 添加健康检查
func (hc *HealthChecker) addChecks() {
	// 留言存储可读性检查
	hc.health.AddReadinessCheck("storage", func() error {
		_, err := hc.repo.ReadAll()
		return err
	})

	// Redis 连接检查（启用时）
	if hc.redis != nil {
		hc.health.AddReadinessCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return hc.redis.Ping(ctx).Err()
		})
	}

	// goroutine 泄漏检查
	hc.health.AddLivenessCheck("goroutine-count", healthcheck.GoroutineCountCheck(200))
}

// LiveHandler 返回存活检查处理器
func (hc *HealthChecker) LiveHandler() http.Handler {
	return http.HandlerFunc(hc.health.LiveEndpoint)
}

// ReadyHandler 返回就绪检查处理器
func (hc *HealthChecker) ReadyHandler() http.Handler {
	return http.HandlerFunc(hc.health.ReadyEndpoint)
}
