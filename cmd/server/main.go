package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agrofirma/backend/internal/config"
	"agrofirma/backend/internal/guard"
	"agrofirma/backend/internal/health"
	"agrofirma/backend/internal/logger"
	"agrofirma/backend/internal/mailer"
	"agrofirma/backend/internal/monitoring"
	"agrofirma/backend/internal/service"
	"agrofirma/backend/internal/storage"
	filestore "agrofirma/backend/internal/storage/file"
	sqlstore "agrofirma/backend/internal/storage/sql"
	httptransport "agrofirma/backend/internal/transport/http"
)

// main 启动联系表单后端与静态站点服务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting agrofirma server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化存储层：默认平面 JSON 文件，配置 DSN 后切换数据库
	var repo storage.MessageRepository
	var audit storage.AuditLog

	if cfg.Storage.DatabaseDSN != "" {
		store, err := sqlstore.NewStore(cfg.Storage.DatabaseDSN)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize database storage: %v", err))
		}
		repo = store
		log.Info("using database storage")
	} else {
		store, err := filestore.NewStore(cfg.Storage.DataDir, log)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize file storage: %v", err))
		}
		repo = store
		audit = filestore.NewAuditLog(cfg.Storage.DataDir)
		log.Info("using file storage", zap.String("data_dir", cfg.Storage.DataDir))
	}

	// 冷却记录：默认进程内存，配置 Redis 后多实例共享
	var rates guard.RateRecord
	var redisRates *guard.RedisRateRecord

	if cfg.Redis.Address != "" {
		redisRates, err = guard.NewRedisRateRecord(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, 0, log)
		if err != nil {
			panic(fmt.Sprintf("failed to connect to Redis: %v", err))
		}
		rates = redisRates
		log.Info("using Redis rate record", zap.String("address", cfg.Redis.Address))
	} else {
		rates = guard.NewMemoryRateRecord()
	}

	submissionGuard := guard.New(rates, repo, cfg.Submission.Cooldown)

	// 邮件通知（未配置时关闭）
	var notifier service.Notifier
	mailConfig := mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Operator: cfg.Mail.Operator,
	}
	if mailConfig.Enabled() {
		notifier = mailer.New(mailConfig)
		log.Info("mail notifications enabled", zap.String("host", cfg.Mail.Host))
	} else {
		log.Info("mail notifications disabled")
	}

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化健康检查
	var healthChecker *health.HealthChecker
	if redisRates != nil {
		healthChecker = health.NewHealthChecker(repo, redisRates.Client(), log)
	} else {
		healthChecker = health.NewHealthChecker(repo, nil, log)
	}

	// 初始化服务层
	intakeService := service.NewIntakeService(repo, submissionGuard, audit, notifier, metrics, log)
	adminService := service.NewAdminQueryService(repo)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:        cfg,
		IntakeService: intakeService,
		AdminService:  adminService,
		HealthChecker: healthChecker,
		Metrics:       metrics,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	startedAt := time.Now()

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 定时刷新系统指标 goroutine
	group.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
				metrics.UpdateSystemUptime(time.Since(startedAt))
				if messages, err := repo.ReadAll(); err == nil {
					metrics.UpdateMessagesStored(len(messages))
				}
			}
		}
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		if redisRates != nil {
			if err := redisRates.Close(); err != nil {
				log.Warn("Redis close warning", zap.Error(err))
			}
		}

		log.Info("server stopped")
		return nil
	})

	// 等待所有 goroutine 完成
	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}
