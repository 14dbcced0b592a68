package httptransport

import (
	"html/template"
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"agrofirma/backend/internal/config"
	"agrofirma/backend/internal/health"
	"agrofirma/backend/internal/middleware"
	"agrofirma/backend/internal/monitoring"
	"agrofirma/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config        *config.Config
	IntakeService *service.IntakeService
	AdminService  *service.AdminQueryService
	HealthChecker *health.HealthChecker
	Metrics       *monitoring.Metrics
	Logger        *zap.Logger
	TemplatesGlob string // 模板目录，默认 web/templates/*.html
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	// 带指标时 panic 走监控中间件恢复，顺带计数
	var mm *middleware.MonitoringMiddleware
	if deps.Metrics != nil {
		mm = middleware.NewMonitoringMiddleware(deps.Metrics, deps.Logger)
		router.Use(mm.PanicRecovery())
	} else {
		router.Use(middleware.RecoveryHandler(deps.Logger))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())

	// 联系表单载荷很小，1MB 足够
	router.Use(middleware.BodySizeLimit(1 * 1024 * 1024))

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// HTTP 指标
	if mm != nil {
		router.Use(mm.HTTPMetrics())
		router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.HealthChecker != nil {
		router.GET("/health/live", gin.WrapH(deps.HealthChecker.LiveHandler()))
		router.GET("/health/ready", gin.WrapH(deps.HealthChecker.ReadyHandler()))
	}

	// 管理页模板
	templatesGlob := deps.TemplatesGlob
	if templatesGlob == "" {
		templatesGlob = "web/templates/*.html"
	}
	router.SetFuncMap(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("02.01.2006 15:04:05")
		},
	})
	router.LoadHTMLGlob(templatesGlob)

	// 创建处理器
	contactHandler := NewContactHandler(deps.IntakeService, deps.Metrics)
	adminHandler := NewAdminHandler(deps.AdminService, deps.Metrics)

	// ========== Contact API ==========
	api := router.Group("/api")
	{
		// 按 IP 限流兜底，邮箱冷却在服务层单独处理
		ipLimit := middleware.NewIPRateLimiter(rate.Limit(5), 10)
		api.POST("/contact", ipLimit.Middleware(), contactHandler.Submit)
	}

	// ========== Admin Routes ==========
	admin := router.Group("/admin")
	admin.Use(middleware.BasicAuth(deps.Config.Admin.Username, deps.Config.Admin.Password))
	{
		admin.GET("", adminHandler.Panel)
		admin.POST("/delete-selected", adminHandler.DeleteSelected)
	}

	// ========== Static Site ==========
	// 未匹配的路径按静态站点处理，/ 对应 index.html
	if deps.Config.WebRoot != "" {
		fileServer := http.FileServer(gin.Dir(deps.Config.WebRoot, false))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.Status(http.StatusNotFound)
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	}

	return router
}
