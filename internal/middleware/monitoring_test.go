package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"agrofirma/backend/internal/monitoring"
)

// TestPanicRecovery 测试 panic 恢复、统一错误响应与计数
func TestPanicRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	mm := NewMonitoringMiddleware(metrics, zap.NewNop())

	router := gin.New()
	router.Use(mm.PanicRecovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Помилка сервера"}`, w.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PanicsTotal))
}
