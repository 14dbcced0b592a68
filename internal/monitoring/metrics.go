package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// 提交指标
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	MessagesStored      prometheus.Gauge
	MessagesDeleted     prometheus.Counter

	// 通知指标
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter

	// 系统指标
	SystemUptime prometheus.Gauge

	// 错误指标
	ErrorsTotal *prometheus.CounterVec
	PanicsTotal prometheus.Counter

	// 限流指标
	RateLimitBlocks *prometheus.CounterVec
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		// HTTP 请求指标
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrofirma_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agrofirma_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agrofirma_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "endpoint"},
		),

		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agrofirma_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "endpoint"},
		),

		// 提交指标
		SubmissionsAccepted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agrofirma_submissions_accepted_total",
				Help: "Total number of contact form submissions accepted",
			},
		),

		SubmissionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrofirma_submissions_rejected_total",
				Help: "Total number of contact form submissions rejected",
			},
			[]string{"reason"},
		),

		MessagesStored: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "agrofirma_messages_stored",
				Help: "Number of messages currently stored",
			},
		),

		MessagesDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agrofirma_messages_deleted_total",
				Help: "Total number of messages deleted from the admin panel",
			},
		),

		// 通知指标
		NotificationsSent: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agrofirma_notifications_sent_total",
				Help: "Total number of notification emails sent",
			},
		),

		NotificationsFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agrofirma_notifications_failed_total",
				Help: "Total number of notification emails that failed to send",
			},
		),

		// 系统指标
		SystemUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "agrofirma_system_uptime_seconds",
				Help: "System uptime in seconds",
			},
		),

		// 错误指标
		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrofirma_errors_total",
				Help: "Total number of errors",
			},
			[]string{"type", "component"},
		),

		PanicsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "agrofirma_panics_total",
				Help: "Total number of panics",
			},
		),

		// 限流指标
		RateLimitBlocks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrofirma_rate_limit_blocks_total",
				Help: "Total number of rate limit blocks",
			},
			[]string{"type"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration, requestSize, responseSize int64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	m.HTTPRequestSize.WithLabelValues(method, endpoint).Observe(float64(requestSize))
	m.HTTPResponseSize.WithLabelValues(method, endpoint).Observe(float64(responseSize))
}

// RecordSubmissionAccepted 记录提交成功
func (m *Metrics) RecordSubmissionAccepted() {
	m.SubmissionsAccepted.Inc()
}

// RecordSubmissionRejected 记录提交被拒绝及原因
func (m *Metrics) RecordSubmissionRejected(reason string) {
	m.SubmissionsRejected.WithLabelValues(reason).Inc()
}

// RecordMessagesDeleted 记录留言删除数量
func (m *Metrics) RecordMessagesDeleted(count int) {
	m.MessagesDeleted.Add(float64(count))
}

// RecordNotificationSent 记录通知邮件发送成功
func (m *Metrics) RecordNotificationSent() {
	m.NotificationsSent.Inc()
}

// RecordNotificationFailed 记录通知邮件发送失败
func (m *Metrics) RecordNotificationFailed() {
	m.NotificationsFailed.Inc()
}

// RecordError 记录错误
func (m *Metrics) RecordError(errorType, component string) {
	m.ErrorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordPanic 记录 panic
func (m *Metrics) RecordPanic() {
	m.PanicsTotal.Inc()
}

// RecordRateLimitBlock 记录限流阻止
func (m *Metrics) RecordRateLimitBlock(limitType string) {
	m.RateLimitBlocks.WithLabelValues(limitType).Inc()
}

// UpdateMessagesStored 更新当前存储的留言数
func (m *Metrics) UpdateMessagesStored(count int) {
	m.MessagesStored.Set(float64(count))
}

// UpdateSystemUptime 更新系统运行时间
func (m *Metrics) UpdateSystemUptime(uptime time.Duration) {
	m.SystemUptime.Set(uptime.Seconds())
}

// HTTPHandler 返回 Prometheus HTTP 处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
