package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"

	"agrofirma/backend/internal/domain"
	"agrofirma/backend/internal/monitoring"
	"agrofirma/backend/internal/service"
)

// ContactHandler 处理联系表单提交。
type ContactHandler struct {
	intake  *service.IntakeService
	metrics *monitoring.Metrics
}

// NewContactHandler 创建联系表单处理器。metrics 允许为 nil。
func NewContactHandler(intake *service.IntakeService, metrics *monitoring.Metrics) *ContactHandler {
	return &ContactHandler{intake: intake, metrics: metrics}
}

// Submit 处理 POST /api/contact
//
// 响应形状固定：200 {success:true}，失败 {success:false, error:"..."}，
// 状态码按拒绝原因区分 400 / 429 / 409 / 500。
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordRejected("bad_request")
		Fail(c, 400, MsgInvalidRequest)
		return
	}

	if _, err := h.intake.Accept(req); err != nil {
		h.recordRejected(rejectReason(err))
		Fail(c, GetErrorStatus(err), GetErrorMessage(err))
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSubmissionAccepted()
	}
	Success(c)
}

func (h *ContactHandler) recordRejected(reason string) {
	if h.metrics != nil {
		h.metrics.RecordSubmissionRejected(reason)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrFieldsMissing),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone):
		return "validation"
	case errors.Is(err, service.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, service.ErrDuplicate):
		return "duplicate"
	default:
		return "persistence"
	}
}
