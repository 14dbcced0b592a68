package httptransport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrofirma/backend/internal/monitoring"
	"agrofirma/backend/internal/service"
	"agrofirma/backend/internal/storage"
)

// AdminHandler 处理管理面板页面与批量删除。
type AdminHandler struct {
	queries *service.AdminQueryService
	metrics *monitoring.Metrics
}

// NewAdminHandler 创建管理面板处理器。metrics 允许为 nil。
func NewAdminHandler(queries *service.AdminQueryService, metrics *monitoring.Metrics) *AdminHandler {
	return &AdminHandler{queries: queries, metrics: metrics}
}

// Panel 处理 GET /admin
//
// 查询参数 from / to 为日期区间（含边界），page 为 1 起始页码。
func (h *AdminHandler) Panel(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	result, err := h.queries.Query(service.QueryInput{
		From: c.Query("from"),
		To:   c.Query("to"),
		Page: page,
	})
	if err != nil {
		c.String(http.StatusInternalServerError, MsgSendFailed)
		return
	}

	if h.metrics != nil {
		h.metrics.UpdateMessagesStored(result.TotalStored)
	}

	// 存储为空时渲染简单提示页，与分页模板区分
	if result.TotalStored == 0 {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h2>"+MsgNoMessages+"</h2>"))
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Items":         result.Items,
		"Page":          result.Page,
		"TotalPages":    result.TotalPages,
		"TotalMessages": result.TotalMessages,
		"From":          result.From,
		"To":            result.To,
		"Pages":         pageNumbers(result.TotalPages),
	})
}

// DeleteSelected 处理 POST /admin/delete-selected
//
// 表单字段 selectedIds 可以是单个值或多个值；为空时直接跳回列表页。
func (h *AdminHandler) DeleteSelected(c *gin.Context) {
	selectedIDs := c.PostFormArray("selectedIds")

	removed, err := h.queries.DeleteByIDs(selectedIDs)
	if err != nil {
		if errors.Is(err, storage.ErrStoreMissing) {
			c.String(http.StatusNotFound, MsgStoreMissing)
			return
		}
		c.String(http.StatusInternalServerError, MsgSaveFailed)
		return
	}

	if h.metrics != nil && removed > 0 {
		h.metrics.RecordMessagesDeleted(removed)
	}

	c.Redirect(http.StatusSeeOther, "/admin")
}

// pageNumbers 生成分页导航用的页码序列
func pageNumbers(totalPages int) []int {
	pages := make([]int, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages = append(pages, i)
	}
	return pages
}
