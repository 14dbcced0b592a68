package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 联系表单 API 的统一响应结构
//
// 前端脚本依赖这个精确的字段形状，不要改动。
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"` // 乌克兰语错误提示
}

// Success 成功响应（200）
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true})
}

// Fail 失败响应（携带业务错误消息）
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}
