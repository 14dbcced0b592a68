package domain

import (
	"strconv"
	"time"
)

// Message 表示一条已持久化的联系表单留言。
//
// JSON 字段名与线上存量 messages.json 保持一致，不可随意改动。
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
}

// NewMessageID 基于创建时间生成留言 ID。
//
// 沿用历史数据格式：Unix 毫秒时间戳的十进制字符串。
// 单进程低流量场景下足够唯一，不做全量查重。
func NewMessageID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
