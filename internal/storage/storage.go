package storage

import (
	"errors"

	"agrofirma/backend/internal/domain"
)

var (
	// ErrStoreMissing 留言文档不存在（从未有过任何写入）
	ErrStoreMissing = errors.New("message store missing")
)

// MessageRepository 定义留言数据存取操作。
//
// 当前提供两种实现：单 JSON 文档（file）与嵌入数据库（sql），
// 调用方不感知底层差异。
type MessageRepository interface {
	// ReadAll 返回全部留言，保持写入顺序。
	// 文档不存在、为空或损坏时返回空序列，读取错误只记日志不上抛。
	ReadAll() ([]domain.Message, error)
	// Append 追加一条留言并整体重写文档。
	Append(message *domain.Message) error
	// ReplaceAll 用给定序列整体覆盖文档；失败时原文档必须保持不变。
	ReplaceAll(messages []domain.Message) error
	// RemoveByIDs 删除指定 ID 的留言，返回实际删除条数。
	// 读取、过滤与写回必须在同一临界区内完成，不能与并发追加丢更新。
	RemoveByIDs(ids []string) (int, error)
	// Exists 报告后备文档是否存在。
	Exists() bool
}

// AuditLog 定义提交审计日志的追加操作，只写不读。
type AuditLog interface {
	Record(message *domain.Message) error
}
