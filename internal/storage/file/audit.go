package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"agrofirma/backend/internal/domain"
)

// AuditLog 追加式纯文本审计日志（messages.log）。
//
// 只写不读，供运营人工翻查，格式沿用站点历史记录。
type AuditLog struct {
	mu   sync.Mutex
	path string
}

// NewAuditLog 创建审计日志写入器。
func NewAuditLog(basePath string) *AuditLog {
	return &AuditLog{path: filepath.Join(basePath, "messages.log")}
}

// Record 追加一条人类可读的提交记录。
func (a *AuditLog) Record(message *domain.Message) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := fmt.Sprintf("[%s]\nІм’я: %s\nТелефон: %s\nEmail: %s\nПовідомлення: %s\n-------------------------------\n",
		message.Timestamp.UTC().Format(time.RFC3339),
		message.Name, message.Phone, message.Email, message.Message)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
