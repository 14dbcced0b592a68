package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"agrofirma/backend/internal/domain"
)

// Store 基于单个 JSON 文档的留言存储实现。
//
// 所有操作都是对整个文档的同步读改写，复杂度 O(全部留言)。
// 营销站联系表单的数据量很小，这里刻意不做任何扩展性设计。
type Store struct {
	mu     sync.Mutex // 串行化所有变更，避免读改写竞争丢更新
	path   string
	logger *zap.Logger
}

// NewStore 创建文件存储实例。
//
// basePath 为数据目录，留言文档固定命名 messages.json。
func NewStore(basePath string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		path:   filepath.Join(basePath, "messages.json"),
		logger: logger,
	}, nil
}

// ReadAll 读取全部留言。
//
// 文档不存在、为空或解析失败都按空序列处理：
// 管理页每次展示都要读全量，硬失败只会把可用性拖垮。
func (s *Store) ReadAll() ([]domain.Message, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to read message store", zap.String("path", s.path), zap.Error(err))
		}
		return []domain.Message{}, nil
	}

	if strings.TrimSpace(string(data)) == "" {
		return []domain.Message{}, nil
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		s.logger.Error("failed to parse message store, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return []domain.Message{}, nil
	}

	return messages, nil
}

// Append 追加一条留言并整体重写文档。
func (s *Store) Append(message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, _ := s.ReadAll()
	messages = append(messages, *message)

	if err := s.writeLocked(messages); err != nil {
		s.logger.Error("failed to append message", zap.String("id", message.ID), zap.Error(err))
		return err
	}
	return nil
}

// ReplaceAll 用给定序列整体覆盖文档。
//
// 先写入临时文件再原子换名，写入中断时原文档保持不变。
func (s *Store) ReplaceAll(messages []domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(messages); err != nil {
		s.logger.Error("failed to replace message store", zap.Error(err))
		return err
	}
	return nil
}

// RemoveByIDs 删除指定 ID 的留言并整体重写文档，返回实际删除条数。
//
// 读取、过滤与写回都在 s.mu 内完成，期间的并发追加不会被覆盖掉。
func (s *Store) RemoveByIDs(ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	messages, _ := s.ReadAll()
	kept := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if _, ok := selected[m.ID]; ok {
			continue
		}
		kept = append(kept, m)
	}

	if err := s.writeLocked(kept); err != nil {
		s.logger.Error("failed to remove messages", zap.Int("requested", len(ids)), zap.Error(err))
		return 0, err
	}
	return len(messages) - len(kept), nil
}

// Exists 报告留言文档是否存在。
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// writeLocked 序列化并原子写入文档，调用方必须持有 s.mu。
func (s *Store) writeLocked(messages []domain.Message) error {
	if messages == nil {
		messages = []domain.Message{}
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".messages-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to swap message store: %w", err)
	}

	return nil
}
