package sql

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agrofirma/backend/internal/domain"
)

// Store 基于嵌入数据库的留言存储实现。
//
// 与文件实现共用 storage.MessageRepository 契约，供数据量增长后
// 通过配置切换，调用方无需改动。语义上仍保持整体替换的粗粒度，
// ReplaceAll 在单事务内完成，失败自动回滚。
type Store struct {
	db *gorm.DB
}

// NewStore 连接数据库并迁移留言表。
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate messages table: %w", err)
	}

	return &Store{db: db}, nil
}

// ReadAll 按写入顺序返回全部留言。
func (s *Store) ReadAll() ([]domain.Message, error) {
	var messages []domain.Message
	if err := s.db.Order("timestamp asc, id asc").Find(&messages).Error; err != nil {
		return []domain.Message{}, nil
	}
	return messages, nil
}

// Append 追加一条留言。
func (s *Store) Append(message *domain.Message) error {
	return s.db.Create(message).Error
}

// ReplaceAll 用给定序列整体覆盖留言表。
func (s *Store) ReplaceAll(messages []domain.Message) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}
		return tx.Create(&messages).Error
	})
}

// RemoveByIDs 删除指定 ID 的留言，返回实际删除行数。
func (s *Store) RemoveByIDs(ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.Where("id IN ?", ids).Delete(&domain.Message{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// Exists 数据库后端始终有后备表。
func (s *Store) Exists() bool {
	return true
}
