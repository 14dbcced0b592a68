package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"agrofirma/backend/internal/domain"
	"agrofirma/backend/internal/guard"
	"agrofirma/backend/internal/monitoring"
	"agrofirma/backend/internal/storage"
)

// Notifier 定义提交成功后的邮件通知操作。
type Notifier interface {
	// NotifyOperator 将新留言转发给运营邮箱。
	NotifyOperator(message *domain.Message) error
	// AcknowledgeSubmitter 给提交者回执感谢邮件。
	AcknowledgeSubmitter(message *domain.Message) error
}

// IntakeService 负责接收联系表单提交。
//
// 一次提交的流转：校验 → 查重 → 冷却检查 → 记录接受时间 → 持久化。
// 任一检查失败立即短路返回对应错误，不做重试。
type IntakeService struct {
	repo     storage.MessageRepository
	guard    *guard.Guard
	audit    storage.AuditLog
	notifier Notifier
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewIntakeService 创建提交接收服务。audit、notifier 与 metrics 允许为 nil。
func NewIntakeService(repo storage.MessageRepository, g *guard.Guard, audit storage.AuditLog, notifier Notifier, metrics *monitoring.Metrics, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		repo:     repo,
		guard:    g,
		audit:    audit,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Accept 处理一次提交，成功时返回已持久化的留言。
//
// 持久化失败会如实上抛给调用方；通知与审计日志失败只记日志，
// 绝不回滚已落盘的留言。
func (s *IntakeService) Accept(input domain.Submission) (*domain.Message, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	now := s.now().UTC()

	// 查重先于冷却：紧跟着的原样重发要报重复，而不是报频率限制
	if s.guard.IsDuplicate(email, input.Message) {
		return nil, ErrDuplicate
	}

	if s.guard.IsRateLimited(email, now) {
		return nil, ErrRateLimited
	}

	// 检查通过即消耗冷却名额，持久化失败也不退还
	s.guard.RecordAccepted(email, now)

	message := &domain.Message{
		ID:        domain.NewMessageID(now),
		Timestamp: now,
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     email,
		Message:   input.Message,
	}

	if err := s.repo.Append(message); err != nil {
		return nil, err
	}

	s.logger.Info("new contact message accepted",
		zap.String("id", message.ID),
		zap.String("name", message.Name),
		zap.String("email", message.Email),
	)

	if s.audit != nil {
		if err := s.audit.Record(message); err != nil {
			s.logger.Error("failed to write audit log", zap.String("id", message.ID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		// 通知走后台，失败不影响提交结果
		go s.notify(message)
	}

	return message, nil
}

// notify 发送运营通知与提交者回执，逐封记录发送结果。
func (s *IntakeService) notify(message *domain.Message) {
	if err := s.notifier.NotifyOperator(message); err != nil {
		s.logger.Error("failed to notify operator", zap.String("id", message.ID), zap.Error(err))
		s.recordNotification(false)
	} else {
		s.recordNotification(true)
	}
	if err := s.notifier.AcknowledgeSubmitter(message); err != nil {
		s.logger.Error("failed to acknowledge submitter", zap.String("id", message.ID), zap.Error(err))
		s.recordNotification(false)
	} else {
		s.recordNotification(true)
	}
}

func (s *IntakeService) recordNotification(sent bool) {
	if s.metrics == nil {
		return
	}
	if sent {
		s.metrics.RecordNotificationSent()
	} else {
		s.metrics.RecordNotificationFailed()
	}
}
