package guard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agrofirma/backend/internal/domain"
)

// fakeRepo 模拟留言存储
type fakeRepo struct {
	messages []domain.Message
	readErr  error
}

func (f *fakeRepo) ReadAll() ([]domain.Message, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.messages, nil
}

func (f *fakeRepo) Append(message *domain.Message) error       { return nil }
func (f *fakeRepo) ReplaceAll(messages []domain.Message) error { return nil }
func (f *fakeRepo) Exists() bool                               { return len(f.messages) > 0 }
func (f *fakeRepo) RemoveByIDs(ids []string) (int, error)      { return 0, nil }

// TestIsRateLimited 测试冷却窗口判定
func TestIsRateLimited(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	email := "o@example.com"

	t.Run("never submitted is not limited", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{}, 0)
		assert.False(t, g.IsRateLimited(email, base))
	})

	t.Run("within cooldown is limited", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{}, 0)
		g.RecordAccepted(email, base)

		assert.True(t, g.IsRateLimited(email, base.Add(1*time.Second)))
		assert.True(t, g.IsRateLimited(email, base.Add(9*time.Second)))
	})

	t.Run("after cooldown is not limited", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{}, 0)
		g.RecordAccepted(email, base)

		assert.False(t, g.IsRateLimited(email, base.Add(10*time.Second)))
		assert.False(t, g.IsRateLimited(email, base.Add(time.Minute)))
	})

	t.Run("cooldown is per email", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{}, 0)
		g.RecordAccepted(email, base)

		assert.False(t, g.IsRateLimited("other@example.com", base.Add(time.Second)))
	})

	t.Run("custom cooldown", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{}, 2*time.Second)
		g.RecordAccepted(email, base)

		assert.True(t, g.IsRateLimited(email, base.Add(1*time.Second)))
		assert.False(t, g.IsRateLimited(email, base.Add(2*time.Second)))
	})
}

// TestIsDuplicate 测试重复提交判定
func TestIsDuplicate(t *testing.T) {
	stored := domain.Message{
		ID:        "1",
		Timestamp: time.Now().UTC(),
		Name:      "Олена",
		Phone:     "+38 (099) 123-45-67",
		Email:     "o@example.com",
		Message:   "Привіт",
	}

	t.Run("exact email and message match is duplicate", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{messages: []domain.Message{stored}}, 0)
		assert.True(t, g.IsDuplicate("o@example.com", "Привіт"))
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{messages: []domain.Message{stored}}, 0)
		assert.True(t, g.IsDuplicate("o@example.com", "  Привіт \n"))
	})

	t.Run("comparison is case sensitive", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{messages: []domain.Message{stored}}, 0)
		assert.False(t, g.IsDuplicate("o@example.com", "привіт"))
	})

	t.Run("different email is not duplicate", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{messages: []domain.Message{stored}}, 0)
		assert.False(t, g.IsDuplicate("x@example.com", "Привіт"))
	})

	t.Run("store read error degrades to no duplicates", func(t *testing.T) {
		g := New(NewMemoryRateRecord(), &fakeRepo{readErr: errors.New("disk gone")}, 0)
		assert.False(t, g.IsDuplicate("o@example.com", "Привіт"))
	})
}
