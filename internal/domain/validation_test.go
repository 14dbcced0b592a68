package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubmissionValidate 测试联系表单提交校验
func TestSubmissionValidate(t *testing.T) {
	valid := Submission{
		Name:    "Олена",
		Phone:   "+38 (099) 123-45-67",
		Email:   "o@example.com",
		Message: "Привіт",
	}

	t.Run("valid submission", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		cases := []Submission{
			{Phone: valid.Phone, Email: valid.Email, Message: valid.Message},
			{Name: valid.Name, Email: valid.Email, Message: valid.Message},
			{Name: valid.Name, Phone: valid.Phone, Message: valid.Message},
			{Name: valid.Name, Phone: valid.Phone, Email: valid.Email},
		}
		for _, s := range cases {
			assert.ErrorIs(t, s.Validate(), ErrFieldsMissing)
		}
	})

	t.Run("whitespace-only field counts as missing", func(t *testing.T) {
		s := valid
		s.Message = "   \t "
		assert.ErrorIs(t, s.Validate(), ErrFieldsMissing)
	})

	t.Run("invalid emails", func(t *testing.T) {
		for _, email := range []string{
			"plainaddress",
			"missing-at.example.com",
			"two@@example.com",
			"nodot@example",
			"spaces in@example.com",
		} {
			s := valid
			s.Email = email
			assert.ErrorIs(t, s.Validate(), ErrInvalidEmail, "email: %s", email)
		}
	})

	t.Run("invalid phones", func(t *testing.T) {
		for _, phone := range []string{
			"0991234567",
			"+380991234567",
			"+38 (99) 123-45-67",
			"+38 (099) 1234-56-7",
			"+38(099) 123-45-67",
			"+38 (099) 123 45 67",
		} {
			s := valid
			s.Phone = phone
			assert.ErrorIs(t, s.Validate(), ErrInvalidPhone, "phone: %s", phone)
		}
	})
}

// TestNewMessageID 测试留言 ID 生成格式
func TestNewMessageID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewMessageID(at)
	require.Equal(t, "1748779200000", id)
}
