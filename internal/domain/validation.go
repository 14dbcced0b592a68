package domain

import (
	"errors"
	"regexp"
	"strings"
)

// 验证相关的错误定义
var (
	ErrFieldsMissing = errors.New("required fields missing")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidPhone  = errors.New("invalid phone format")
)

// 正则表达式
var (
	// 邮箱验证：单个 @，@ 后必须带点
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 乌克兰手机号格式：+NN (NNN) NNN-NN-NN
	phoneRegex = regexp.MustCompile(`^\+\d{2} \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// Submission 表示一次待校验的联系表单提交。
type Submission struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate 校验提交内容。
//
// 规则：
//   - 四个字段去除首尾空白后均不能为空
//   - 邮箱必须符合基本格式
//   - 电话必须符合乌克兰手机号固定格式
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Phone) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Message) == "" {
		return ErrFieldsMissing
	}

	if !emailRegex.MatchString(strings.TrimSpace(s.Email)) {
		return ErrInvalidEmail
	}

	if !phoneRegex.MatchString(strings.TrimSpace(s.Phone)) {
		return ErrInvalidPhone
	}

	return nil
}
