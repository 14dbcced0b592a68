package mailer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"agrofirma/backend/internal/domain"
)

// 邮件显示名，与站点署名保持一致
const senderName = "AgroFirma"

// Config 定义外发邮件配置。
type Config struct {
	Host     string // SMTP 服务器地址
	Port     int    // SMTP 端口，STARTTLS 常用 587
	Username string // 认证账号，同时作为发件地址
	Password string
	Operator string // 运营收件地址，留空时发给 Username 自己
}

// Enabled 报告邮件通知是否已配置。
func (c Config) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// Mailer 通过 SMTP 发送运营通知与提交者回执。
type Mailer struct {
	cfg Config
}

// New 创建邮件发送器。
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// NotifyOperator 将新留言转发给运营邮箱。
func (m *Mailer) NotifyOperator(message *domain.Message) error {
	to := m.cfg.Operator
	if to == "" {
		to = m.cfg.Username
	}

	body := fmt.Sprintf("Ім’я: %s\nТелефон: %s\nEmail: %s\nПовідомлення:\n%s\n",
		message.Name, message.Phone, message.Email, message.Message)

	return m.send(to, "Нове повідомлення з сайту", body)
}

// AcknowledgeSubmitter 给提交者回执感谢邮件。
func (m *Mailer) AcknowledgeSubmitter(message *domain.Message) error {
	body := fmt.Sprintf("Шановний(а) %s,\n\n"+
		"Дякуємо за ваше повідомлення! Ми отримали його і зв’яжемося з вами найближчим часом.\n\n"+
		"З повагою,\nКоманда AgroFirma\n", message.Name)

	return m.send(message.Email, "Дякуємо за звернення!", body)
}

// send 组装 MIME 信件并通过 STARTTLS 提交。
func (m *Mailer) send(to, subject, body string) error {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: senderName, Address: m.cfg.Username}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return fmt.Errorf("failed to compose mail: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return fmt.Errorf("failed to write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish mail: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{to}, &buf); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
