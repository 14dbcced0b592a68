package guard

import (
	"strings"
	"time"

	"agrofirma/backend/internal/storage"
)

// 冷却窗口：同一邮箱两次被接受的提交之间的最小间隔
const DefaultCooldown = 10 * time.Second

// RateRecord 记录每个邮箱最近一次被接受提交的时间。
//
// 做成可注入的能力接口：默认内存实现随进程重启清零，
// 多实例部署时可换成 Redis 实现共享冷却状态。
type RateRecord interface {
	// LastAccepted 返回邮箱最近一次被接受的时间，从未提交过则 ok 为 false。
	LastAccepted(email string) (t time.Time, ok bool)
	// Record 将邮箱的最近接受时间更新为 now。
	Record(email string, now time.Time)
}

// Guard 决定一次提交是被拒绝（刷屏/重复）还是放行。
type Guard struct {
	rates    RateRecord
	repo     storage.MessageRepository
	cooldown time.Duration
}

// New 创建提交守卫。cooldown 为零时使用默认 10 秒。
func New(rates RateRecord, repo storage.MessageRepository, cooldown time.Duration) *Guard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Guard{rates: rates, repo: repo, cooldown: cooldown}
}

// IsRateLimited 报告该邮箱是否仍处于冷却窗口内。
func (g *Guard) IsRateLimited(email string, now time.Time) bool {
	last, ok := g.rates.LastAccepted(email)
	if !ok {
		return false
	}
	return now.Sub(last) < g.cooldown
}

// IsDuplicate 报告提交是否与已存留言重复。
//
// 判定条件：邮箱精确匹配，且正文去除首尾空白后精确匹配。
// 大小写敏感，不做任何模糊匹配。存储读取失败按无数据处理。
func (g *Guard) IsDuplicate(email, message string) bool {
	messages, err := g.repo.ReadAll()
	if err != nil {
		return false
	}

	trimmed := strings.TrimSpace(message)
	for _, m := range messages {
		if m.Email == email && strings.TrimSpace(m.Message) == trimmed {
			return true
		}
	}
	return false
}

// RecordAccepted 更新邮箱的最近接受时间。
//
// 必须在全部检查通过之后、持久化尝试之前调用：
// 即使持久化失败，冷却名额也已消耗。
func (g *Guard) RecordAccepted(email string, now time.Time) {
	g.rates.Record(email, now)
}
