package guard

import (
	"sync"
	"time"
)

// MemoryRateRecord 进程内的提交时间记录。
//
// 没有淘汰策略，随进程生命周期无界增长；进程重启即全部清零。
// 联系表单的邮箱基数很小，这里接受这个取舍。
type MemoryRateRecord struct {
	mu   sync.RWMutex
	last map[string]time.Time
}

// NewMemoryRateRecord 创建内存记录实例。
func NewMemoryRateRecord() *MemoryRateRecord {
	return &MemoryRateRecord{last: make(map[string]time.Time)}
}

// LastAccepted 返回邮箱最近一次被接受的时间。
func (r *MemoryRateRecord) LastAccepted(email string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.last[email]
	return t, ok
}

// Record 更新邮箱的最近接受时间。
func (r *MemoryRateRecord) Record(email string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[email] = now
}
