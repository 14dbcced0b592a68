package service

import (
	"sort"
	"time"

	"agrofirma/backend/internal/domain"
	"agrofirma/backend/internal/storage"
)

// 管理页固定每页条数
const AdminPageSize = 10

// 日期参数接受的格式，按顺序尝试
var queryDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// AdminQueryService 负责管理页的留言查询与批量删除。
type AdminQueryService struct {
	repo storage.MessageRepository
}

// NewAdminQueryService 创建管理查询服务。
func NewAdminQueryService(repo storage.MessageRepository) *AdminQueryService {
	return &AdminQueryService{repo: repo}
}

// QueryInput 管理页查询参数。
type QueryInput struct {
	From string // 起始日期（含），解析失败按未填处理
	To   string // 截止日期（含），解析失败按未填处理
	Page int    // 1 起始页码，非法值按 1 处理
}

// QueryResult 管理页查询结果。
type QueryResult struct {
	Items         []domain.Message
	Page          int
	TotalPages    int
	TotalMessages int // 过滤后的总数，不是全量总数
	TotalStored   int // 过滤前的全量总数
	From          string
	To            string
}

// Query 加载全部留言，按日期区间过滤、新旧倒序排序并分页。
//
// 超出范围的页码返回空切片而不是错误，TotalPages 不变。
func (s *AdminQueryService) Query(input QueryInput) (*QueryResult, error) {
	messages, err := s.repo.ReadAll()
	if err != nil {
		messages = []domain.Message{}
	}

	from, hasFrom := parseQueryDate(input.From)
	to, hasTo := parseQueryDate(input.To)

	filtered := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if hasFrom && m.Timestamp.Before(from) {
			continue
		}
		if hasTo && m.Timestamp.After(to) {
			continue
		}
		filtered = append(filtered, m)
	}

	// 时间戳相同的留言保持原有相对顺序
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	page := input.Page
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + AdminPageSize - 1) / AdminPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * AdminPageSize
	end := start + AdminPageSize
	var items []domain.Message
	switch {
	case start >= total:
		items = []domain.Message{}
	case end > total:
		items = filtered[start:total]
	default:
		items = filtered[start:end]
	}

	return &QueryResult{
		Items:         items,
		Page:          page,
		TotalPages:    totalPages,
		TotalMessages: total,
		TotalStored:   len(messages),
		From:          input.From,
		To:            input.To,
	}, nil
}

// DeleteByIDs 从全量（未过滤）存储中删除指定 ID 的留言，返回实际删除条数。
//
// 不存在的 ID 静默忽略；空 ID 集为无操作但仍返回成功。
// 过滤与重写下沉到存储层的临界区内完成，这里不做读改写。
// 后备文档不存在时返回 storage.ErrStoreMissing。
func (s *AdminQueryService) DeleteByIDs(ids []string) (int, error) {
	if !s.repo.Exists() {
		return 0, storage.ErrStoreMissing
	}

	if len(ids) == 0 {
		return 0, nil
	}

	return s.repo.RemoveByIDs(ids)
}

// parseQueryDate 宽松解析日期参数，解析失败按未填处理。
func parseQueryDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
