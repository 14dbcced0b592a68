package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrofirma/backend/internal/domain"
)

// 测试辅助函数：创建临时数据目录上的存储实例
func setupTestStore(t *testing.T) (*Store, string) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir, zap.NewNop())
	require.NoError(t, err)

	return store, tempDir
}

// 测试辅助函数：构造一条留言
func testMessage(id string, at time.Time) domain.Message {
	return domain.Message{
		ID:        id,
		Timestamp: at,
		Name:      "Олена",
		Phone:     "+38 (099) 123-45-67",
		Email:     "o@example.com",
		Message:   "Привіт",
	}
}

// TestNewStore 测试创建文件存储实例
func TestNewStore(t *testing.T) {
	t.Run("creates data directory if missing", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "nested", "data")
		store, err := NewStore(base, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, store)

		_, err = os.Stat(base)
		assert.NoError(t, err)
	})
}

// TestReadAll 测试读取全部留言的降级行为
func TestReadAll(t *testing.T) {
	t.Run("missing document reads as empty", func(t *testing.T) {
		store, _ := setupTestStore(t)
		messages, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("blank document reads as empty", func(t *testing.T) {
		store, dir := setupTestStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.json"), []byte("  \n"), 0644))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("corrupt document reads as empty", func(t *testing.T) {
		store, dir := setupTestStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.json"), []byte("{not json"), 0644))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

// TestAppend 测试追加写入
func TestAppend(t *testing.T) {
	store, _ := setupTestStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("append grows sequence by one, last element equals entry", func(t *testing.T) {
		first := testMessage("1", now)
		require.NoError(t, store.Append(&first))

		second := testMessage("2", now.Add(time.Second))
		second.Message = "Друге повідомлення"
		require.NoError(t, store.Append(&second))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, second, messages[1])
	})

	t.Run("append preserves insertion order, not timestamp order", func(t *testing.T) {
		older := testMessage("0", now.Add(-time.Hour))
		require.NoError(t, store.Append(&older))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "0", messages[2].ID)
	})
}

// TestReplaceAll 测试整体覆盖
func TestReplaceAll(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("round trip returns exactly the given sequence", func(t *testing.T) {
		store, _ := setupTestStore(t)
		entries := []domain.Message{
			testMessage("b", now.Add(time.Minute)),
			testMessage("a", now),
		}
		require.NoError(t, store.ReplaceAll(entries))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, entries, messages)
	})

	t.Run("empty sequence writes empty document", func(t *testing.T) {
		store, _ := setupTestStore(t)
		first := testMessage("1", now)
		require.NoError(t, store.Append(&first))

		require.NoError(t, store.ReplaceAll(nil))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, messages)
		assert.True(t, store.Exists())
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		store, dir := setupTestStore(t)
		require.NoError(t, store.ReplaceAll([]domain.Message{testMessage("1", now)}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file: %s", e.Name())
		}
	})

	t.Run("interrupted write keeps prior state", func(t *testing.T) {
		store, dir := setupTestStore(t)
		entries := []domain.Message{testMessage("keep", now)}
		require.NoError(t, store.ReplaceAll(entries))

		// 让目标路径变成非空目录，换名必然失败
		target := filepath.Join(dir, "messages.json")
		backup, err := os.ReadFile(target)
		require.NoError(t, err)
		require.NoError(t, os.Remove(target))
		require.NoError(t, os.MkdirAll(filepath.Join(target, "block"), 0755))

		err = store.ReplaceAll([]domain.Message{testMessage("new", now)})
		assert.Error(t, err)

		// 恢复后先前的内容必须原样可读
		require.NoError(t, os.RemoveAll(target))
		require.NoError(t, os.WriteFile(target, backup, 0644))

		messages, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "keep", messages[0].ID)
	})
}

// TestRemoveByIDs 测试按 ID 删除
func TestRemoveByIDs(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("removes only the named ids and reports the count", func(t *testing.T) {
		store, _ := setupTestStore(t)
		for _, id := range []string{"a", "b", "c"} {
			m := testMessage(id, now)
			require.NoError(t, store.Append(&m))
		}

		removed, err := store.RemoveByIDs([]string{"b", "nope"})
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		messages, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "a", messages[0].ID)
		assert.Equal(t, "c", messages[1].ID)
	})

	t.Run("concurrent append during removal is never lost", func(t *testing.T) {
		store, _ := setupTestStore(t)
		for _, id := range []string{"a", "b"} {
			m := testMessage(id, now)
			require.NoError(t, store.Append(&m))
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			m := testMessage("concurrent", now.Add(time.Second))
			assert.NoError(t, store.Append(&m))
		}()

		removed, err := store.RemoveByIDs([]string{"a"})
		<-done
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		messages, err := store.ReadAll()
		require.NoError(t, err)
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		assert.NotContains(t, ids, "a")
		assert.Contains(t, ids, "b")
		assert.Contains(t, ids, "concurrent")
	})
}

// TestExists 测试文档存在性判断
func TestExists(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.False(t, store.Exists())

	first := testMessage("1", time.Now().UTC())
	require.NoError(t, store.Append(&first))
	assert.True(t, store.Exists())
}

// TestAuditLog 测试审计日志追加
func TestAuditLog(t *testing.T) {
	dir := t.TempDir()
	audit := NewAuditLog(dir)

	msg := testMessage("1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, audit.Record(&msg))
	require.NoError(t, audit.Record(&msg))

	data, err := os.ReadFile(filepath.Join(dir, "messages.log"))
	require.NoError(t, err)

	content := string(data)
	assert.Equal(t, 2, strings.Count(content, "-------------------------------"))
	assert.Contains(t, content, "Ім’я: Олена")
	assert.Contains(t, content, "2025-06-01T12:00:00Z")
}
