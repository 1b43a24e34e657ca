package ordersvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

func TestCanTransition_ForwardEdges(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusInProgress))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusCompleted))
	assert.True(t, CanTransition(models.StatusCompleted, models.StatusArchived))
}

func TestCanTransition_BackwardEdges(t *testing.T) {
	// Nhân viên được hoàn tác đúng một bước
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusPending))
	assert.True(t, CanTransition(models.StatusCompleted, models.StatusInProgress))
	assert.True(t, CanTransition(models.StatusArchived, models.StatusCompleted))
}

func TestCanTransition_RejectsSkips(t *testing.T) {
	// Nhảy cóc qua nhiều cạnh đều bất hợp lệ
	assert.False(t, CanTransition(models.StatusPending, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusPending, models.StatusArchived))
	assert.False(t, CanTransition(models.StatusInProgress, models.StatusArchived))
	assert.False(t, CanTransition(models.StatusArchived, models.StatusPending))
	assert.False(t, CanTransition(models.StatusArchived, models.StatusInProgress))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusPending))
}

func TestCanTransition_RejectsSelfAndUnknown(t *testing.T) {
	for _, status := range models.AllStatuses {
		assert.False(t, CanTransition(status, status), "chuyển sang chính trạng thái hiện tại phải bị từ chối")
	}
	assert.False(t, CanTransition("không tồn tại", models.StatusPending))
	assert.False(t, CanTransition(models.StatusPending, "không tồn tại"))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(models.StatusPending))
	assert.True(t, CanDelete(models.StatusCompleted))
	assert.True(t, CanDelete(models.StatusArchived))

	// Đơn đang chế biến không bao giờ được xóa
	assert.False(t, CanDelete(models.StatusInProgress))
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range models.AllStatuses {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("pending"), "nhãn tiếng Anh không phải giá trị lưu trong DB")
}

func TestIsOvertime(t *testing.T) {
	now := time.Now()
	threshold := 5 * time.Minute

	fresh := models.Order{Status: models.StatusPending, CreatedAt: now.Add(-1 * time.Minute).UnixMilli()}
	stale := models.Order{Status: models.StatusPending, CreatedAt: now.Add(-10 * time.Minute).UnixMilli()}
	staleInProgress := models.Order{Status: models.StatusInProgress, CreatedAt: now.Add(-10 * time.Minute).UnixMilli()}

	assert.False(t, IsOvertime(fresh, now, threshold))
	assert.True(t, IsOvertime(stale, now, threshold))
	assert.False(t, IsOvertime(staleInProgress, now, threshold), "chỉ đơn 待處理 mới tính overtime")
}
