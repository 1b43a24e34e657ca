package realtimesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

func TestPendingTracker_NewPendingInSnapshotFiresOnce(t *testing.T) {
	tracker := NewPendingTracker()

	// Snapshot đầu: chỉ prime, không báo
	first := []OrderRef{{ID: "a", Status: ordermodels.StatusPending}}
	assert.Empty(t, tracker.ObserveSnapshot(first), "snapshot đầu tiên không được báo chuông")

	// Đơn X xuất hiện ở snapshot sau: báo đúng một lần
	second := []OrderRef{
		{ID: "a", Status: ordermodels.StatusPending},
		{ID: "x", Status: ordermodels.StatusPending},
	}
	alerts := tracker.ObserveSnapshot(second)
	require.Equal(t, []string{"x"}, alerts)

	// Giao lại snapshot y nguyên: không báo thêm lần nào
	assert.Empty(t, tracker.ObserveSnapshot(second))
	assert.Empty(t, tracker.ObserveSnapshot(second))
}

func TestPendingTracker_NonPendingArrivalNoAlert(t *testing.T) {
	tracker := NewPendingTracker()
	tracker.ObserveSnapshot(nil) // prime

	alerts := tracker.ObserveSnapshot([]OrderRef{{ID: "y", Status: ordermodels.StatusCompleted}})
	assert.Empty(t, alerts, "đơn mới nhưng không 待處理 thì không báo")
}

func TestPendingTracker_ArrivalViaChangelog(t *testing.T) {
	tracker := NewPendingTracker()

	assert.True(t, tracker.ObserveArrival("x", ordermodels.StatusPending))
	assert.False(t, tracker.ObserveArrival("x", ordermodels.StatusPending), "sự kiện trùng không báo lại")
	assert.False(t, tracker.ObserveArrival("y", ordermodels.StatusInProgress))
}

func TestPendingTracker_ChangelogAndSnapshotDedupe(t *testing.T) {
	tracker := NewPendingTracker()
	tracker.ObserveSnapshot(nil) // prime

	// Đơn đến qua change stream, sau đó snapshot chứa cùng đơn: vẫn đúng một lần
	require.True(t, tracker.ObserveArrival("x", ordermodels.StatusPending))
	alerts := tracker.ObserveSnapshot([]OrderRef{{ID: "x", Status: ordermodels.StatusPending}})
	assert.Empty(t, alerts)
}

func TestPendingTracker_ForgetAllowsReArrival(t *testing.T) {
	tracker := NewPendingTracker()
	tracker.ObserveSnapshot(nil) // prime

	require.True(t, tracker.ObserveArrival("x", ordermodels.StatusPending))
	tracker.Forget("x")
	assert.True(t, tracker.ObserveArrival("x", ordermodels.StatusPending), "đơn đã xóa quay lại được coi là mới")
}
