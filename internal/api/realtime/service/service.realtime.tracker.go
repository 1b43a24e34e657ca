// Package realtimesvc - tầng realtime: theo dõi đơn mới, hub phát sự kiện
// SSE và watcher đọc change stream của MongoDB.
package realtimesvc

import (
	"sync"

	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

// OrderRef là tham chiếu tối thiểu tới một đơn trong snapshot.
type OrderRef struct {
	ID     string
	Status string
}

// PendingTracker phát hiện đơn 待處理 mới đến để báo chuông, đảm bảo đúng
// một lần cho mỗi đơn: một đơn đã báo rồi thì snapshot giao lại y nguyên
// hay sự kiện trùng từ nguồn khác đều không báo thêm.
//
// Nguồn chính là changelog added/modified/removed của change stream
// (ObserveArrival); khi stream (khởi động lại và) chỉ có snapshot, điều
// kiện thay thế là "id chưa có trong snapshot trước" (ObserveSnapshot).
type PendingTracker struct {
	mu     sync.Mutex
	primed bool
	known  map[string]bool
}

// NewPendingTracker tạo tracker rỗng, chưa prime.
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{known: make(map[string]bool)}
}

// ObserveArrival ghi nhận một đơn vừa đến qua changelog. Trả về true nếu
// cần báo chuông: đơn chưa từng thấy và đang 待處理.
func (t *PendingTracker) ObserveArrival(id string, status string) bool {
	if id == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.known[id] {
		return false
	}
	t.known[id] = true
	t.primed = true

	return status == ordermodels.StatusPending
}

// ObserveSnapshot ghi nhận một snapshot đầy đủ, trả về id các đơn 待處理
// cần báo chuông (chưa có trong snapshot trước). Snapshot đầu tiên chỉ
// prime tập đã biết, không báo gì — các đơn đang chờ từ trước không phải
// đơn "mới đến".
func (t *PendingTracker) ObserveSnapshot(refs []OrderRef) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var alerts []string
	for _, ref := range refs {
		if ref.ID == "" || t.known[ref.ID] {
			continue
		}
		t.known[ref.ID] = true
		if t.primed && ref.Status == ordermodels.StatusPending {
			alerts = append(alerts, ref.ID)
		}
	}
	t.primed = true

	return alerts
}

// Forget bỏ một đơn khỏi tập đã biết (khi đơn bị xóa). Nếu id đó quay lại
// ở trạng thái 待處理 thì được coi là đơn mới.
func (t *PendingTracker) Forget(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.known, id)
}
