package ordersvc

import (
	models "github.com/hanguan2025/my-order-admin/internal/api/order/models"
	"github.com/hanguan2025/my-order-admin/internal/utility"
)

// Đồ thị trạng thái đơn hàng: 待處理 ⇄ 處理中 ⇄ 已完成 ⇄ 歸檔.
// Mỗi lần chuyển chỉ được đi đúng một cạnh, tiến hoặc lùi — nhân viên có thể
// "hoàn tác" một bước (ví dụ 已完成 → 處理中) nhưng không được nhảy cóc
// (待處理 → 歸檔 là bất hợp lệ).
var allowedTransitions = map[string][]string{
	models.StatusPending:    {models.StatusInProgress},
	models.StatusInProgress: {models.StatusPending, models.StatusCompleted},
	models.StatusCompleted:  {models.StatusInProgress, models.StatusArchived},
	models.StatusArchived:   {models.StatusCompleted},
}

// Các trạng thái cho phép xóa đơn. 處理中 không có mặt: không được âm thầm
// bỏ một món đang nấu dở.
var deletableStatuses = []string{
	models.StatusPending,
	models.StatusCompleted,
	models.StatusArchived,
}

// IsValidStatus kiểm tra một chuỗi có phải trạng thái đơn hợp lệ không.
func IsValidStatus(status string) bool {
	return utility.Contains(models.AllStatuses, status)
}

// CanTransition kiểm tra có được chuyển từ trạng thái from sang to không.
func CanTransition(from string, to string) bool {
	return utility.Contains(allowedTransitions[from], to)
}

// CanDelete kiểm tra đơn ở trạng thái status có được phép xóa không.
func CanDelete(status string) bool {
	return utility.Contains(deletableStatuses, status)
}
