// Package statssvc - thống kê doanh thu và món bán chạy theo cửa sổ lịch
// (ngày/tháng/năm). Phần lõi là các hàm thuần trên danh sách đơn,
// tách khỏi tầng đọc database để test được trực tiếp.
package statssvc

import (
	"sort"
	"time"

	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

// Loại cửa sổ lịch.
const (
	WindowDay   = "day"
	WindowMonth = "month"
	WindowYear  = "year"
)

// Chỉ đơn đã hoàn thành hoặc lưu trữ mới được tính doanh thu.
// Đơn 待處理/處理中 không bao giờ vào thống kê, bất kể ngày tạo.
var eligibleStatuses = map[string]bool{
	ordermodels.StatusCompleted: true,
	ordermodels.StatusArchived:  true,
}

// RevenueSummary là tổng doanh thu của một cửa sổ.
type RevenueSummary struct {
	Sum   float64 `json:"sum"`
	Count int64   `json:"count"`
}

// DishStat là thống kê một món trong cửa sổ.
type DishStat struct {
	Name       string  `json:"name"`
	Emoji      string  `json:"emoji,omitempty"`
	Count      int64   `json:"count"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// sameWindow kiểm tra hai thời điểm có cùng cửa sổ lịch không,
// cả hai đã được chiếu về cùng một múi giờ.
func sameWindow(a time.Time, b time.Time, kind string) bool {
	switch kind {
	case WindowDay:
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	case WindowMonth:
		return a.Year() == b.Year() && a.Month() == b.Month()
	case WindowYear:
		return a.Year() == b.Year()
	default:
		return false
	}
}

// SelectWindow lọc danh sách đơn về các đơn đủ điều kiện thống kê:
// trạng thái 已完成/歸檔 và createdAt rơi vào cửa sổ lịch của anchor,
// chiếu theo múi giờ loc.
func SelectWindow(orders []ordermodels.Order, kind string, anchor time.Time, loc *time.Location) []ordermodels.Order {
	anchorLocal := anchor.In(loc)

	var selected []ordermodels.Order
	for _, order := range orders {
		if !eligibleStatuses[order.Status] {
			continue
		}
		created := time.UnixMilli(order.CreatedAt).In(loc)
		if sameWindow(created, anchorLocal, kind) {
			selected = append(selected, order)
		}
	}
	return selected
}

// AggregateRevenue cộng totalAmount trên các đơn đã chọn.
// totalAmount thiếu là zero value 0, không bao giờ lỗi.
func AggregateRevenue(selected []ordermodels.Order) RevenueSummary {
	summary := RevenueSummary{Count: int64(len(selected))}
	for _, order := range selected {
		summary.Sum += order.TotalAmount
	}
	return summary
}

// AggregateDishes gom các món trong đơn đã chọn theo tên: đếm số lần gọi,
// cộng finalPrice (thiếu tính 0), giữ emoji thấy đầu tiên. Kết quả sắp theo
// doanh thu giảm dần, hòa thì theo thứ tự xuất hiện đầu tiên; percentage là
// phần trăm trên doanh thu cửa sổ, bằng 0 khi cửa sổ không có doanh thu.
func AggregateDishes(selected []ordermodels.Order) []DishStat {
	windowRevenue := AggregateRevenue(selected).Sum

	index := make(map[string]int)
	var stats []DishStat
	for _, order := range selected {
		for _, item := range order.Items {
			i, seen := index[item.Name]
			if !seen {
				i = len(stats)
				index[item.Name] = i
				stats = append(stats, DishStat{Name: item.Name, Emoji: item.Emoji})
			}
			stats[i].Count++
			stats[i].Revenue += item.FinalPrice
		}
	}

	for i := range stats {
		if windowRevenue != 0 {
			stats[i].Percentage = 100 * stats[i].Revenue / windowRevenue
		}
	}

	// Sắp xếp ổn định: hòa doanh thu giữ nguyên thứ tự xuất hiện
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})

	return stats
}
