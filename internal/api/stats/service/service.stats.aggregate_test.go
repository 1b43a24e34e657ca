package statssvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

func taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)
	return loc
}

func orderAt(t *testing.T, loc *time.Location, status string, day string, total float64, items ...ordermodels.LineItem) ordermodels.Order {
	t.Helper()
	created, err := time.ParseInLocation("2006-01-02 15:04", day, loc)
	require.NoError(t, err)
	return ordermodels.Order{
		Status:      status,
		TotalAmount: total,
		Items:       items,
		CreatedAt:   created.UnixMilli(),
	}
}

func dish(name string, price float64) ordermodels.LineItem {
	return ordermodels.LineItem{Name: name, FinalPrice: price}
}

// Bộ dữ liệu cố định 5 đơn dùng cho các test xác định
func fixtureOrders(t *testing.T, loc *time.Location) []ordermodels.Order {
	return []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 11:00", 300, dish("Kimchi Stew", 300)),
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 12:30", 150, dish("Kimchi Stew", 150)),
		orderAt(t, loc, ordermodels.StatusArchived, "2024-06-01 18:00", 200, dish("Bibimbap", 200)),
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-07-01 11:00", 500, dish("Kimchi Stew", 500)),
		orderAt(t, loc, ordermodels.StatusPending, "2024-06-01 19:00", 999, dish("Bibimbap", 999)),
	}
}

func anchorDate(t *testing.T, loc *time.Location, day string) time.Time {
	t.Helper()
	anchor, err := time.ParseInLocation("2006-01-02", day, loc)
	require.NoError(t, err)
	return anchor
}

func TestSelectWindow_ExcludesPendingAndInProgress(t *testing.T) {
	loc := taipei(t)
	anchor := anchorDate(t, loc, "2024-06-01")

	orders := []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusPending, "2024-06-01 11:00", 100),
		orderAt(t, loc, ordermodels.StatusInProgress, "2024-06-01 11:00", 100),
	}

	// Đơn chưa hoàn thành không bao giờ vào thống kê, kể cả đúng ngày
	for _, kind := range []string{WindowDay, WindowMonth, WindowYear} {
		assert.Empty(t, SelectWindow(orders, kind, anchor, loc))
	}
}

func TestSelectWindow_DayFixture(t *testing.T) {
	loc := taipei(t)
	orders := fixtureOrders(t, loc)

	selected := SelectWindow(orders, WindowDay, anchorDate(t, loc, "2024-06-01"), loc)

	// Đúng 3 đơn 已完成/歸檔 của ngày 01-06; đơn tháng 7 và đơn 待處理 bị loại
	require.Len(t, selected, 3)
	for _, order := range selected {
		assert.NotEqual(t, ordermodels.StatusPending, order.Status)
	}
}

func TestSelectWindow_MonthAndYear(t *testing.T) {
	loc := taipei(t)
	orders := fixtureOrders(t, loc)

	month := SelectWindow(orders, WindowMonth, anchorDate(t, loc, "2024-06-15"), loc)
	assert.Len(t, month, 3, "cửa sổ tháng 6 chứa cả 3 đơn của tháng")

	year := SelectWindow(orders, WindowYear, anchorDate(t, loc, "2024-12-31"), loc)
	assert.Len(t, year, 4, "cửa sổ năm 2024 thêm cả đơn tháng 7")
}

func TestSelectWindow_TimezoneBoundary(t *testing.T) {
	loc := taipei(t)

	// 2024-06-01 23:30 giờ Đài Bắc = 15:30 UTC cùng ngày; nếu chiếu sai múi
	// giờ UTC+? đơn gần nửa đêm sẽ rơi nhầm ngày
	lateNight := orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 23:30", 100)

	selected := SelectWindow([]ordermodels.Order{lateNight}, WindowDay, anchorDate(t, loc, "2024-06-01"), loc)
	assert.Len(t, selected, 1)

	selected = SelectWindow([]ordermodels.Order{lateNight}, WindowDay, anchorDate(t, loc, "2024-06-02"), loc)
	assert.Empty(t, selected)
}

func TestAggregateRevenue_Fixture(t *testing.T) {
	loc := taipei(t)
	selected := SelectWindow(fixtureOrders(t, loc), WindowDay, anchorDate(t, loc, "2024-06-01"), loc)

	summary := AggregateRevenue(selected)
	assert.Equal(t, float64(650), summary.Sum)
	assert.Equal(t, int64(3), summary.Count)
}

func TestAggregateRevenue_MissingTotalIsZero(t *testing.T) {
	loc := taipei(t)
	orders := []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 11:00", 0), // totalAmount thiếu → 0
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 12:00", 100),
	}

	summary := AggregateRevenue(orders)
	assert.Equal(t, float64(100), summary.Sum)
	assert.Equal(t, int64(2), summary.Count)
}

func TestAggregateDishes_Fixture(t *testing.T) {
	loc := taipei(t)
	selected := SelectWindow(fixtureOrders(t, loc), WindowDay, anchorDate(t, loc, "2024-06-01"), loc)

	stats := AggregateDishes(selected)
	require.Len(t, stats, 2)

	assert.Equal(t, "Kimchi Stew", stats[0].Name)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, float64(450), stats[0].Revenue)
	assert.InDelta(t, 69.2, stats[0].Percentage, 0.1)

	assert.Equal(t, "Bibimbap", stats[1].Name)
	assert.Equal(t, int64(1), stats[1].Count)
	assert.Equal(t, float64(200), stats[1].Revenue)
	assert.InDelta(t, 30.8, stats[1].Percentage, 0.1)
}

func TestAggregateDishes_TieBrokenByFirstSeen(t *testing.T) {
	loc := taipei(t)
	orders := []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 11:00", 200,
			dish("Trà sữa", 100), dish("Cà phê", 100)),
	}

	stats := AggregateDishes(orders)
	require.Len(t, stats, 2)
	assert.Equal(t, "Trà sữa", stats[0].Name, "hòa doanh thu thì món xuất hiện trước xếp trước")
	assert.Equal(t, "Cà phê", stats[1].Name)
}

func TestAggregateDishes_ZeroRevenueWindow(t *testing.T) {
	loc := taipei(t)
	orders := []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 11:00", 0, dish("Nước lọc", 0)),
	}

	stats := AggregateDishes(orders)
	require.Len(t, stats, 1)
	assert.Equal(t, float64(0), stats[0].Percentage, "cửa sổ không có doanh thu thì percentage là 0, không chia cho 0")
}

func TestAggregateDishes_KeepsFirstSeenEmoji(t *testing.T) {
	loc := taipei(t)
	orders := []ordermodels.Order{
		orderAt(t, loc, ordermodels.StatusCompleted, "2024-06-01 11:00", 100,
			ordermodels.LineItem{Name: "Phở", Emoji: "🍜", FinalPrice: 60},
			ordermodels.LineItem{Name: "Phở", Emoji: "🥣", FinalPrice: 40}),
	}

	stats := AggregateDishes(orders)
	require.Len(t, stats, 1)
	assert.Equal(t, "🍜", stats[0].Emoji)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, float64(100), stats[0].Revenue)
}

func TestAggregation_Deterministic(t *testing.T) {
	loc := taipei(t)
	orders := fixtureOrders(t, loc)
	anchor := anchorDate(t, loc, "2024-06-01")

	first := AggregateDishes(SelectWindow(orders, WindowDay, anchor, loc))
	for i := 0; i < 10; i++ {
		again := AggregateDishes(SelectWindow(orders, WindowDay, anchor, loc))
		assert.Equal(t, first, again, "cùng đầu vào phải cho cùng kết quả, cùng thứ tự")
	}
}
