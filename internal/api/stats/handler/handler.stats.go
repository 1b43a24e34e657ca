package statshdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	statsdto "github.com/hanguan2025/my-order-admin/internal/api/stats/dto"
	statssvc "github.com/hanguan2025/my-order-admin/internal/api/stats/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
)

// StatsHandler xử lý các request thống kê doanh thu và món
type StatsHandler struct {
	StatsService *statssvc.StatsService
}

// NewStatsHandler tạo mới StatsHandler
func NewStatsHandler() (*StatsHandler, error) {
	statsService, err := statssvc.NewStatsService()
	if err != nil {
		return nil, err
	}
	return &StatsHandler{StatsService: statsService}, nil
}

// parseQuery đọc và kiểm tra tham số window/date, trả về thời điểm neo
// trong múi giờ nhà hàng
func (h *StatsHandler) parseQuery(c fiber.Ctx) (string, time.Time, error) {
	input := statsdto.StatsQueryInput{
		Window: c.Query("window", statssvc.WindowDay),
		Date:   c.Query("date"),
	}

	if err := global.Validate.Struct(&input); err != nil {
		return "", time.Time{}, common.NewError(
			common.ErrCodeValidationInput,
			"Tham số thống kê không hợp lệ (window: day/month/year, date: 2006-01-02)",
			common.StatusBadRequest,
			err.Error(),
		)
	}

	loc := h.StatsService.Location()
	if input.Date == "" {
		return input.Window, time.Now().In(loc), nil
	}

	anchor, err := time.ParseInLocation("2006-01-02", input.Date, loc)
	if err != nil {
		return "", time.Time{}, common.ErrInvalidFormat
	}
	return input.Window, anchor, nil
}

// HandleRevenue trả về tổng doanh thu và số đơn của cửa sổ.
// GET /stats/revenue?window=day&date=2024-06-01
func (h *StatsHandler) HandleRevenue(c fiber.Ctx) error {
	window, anchor, err := h.parseQuery(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	summary, err := h.StatsService.Revenue(c.Context(), window, anchor)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, summary, nil)
	return nil
}

// HandleDishes trả về thống kê từng món của cửa sổ, doanh thu giảm dần.
// GET /stats/dishes?window=month&date=2024-06-01
func (h *StatsHandler) HandleDishes(c fiber.Ctx) error {
	window, anchor, err := h.parseQuery(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	stats, err := h.StatsService.Dishes(c.Context(), window, anchor)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, stats, nil)
	return nil
}
