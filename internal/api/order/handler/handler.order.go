package orderhdl

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	models "github.com/hanguan2025/my-order-admin/internal/api/order/models"
	orderdto "github.com/hanguan2025/my-order-admin/internal/api/order/dto"
	ordersvc "github.com/hanguan2025/my-order-admin/internal/api/order/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// OrderHandler xử lý các request liên quan đến đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo mới OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}

	handler := &OrderHandler{
		OrderService: orderService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput](orderService.BaseServiceMongoImpl)
	return handler, nil
}

// parseOrderID đọc :id từ URL
func parseOrderID(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID đơn hàng không hợp lệ",
			common.StatusBadRequest,
			nil,
		)
	}
	return id, nil
}

// HandleTransition chuyển trạng thái một đơn theo đồ thị trạng thái.
// PUT /orders/:id/status
func (h *OrderHandler) HandleTransition(c fiber.Ctx) error {
	id, err := parseOrderID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	input := new(orderdto.TransitionInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	order, previous, err := h.OrderService.TransitionStatus(h.StaffContext(c), id, input.Status)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogStatusChange(id.Hex(), previous, input.Status, c)

	basehdl.HandleResponse(c, order, nil)
	return nil
}

// HandleDelete xóa một đơn. Yêu cầu ?confirm=true; đơn 處理中 bị từ chối.
// DELETE /orders/:id?confirm=true
func (h *OrderHandler) HandleDelete(c fiber.Ctx) error {
	id, err := parseOrderID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	confirm, _ := strconv.ParseBool(c.Query("confirm", "false"))

	order, err := h.OrderService.DeleteOrder(h.StaffContext(c), id, confirm)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogCRUD("delete", "order", id.Hex(), c, map[string]interface{}{
		"status": order.Status,
		"table":  order.TableNum,
	})

	basehdl.HandleResponse(c, fiber.Map{"deleted": id.Hex()}, nil)
	return nil
}

// HandleCounts trả về số đơn theo từng trạng thái (cho tab lọc).
// GET /orders/counts
func (h *OrderHandler) HandleCounts(c fiber.Ctx) error {
	counts, err := h.OrderService.CountsByStatus(c.Context())
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, counts, nil)
	return nil
}

// HandleList trả về danh sách đơn mới nhất trước, lọc theo trạng thái,
// kèm cờ overtime.
// GET /orders/list?status=待處理&page=1&limit=50
func (h *OrderHandler) HandleList(c fiber.Ctx) error {
	status := c.Query("status")
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)

	result, err := h.OrderService.ListOrders(c.Context(), status, page, limit)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, result, nil)
	return nil
}
