package menuhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	menudto "github.com/hanguan2025/my-order-admin/internal/api/menu/dto"
	models "github.com/hanguan2025/my-order-admin/internal/api/menu/models"
	menusvc "github.com/hanguan2025/my-order-admin/internal/api/menu/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// MenuHandler xử lý các request liên quan đến thực đơn
type MenuHandler struct {
	*basehdl.BaseHandler[models.MenuItem, menudto.MenuCreateInput, menudto.MenuUpdateInput]
	MenuService *menusvc.MenuService
}

// NewMenuHandler tạo mới MenuHandler
func NewMenuHandler() (*MenuHandler, error) {
	menuService, err := menusvc.NewMenuService()
	if err != nil {
		return nil, err
	}

	handler := &MenuHandler{
		MenuService: menuService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[models.MenuItem, menudto.MenuCreateInput, menudto.MenuUpdateInput](menuService)
	return handler, nil
}

// HandleReorder kéo một món đến vị trí mới trong cùng category.
// Toàn bộ sortOrder bị ảnh hưởng được ghi trong một transaction.
// PUT /menu/reorder
func (h *MenuHandler) HandleReorder(c fiber.Ctx) error {
	input := new(menudto.ReorderInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	movedID, err := primitive.ObjectIDFromHex(input.MovedID)
	if err != nil {
		basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}
	targetID, err := primitive.ObjectIDFromHex(input.TargetID)
	if err != nil {
		basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	if err := h.MenuService.Reorder(h.StaffContext(c), movedID, targetID, input.PlaceAfter); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAction("menu_reorder", c, map[string]interface{}{
		"moved_id":    input.MovedID,
		"target_id":   input.TargetID,
		"place_after": input.PlaceAfter,
	})

	basehdl.HandleResponse(c, fiber.Map{"reordered": true}, nil)
	return nil
}
