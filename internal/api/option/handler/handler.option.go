package optionhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	optiondto "github.com/hanguan2025/my-order-admin/internal/api/option/dto"
	models "github.com/hanguan2025/my-order-admin/internal/api/option/models"
	optionsvc "github.com/hanguan2025/my-order-admin/internal/api/option/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// OptionHandler xử lý request cho một collection lựa chọn (mains hoặc extras)
type OptionHandler struct {
	*basehdl.BaseHandler[models.OptionItem, optiondto.OptionCreateInput, optiondto.OptionUpdateInput]
	OptionService *optionsvc.OptionService
}

// newOptionHandler tạo OptionHandler trên service cho trước
func newOptionHandler(service *optionsvc.OptionService, err error) (*OptionHandler, error) {
	if err != nil {
		return nil, err
	}

	handler := &OptionHandler{
		OptionService: service,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[models.OptionItem, optiondto.OptionCreateInput, optiondto.OptionUpdateInput](service)
	return handler, nil
}

// NewMainsHandler tạo handler cho collection mains.
func NewMainsHandler() (*OptionHandler, error) {
	return newOptionHandler(optionsvc.NewMainsService())
}

// NewExtrasHandler tạo handler cho collection extras.
func NewExtrasHandler() (*OptionHandler, error) {
	return newOptionHandler(optionsvc.NewExtrasService())
}

// HandleReorder kéo một lựa chọn đến vị trí mới trong cùng nhóm.
// PUT /mains/reorder, PUT /extras/reorder
func (h *OptionHandler) HandleReorder(c fiber.Ctx) error {
	input := new(optiondto.ReorderInput)
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

	if err := h.OptionService.Reorder(h.StaffContext(c), movedID, targetID, input.PlaceAfter); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAction("option_reorder", c, map[string]interface{}{
		"collection":  h.OptionService.Collection().Name(),
		"moved_id":    input.MovedID,
		"target_id":   input.TargetID,
		"place_after": input.PlaceAfter,
	})

	basehdl.HandleResponse(c, fiber.Map{"reordered": true}, nil)
	return nil
}
