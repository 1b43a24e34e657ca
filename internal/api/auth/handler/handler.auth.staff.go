package authhdl

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/hanguan2025/my-order-admin/internal/api/auth/dto"
	models "github.com/hanguan2025/my-order-admin/internal/api/auth/models"
	authsvc "github.com/hanguan2025/my-order-admin/internal/api/auth/service"
	basehdl "github.com/hanguan2025/my-order-admin/internal/api/base/handler"
	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// StaffHandler xử lý các request liên quan đến tài khoản nhân viên
type StaffHandler struct {
	*basehdl.BaseHandler[models.Staff, authdto.StaffCreateInput, authdto.StaffChangeInfoInput]
	StaffService *authsvc.StaffService
}

// NewStaffHandler tạo mới StaffHandler
func NewStaffHandler() (*StaffHandler, error) {
	staffService, err := authsvc.NewStaffService()
	if err != nil {
		return nil, err
	}

	handler := &StaffHandler{
		StaffService: staffService,
	}
	handler.BaseHandler = basehdl.NewBaseHandler[models.Staff, authdto.StaffCreateInput, authdto.StaffChangeInfoInput](staffService.BaseServiceMongoImpl)
	return handler, nil
}

// sanitizeStaff xóa các trường nhạy cảm trước khi trả về client
func sanitizeStaff(staff models.Staff) models.Staff {
	staff.Password = ""
	staff.Token = ""
	staff.Tokens = nil
	return staff
}

// currentStaffID lấy ObjectID của nhân viên đang đăng nhập từ Locals
func currentStaffID(c fiber.Ctx) (primitive.ObjectID, error) {
	staffIDHex, ok := c.Locals("staffID").(string)
	if !ok || staffIDHex == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	return primitive.ObjectIDFromHex(staffIDHex)
}

// bearerToken lấy token từ Authorization header (đã được middleware xác thực)
func bearerToken(c fiber.Ctx) string {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// HandleLogin xử lý đăng nhập nhân viên
// POST /auth/login
func (h *StaffHandler) HandleLogin(c fiber.Ctx) error {
	input := new(authdto.StaffLoginInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.Login(c.Context(), input)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"username": input.Username,
			"error":    err.Error(),
		}).Warn("[AUTH] Đăng nhập thất bại")
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"staff_id": staff.ID.Hex(),
		"username": staff.Username,
	}).Info("[AUTH] Đăng nhập thành công")

	logger.LogAuth("login", c, map[string]interface{}{
		"staff_id": staff.ID.Hex(),
		"username": staff.Username,
	})

	basehdl.HandleResponse(c, fiber.Map{
		"token": staff.Token,
		"staff": sanitizeStaff(*staff),
	}, nil)
	return nil
}

// HandleLogout xử lý đăng xuất: thu hồi token theo hwid
// POST /auth/logout
func (h *StaffHandler) HandleLogout(c fiber.Ctx) error {
	staffID, err := currentStaffID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	input := new(authdto.StaffLogoutInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	if err := h.StaffService.Logout(c.Context(), staffID, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	// Thu hồi token khỏi cache ngay lập tức
	if token := bearerToken(c); token != "" {
		middleware.GetAuthManager().InvalidateToken(token)
	}

	logger.LogAuth("logout", c, nil)

	basehdl.HandleResponse(c, fiber.Map{"message": "Đăng xuất thành công"}, nil)
	return nil
}

// HandleProfile trả về thông tin nhân viên đang đăng nhập
// GET /auth/me
func (h *StaffHandler) HandleProfile(c fiber.Ctx) error {
	staff, ok := c.Locals("staff").(models.Staff)
	if !ok {
		basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}
	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}

// HandleChangeInfo cập nhật thông tin cá nhân của nhân viên đang đăng nhập
// PUT /auth/me
func (h *StaffHandler) HandleChangeInfo(c fiber.Ctx) error {
	staffID, err := currentStaffID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	input := new(authdto.StaffChangeInfoInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.UpdateById(h.StaffContext(c), staffID, &basesvc.UpdateData{
		Set: map[string]interface{}{"name": input.Name},
	})
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}

// HandleChangePassword đổi mật khẩu của nhân viên đang đăng nhập, thu hồi mọi token
// POST /auth/change-password
func (h *StaffHandler) HandleChangePassword(c fiber.Ctx) error {
	staffID, err := currentStaffID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	input := new(authdto.StaffChangePasswordInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	if err := h.StaffService.ChangePassword(c.Context(), staffID, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	if token := bearerToken(c); token != "" {
		middleware.GetAuthManager().InvalidateToken(token)
	}

	logger.LogAuth("change_password", c, nil)

	basehdl.HandleResponse(c, fiber.Map{"message": "Đổi mật khẩu thành công"}, nil)
	return nil
}

// HandleRegister tạo tài khoản nhân viên mới (chỉ admin)
// POST /auth/register
func (h *StaffHandler) HandleRegister(c fiber.Ctx) error {
	input := new(authdto.StaffCreateInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.CreateStaff(h.StaffContext(c), input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"username": staff.Username,
		"role":     staff.Role,
	}).Info("[AUTH] Tạo tài khoản nhân viên mới")

	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}

// HandleBlock khóa tài khoản nhân viên theo username (chỉ admin)
// POST /auth/block
func (h *StaffHandler) HandleBlock(c fiber.Ctx) error {
	input := new(authdto.BlockStaffInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.BlockStaff(c.Context(), input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("block", c, map[string]interface{}{
		"username": staff.Username,
		"note":     input.Note,
	})

	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}

// HandleUnblock mở khóa tài khoản nhân viên (chỉ admin)
// POST /auth/unblock
func (h *StaffHandler) HandleUnblock(c fiber.Ctx) error {
	input := new(authdto.UnBlockStaffInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.UnBlockStaff(c.Context(), input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("unblock", c, map[string]interface{}{
		"username": staff.Username,
	})

	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}

// HandleSetRole gán vai trò cho nhân viên (chỉ admin)
// PUT /auth/role/:id
func (h *StaffHandler) HandleSetRole(c fiber.Ctx) error {
	staffID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat,
			"ID nhân viên không hợp lệ",
			common.StatusBadRequest,
			nil,
		))
		return nil
	}

	input := new(authdto.StaffSetRoleInput)
	if err := h.ParseRequestBody(c, input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	staff, err := h.StaffService.SetRole(c.Context(), staffID, input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("set_role", c, map[string]interface{}{
		"username": staff.Username,
		"role":     staff.Role,
	})

	basehdl.HandleResponse(c, sanitizeStaff(staff), nil)
	return nil
}
