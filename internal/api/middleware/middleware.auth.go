package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	models "github.com/hanguan2025/my-order-admin/internal/api/auth/models"
	authsvc "github.com/hanguan2025/my-order-admin/internal/api/auth/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
	"github.com/hanguan2025/my-order-admin/internal/logger"
	"github.com/hanguan2025/my-order-admin/internal/utility"
)

// AuthManager quản lý xác thực nhân viên
type AuthManager struct {
	StaffCRUD *authsvc.StaffService
	Cache     *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	staffService, err := authsvc.NewStaffService()
	if err != nil {
		return nil, err
	}

	return &AuthManager{
		StaffCRUD: staffService,
		// Cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// resolveStaff tìm nhân viên theo token, có cache theo token để giảm query DB mỗi request.
// Token bị thu hồi (logout/đổi mật khẩu/block) sẽ không còn trên document → hết hiệu lực
// chậm nhất sau TTL của cache.
func (am *AuthManager) resolveStaff(ctx context.Context, token string) (models.Staff, error) {
	cacheKey := "staff_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.Staff), nil
	}

	staff, err := am.StaffCRUD.FindByToken(ctx, token)
	if err != nil {
		return models.Staff{}, err
	}

	am.Cache.Set(cacheKey, staff)
	return staff, nil
}

// InvalidateToken xóa token khỏi cache (gọi khi logout để thu hồi ngay lập tức).
func (am *AuthManager) InvalidateToken(token string) {
	am.Cache.Delete("staff_token:" + token)
}

// AuthMiddleware middleware xác thực cho Fiber.
// Xác thực chữ ký JWT, sau đó xác nhận token vẫn còn trên document nhân viên
// (token bị thu hồi khi logout/đổi mật khẩu/block).
func AuthMiddleware() fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Thiếu Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Xác thực chữ ký JWT trước khi chạm vào database
		if _, err := authsvc.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token); err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Tìm nhân viên đang giữ token này
		staff, err := authManager.resolveStaff(c.Context(), token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("[AUTH] Token không tồn tại trong database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra nhân viên có bị khóa không
		if staff.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+staff.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin nhân viên vào context
		c.Locals("staffID", staff.ID.Hex())
		c.Locals("staff", staff)

		return c.Next()
	}
}

// AdminMiddleware yêu cầu vai trò admin. Phải đứng SAU AuthMiddleware trong chain.
func AdminMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		staff, ok := c.Locals("staff").(models.Staff)
		if !ok {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		if staff.Role != models.RoleAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"staff_id": staff.ID.Hex(),
				"username": staff.Username,
				"path":     c.Path(),
			}).Warn("[AUTH] Nhân viên không có quyền admin")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Chỉ quản trị viên mới được phép thực hiện thao tác này",
				common.StatusForbidden,
				nil,
			))
			return nil
		}
		return c.Next()
	}
}
