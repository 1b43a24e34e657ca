package authrouter

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/hanguan2025/my-order-admin/internal/api/auth/handler"
	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
)

// Register đăng ký các route xác thực và quản lý nhân viên.
// Chỉ /auth/login là public, mọi route còn lại đều qua AuthMiddleware;
// các thao tác quản trị tài khoản yêu cầu thêm AdminMiddleware.
func Register(v1 fiber.Router, r *router.Router) error {
	staffHandler, err := authhdl.NewStaffHandler()
	if err != nil {
		return err
	}

	authMw := middleware.AuthMiddleware()
	adminMw := middleware.AdminMiddleware()

	// Public
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login",
		nil, staffHandler.HandleLogin)

	// Cần đăng nhập
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout",
		[]fiber.Handler{authMw}, staffHandler.HandleLogout)
	router.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me",
		[]fiber.Handler{authMw}, staffHandler.HandleProfile)
	router.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/me",
		[]fiber.Handler{authMw}, staffHandler.HandleChangeInfo)
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/change-password",
		[]fiber.Handler{authMw}, staffHandler.HandleChangePassword)

	// Chỉ admin
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/register",
		[]fiber.Handler{authMw, adminMw}, staffHandler.HandleRegister)
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/block",
		[]fiber.Handler{authMw, adminMw}, staffHandler.HandleBlock)
	router.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/unblock",
		[]fiber.Handler{authMw, adminMw}, staffHandler.HandleUnblock)
	router.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/role/:id",
		[]fiber.Handler{authMw, adminMw}, staffHandler.HandleSetRole)

	// CRUD quản trị danh sách nhân viên (chỉ admin, không cho xóa trực tiếp)
	r.RegisterCRUDRoutes(v1, "/staff", staffHandler, router.NoDeleteConfig, adminMw)

	return nil
}
