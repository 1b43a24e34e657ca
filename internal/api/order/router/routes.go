package orderrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	orderhdl "github.com/hanguan2025/my-order-admin/internal/api/order/handler"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
)

// Register đăng ký các route đơn hàng. CRUD chung dùng NoDeleteConfig:
// xóa đơn chỉ đi qua route riêng có guard xác nhận và kiểm tra trạng thái.
func Register(v1 fiber.Router, r *router.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return err
	}

	authMw := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/list",
		[]fiber.Handler{authMw}, orderHandler.HandleList)
	router.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/counts",
		[]fiber.Handler{authMw}, orderHandler.HandleCounts)
	router.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/:id/status",
		[]fiber.Handler{authMw}, orderHandler.HandleTransition)
	router.RegisterRouteWithMiddleware(v1, "/orders", "DELETE", "/:id",
		[]fiber.Handler{authMw}, orderHandler.HandleDelete)

	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, router.NoDeleteConfig)

	return nil
}
