package menurouter

import (
	"github.com/gofiber/fiber/v3"

	menuhdl "github.com/hanguan2025/my-order-admin/internal/api/menu/handler"
	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
)

// Register đăng ký các route thực đơn.
func Register(v1 fiber.Router, r *router.Router) error {
	menuHandler, err := menuhdl.NewMenuHandler()
	if err != nil {
		return err
	}

	authMw := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/menu", "PUT", "/reorder",
		[]fiber.Handler{authMw}, menuHandler.HandleReorder)

	r.RegisterCRUDRoutes(v1, "/menu", menuHandler, router.SequencedWriteConfig)

	return nil
}
