package optionrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	optionhdl "github.com/hanguan2025/my-order-admin/internal/api/option/handler"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
)

// Register đăng ký route cho hai collection lựa chọn mains và extras.
func Register(v1 fiber.Router, r *router.Router) error {
	mainsHandler, err := optionhdl.NewMainsHandler()
	if err != nil {
		return err
	}
	extrasHandler, err := optionhdl.NewExtrasHandler()
	if err != nil {
		return err
	}

	authMw := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/mains", "PUT", "/reorder",
		[]fiber.Handler{authMw}, mainsHandler.HandleReorder)
	router.RegisterRouteWithMiddleware(v1, "/extras", "PUT", "/reorder",
		[]fiber.Handler{authMw}, extrasHandler.HandleReorder)

	r.RegisterCRUDRoutes(v1, "/mains", mainsHandler, router.SequencedWriteConfig)
	r.RegisterCRUDRoutes(v1, "/extras", extrasHandler, router.SequencedWriteConfig)

	return nil
}
