package statsrouter

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
	statshdl "github.com/hanguan2025/my-order-admin/internal/api/stats/handler"
)

// Register đăng ký các route thống kê.
func Register(v1 fiber.Router, r *router.Router) error {
	statsHandler, err := statshdl.NewStatsHandler()
	if err != nil {
		return err
	}

	authMw := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/revenue",
		[]fiber.Handler{authMw}, statsHandler.HandleRevenue)
	router.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/dishes",
		[]fiber.Handler{authMw}, statsHandler.HandleDishes)

	return nil
}
