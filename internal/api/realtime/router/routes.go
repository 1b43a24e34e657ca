package realtimerouter

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/hanguan2025/my-order-admin/internal/api/middleware"
	realtimehdl "github.com/hanguan2025/my-order-admin/internal/api/realtime/handler"
	realtimesvc "github.com/hanguan2025/my-order-admin/internal/api/realtime/service"
	"github.com/hanguan2025/my-order-admin/internal/api/router"
)

// Register khởi động tầng realtime (change stream cho 4 collection) và
// đăng ký route SSE.
func Register(v1 fiber.Router, r *router.Router) error {
	service, err := realtimesvc.NewRealtimeService()
	if err != nil {
		return err
	}
	service.Start(context.Background())

	realtimeHandler := realtimehdl.NewRealtimeHandler(service)

	authMw := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/realtime", "GET", "/stream",
		[]fiber.Handler{authMw}, realtimeHandler.HandleStream)
	router.RegisterRouteWithMiddleware(v1, "/realtime", "GET", "/status",
		[]fiber.Handler{authMw}, realtimeHandler.HandleStatus)

	return nil
}
