// internals/features/finance/gateway/route/gateway_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gatewayController "sekolahku_backend/internals/features/finance/gateway/controller"
	"sekolahku_backend/internals/middlewares"
)

// GatewayRoutes: checkout dilindungi auth; webhook publik (path-nya
// masuk skip-list AuthMiddleware) dengan rate limiter sendiri.
func GatewayRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &gatewayController.CheckoutController{DB: db}

	payments := api.Group("/payments")
	payments.Post("/checkout", ctl.CreateCheckout)
	payments.Post("/notification", middlewares.WebhookRateLimiter(), ctl.HandleNotification)
	payments.Get("/students/:studentId/orders", ctl.GetStudentOrders)
}
